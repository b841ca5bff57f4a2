package kernel

import (
	"fmt"
	"time"

	"deliveryplanner/internal/pkg/errs"
)

// Interval is a closed time range [From, To]. Delivery windows, route dispatch
// windows and materialised shifts are all Intervals.
type Interval struct {
	from time.Time
	to   time.Time
}

// NewInterval returns [from, to] or an error when to precedes from.
func NewInterval(from, to time.Time) (Interval, error) {
	if from.IsZero() {
		return Interval{}, errs.NewValueIsRequiredError("interval start")
	}
	if to.Before(from) {
		return Interval{}, errs.NewValueIsInvalidErrorWithCause(
			"interval",
			fmt.Errorf("end %s is before start %s", to.Format(time.RFC3339), from.Format(time.RFC3339)),
		)
	}
	return Interval{from: from, to: to}, nil
}

// From returns the start of the interval.
func (i Interval) From() time.Time {
	return i.from
}

// To returns the end of the interval.
func (i Interval) To() time.Time {
	return i.to
}

// Duration returns To - From.
func (i Interval) Duration() time.Duration {
	return i.to.Sub(i.from)
}

// IsZero reports whether the interval was never set.
func (i Interval) IsZero() bool {
	return i.from.IsZero() && i.to.IsZero()
}

// Contains reports whether t lies inside [From, To].
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.from) && !t.After(i.to)
}

// Overlaps reports whether the two closed intervals share at least one instant.
func (i Interval) Overlaps(other Interval) bool {
	return !i.to.Before(other.from) && !other.to.Before(i.from)
}

// WithTo returns a copy with a new end, clamped so that the result stays valid.
func (i Interval) WithTo(to time.Time) Interval {
	if to.Before(i.from) {
		to = i.from
	}
	return Interval{from: i.from, to: to}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.from.Format(time.RFC3339), i.to.Format(time.RFC3339))
}
