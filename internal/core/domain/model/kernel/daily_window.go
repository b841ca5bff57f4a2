package kernel

import (
	"fmt"
	"time"

	"deliveryplanner/internal/pkg/errs"
)

const day = 24 * time.Hour

// DailyWindow is a recurring time-of-day range expressed as offsets from
// midnight: shop working hours, courier shifts and lunch breaks.
type DailyWindow struct {
	start time.Duration
	end   time.Duration
}

// NewDailyWindow validates 0 <= start <= end <= 24h.
func NewDailyWindow(start, end time.Duration) (DailyWindow, error) {
	if start < 0 || start > day {
		return DailyWindow{}, errs.NewValueIsOutOfRangeError("window start", start, time.Duration(0), day)
	}
	if end < start || end > day {
		return DailyWindow{}, errs.NewValueIsOutOfRangeError("window end", end, start, day)
	}
	return DailyWindow{start: start, end: end}, nil
}

// FullDay is the window [00:00, 24:00].
func FullDay() DailyWindow {
	return DailyWindow{start: 0, end: day}
}

// Start returns the offset of the window start from midnight.
func (w DailyWindow) Start() time.Duration {
	return w.start
}

// End returns the offset of the window end from midnight.
func (w DailyWindow) End() time.Duration {
	return w.end
}

// IsEmpty reports whether the window has no duration.
func (w DailyWindow) IsEmpty() bool {
	return w.start == w.end
}

// On materialises the window on the calendar day of t, in t's location.
func (w DailyWindow) On(t time.Time) Interval {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Interval{from: midnight.Add(w.start), to: midnight.Add(w.end)}
}

func (w DailyWindow) String() string {
	return fmt.Sprintf("%s-%s", clock(w.start), clock(w.end))
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
