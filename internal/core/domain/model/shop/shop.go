package shop

import (
	"errors"
	"strings"
	"time"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/errs"
	"deliveryplanner/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a shop has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrShopIsNotConstructed is returned when a Shop bypassed NewShop.
	ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")
)

// Shop is the place orders ship from. Every route of a planning cycle starts at
// a single shop.
type Shop struct {
	id           kernel.UUID
	name         string
	location     kernel.Location
	workingHours kernel.DailyWindow
	guard        guard.ConstructorGuard
}

// NewShop validates the parameters and returns the shop.
//
// Example:
//
//	hours, _ := kernel.NewDailyWindow(9*time.Hour, 21*time.Hour)
//	s, err := shop.NewShop(kernel.NewUUID(), "Central", location, hours)
func NewShop(id kernel.UUID, name string, location kernel.Location, workingHours kernel.DailyWindow) (*Shop, error) {
	s := &Shop{
		workingHours: workingHours,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLocation(location),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shop was created through NewShop.
func (s *Shop) Validate() error {
	if s == nil {
		return ErrShopIsNotConstructed
	}
	return s.guard.Validate(ErrShopIsNotConstructed)
}

// ID returns the shop identifier.
func (s *Shop) ID() kernel.UUID {
	return s.id
}

// Name returns the display name.
func (s *Shop) Name() string {
	return s.name
}

// Location returns where routes depart from.
func (s *Shop) Location() kernel.Location {
	return s.location
}

// WorkingHours returns the daily opening hours.
func (s *Shop) WorkingHours() kernel.DailyWindow {
	return s.workingHours
}

// OpeningOn returns the opening hours materialised on the day of t.
func (s *Shop) OpeningOn(t time.Time) kernel.Interval {
	return s.workingHours.On(t)
}

// EarliestDeparture returns the first instant at or after t when the shop is
// open. ok is false when the shop is closed for the rest of t's day.
func (s *Shop) EarliestDeparture(t time.Time) (departure time.Time, ok bool) {
	hours := s.OpeningOn(t)
	if t.After(hours.To()) {
		return t, false
	}
	if t.Before(hours.From()) {
		return hours.From(), true
	}
	return t, true
}

func (s *Shop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shop) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Shop) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}
