package courier

import (
	"errors"
	"time"

	"deliveryplanner/internal/pkg/errs"
	"deliveryplanner/internal/pkg/guard"
)

// ErrTariffIsNotConstructed is returned when a zero Tariff is used.
var ErrTariffIsNotConstructed = errors.New("Tariff must be created via NewTariff constructor")

// Tariff is what a courier can carry and what a trip costs.
//
// Cost of a trip is
//
//	BaseCost + CostPerKm*distance + CostPerHour*duration
//
// where duration runs from departure to the last stop, or back to the shop for
// loop routes, and includes waiting and service time.
type Tariff struct {
	maxWeight     float64
	maxDistanceKm float64
	serviceTime   time.Duration
	baseCost      float64
	costPerKm     float64
	costPerHour   float64
	guard         guard.ConstructorGuard
}

// TariffParams groups the inputs of NewTariff.
type TariffParams struct {
	// MaxWeight is the carrying capacity in kilograms.
	MaxWeight float64
	// MaxDistanceKm bounds the length of one trip.
	MaxDistanceKm float64
	// ServiceTime is spent at every stop handing the order over.
	ServiceTime time.Duration
	BaseCost    float64
	CostPerKm   float64
	CostPerHour float64
}

// NewTariff validates limits are positive and costs are not negative.
func NewTariff(p TariffParams) (Tariff, error) {
	var problems []error
	if p.MaxWeight <= 0 {
		problems = append(problems, errs.NewValueIsRequiredError("max weight"))
	}
	if p.MaxDistanceKm <= 0 {
		problems = append(problems, errs.NewValueIsRequiredError("max distance"))
	}
	if p.ServiceTime < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("service time must not be negative"))
	}
	if p.BaseCost < 0 || p.CostPerKm < 0 || p.CostPerHour < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("costs must not be negative"))
	}
	if err := errors.Join(problems...); err != nil {
		return Tariff{}, err
	}

	return Tariff{
		maxWeight:     p.MaxWeight,
		maxDistanceKm: p.MaxDistanceKm,
		serviceTime:   p.ServiceTime,
		baseCost:      p.BaseCost,
		costPerKm:     p.CostPerKm,
		costPerHour:   p.CostPerHour,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate fails for tariffs that were not created with NewTariff.
func (t Tariff) Validate() error {
	return t.guard.Validate(ErrTariffIsNotConstructed)
}

// Params returns the inputs the tariff was built from.
func (t Tariff) Params() TariffParams {
	return TariffParams{
		MaxWeight:     t.maxWeight,
		MaxDistanceKm: t.maxDistanceKm,
		ServiceTime:   t.serviceTime,
		BaseCost:      t.baseCost,
		CostPerKm:     t.costPerKm,
		CostPerHour:   t.costPerHour,
	}
}

func (t Tariff) MaxWeight() float64 {
	return t.maxWeight
}

func (t Tariff) MaxDistanceKm() float64 {
	return t.maxDistanceKm
}

func (t Tariff) ServiceTime() time.Duration {
	return t.serviceTime
}

// Cost prices a trip of the given length and duration.
func (t Tariff) Cost(distanceKm float64, duration time.Duration) float64 {
	return t.baseCost + t.costPerKm*distanceKm + t.costPerHour*duration.Hours()
}
