package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created by its constructor, so that zero
// values of domain types can be told apart from constructed ones.
//
// Embed it as a private field and set it from the constructor:
//
//	type Tariff struct {
//	    costPerKm float64
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewTariff(costPerKm float64) (Tariff, error) {
//	    return Tariff{costPerKm: costPerKm, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Tariff) Validate() error {
//	    return t.guard.Validate(ErrTariffIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
