package courier

import (
	"errors"
	"fmt"
	"strings"

	"deliveryplanner/internal/core/domain/model/kernel"
	"deliveryplanner/internal/pkg/errs"
	"deliveryplanner/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrShopIsRequired is returned when a non-taxi courier has no home shop.
	ErrShopIsRequired = errs.NewValueIsRequiredError("shop id")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or NewTaxi constructor")
	// ErrLunchOutsideShift is returned when a lunch break does not fit the work shift.
	ErrLunchOutsideShift = errs.NewValueIsInvalidError("lunch must lie inside the work shift")
)

// Courier is a real delivery resource: a shop courier or an on-demand taxi.
// It is the aggregate root that gets bound to routes that actually ship.
//
// Key responsibilities:
//   - Managing courier identity, vehicle type and tariff
//   - Tracking availability (status, work shift, lunch)
//   - Checking whether an ordered sequence of stops can be delivered
//   - Producing its ExplorationProfile for route enumeration
//
// Business rules:
//   - Shop couriers belong to exactly one shop and are a single consumable unit
//     per planning cycle
//   - Taxis belong to no shop, work the whole day, have no lunch and are always
//     available regardless of status
//   - A lunch break must lie inside the work shift
//
// Example usage:
//
//	tariff, _ := courier.NewTariff(courier.TariffParams{MaxWeight: 10, MaxDistanceKm: 15, BaseCost: 50})
//	shift, _ := kernel.NewDailyWindow(9*time.Hour, 18*time.Hour)
//	c, err := courier.NewCourier(kernel.NewUUID(), "Alice", kernel.Bicycle, shopID, shift, tariff)
//	if err != nil {
//	    // Handle construction error
//	}
//	result, err := c.CheckDelivery(req)
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// vehicleType is the means of transport
	vehicleType kernel.VehicleType
	// isTaxi marks an unlimited on-demand resource
	isTaxi bool
	// shopID is the home shop; zero for taxis
	shopID kernel.UUID
	// status is the current availability
	status Status
	// work is the daily shift
	work kernel.DailyWindow
	// lunch is the optional daily break
	lunch *kernel.DailyWindow
	// tariff holds capacity limits and the cost formula
	tariff Tariff
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a Ready shop courier.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - vehicleType: Means of transport (must be valid)
//   - shopID: Home shop of the courier (must be valid UUID)
//   - work: Daily shift
//   - tariff: Capacity limits and cost formula (must be constructed)
//
// Returns:
//   - *Courier: A courier ready to be planned
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewCourier(
	id kernel.UUID,
	name string,
	vehicleType kernel.VehicleType,
	shopID kernel.UUID,
	work kernel.DailyWindow,
	tariff Tariff,
) (*Courier, error) {
	return RestoreCourier(id, name, vehicleType, false, shopID, Ready, work, nil, tariff)
}

// NewTaxi creates an on-demand taxi: no home shop, full-day availability, no
// lunch.
func NewTaxi(id kernel.UUID, name string, vehicleType kernel.VehicleType, tariff Tariff) (*Courier, error) {
	return RestoreCourier(id, name, vehicleType, true, kernel.UUID{}, Ready, kernel.FullDay(), nil, tariff)
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// The shop identifier is ignored for taxis.
func RestoreCourier(
	id kernel.UUID,
	name string,
	vehicleType kernel.VehicleType,
	isTaxi bool,
	shopID kernel.UUID,
	status Status,
	work kernel.DailyWindow,
	lunch *kernel.DailyWindow,
	tariff Tariff,
) (*Courier, error) {
	courier := &Courier{
		isTaxi: isTaxi,
		work:   work,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setVehicleType(vehicleType),
		courier.setShopID(shopID),
		courier.setStatus(status),
		courier.setTariff(tariff),
		courier.SetLunch(lunch),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks that the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// VehicleType returns the means of transport.
func (c *Courier) VehicleType() kernel.VehicleType {
	return c.vehicleType
}

// IsTaxi reports whether the courier is an unlimited on-demand resource.
func (c *Courier) IsTaxi() bool {
	return c.isTaxi
}

// ShopID returns the home shop. The zero UUID is returned for taxis.
func (c *Courier) ShopID() kernel.UUID {
	return c.shopID
}

// Status returns the current availability state.
func (c *Courier) Status() Status {
	return c.status
}

// IsAvailable reports whether the courier can leave on a new route now.
// Taxis are always available.
func (c *Courier) IsAvailable() bool {
	return c.isTaxi || c.status == Ready
}

// Work returns the daily shift.
func (c *Courier) Work() kernel.DailyWindow {
	return c.work
}

// Lunch returns the daily break, if any.
func (c *Courier) Lunch() (kernel.DailyWindow, bool) {
	if c.lunch == nil {
		return kernel.DailyWindow{}, false
	}
	return *c.lunch, true
}

// Tariff returns the capacity limits and cost formula.
func (c *Courier) Tariff() Tariff {
	return c.tariff
}

// SetLunch sets or clears (nil) the daily break. Taxis never take lunch.
//
// Business rules:
//   - The break must lie inside the work shift
//   - Setting a break on a taxi is an error
func (c *Courier) SetLunch(lunch *kernel.DailyWindow) error {
	if lunch == nil {
		c.lunch = nil
		return nil
	}
	if c.isTaxi {
		return errs.NewValueIsInvalidError("taxi cannot have a lunch break")
	}
	if lunch.Start() < c.work.Start() || lunch.End() > c.work.End() {
		return fmt.Errorf("%w: lunch %s, shift %s", ErrLunchOutsideShift, lunch, c.work)
	}
	l := *lunch
	c.lunch = &l
	return nil
}

// MakeReady marks the courier as available for a new route.
func (c *Courier) MakeReady() {
	c.status = Ready
}

// MakeBusy marks the courier as out on a route.
func (c *Courier) MakeBusy() {
	c.status = Busy
}

// GoOffline marks the courier as off work.
func (c *Courier) GoOffline() {
	c.status = Offline
}

// CheckDelivery evaluates the requested stops against the courier's real
// constraints: status, work shift, lunch and tariff.
//
// Returns:
//   - DeliveryResult: The longest deliverable prefix with its cost and timing,
//     or a rejection with its reason when Delivered is 0
//   - error: ErrInvalidDeliveryRequest or geo.ErrPointNotInMatrix when the
//     request itself is broken
func (c *Courier) CheckDelivery(req DeliveryRequest) (DeliveryResult, error) {
	return evaluate(c.tariff, availability{
		available: c.IsAvailable(),
		work:      c.work,
		lunch:     c.lunch,
	}, req)
}

// ExplorationProfile returns the unconstrained view of this courier used for
// route enumeration: same vehicle and tariff, full-day availability, no lunch,
// no status.
func (c *Courier) ExplorationProfile() ExplorationProfile {
	return ExplorationProfile{
		id:          c.id,
		vehicleType: c.vehicleType,
		isTaxi:      c.isTaxi,
		tariff:      c.tariff,
	}
}

func (c *Courier) String() string {
	kind := "courier"
	if c.isTaxi {
		kind = "taxi"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, c.id, c.vehicleType, c.status)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicleType(vehicleType kernel.VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	c.vehicleType = vehicleType
	return nil
}

func (c *Courier) setShopID(shopID kernel.UUID) error {
	if c.isTaxi {
		return nil
	}
	if err := shopID.Validate(); err != nil {
		return ErrShopIsRequired
	}
	c.shopID = shopID
	return nil
}

func (c *Courier) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Courier) setTariff(tariff Tariff) error {
	if err := tariff.Validate(); err != nil {
		return err
	}
	c.tariff = tariff
	return nil
}
