package order

// RejectionReason records why the planner could not put an order on a route in
// the current cycle. None means the order is deliverable on time.
type RejectionReason int

const (
	None RejectionReason = iota
	OverDistance
	OverWeight
	Late
	NoCourierAvailable
	NoVehicleType
	OutOfShift
	ShopClosed
	GeoDataUnavailable
	NotCovered
	NotPlannable
	Internal
)

var rejectionNames = map[RejectionReason]string{
	None:               "none",
	OverDistance:       "over_distance",
	OverWeight:         "over_weight",
	Late:               "late",
	NoCourierAvailable: "no_courier_available",
	NoVehicleType:      "no_vehicle_type",
	OutOfShift:         "out_of_shift",
	ShopClosed:         "shop_closed",
	GeoDataUnavailable: "geo_data_unavailable",
	NotCovered:         "not_covered",
	NotPlannable:       "not_plannable",
	Internal:           "internal",
}

func (r RejectionReason) String() string {
	if name, ok := rejectionNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRejectionReason maps a stored name back to its reason; unknown names
// map to None.
func ParseRejectionReason(s string) RejectionReason {
	for r, name := range rejectionNames {
		if name == s {
			return r
		}
	}
	return None
}

// IsCapacityLimit reports reasons no vehicle of the same kind can ever overcome:
// the order is too far or too heavy.
func (r RejectionReason) IsCapacityLimit() bool {
	return r == OverDistance || r == OverWeight
}
