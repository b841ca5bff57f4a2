package kernel

import (
	"errors"
	"fmt"
	"math"

	"deliveryplanner/internal/pkg/errs"
	"deliveryplanner/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is an immutable geographic point in decimal degrees.
//
// Example:
//
//	shop, _ := kernel.NewLocation(55.7558, 37.6173)
//	client, _ := kernel.NewLocation(55.7600, 37.6300)
//	km, _ := shop.DistanceKm(client)
type Location struct { //nolint:recvcheck // setters use pointer receivers during construction
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation validates both coordinates and returns the point.
//
// Returns an errs.ValueIsOutOfRangeError for every coordinate outside of
// [LatitudeMin..LatitudeMax] or [LongitudeMin..LongitudeMax], joined together.
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate fails for locations that were not created with NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String implements fmt.Stringer, e.g. "Location(55.755800,37.617300)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// DistanceKm returns the great-circle (haversine) distance between two points
// in kilometres. The distance is symmetric and zero for equal points.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := radians(l.latitude)
	lat2 := radians(other.latitude)
	dLat := lat2 - lat1
	dLon := radians(other.longitude - l.longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

func (l *Location) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
