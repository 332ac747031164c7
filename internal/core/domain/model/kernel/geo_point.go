package kernel

import (
	"errors"
	"math"

	"github.com/u44592/hni/internal/pkg/errs"
	"github.com/u44592/hni/internal/pkg/guard"
)

const earthRadiusMiles = 3958.8

// ErrGeoPointIsNotConstructed is returned for a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 latitude/longitude pair in degrees.
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewGeoPoint validates latitude in [-90, 90] and longitude in [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	var errLat, errLng error
	if latitude < -90 || latitude > 90 || math.IsNaN(latitude) {
		errLat = errs.NewValueIsOutOfRangeError("latitude", latitude, -90, 90)
	}
	if longitude < -180 || longitude > 180 || math.IsNaN(longitude) {
		errLng = errs.NewValueIsOutOfRangeError("longitude", longitude, -180, 180)
	}
	if err := errors.Join(errLat, errLng); err != nil {
		return GeoPoint{}, err
	}

	return GeoPoint{latitude: latitude, longitude: longitude, guard: guard.NewConstructorGuard()}, nil
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64  { return p.latitude }
func (p GeoPoint) Longitude() float64 { return p.longitude }

// DistanceMiles returns the great-circle (haversine) distance to other.
func (p GeoPoint) DistanceMiles(other GeoPoint) float64 {
	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (other.longitude - p.longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}
