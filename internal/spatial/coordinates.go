package spatial

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/jengzang/workouts-backend-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// toLatLng converts a [lat, lng] pair into an S2 LatLng
func toLatLng(c models.Coordinates) s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat(), c.Lng())
}

// Valid reports whether the pair is a finite point with latitude in [-90, 90]
// and longitude in [-180, 180]
func Valid(c models.Coordinates) bool {
	if math.IsNaN(c.Lat()) || math.IsNaN(c.Lng()) || math.IsInf(c.Lat(), 0) || math.IsInf(c.Lng(), 0) {
		return false
	}
	return toLatLng(c).IsValid()
}

// Normalize wraps the longitude into [-180, 180] and clamps the latitude.
// Map widgets report longitudes past ±180 once the view has been panned across
// the antimeridian.
func Normalize(c models.Coordinates) models.Coordinates {
	ll := toLatLng(c).Normalized()
	return models.Coordinates{ll.Lat.Degrees(), ll.Lng.Degrees()}
}

// DistanceKm calculates the great-circle distance between two points in kilometers
func DistanceKm(a, b models.Coordinates) float64 {
	return toLatLng(a).Distance(toLatLng(b)).Radians() * EarthRadiusKm
}
