// Package geo provides great-circle distance math and the display formatting
// used by search results (straight-line distance, walking time).
package geo

import (
	"fmt"
	"math"

	"roomradar/internal/domain"
)

const (
	earthRadiusKm = 6371

	// WalkingSpeedKmh is the pace assumed when rendering walking durations.
	WalkingSpeedKmh = 5.0
)

// DistanceKm returns the haversine distance between two points in kilometers.
// It assumes valid coordinates; use Distance when the inputs are unvetted.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)
	lat1R := lat1 * (math.Pi / 180.0)
	lat2R := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1R)*math.Cos(lat2R)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Distance is the validated variant of DistanceKm. Non-finite or out-of-range
// coordinates return domain.ErrInvalidCoordinate instead of garbage distances.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	if !ValidCoordinate(lat1, lon1) || !ValidCoordinate(lat2, lon2) {
		return 0, domain.ErrInvalidCoordinate
	}
	return DistanceKm(lat1, lon1, lat2, lon2), nil
}

// ValidCoordinate reports whether lat/lon are finite and within range.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// FormatDistance renders a distance for display: rounded meters below 1 km,
// one-decimal kilometers otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}

// WalkingDuration renders the time to walk km at WalkingSpeedKmh.
func WalkingDuration(km float64) string {
	mins := int(math.Round(km / WalkingSpeedKmh * 60))
	if mins <= 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", mins)
}
