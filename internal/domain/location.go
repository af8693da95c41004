package domain

import "math"

// Kilometres per degree used by the local equirectangular approximation.
const (
	kmPerDegreeLat = 111.0
	kmPerDegreeLon = 85.0
)

// Immutable geographic position (latitude, longitude in degrees).
type Location struct {
	Lat float64
	Lon float64
}

// DistanceKm approximates the straight-line distance to other in kilometres.
// The longitude scale is fixed for mid-latitudes, which is accurate enough
// for a region a few hundred kilometres wide.
func (l Location) DistanceKm(other Location) float64 {
	dy := (other.Lat - l.Lat) * kmPerDegreeLat
	dx := (other.Lon - l.Lon) * kmPerDegreeLon
	return math.Sqrt(dx*dx + dy*dy)
}
