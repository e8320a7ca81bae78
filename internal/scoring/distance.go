package scoring

import (
	"math"

	"github.com/antoinebeaumadier/global-city-autocomplete/internal/types"
)

// earthRadiusKm is the spherical Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// proximityRangeKm is the distance at which the linear proximity decay
// reaches zero.
const proximityRangeKm = 1000.0

// NeutralProximity is the proximity component used when no origin is known,
// distinct from "far away" so unlocatable clients are not penalized.
const NeutralProximity = 0.5

// DistanceKm returns the great-circle distance in kilometers between two
// coordinate pairs, using the haversine formula.
func DistanceKm(a, b types.Coords) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// ProximityScore converts a distance to a [0,1] score: 1 at zero distance,
// decaying linearly to 0 at 1000 km and beyond.
func ProximityScore(distanceKm float64) float64 {
	return math.Max(0, 1-distanceKm/proximityRangeKm)
}
