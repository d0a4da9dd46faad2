package geo

import (
	"math"

	"github.com/alexivanou/restaurant-finder/internal/model"
)

const earthRadiusKm = 6371

// DistanceKm returns the haversine distance between two points in kilometers
func DistanceKm(from, to model.LatLng) float64 {
	dLat := (to.Lat - from.Lat) * (math.Pi / 180.0)
	dLng := (to.Lng - from.Lng) * (math.Pi / 180.0)
	lat1Rad := from.Lat * (math.Pi / 180.0)
	lat2Rad := to.Lat * (math.Pi / 180.0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
