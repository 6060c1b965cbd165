package geo

import (
	"math"

	"pulsecx/internal/domain"
)

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two lat/lon
// points using the haversine formula on a spherical Earth.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NearestOpenStore returns the store nearest to (lat, lon) among those open at
// currentHour, falling back to the nearest store overall when none are open.
// Returns nil for an empty store list. Ties keep the earliest input entry.
func NearestOpenStore(stores []domain.Store, lat, lon float64, currentHour int) *domain.Store {
	if len(stores) == 0 {
		return nil
	}
	var bestOpen, bestAny *domain.Store
	bestOpenDist, bestAnyDist := math.Inf(1), math.Inf(1)
	for i := range stores {
		s := &stores[i]
		d := Distance(lat, lon, s.Lat, s.Lon)
		if d < bestAnyDist {
			bestAny, bestAnyDist = s, d
		}
		if s.OpenAt(currentHour) && d < bestOpenDist {
			bestOpen, bestOpenDist = s, d
		}
	}
	if bestOpen != nil {
		return bestOpen
	}
	return bestAny
}
