package spatial

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PathLength returns the geodesic length in meters of a route geometry.
// Coordinates are GeoJSON ordered (lng, lat). Geometries other than
// line strings have no length.
func PathLength(g orb.Geometry) float64 {
	switch geom := g.(type) {
	case orb.LineString:
		return lineLength(geom)
	case orb.MultiLineString:
		total := 0.0
		for _, ls := range geom {
			total += lineLength(ls)
		}
		return total
	default:
		return 0
	}
}

func lineLength(ls orb.LineString) float64 {
	total := 0.0
	for i := 1; i < len(ls); i++ {
		total += HaversineDistance(ls[i-1].Lat(), ls[i-1].Lon(), ls[i].Lat(), ls[i].Lon())
	}
	return total
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)
