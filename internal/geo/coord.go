// Package geo implements the pure, stateless computational-geometry kernel
// the rest of the pipeline builds on: geographic coordinates, convex
// quadrilateral satellite-pixel footprints, line intersection, containment,
// overlap, adjacency, and great-circle distance.
//
// Every predicate here is grounded in _examples/original_source/src/geo.c and
// pixel.rs, generalized from the original's single degenerate-case coverage
// to handle every relative position two convex quadrilaterals can take (the
// original leaves sat_pixels_are_adjacent and most of the
// PixelList/codec/KML routines as unimplemented stubs).
package geo

import "math"

// Coord is a geographic point in decimal degrees on WGS-84.
type Coord struct {
	Lat float64
	Lon float64
}

// IsClose reports whether two coordinates are within eps of each other,
// using squared-Euclidean distance in degree space: this is a cheap
// approximate-equality test, not a geodesic one, and is only meant for
// comparing corners of pixels that are already close together.
func (c Coord) IsClose(other Coord, eps float64) bool {
	dLat := c.Lat - other.Lat
	dLon := c.Lon - other.Lon
	distSq := dLat*dLat + dLon*dLon
	return distSq <= eps*eps
}

func triangleCentroid(v1, v2, v3 Coord) Coord {
	return Coord{
		Lat: (v1.Lat + v2.Lat + v3.Lat) / 3.0,
		Lon: (v1.Lon + v2.Lon + v3.Lon) / 3.0,
	}
}

// EarthRadiusKM is the mean Earth radius used for the great-circle distance
// calculation, matching the original's EARTH_RADIUS_KM constant.
const EarthRadiusKM = 6371.0090

const deg2rad = math.Pi / 180.0

// GreatCircleDistanceKM returns the haversine great-circle distance, in
// kilometers, between two points given in decimal degrees.
func GreatCircleDistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * deg2rad
	lon1r := lon1 * deg2rad
	lat2r := lat2 * deg2rad
	lon2r := lon2 * deg2rad

	dLat2 := (lat2r - lat1r) / 2.0
	dLon2 := (lon2r - lon1r) / 2.0

	sinDLat := math.Sin(dLat2)
	sinDLon := math.Sin(dLon2)

	arc := 2.0 * math.Asin(math.Sqrt(sinDLat*sinDLat+sinDLon*sinDLon*math.Cos(lat1r)*math.Cos(lat2r)))

	return arc * EarthRadiusKM
}
