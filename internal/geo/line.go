package geo

import "math"

// line is a segment in lon/lat space, used only internally by the pixel
// predicates below.
type line struct {
	start Coord
	end   Coord
}

// intersectResult is the outcome of intersecting two line segments.
type intersectResult struct {
	point          Coord
	intersects     bool
	withinBoth     bool
	endpointsOnly  bool
}

// intersect finds where l1 and l2 cross, following _examples/original_source/src/geo.c's
// lines_intersection: slopes are compared directly (equal or both-infinite
// slopes are treated as parallel/colinear, which is reported as
// non-intersecting by design — colinear overlap is handled by the
// containment checks in the caller instead). eps is used only to decide
// whether the intersection point coincides with a segment endpoint.
func (l1 line) intersect(l2 line, eps float64) intersectResult {
	result := intersectResult{point: Coord{Lat: math.NaN(), Lon: math.NaN()}}

	m1 := (l1.end.Lat - l1.start.Lat) / (l1.end.Lon - l1.start.Lon)
	m2 := (l2.end.Lat - l2.start.Lat) / (l2.end.Lon - l2.start.Lon)

	x1, y1 := l1.start.Lon, l1.start.Lat
	x2, y2 := l2.start.Lon, l2.start.Lat

	if m1 == m2 || (math.IsInf(m1, 0) && math.IsInf(m2, 0)) {
		return result
	}

	var x0, y0 float64
	switch {
	case math.IsInf(m1, 0):
		x0 = l1.start.Lon
		y0 = m2*(x0-x2) + y2
	case math.IsInf(m2, 0):
		x0 = l2.start.Lon
		y0 = m1*(x0-x1) + y1
	default:
		x0 = (y2 - y1 + m1*x1 - m2*x2) / (m1 - m2)
		y0 = m1*(x0-x1) + y1
	}

	result.point = Coord{Lat: y0, Lon: x0}

	within1 := y0 <= math.Max(l1.start.Lat, l1.end.Lat) && y0 >= math.Min(l1.start.Lat, l1.end.Lat) &&
		x0 <= math.Max(l1.start.Lon, l1.end.Lon) && x0 >= math.Min(l1.start.Lon, l1.end.Lon)
	within2 := y0 <= math.Max(l2.start.Lat, l2.end.Lat) && y0 >= math.Min(l2.start.Lat, l2.end.Lat) &&
		x0 <= math.Max(l2.start.Lon, l2.end.Lon) && x0 >= math.Min(l2.start.Lon, l2.end.Lon)

	if !within1 || !within2 {
		return result
	}

	result.intersects = true
	result.withinBoth = true

	isL1Endpoint := result.point.IsClose(l1.start, eps) || result.point.IsClose(l1.end, eps)
	isL2Endpoint := result.point.IsClose(l2.start, eps) || result.point.IsClose(l2.end, eps)
	result.endpointsOnly = isL1Endpoint && isL2Endpoint

	return result
}
