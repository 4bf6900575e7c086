package geo

// BoundingBox is an axis-aligned lat/lon box, (LL, UR) lower-left/upper-right.
type BoundingBox struct {
	LL Coord
	UR Coord
}

// ContainsCoord reports whether coord is strictly interior to the box (an
// open box: points on the boundary are not contained).
func (b BoundingBox) ContainsCoord(coord Coord) bool {
	lonInRange := coord.Lon < b.UR.Lon && coord.Lon > b.LL.Lon
	latInRange := coord.Lat < b.UR.Lat && coord.Lat > b.LL.Lat
	return lonInRange && latInRange
}

// Overlaps reports whether two bounding boxes intersect, within eps. This is
// only ever used as a fast-reject shortcut ahead of the exact pixel overlap
// algorithm, so it is deliberately conservative: it only returns false when
// the boxes are unambiguously disjoint by more than eps.
func (b BoundingBox) Overlaps(other BoundingBox, eps float64) bool {
	if b.UR.Lon+eps < other.LL.Lon || other.UR.Lon+eps < b.LL.Lon {
		return false
	}
	if b.UR.Lat+eps < other.LL.Lat || other.UR.Lat+eps < b.LL.Lat {
		return false
	}
	return true
}
