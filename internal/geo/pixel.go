package geo

import "fmt"

// SatPixel is the convex quadrilateral footprint of one raster cell as
// viewed from a geostationary satellite, plus the per-pixel Fire Detection
// Characteristics the raster loader extracted for it.
//
// Corners are listed in a consistent winding order (ul, ur, lr, ll) matching
// the geostationary grid's convention: ul.Lat >= ll.Lat and ur.Lon >= ul.Lon.
type SatPixel struct {
	UL Coord
	UR Coord
	LR Coord
	LL Coord

	PowerMW       float64
	TemperatureK  float64
	AreaKM2       float64
	Mask          FireMaskCode
}

// FireMaskCode is the outcome code of the FDC algorithm's fire-characterization
// test for one pixel.
type FireMaskCode int16

// corners returns the four corners in winding order, used by every predicate
// below that needs to walk the quadrilateral's edges or vertices.
func (p SatPixel) corners() [4]Coord {
	return [4]Coord{p.UL, p.UR, p.LR, p.LL}
}

func (p SatPixel) edges() [4]line {
	c := p.corners()
	return [4]line{
		{start: c[0], end: c[1]},
		{start: c[1], end: c[2]},
		{start: c[2], end: c[3]},
		{start: c[3], end: c[0]},
	}
}

// BoundingBox returns the axis-aligned box enclosing the pixel's four
// corners.
func (p SatPixel) BoundingBox() BoundingBox {
	c := p.corners()
	minLat, maxLat := c[0].Lat, c[0].Lat
	minLon, maxLon := c[0].Lon, c[0].Lon
	for _, v := range c[1:] {
		if v.Lat < minLat {
			minLat = v.Lat
		}
		if v.Lat > maxLat {
			maxLat = v.Lat
		}
		if v.Lon < minLon {
			minLon = v.Lon
		}
		if v.Lon > maxLon {
			maxLon = v.Lon
		}
	}
	return BoundingBox{LL: Coord{Lat: minLat, Lon: minLon}, UR: Coord{Lat: maxLat, Lon: maxLon}}
}

// Centroid computes the centroid of the quadrilateral as the intersection of
// the two lines connecting the centroids of the two triangulations (one per
// diagonal). This is exact for any convex quadrilateral. It returns an error
// for a degenerate (zero-area) pixel, where the two diagonals' centroid lines
// are themselves parallel.
func (p SatPixel) Centroid() (Coord, error) {
	t1 := triangleCentroid(p.UL, p.LL, p.LR)
	t2 := triangleCentroid(p.UL, p.UR, p.LR)
	diag1 := line{start: t1, end: t2}

	t3 := triangleCentroid(p.UL, p.LL, p.UR)
	t4 := triangleCentroid(p.LR, p.UR, p.LL)
	diag2 := line{start: t3, end: t4}

	res := diag1.intersect(diag2, 1.0e-30)
	if !res.intersects {
		return Coord{}, fmt.Errorf("geo: degenerate pixel has no centroid")
	}

	return res.point, nil
}

// ApproxEqual reports whether two pixels describe basically the same
// geographic footprint (their corners, pairwise, are within eps). It does
// not compare power, temperature, area, or mask.
func (p SatPixel) ApproxEqual(other SatPixel, eps float64) bool {
	return p.UL.IsClose(other.UL, eps) &&
		p.UR.IsClose(other.UR, eps) &&
		p.LR.IsClose(other.LR, eps) &&
		p.LL.IsClose(other.LL, eps)
}

// ContainsCoord reports whether coord is interior (not on the boundary) to
// the pixel. It fast-rejects using the bounding box, then shoots a segment
// from coord to each of the pixel's four corners and checks for a
// non-endpoint crossing with any of the pixel's four edges.
func (p SatPixel) ContainsCoord(coord Coord, eps float64) bool {
	if !p.BoundingBox().ContainsCoord(coord) {
		return false
	}

	pxlEdges := p.edges()
	c := p.corners()
	coordLines := [4]line{
		{start: coord, end: c[0]},
		{start: coord, end: c[1]},
		{start: coord, end: c[3]},
		{start: coord, end: c[2]},
	}

	for _, pl := range pxlEdges {
		for _, cl := range coordLines {
			res := pl.intersect(cl, eps)
			if res.intersects && !res.endpointsOnly {
				return false
			}
		}
	}

	return true
}

// Overlaps reports whether two pixels overlap: either they are
// approximately the same footprint, or an edge of one strictly crosses an
// edge of the other (not at endpoints), or a vertex of one is strictly
// interior to the other (the case where one pixel wholly contains another).
func (p SatPixel) Overlaps(other SatPixel, eps float64) bool {
	if p.ApproxEqual(other, eps) {
		return true
	}

	if !p.BoundingBox().Overlaps(other.BoundingBox(), eps) {
		return false
	}

	selfEdges := p.edges()
	otherEdges := other.edges()
	for _, sl := range selfEdges {
		for _, ol := range otherEdges {
			res := sl.intersect(ol, eps)
			if res.intersects && !res.endpointsOnly {
				return true
			}
		}
	}

	for _, c := range p.corners() {
		if other.ContainsCoord(c, eps) {
			return true
		}
	}
	for _, c := range other.corners() {
		if p.ContainsCoord(c, eps) {
			return true
		}
	}

	return false
}

// AdjacentTo reports whether two pixels share an edge — exactly two
// neighbouring corners of one pixel are close (within eps) to two
// neighbouring corners of the other, in reversed winding order — without
// their interiors overlapping.
//
// Grounded in the completed reference implementation the original C stub
// never got (Pixel::is_adjacent_to in pixel.rs): after the close-corner
// count check, any unmatched corner that turns out to be interior to the
// other pixel, or either centroid landing inside the other pixel, indicates
// a real overlap rather than a simple shared edge, and disqualifies
// adjacency.
func (p SatPixel) AdjacentTo(other SatPixel, eps float64) bool {
	if p.ApproxEqual(other, eps) {
		return false
	}

	if !p.BoundingBox().Overlaps(other.BoundingBox(), eps) {
		return false
	}

	selfCorners := p.corners()
	otherCorners := other.corners()

	var selfClose, otherClose [4]bool
	var matches [][2]int
	for i, sc := range selfCorners {
		for j, oc := range otherCorners {
			if sc.IsClose(oc, eps) {
				matches = append(matches, [2]int{i, j})
				selfClose[i] = true
				otherClose[j] = true
			}
		}
	}

	if len(matches) != 2 {
		return false
	}

	// The shared edge joins neighbouring corners of each pixel and runs in
	// opposite directions around the two of them.
	di := (matches[1][0] - matches[0][0] + 4) % 4
	dj := (matches[1][1] - matches[0][1] + 4) % 4
	if !(di == 1 && dj == 3) && !(di == 3 && dj == 1) {
		return false
	}

	for i, sc := range selfCorners {
		if !selfClose[i] && other.ContainsCoord(sc, eps) {
			return false
		}
	}
	for j, oc := range otherCorners {
		if !otherClose[j] && p.ContainsCoord(oc, eps) {
			return false
		}
	}

	selfCentroid, err := p.Centroid()
	if err == nil && other.ContainsCoord(selfCentroid, eps) {
		return false
	}
	otherCentroid, err := other.Centroid()
	if err == nil && p.ContainsCoord(otherCentroid, eps) {
		return false
	}

	return true
}
