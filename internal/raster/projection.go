package raster

import "math"

// fixedGridProjection holds the GOES-R Advanced Baseline Imager fixed-grid
// projection parameters needed to turn a pixel's (scan-angle-x,
// scan-angle-y) pair into the four corner lat/lon coordinates of its
// footprint. Parameter names and the inversion formula follow the public
// GOES-R Product User Guide's "Navigating from N/S Elevation Angle (y) and
// E/W Scanning Angle (x) to Geodetic Latitude and Longitude" algorithm,
// on the reference ellipsoid given by the header's equatorial and polar
// radii.
type fixedGridProjection struct {
	subLonDeg       float64 // satellite sub-point longitude, degrees
	perspectiveH    float64 // satellite height above the reference ellipsoid, km, plus Earth radius
	earthEquatorial float64 // Earth equatorial radius, km
	earthPolar      float64 // Earth polar radius, km

	colScale  float64 // x = colIndex*colScale + colOffset, radians
	colOffset float64
	rowScale  float64 // y = rowIndex*rowScale + rowOffset, radians
	rowOffset float64
}

// invert converts scan angles (x east/west, y north/south, in radians) to
// geodetic latitude/longitude in decimal degrees.
func (fg fixedGridProjection) invert(x, y float64) (latDeg, lonDeg float64, ok bool) {
	sinX, cosX := math.Sin(x), math.Cos(x)
	sinY, cosY := math.Sin(y), math.Cos(y)

	req := fg.earthEquatorial
	rpol := fg.earthPolar
	h := fg.perspectiveH

	a := sinX*sinX + cosX*cosX*(cosY*cosY+(req*req)/(rpol*rpol)*sinY*sinY)
	b := -2 * h * cosX * cosY
	c := h*h - req*req

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}

	rs := (-b - math.Sqrt(disc)) / (2 * a)

	sx := rs * cosX * cosY
	sy := -rs * sinX
	sz := rs * cosX * sinY

	lat := math.Atan((req * req) / (rpol * rpol) * sz / math.Sqrt((h-sx)*(h-sx)+sy*sy))
	lon := math.Atan2(sy, h-sx)

	latDeg = lat * 180 / math.Pi
	lonDeg = fg.subLonDeg - lon*180/math.Pi

	return latDeg, lonDeg, true
}

// pixelCorners returns the four corner coordinates (ul, ur, lr, ll) of the
// pixel at (row, col), built by inverting the scan angles at the pixel's
// four surrounding half-step offsets.
func (fg fixedGridProjection) pixelCorners(row, col int) (ul, ur, lr, ll [2]float64, ok bool) {
	x := float64(col)*fg.colScale + fg.colOffset
	y := float64(row)*fg.rowScale + fg.rowOffset

	halfX := fg.colScale / 2
	halfY := fg.rowScale / 2

	corner := func(dx, dy float64) ([2]float64, bool) {
		lat, lon, ok := fg.invert(x+dx, y+dy)
		return [2]float64{lat, lon}, ok
	}

	var okUL, okUR, okLR, okLL bool
	ul, okUL = corner(-halfX, halfY)
	ur, okUR = corner(halfX, halfY)
	lr, okLR = corner(halfX, -halfY)
	ll, okLL = corner(-halfX, -halfY)

	return ul, ur, lr, ll, okUL && okUR && okLR && okLL
}
