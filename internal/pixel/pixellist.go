// Package pixel implements PixelList, the growable ordered sequence of
// satellite pixels that backs a cluster's perimeter, along with the compact
// binary codec used to store it as the `perimeter` BLOB and a KML emitter
// for pretty-printing it.
//
// Grounded in _examples/original_source/src/pixel.rs, whose PixelList
// constructors, binary codec, and KML printer are left as unimplemented
// stubs; this package fills them in with a concrete growable-slice
// implementation, a fixed-width binary record layout, and a KML Polygon
// emitter.
package pixel

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/rnleach/satfire/internal/geo"
)

// List is an owned, ordered sequence of SatPixels. The zero value is an
// empty list ready to use.
type List struct {
	pixels []geo.SatPixel
}

// New returns an empty List.
func New() *List {
	return &List{}
}

// NewWithCapacity returns an empty List with room for capacity pixels
// without reallocating.
func NewWithCapacity(capacity int) *List {
	return &List{pixels: make([]geo.SatPixel, 0, capacity)}
}

// Append copies p onto the end of the list.
func (l *List) Append(p geo.SatPixel) {
	l.pixels = append(l.pixels, p)
}

// Clear empties the list while keeping its underlying capacity.
func (l *List) Clear() {
	l.pixels = l.pixels[:0]
}

// Len returns the number of pixels in the list.
func (l *List) Len() int {
	return len(l.pixels)
}

// At returns the pixel at index i.
func (l *List) At(i int) geo.SatPixel {
	return l.pixels[i]
}

// All returns the underlying pixel slice. Callers must not mutate it.
func (l *List) All() []geo.SatPixel {
	return l.pixels
}

// Centroid returns the power-weighted centroid of the member pixels'
// individual centroids, falling back to the unweighted mean when every
// pixel has zero power (or the list is empty, where an error is returned).
func (l *List) Centroid() (geo.Coord, error) {
	if len(l.pixels) == 0 {
		return geo.Coord{}, fmt.Errorf("pixel: centroid of empty list")
	}

	lats := make([]float64, 0, len(l.pixels))
	lons := make([]float64, 0, len(l.pixels))
	weights := make([]float64, 0, len(l.pixels))

	var totalPower float64
	for _, p := range l.pixels {
		c, err := p.Centroid()
		if err != nil {
			continue
		}
		lats = append(lats, c.Lat)
		lons = append(lons, c.Lon)
		weights = append(weights, p.PowerMW)
		totalPower += p.PowerMW
	}

	if len(lats) == 0 {
		return geo.Coord{}, fmt.Errorf("pixel: no member pixel has a well-defined centroid")
	}

	if totalPower > 0 {
		return geo.Coord{
			Lat: stat.Mean(lats, weights),
			Lon: stat.Mean(lons, weights),
		}, nil
	}

	return geo.Coord{
		Lat: stat.Mean(lats, nil),
		Lon: stat.Mean(lons, nil),
	}, nil
}

// TotalPowerMW sums the power of every member pixel.
func (l *List) TotalPowerMW() float64 {
	var total float64
	for _, p := range l.pixels {
		total += p.PowerMW
	}
	return total
}

// MaxTemperatureK returns the highest brightness temperature among the
// member pixels, or 0 for an empty list.
func (l *List) MaxTemperatureK() float64 {
	var max float64
	for _, p := range l.pixels {
		if p.TemperatureK > max {
			max = p.TemperatureK
		}
	}
	return max
}

// BoundingBox returns the axis-aligned box enclosing every member pixel.
// It returns an error for an empty list.
func (l *List) BoundingBox() (geo.BoundingBox, error) {
	if len(l.pixels) == 0 {
		return geo.BoundingBox{}, fmt.Errorf("pixel: bounding box of empty list")
	}

	box := l.pixels[0].BoundingBox()
	for _, p := range l.pixels[1:] {
		other := p.BoundingBox()
		if other.LL.Lat < box.LL.Lat {
			box.LL.Lat = other.LL.Lat
		}
		if other.LL.Lon < box.LL.Lon {
			box.LL.Lon = other.LL.Lon
		}
		if other.UR.Lat > box.UR.Lat {
			box.UR.Lat = other.UR.Lat
		}
		if other.UR.Lon > box.UR.Lon {
			box.UR.Lon = other.UR.Lon
		}
	}
	return box, nil
}
