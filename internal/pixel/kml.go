package pixel

import (
	"fmt"
	"io"

	"github.com/rnleach/satfire/internal/geo"
)

// WriteKML writes this list as one KML Polygon per pixel:
// <Polygon><outerBoundaryIs><LinearRing><coordinates>, with the four
// corners repeated to close the ring and altitude fixed at 0, following
// _examples/original_source/src/kml.rs's linear_ring_add_vertex
// (lon,lat,z, one vertex per line).
func (l *List) WriteKML(w io.Writer) error {
	for _, p := range l.pixels {
		if err := writePixelPolygon(w, p); err != nil {
			return err
		}
	}
	return nil
}

func writePixelPolygon(w io.Writer, p geo.SatPixel) error {
	if _, err := io.WriteString(w, "<Polygon>\n<outerBoundaryIs>\n<LinearRing>\n<coordinates>\n"); err != nil {
		return err
	}

	corners := [5]geo.Coord{p.UL, p.UR, p.LR, p.LL, p.UL}
	for _, c := range corners {
		if _, err := fmt.Fprintf(w, "%v,%v,%v\n", c.Lon, c.Lat, 0); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</coordinates>\n</LinearRing>\n</outerBoundaryIs>\n</Polygon>\n")
	return err
}
