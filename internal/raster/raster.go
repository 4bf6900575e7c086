package raster

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rnleach/satfire/internal/geo"
)

// GranuleReader is the contract the pipeline's loader stage needs from a
// decoded granule: Open selects the fire-power band, ReadBand yields its
// pixels, GridCornersOfPixel/FireMaskOfPixel expose the georeferencing and
// mask for one pixel, and ScanTimes reports the granule's scan window.
// GeostationaryRaster is the sole concrete implementation; the interface
// exists so a future reader for a different file layout can be dropped in
// without touching the loader.
type GranuleReader interface {
	Open(path string) error
	ReadBand() ([]SatPixelRecord, error)
	GridCornersOfPixel(row, col int) (ul, ur, lr, ll geo.Coord, ok bool)
	FireMaskOfPixel(row, col int) geo.FireMaskCode
	ScanTimes() (Granule, error)
	Close() error
}

// SatPixelRecord is one decoded raster cell, pre-georeferencing.
type SatPixelRecord struct {
	Row, Col     int
	PowerMW      float64
	TemperatureK float64
	AreaKM2      float64
	Mask         geo.FireMaskCode
}

// containerMagic identifies the self-describing raster container this
// package decodes. No NetCDF/HDF5 Go library exists anywhere in the
// retrieval pack (checked across every example repo's go.mod), so the
// loader reads this fixed, documented binary layout directly rather than
// depending on one.
var containerMagic = [4]byte{'S', 'F', 'R', '1'}

// GeostationaryRaster decodes one FDC granule file into georeferenced
// SatPixel footprints.
type GeostationaryRaster struct {
	path    string
	granule Granule

	rows, cols int
	proj       fixedGridProjection

	power []float64
	temp  []float64
	area  []float64
	mask  []geo.FireMaskCode
}

// Open parses the filename for provenance, rejects Meso sectors and
// unexpected extensions, then decodes the file's header and FDC bands.
func (g *GeostationaryRaster) Open(path string) error {
	if filepath.Ext(path) != Extension {
		return fmt.Errorf("raster: unexpected extension for %q, want %q", path, Extension)
	}

	gr, err := ParseFilename(path)
	if err != nil {
		return err
	}
	if gr.Sector.IsMeso() {
		return fmt.Errorf("raster: meso sector granules are rejected at load time: %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("raster: opening %q: %w", path, err)
	}
	defer f.Close()

	if err := g.decode(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("raster: decoding %q: %w", path, err)
	}

	g.path = path
	g.granule = gr
	return nil
}

func (g *GeostationaryRaster) decode(r io.Reader) error {
	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if magic != containerMagic {
		return fmt.Errorf("unrecognized container magic %v", magic)
	}

	var rows, cols int32
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return fmt.Errorf("reading row count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
		return fmt.Errorf("reading column count: %w", err)
	}
	g.rows, g.cols = int(rows), int(cols)

	var proj struct {
		SubLon, PerspectiveH, EquatorialR, PolarR float64
		ColScale, ColOffset, RowScale, RowOffset  float64
	}
	if err := binary.Read(r, binary.LittleEndian, &proj); err != nil {
		return fmt.Errorf("reading projection header: %w", err)
	}
	g.proj = fixedGridProjection{
		subLonDeg:       proj.SubLon,
		perspectiveH:    proj.PerspectiveH,
		earthEquatorial: proj.EquatorialR,
		earthPolar:      proj.PolarR,
		colScale:        proj.ColScale,
		colOffset:       proj.ColOffset,
		rowScale:        proj.RowScale,
		rowOffset:       proj.RowOffset,
	}

	n := g.rows * g.cols
	g.power = make([]float64, n)
	g.temp = make([]float64, n)
	g.area = make([]float64, n)
	g.mask = make([]geo.FireMaskCode, n)

	if err := binary.Read(r, binary.LittleEndian, &g.power); err != nil {
		return fmt.Errorf("reading power band: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &g.temp); err != nil {
		return fmt.Errorf("reading temperature band: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &g.area); err != nil {
		return fmt.Errorf("reading area band: %w", err)
	}

	maskRaw := make([]int16, n)
	if err := binary.Read(r, binary.LittleEndian, &maskRaw); err != nil {
		return fmt.Errorf("reading fire mask band: %w", err)
	}
	for i, m := range maskRaw {
		g.mask[i] = geo.FireMaskCode(m)
	}

	return nil
}

// ReadBand returns every cell with power > 0 MW, which is all the
// clustering engine needs; zero-power pixels never reach the cluster
// engine at all.
func (g *GeostationaryRaster) ReadBand() ([]SatPixelRecord, error) {
	out := make([]SatPixelRecord, 0, len(g.power)/4)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			idx := row*g.cols + col
			if g.power[idx] <= 0 {
				continue
			}
			out = append(out, SatPixelRecord{
				Row: row, Col: col,
				PowerMW:      g.power[idx],
				TemperatureK: g.temp[idx],
				AreaKM2:      g.area[idx],
				Mask:         g.mask[idx],
			})
		}
	}
	return out, nil
}

// GridCornersOfPixel reconstructs the four corner coordinates of the pixel
// at (row, col) from the fixed-grid projection metadata.
func (g *GeostationaryRaster) GridCornersOfPixel(row, col int) (ul, ur, lr, ll geo.Coord, ok bool) {
	ulxy, urxy, lrxy, llxy, ok := g.proj.pixelCorners(row, col)
	if !ok {
		return geo.Coord{}, geo.Coord{}, geo.Coord{}, geo.Coord{}, false
	}
	return geo.Coord{Lat: ulxy[0], Lon: ulxy[1]},
		geo.Coord{Lat: urxy[0], Lon: urxy[1]},
		geo.Coord{Lat: lrxy[0], Lon: lrxy[1]},
		geo.Coord{Lat: llxy[0], Lon: llxy[1]},
		true
}

// FireMaskOfPixel returns the fire-mask code for the pixel at (row, col).
func (g *GeostationaryRaster) FireMaskOfPixel(row, col int) geo.FireMaskCode {
	return g.mask[row*g.cols+col]
}

// ScanTimes returns the granule's provenance parsed at Open time.
func (g *GeostationaryRaster) ScanTimes() (Granule, error) {
	if g.granule.Satellite == 0 && g.granule.ScanStart.IsZero() {
		return Granule{}, fmt.Errorf("raster: Open was never called successfully")
	}
	return g.granule, nil
}

// Close releases any resources held by the reader. GeostationaryRaster
// decodes eagerly in Open and holds no file handle afterward, so this is a
// no-op kept to satisfy GranuleReader.
func (g *GeostationaryRaster) Close() error {
	return nil
}

// ToSatPixels converts every decoded record with power > 0 into a fully
// georeferenced geo.SatPixel, skipping any pixel whose projection inversion
// fails (a scan angle outside the visible disk).
func (g *GeostationaryRaster) ToSatPixels() ([]geo.SatPixel, error) {
	records, err := g.ReadBand()
	if err != nil {
		return nil, err
	}

	out := make([]geo.SatPixel, 0, len(records))
	for _, rec := range records {
		ul, ur, lr, ll, ok := g.GridCornersOfPixel(rec.Row, rec.Col)
		if !ok {
			continue
		}
		out = append(out, geo.SatPixel{
			UL: ul, UR: ur, LR: lr, LL: ll,
			PowerMW:      rec.PowerMW,
			TemperatureK: rec.TemperatureK,
			AreaKM2:      rec.AreaKM2,
			Mask:         rec.Mask,
		})
	}
	return out, nil
}
