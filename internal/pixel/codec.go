package pixel

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rnleach/satfire/internal/geo"
)

func float64bits(f float64) uint64     { return math.Float64bits(f) }
func float64frombits(b uint64) float64 { return math.Float64frombits(b) }

// recordSize is the fixed width, in bytes, of one serialized pixel record:
// four corners as lon,lat f64 pairs (4*2*8 = 64), power/temperature/area as
// f64 (3*8 = 24), the fire-mask code as i16 (2), and 6 bytes of reserved
// zero padding. 64 + 24 + 2 + 6 = 96.
//
// The total is written out as a literal; putRecord and getRecord must be
// kept in step with it by hand if a field is ever added or widened.
const recordSize = 96

const headerSize = 8 // u64 pixel count

// BufferSize returns the exact number of bytes MarshalBinary will produce
// for a list of this length.
func (l *List) BufferSize() int {
	return headerSize + recordSize*l.Len()
}

// MarshalBinary serializes the list to the little-endian, packed binary
// layout used as the store's `perimeter` BLOB.
func (l *List) MarshalBinary() ([]byte, error) {
	buf := make([]byte, l.BufferSize())
	binary.LittleEndian.PutUint64(buf[0:8], uint64(l.Len()))

	off := headerSize
	for _, p := range l.pixels {
		off = putRecord(buf, off, p)
	}
	return buf, nil
}

func putRecord(buf []byte, off int, p geo.SatPixel) int {
	putCoord := func(c geo.Coord) {
		binary.LittleEndian.PutUint64(buf[off:off+8], float64bits(c.Lon))
		off += 8
		binary.LittleEndian.PutUint64(buf[off:off+8], float64bits(c.Lat))
		off += 8
	}

	putCoord(p.UL)
	putCoord(p.UR)
	putCoord(p.LR)
	putCoord(p.LL)

	binary.LittleEndian.PutUint64(buf[off:off+8], float64bits(p.PowerMW))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:off+8], float64bits(p.TemperatureK))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:off+8], float64bits(p.AreaKM2))
	off += 8

	binary.LittleEndian.PutUint16(buf[off:off+2], uint16(p.Mask))
	off += 2

	for i := 0; i < 6; i++ {
		buf[off] = 0
		off++
	}

	return off
}

// UnmarshalBinary deserializes buf into the list, replacing any existing
// contents. It validates the declared count against buf's length and
// rejects undersize or trailing-garbage buffers.
func (l *List) UnmarshalBinary(buf []byte) error {
	if len(buf) < headerSize {
		return fmt.Errorf("pixel: buffer too short for header: %d bytes", len(buf))
	}

	count := binary.LittleEndian.Uint64(buf[0:8])
	want := headerSize + recordSize*int(count)
	if len(buf) != want {
		return fmt.Errorf("pixel: buffer length %d does not match expected %d for %d pixels", len(buf), want, count)
	}

	out := make([]geo.SatPixel, count)
	off := headerSize
	for i := range out {
		var p geo.SatPixel
		off = getRecord(buf, off, &p)
		out[i] = p
	}

	l.pixels = out
	return nil
}

func getRecord(buf []byte, off int, p *geo.SatPixel) int {
	getCoord := func() geo.Coord {
		lon := float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
		lat := float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
		off += 8
		return geo.Coord{Lat: lat, Lon: lon}
	}

	p.UL = getCoord()
	p.UR = getCoord()
	p.LR = getCoord()
	p.LL = getCoord()

	p.PowerMW = float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
	off += 8
	p.TemperatureK = float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
	off += 8
	p.AreaKM2 = float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
	off += 8

	p.Mask = geo.FireMaskCode(binary.LittleEndian.Uint16(buf[off : off+2]))
	off += 2

	off += 6 // reserved padding

	return off
}
