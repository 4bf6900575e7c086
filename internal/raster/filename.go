// Package raster decodes GOES FDC granule files into geo-referenced
// SatPixel footprints. Filename parsing follows
// _examples/original_source/mains/findfire.c's
// satfire_satellite_string_contains_satellite /
// satfire_sector_string_contains_sector; the binary decode and fixed-grid
// projection are this package's own, since no NetCDF/HDF5 library exists
// anywhere in the retrieval pack.
package raster

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
)

// Extension is the expected self-describing-raster file extension.
const Extension = ".nc"

var timeTokenPattern = regexp.MustCompile(`[se](\d{4})(\d{3})(\d{2})(\d{2})(\d{2})(\d)`)

// Granule is the provenance metadata parsed from a granule's filename.
type Granule struct {
	Satellite cluster.Satellite
	Sector    cluster.Sector
	ScanStart time.Time
	ScanEnd   time.Time
}

// ParseFilename extracts satellite, sector, and scan start/end from path
// per the archive's filename convention:
// `s<YYYYDOYhhmmssf>`/`e<YYYYDOYhhmmssf>` time tokens, parsed as UTC.
func ParseFilename(path string) (Granule, error) {
	base := filepath.Base(path)

	sat := cluster.SatelliteFromPath(base)
	if sat == cluster.SatelliteNone {
		return Granule{}, fmt.Errorf("raster: no recognized satellite token in %q", base)
	}

	sector := cluster.SectorFromPath(base)
	if sector == cluster.SectorNone {
		return Granule{}, fmt.Errorf("raster: no recognized sector token in %q", base)
	}

	matches := timeTokenPattern.FindAllStringSubmatch(base, -1)
	if len(matches) < 2 {
		return Granule{}, fmt.Errorf("raster: expected start and end time tokens in %q", base)
	}

	start, err := parseTimeToken(matches[0])
	if err != nil {
		return Granule{}, fmt.Errorf("raster: parsing start time in %q: %w", base, err)
	}
	end, err := parseTimeToken(matches[1])
	if err != nil {
		return Granule{}, fmt.Errorf("raster: parsing end time in %q: %w", base, err)
	}

	return Granule{Satellite: sat, Sector: sector, ScanStart: start, ScanEnd: end}, nil
}

func parseTimeToken(m []string) (time.Time, error) {
	var year, doy, hour, minute, sec, tenths int
	if _, err := fmt.Sscanf(m[1], "%d", &year); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(m[2], "%d", &doy); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(m[3], "%d", &hour); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(m[4], "%d", &minute); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(m[5], "%d", &sec); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(m[6], "%d", &tenths); err != nil {
		return time.Time{}, err
	}

	t := time.Date(year, time.January, 1, hour, minute, sec, tenths*100_000_000, time.UTC)
	return t.AddDate(0, 0, doy-1), nil
}
