package raster

import (
	"testing"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
)

func TestParseFilenameExtractsProvenance(t *testing.T) {
	name := "OR_ABI-L2-FDCF-M6_G16_s20202381512345_e20202381515018_c20202381515100.nc"

	g, err := ParseFilename(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Satellite != cluster.SatelliteG16 {
		t.Errorf("satellite = %v, want G16", g.Satellite)
	}
	if g.Sector != cluster.SectorFullDisk {
		t.Errorf("sector = %v, want FullDisk", g.Sector)
	}
	if g.ScanStart.Year() != 2020 {
		t.Errorf("scan start year = %d, want 2020", g.ScanStart.Year())
	}
	if !g.ScanEnd.After(g.ScanStart) {
		t.Errorf("scan end %v should be after scan start %v", g.ScanEnd, g.ScanStart)
	}
}

func TestParseFilenameRejectsUnknownSatellite(t *testing.T) {
	if _, err := ParseFilename("OR_ABI-L2-FDCF-M6_G99_s20202381512345_e20202381515018_c0.nc"); err == nil {
		t.Error("expected error for unrecognized satellite token")
	}
}

func TestParseFilenameRejectsMissingTimeTokens(t *testing.T) {
	if _, err := ParseFilename("G16_ABI-L2-FDCF_notimehere.nc"); err == nil {
		t.Error("expected error for missing time tokens")
	}
}

func TestParseTimeTokenDayOfYearRollsIntoMonth(t *testing.T) {
	g, err := ParseFilename("G17_ABI-L2-FDCC_s20200010000000_e20200010005000_c0.nc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !g.ScanStart.Equal(want) {
		t.Errorf("scan start = %v, want %v", g.ScanStart, want)
	}
}
