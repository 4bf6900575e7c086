package cluster

import (
	"bytes"
	"testing"
	"time"

	"github.com/rnleach/satfire/internal/geo"
)

func square(x0, y0, x1, y1, power float64) geo.SatPixel {
	return geo.SatPixel{
		UL:      geo.Coord{Lat: y1, Lon: x0},
		UR:      geo.Coord{Lat: y1, Lon: x1},
		LR:      geo.Coord{Lat: y0, Lon: x1},
		LL:      geo.Coord{Lat: y0, Lon: x0},
		PowerMW: power,
	}
}

func TestFromPixelsDropsZeroPower(t *testing.T) {
	pixels := []geo.SatPixel{
		square(0, 0, 1, 1, 0),
		square(5, 5, 6, 6, 0),
	}

	clusters, err := FromPixels(pixels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 0 {
		t.Errorf("expected 0 clusters from all-zero-power pixels, got %d", len(clusters))
	}
}

func TestFromPixelsSingleton(t *testing.T) {
	pixels := []geo.SatPixel{
		square(0, 0, 1, 1, 5),
		square(50, 50, 51, 51, 3),
	}

	clusters, err := FromPixels(pixels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 singleton clusters, got %d", len(clusters))
	}
	for _, c := range clusters {
		if c.PixelCount != 1 {
			t.Errorf("expected singleton cluster, got pixel count %d", c.PixelCount)
		}
	}
}

func TestFromPixelsAdjacentChain(t *testing.T) {
	// Three pixels in a row, each adjacent to the next, should form one
	// cluster even though the first and third don't touch directly.
	pixels := []geo.SatPixel{
		square(0, 0, 1, 1, 1),
		square(1, 0, 2, 1, 1),
		square(2, 0, 3, 1, 1),
	}

	clusters, err := FromPixels(pixels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected 1 chained cluster, got %d", len(clusters))
	}
	if clusters[0].PixelCount != 3 {
		t.Errorf("expected 3 member pixels, got %d", clusters[0].PixelCount)
	}
}

func TestFromPixelsPowerConservation(t *testing.T) {
	pixels := []geo.SatPixel{
		square(0, 0, 1, 1, 4),
		square(1, 0, 2, 1, 6),
	}

	clusters, err := FromPixels(pixels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].TotalPowerMW != 10 {
		t.Errorf("total power = %v, want 10 (sum of members)", clusters[0].TotalPowerMW)
	}
}

func TestFromPixelsIdempotent(t *testing.T) {
	pixels := []geo.SatPixel{
		square(0, 0, 1, 1, 1),
		square(1, 0, 2, 1, 1),
		square(10, 10, 11, 11, 2),
	}

	c1, err := FromPixels(pixels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c2, err := FromPixels(pixels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c1) != len(c2) {
		t.Fatalf("re-running clustering changed cluster count: %d vs %d", len(c1), len(c2))
	}
}

func TestStatsPrintNoClusters(t *testing.T) {
	s := NewStats()
	var buf bytes.Buffer
	s.Print(&buf)
	if buf.String() != "\nNo new clusters added to the database." {
		t.Errorf("unexpected empty-stats output: %q", buf.String())
	}
}

func TestStatsUpdateTracksBiggest(t *testing.T) {
	s := NewStats()

	small, _ := NewClusterFromPixels([]geo.SatPixel{square(0, 0, 1, 1, 2)})
	big, _ := NewClusterFromPixels([]geo.SatPixel{square(0, 0, 1, 1, 50)})

	now := time.Now()
	s.Update(SatelliteG16, SectorFullDisk, now, now, small)
	s.Update(SatelliteG17, SectorCONUS, now, now, big)

	if s.Biggest() != big {
		t.Error("expected biggest cluster to be the higher-power one")
	}
}

func TestListStatsUpdateTracksExtrema(t *testing.T) {
	ls := NewListStats()

	now := time.Now()
	low := &List{Satellite: SatelliteG16, Sector: SectorFullDisk, ScanStart: now, ScanEnd: now, Clusters: nil}
	c, _ := NewClusterFromPixels([]geo.SatPixel{square(0, 0, 1, 1, 5)})
	high := &List{Satellite: SatelliteG17, Sector: SectorCONUS, ScanStart: now, ScanEnd: now, Clusters: []*Cluster{c, c}}

	ls.Update(low)
	ls.Update(high)

	if ls.maxNumClusters != 2 {
		t.Errorf("maxNumClusters = %d, want 2", ls.maxNumClusters)
	}
	if ls.minNumClusters != 0 {
		t.Errorf("minNumClusters = %d, want 0", ls.minNumClusters)
	}
}
