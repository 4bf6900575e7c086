package pipeline

import (
	"testing"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
)

func TestShouldPruneDirOlderYear(t *testing.T) {
	snapshot := mostRecentSnapshot{
		snapshotKey(cluster.SatelliteG16, cluster.SectorFullDisk): time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	path := "archive/G16/ABI-L2-FDCF/2020/150/10"
	if !shouldPruneDir(path, snapshot) {
		t.Errorf("expected %q (older year) to be pruned", path)
	}
}

func TestShouldPruneDirNewerYearNotPruned(t *testing.T) {
	snapshot := mostRecentSnapshot{
		snapshotKey(cluster.SatelliteG16, cluster.SectorFullDisk): time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	path := "archive/G16/ABI-L2-FDCF/2021/150/10"
	if shouldPruneDir(path, snapshot) {
		t.Errorf("expected %q (newer year) not to be pruned", path)
	}
}

func TestShouldPruneDirUndeterminedDepthNeverPruned(t *testing.T) {
	snapshot := mostRecentSnapshot{
		snapshotKey(cluster.SatelliteG16, cluster.SectorFullDisk): time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	if shouldPruneDir("archive/G16/ABI-L2-FDCF", snapshot) {
		t.Error("a path too shallow to contain a year should never be pruned")
	}
}

func TestShouldPruneDirUnrecognizedSatelliteNeverPruned(t *testing.T) {
	snapshot := mostRecentSnapshot{}
	if shouldPruneDir("archive/unknown/2020/100/05", snapshot) {
		t.Error("a path with no recognized satellite/sector token should never be pruned")
	}
}
