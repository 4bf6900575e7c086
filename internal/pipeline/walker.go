package pipeline

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
)

// mostRecentSnapshot is the "most recent scan start per (satellite,
// sector)" table loaded once at pipeline start when --new is set.
type mostRecentSnapshot map[[2]int]time.Time

func snapshotKey(sat cluster.Satellite, sector cluster.Sector) [2]int {
	return [2]int{int(sat), int(sector)}
}

// shouldPruneDir ports _examples/original_source/mains/findfire.c's
// standard_dir_filter: walks the path's '/'-separated numeric tokens
// looking for year, day-of-year, and hour components (in that order,
// following the archive's SAT/SECTOR/YEAR/DOY/HOUR/file convention), and
// returns true (prune, don't recurse) only once it has found a token
// unambiguously older than the snapshot's most-recent mark for this
// (sat, sector). An unrecognized satellite/sector, or a path not yet deep
// enough to contain year/doy/hour, is never pruned.
func shouldPruneDir(path string, snapshot mostRecentSnapshot) bool {
	sat := cluster.SatelliteFromPath(path)
	sector := cluster.SectorFromPath(path)
	if sat == cluster.SatelliteNone || sector == cluster.SectorNone {
		return false
	}

	mostRecent, ok := snapshot[snapshotKey(sat, sector)]
	if !ok {
		return false
	}
	mrYear, mrDOY, mrHour := mostRecent.Year(), mostRecent.YearDay(), mostRecent.Hour()

	year, doy, hour := -1, -1, -1
	for _, tok := range strings.Split(path, "/") {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		switch {
		case n > 2000:
			year = n
		case n > 0 && doy == -1:
			doy = n
		case n >= 0 && doy != -1 && hour == -1:
			hour = n
		}
	}

	switch {
	case year == -1:
		return false
	case year < mrYear:
		return true
	case year > mrYear:
		return false
	case doy == -1:
		return false
	case doy < mrDOY:
		return true
	case doy > mrDOY:
		return false
	case hour == -1:
		return false
	case hour < mrHour:
		return true
	default:
		return false
	}
}

// WalkArchive performs a depth-first traversal of root, sending every
// regular file path on `to`. When snapshot is non-nil, subtrees that
// shouldPruneDir identifies as entirely older than the recorded watermark
// are skipped, so a --new run never descends into a day that's already
// fully ingested. Undetermined-depth directories always recurse.
func WalkArchive(root string, snapshot mostRecentSnapshot, to *Courier[string]) error {
	to.RegisterSender()
	defer to.DoneSending()

	if !to.WaitUntilReadyToSend() {
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && snapshot != nil && shouldPruneDir(path, snapshot) {
				return filepath.SkipDir
			}
			return nil
		}

		if !to.Send(path) {
			return filepath.SkipAll
		}
		return nil
	})
}
