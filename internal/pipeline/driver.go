package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/store"
)

// Fan-out widths: one walker (directory traversal is inherently serial),
// four filters and four loaders (per-granule I/O and decode/cluster work
// parallelizes well), and a single writer (sole owner of the store's
// write path, so no locking is needed around it).
const (
	numFilters = 4
	numLoaders = 4
)

// courierCapacity is the bounded buffer size for every stage-to-stage
// courier, chosen to keep a handful of in-flight granules without letting
// a slow downstream stage stall the walker indefinitely.
const courierCapacity = 64

// Options configures one run of the ingestion pipeline.
type Options struct {
	ArchiveRoot string
	OnlyNew     bool
}

// Run wires directory_walker -> path_filter x4 -> loader x4 -> writer and
// blocks until every stage has finished, using golang.org/x/sync/errgroup
// as the idiomatic Go substitute for the original's raw
// pthread_create/pthread_join, following the context.Context +
// *sync.WaitGroup pattern
// _examples/chrissnell-remoteweather/internal/managers threads through
// every long-running component. logger may be nil, in which case log
// output is discarded.
//
// The errgroup's derived context is handed to every courier the stages
// share, not to the stage functions directly: if any stage returns a
// non-nil error, that context is canceled, and any sibling stage currently
// parked in a courier's WaitUntilReadyTo*, Send, or Receive call unblocks
// immediately rather than waiting on a producer or consumer that is never
// coming.
func Run(ctx context.Context, logger *zap.SugaredLogger, s *store.Store, opts Options) (*WriterResult, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	snapshot, err := loadSnapshot(s, opts.OnlyNew, logger)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	toFilter := NewCourier[string](gctx, courierCapacity)
	toLoader := NewCourier[string](gctx, courierCapacity)
	toWriter := NewCourier[*cluster.List](gctx, courierCapacity)

	g.Go(func() error {
		return WalkArchive(opts.ArchiveRoot, snapshot, toFilter)
	})

	for i := 0; i < numFilters; i++ {
		g.Go(func() error {
			RunPathFilter(toFilter, toLoader, s)
			return nil
		})
	}

	for i := 0; i < numLoaders; i++ {
		g.Go(func() error {
			RunLoader(toLoader, toWriter, logger)
			return nil
		})
	}

	var result *WriterResult
	g.Go(func() error {
		result = RunWriter(toWriter, s, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func loadSnapshot(s *store.Store, onlyNew bool, logger *zap.SugaredLogger) (mostRecentSnapshot, error) {
	if !onlyNew {
		return nil, nil
	}

	snapshot := make(mostRecentSnapshot)
	for _, sat := range []cluster.Satellite{cluster.SatelliteG16, cluster.SatelliteG17} {
		for _, sector := range []cluster.Sector{cluster.SectorFullDisk, cluster.SectorCONUS, cluster.SectorMeso1, cluster.SectorMeso2} {
			ts, err := s.NewestScanStart(sat, sector)
			if err != nil {
				return nil, err
			}
			snapshot[snapshotKey(sat, sector)] = ts
			logger.Debugf("latest %s %s %s", sat, sector, ts.Format(time.RFC3339))
		}
	}
	return snapshot, nil
}
