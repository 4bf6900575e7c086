package pipeline

import (
	"go.uber.org/zap"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/store"
)

// WriterResult is what RunWriter accumulates and hands back to the driver
// once the pipeline has drained, so the shutdown report in cmd/findfire
// can be printed after every goroutine has exited.
type WriterResult struct {
	Stats     *cluster.Stats
	ListStats *cluster.ListStats
}

// RunWriter drains ClusterLists from `from` and appends every one that
// decoded successfully to s, folding each into the run's statistics.
// Flagged lists (decode failures) are logged and dropped without ever
// touching the store, so one bad granule can't abort an otherwise healthy
// run.
func RunWriter(from *Courier[*cluster.List], s *store.Store, logger *zap.SugaredLogger) *WriterResult {
	from.RegisterReceiver()
	defer from.DoneReceiving()

	result := &WriterResult{
		Stats:     cluster.NewStats(),
		ListStats: cluster.NewListStats(),
	}

	if !from.WaitUntilReadyToReceive() {
		return result
	}

	for {
		list, ok := from.Receive()
		if !ok {
			return result
		}

		if list.Failed() {
			logger.Warnf("writer: dropping flagged granule (%s/%s): %s", list.Satellite, list.Sector, list.Err)
			continue
		}

		if len(list.Clusters) == 0 {
			continue
		}

		if err := s.AddClusterList(list); err != nil {
			logger.Errorf("writer: persisting granule (%s/%s): %v", list.Satellite, list.Sector, err)
			continue
		}

		for _, c := range list.Clusters {
			result.Stats.Update(list.Satellite, list.Sector, list.ScanStart, list.ScanEnd, c)
		}
		result.ListStats.Update(list)
	}
}
