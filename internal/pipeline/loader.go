package pipeline

import (
	"go.uber.org/zap"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/raster"
)

// RunLoader drains paths from `from`, decodes each granule, clusters its
// fire pixels, and forwards the resulting *cluster.List on `to`. A decode
// failure produces a flagged ClusterList rather than dropping the path
// silently, so the writer (and the run's error log) can still account for
// it.
func RunLoader(from *Courier[string], to *Courier[*cluster.List], logger *zap.SugaredLogger) {
	from.RegisterReceiver()
	to.RegisterSender()
	defer from.DoneReceiving()
	defer to.DoneSending()

	if !from.WaitUntilReadyToReceive() || !to.WaitUntilReadyToSend() {
		return
	}

	for {
		path, ok := from.Receive()
		if !ok {
			return
		}

		list, err := loadOne(path)
		if err != nil {
			logger.Errorf("loader: %s: %v", path, err)
		}
		if !to.Send(list) {
			return
		}
	}
}

func loadOne(path string) (*cluster.List, error) {
	gr, err := raster.ParseFilename(path)
	if err != nil {
		return &cluster.List{Err: err.Error()}, err
	}

	r := &raster.GeostationaryRaster{}
	if err := r.Open(path); err != nil {
		return &cluster.List{
			Satellite: gr.Satellite, Sector: gr.Sector,
			ScanStart: gr.ScanStart, ScanEnd: gr.ScanEnd,
			Err: err.Error(),
		}, err
	}
	defer r.Close()

	pixels, err := r.ToSatPixels()
	if err != nil {
		return &cluster.List{
			Satellite: gr.Satellite, Sector: gr.Sector,
			ScanStart: gr.ScanStart, ScanEnd: gr.ScanEnd,
			Err: err.Error(),
		}, err
	}

	clusters, err := cluster.FromPixels(pixels)
	if err != nil {
		return &cluster.List{
			Satellite: gr.Satellite, Sector: gr.Sector,
			ScanStart: gr.ScanStart, ScanEnd: gr.ScanEnd,
			Err: err.Error(),
		}, err
	}

	return &cluster.List{
		Satellite: gr.Satellite, Sector: gr.Sector,
		ScanStart: gr.ScanStart, ScanEnd: gr.ScanEnd,
		Clusters: clusters,
	}, nil
}
