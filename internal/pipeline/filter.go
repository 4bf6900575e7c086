package pipeline

import (
	"path/filepath"

	"github.com/rnleach/satfire/internal/raster"
	"github.com/rnleach/satfire/internal/store"
)

// RunPathFilter drains paths from `from`, dropping anything that isn't a
// `.nc` file with a recognized non-Meso satellite/sector, or that the
// store already has a matching granule for, and forwards every surviving
// path on `to`. Mirrors findfire.c's skip_path / cluster_list_loader
// filter stage.
func RunPathFilter(from *Courier[string], to *Courier[string], s *store.Store) {
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

		if filepath.Ext(path) != raster.Extension {
			continue
		}

		gr, err := raster.ParseFilename(path)
		if err != nil {
			continue
		}
		if gr.Sector.IsMeso() {
			continue
		}

		if s != nil {
			count, err := s.IsPresent(gr.Satellite, gr.Sector, gr.ScanStart, gr.ScanEnd)
			if err == nil && count > 0 {
				continue
			}
		}

		if !to.Send(path) {
			return
		}
	}
}
