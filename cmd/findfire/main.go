// Command findfire walks a satellite data archive, clusters the fire
// pixels in every GOES FDC granule it finds, and records the clusters in
// a cluster database, following
// _examples/original_source/mains/findfire.c.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/config"
	"github.com/rnleach/satfire/internal/log"
	"github.com/rnleach/satfire/internal/pipeline"
	"github.com/rnleach/satfire/internal/store"
)

func main() {
	config.ForceUTC()

	cfg, err := config.LoadFindFire(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := log.New(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Verbose {
		logger.Infof("database: %s", cfg.DatabasePath)
		logger.Infof("archive: %s", cfg.ArchiveRoot)
		logger.Infof("only new: %v", cfg.OnlyNew)
	}

	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("opening cluster database: %v", err)
		os.Exit(1)
	}
	defer s.Close()

	result, err := pipeline.Run(context.Background(), logger, s, pipeline.Options{
		ArchiveRoot: cfg.ArchiveRoot,
		OnlyNew:     cfg.OnlyNew,
	})
	if err != nil {
		logger.Errorf("pipeline run: %v", err)
		os.Exit(1)
	}

	result.Stats.Print(os.Stdout)
	result.ListStats.Print(os.Stdout)

	if biggest := result.Stats.Biggest(); biggest != nil {
		if err := writeBiggestClusterKML(cfg.DatabasePath, biggest); err != nil {
			logger.Warnf("writing KML sidecar: %v", err)
		}
	}
}

func writeBiggestClusterKML(dbPath string, biggest *cluster.Cluster) error {
	f, err := os.Create(dbPath + ".kml")
	if err != nil {
		return err
	}
	defer f.Close()

	return biggest.Pixels.WriteKML(f)
}
