// Command connectfire is a minimal external reader of the cluster
// database that findfire produces, printing every cluster's centroid,
// power, and max temperature, one satellite and sector at a time and in
// scan order within each, following
// _examples/original_source/mains/connectfire.c. Temporally connecting
// clusters into fire time series (the "fires"/"associations" tables) is
// left to a future consumer, matching the original's stated intent.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/config"
	"github.com/rnleach/satfire/internal/store"
)

var worldBox = struct{ MinLon, MaxLon, MinLat, MaxLat float64 }{
	MinLon: -180.0, MaxLon: 180.0, MinLat: -90.0, MaxLat: 90.0,
}

func main() {
	config.ForceUTC()

	cfg, err := config.LoadConnectFire(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Verbose {
		fmt.Printf("  Database: %s\n", cfg.DatabasePath)
	}

	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening cluster database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	start := time.Unix(0, 0).UTC()
	end := timeNow()

	satellites := []cluster.Satellite{cluster.SatelliteG16, cluster.SatelliteG17}
	sectors := []cluster.Sector{cluster.SectorFullDisk, cluster.SectorCONUS}

	for _, sat := range satellites {
		var currentTimeStep time.Time

		for _, sector := range sectors {
			cur, err := s.QueryRows(sat, sector, start, end, worldBox)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error querying rows for %s/%s, moving on: %v\n", sat, sector, err)
				continue
			}

			if err := printRows(cur, sat, sector, &currentTimeStep); err != nil {
				fmt.Fprintf(os.Stderr, "error reading rows, quitting: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

func printRows(cur *store.Cursor, sat cluster.Satellite, sector cluster.Sector, currentTimeStep *time.Time) error {
	defer cur.Close()

	for {
		row, err := cur.Next()
		if err != nil {
			return err
		}
		if row == nil {
			return nil
		}

		if !row.MidPointTime.Equal(*currentTimeStep) {
			fmt.Println()
			*currentTimeStep = row.MidPointTime
		}

		fmt.Printf("lat: %10.6f lon: %11.6f power: %6.0f max_temperature: %3.0f from %s %s %s\n",
			row.Lat, row.Lon, row.PowerMW, row.MaxTemperatureK,
			sat, sector, row.MidPointTime.Format(time.ANSIC))
	}
}

func timeNow() time.Time {
	return time.Now().UTC()
}
