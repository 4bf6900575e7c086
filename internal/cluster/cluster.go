// Package cluster implements the connected-components grouping of fire
// pixels into clusters, the ClusterList produced per granule, and the
// run-summary statistics the original ingestion tool prints at shutdown.
//
// Grounded in _examples/original_source/src/cluster.rs for the Cluster
// struct's aggregate shape (the clustering algorithm itself groups pixels
// by connected components over an overlap/adjacency predicate via
// union-find, rather than the original's approach) and in
// _examples/original_source/mains/findfire.c for the stats accumulators.
package cluster

import (
	"fmt"
	"time"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/pixel"
)

// Cluster is a group of connected fire pixels plus cached aggregates.
type Cluster struct {
	Pixels *pixel.List

	TotalPowerMW    float64
	MaxTemperatureK float64
	PixelCount      int
	Centroid        geo.Coord
	BoundingBox     geo.BoundingBox
}

// NewClusterFromPixels builds a Cluster from a slice of member pixels,
// computing and caching its aggregates. It returns an error if pixels is
// empty.
func NewClusterFromPixels(pixels []geo.SatPixel) (*Cluster, error) {
	if len(pixels) == 0 {
		return nil, fmt.Errorf("cluster: cannot build a cluster from zero pixels")
	}

	list := pixel.NewWithCapacity(len(pixels))
	for _, p := range pixels {
		list.Append(p)
	}

	centroid, err := list.Centroid()
	if err != nil {
		return nil, fmt.Errorf("cluster: computing centroid: %w", err)
	}

	box, err := list.BoundingBox()
	if err != nil {
		return nil, fmt.Errorf("cluster: computing bounding box: %w", err)
	}

	return &Cluster{
		Pixels:          list,
		TotalPowerMW:    list.TotalPowerMW(),
		MaxTemperatureK: list.MaxTemperatureK(),
		PixelCount:      list.Len(),
		Centroid:        centroid,
		BoundingBox:     box,
	}, nil
}

// List is the set of Clusters produced from one granule, tagged with the
// granule's provenance. Err, when non-empty, marks a granule the raster
// loader could not decode; downstream stages must drop such a list without
// touching the store.
type List struct {
	Satellite Satellite
	Sector    Sector
	ScanStart time.Time
	ScanEnd   time.Time

	Clusters []*Cluster

	Err string
}

// MidPointTime is the timestamp stored alongside each cluster row: the
// midpoint between scan start and scan end.
func (l *List) MidPointTime() time.Time {
	d := l.ScanEnd.Sub(l.ScanStart)
	return l.ScanStart.Add(d / 2)
}

// TotalPowerMW sums the total power of every cluster in the list.
func (l *List) TotalPowerMW() float64 {
	var total float64
	for _, c := range l.Clusters {
		total += c.TotalPowerMW
	}
	return total
}

// Len returns the number of clusters in the list.
func (l *List) Len() int {
	return len(l.Clusters)
}

// Failed reports whether this list carries a decode-error marker.
func (l *List) Failed() bool {
	return l.Err != ""
}
