package cluster

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats accumulates the "most powerful cluster" run summary, following
// _examples/original_source/mains/findfire.c's struct ClusterStats.
type Stats struct {
	biggest       *Cluster
	biggestSat    Satellite
	biggestSector Sector
	biggestStart  time.Time
	biggestEnd    time.Time

	numClusters    uint
	numPowerLT1MW  uint
	numPowerLT10MW uint
}

// NewStats returns a zeroed Stats accumulator.
func NewStats() *Stats {
	return &Stats{}
}

// Update folds one cluster from one granule into the accumulator.
func (s *Stats) Update(sat Satellite, sector Sector, start, end time.Time, c *Cluster) {
	if s.biggest == nil || c.TotalPowerMW > s.biggest.TotalPowerMW {
		s.biggest = c
		s.biggestSat = sat
		s.biggestSector = sector
		s.biggestStart = start
		s.biggestEnd = end
	}

	if c.TotalPowerMW < 1.0 {
		s.numPowerLT1MW++
	}
	if c.TotalPowerMW < 10.0 {
		s.numPowerLT10MW++
	}
	s.numClusters++
}

// Biggest returns the most powerful cluster observed so far, or nil if
// Update has never been called.
func (s *Stats) Biggest() *Cluster {
	return s.biggest
}

// BiggestProvenance returns the satellite, sector, and scan window the
// biggest cluster was observed in.
func (s *Stats) BiggestProvenance() (Satellite, Sector, time.Time, time.Time) {
	return s.biggestSat, s.biggestSector, s.biggestStart, s.biggestEnd
}

// Print writes the "Individual Cluster Stats" report to w, matching
// findfire.c's cluster_stats_print format.
func (s *Stats) Print(w io.Writer) {
	if s.numClusters == 0 {
		fmt.Fprint(w, "\nNo new clusters added to the database.")
		return
	}

	c := s.biggest.Centroid

	fmt.Fprintf(w, "\nIndividual Cluster Stats\n\n"+
		"Most Powerful:\n"+
		"     satellite: %s\n"+
		"        sector: %s\n"+
		"         start: %s\n"+
		"           end: %s\n"+
		"           Lat: %10.6f\n"+
		"           Lon: %11.6f\n"+
		"         Count: %2d\n"+
		"         Power: %s MW\n\n"+
		"        Counts:\n"+
		"         Total: %10s\n"+
		"  Power < 1 MW: %10s\n"+
		"    Pct < 1 MW: %9.0f%%\n"+
		" Power < 10 MW: %10s\n"+
		"   Pct < 10 MW: %9.0f%%\n",
		s.biggestSat, s.biggestSector,
		s.biggestStart.UTC().Format(time.ANSIC), s.biggestEnd.UTC().Format(time.ANSIC),
		c.Lat, c.Lon,
		s.biggest.PixelCount, humanize.Commaf(math.Round(s.biggest.TotalPowerMW)),
		humanize.Comma(int64(s.numClusters)),
		humanize.Comma(int64(s.numPowerLT1MW)),
		float64(s.numPowerLT1MW)*100/float64(s.numClusters),
		humanize.Comma(int64(s.numPowerLT10MW)),
		float64(s.numPowerLT10MW)*100/float64(s.numClusters))
}

// ListStats accumulates the per-granule min/max report, following
// findfire.c's struct ClusterListStats.
type ListStats struct {
	minNumClustersSat    Satellite
	minNumClustersSector Sector
	minNumClusters       uint
	minNumClustersStart  time.Time
	minNumClustersEnd    time.Time

	maxNumClustersSat    Satellite
	maxNumClustersSector Sector
	maxNumClusters       uint
	maxNumClustersStart  time.Time
	maxNumClustersEnd    time.Time

	maxTotalPowerSat    Satellite
	maxTotalPowerSector Sector
	maxTotalPower       float64
	maxTotalPowerStart  time.Time
	maxTotalPowerEnd    time.Time

	minTotalPowerSat    Satellite
	minTotalPowerSector Sector
	minTotalPower       float64
	minTotalPowerStart  time.Time
	minTotalPowerEnd    time.Time
}

// NewListStats returns a ListStats accumulator seeded so that the first
// Update always establishes the min extrema. The max extrema start at zero,
// so a granule only becomes the max once its count or power exceeds zero.
func NewListStats() *ListStats {
	return &ListStats{
		minNumClusters: math.MaxUint32,
		minTotalPower:  math.Inf(1),
	}
}

// Update folds one granule's ClusterList into the accumulator.
func (ls *ListStats) Update(l *List) {
	numClust := uint(l.Len())
	totalPower := l.TotalPowerMW()

	if numClust > ls.maxNumClusters {
		ls.maxNumClusters = numClust
		ls.maxNumClustersSat = l.Satellite
		ls.maxNumClustersSector = l.Sector
		ls.maxNumClustersStart = l.ScanStart
		ls.maxNumClustersEnd = l.ScanEnd
	}

	if numClust < ls.minNumClusters {
		ls.minNumClusters = numClust
		ls.minNumClustersSat = l.Satellite
		ls.minNumClustersSector = l.Sector
		ls.minNumClustersStart = l.ScanStart
		ls.minNumClustersEnd = l.ScanEnd
	}

	if totalPower > ls.maxTotalPower {
		ls.maxTotalPower = totalPower
		ls.maxTotalPowerSat = l.Satellite
		ls.maxTotalPowerSector = l.Sector
		ls.maxTotalPowerStart = l.ScanStart
		ls.maxTotalPowerEnd = l.ScanEnd
	}

	if totalPower < ls.minTotalPower {
		ls.minTotalPower = totalPower
		ls.minTotalPowerSat = l.Satellite
		ls.minTotalPowerSector = l.Sector
		ls.minTotalPowerStart = l.ScanStart
		ls.minTotalPowerEnd = l.ScanEnd
	}
}

// Print writes the per-granule min/max report to w, matching findfire.c's
// cluster_list_stats_print format. Max power is reported in GW (the MW
// total divided by 1000); min power is reported in MW.
func (ls *ListStats) Print(w io.Writer) {
	fmt.Fprintf(w, "\n\nMax Image Power Stats:\n"+
		"            satellite: %s\n"+
		"               sector: %s\n"+
		"                start: %s\n"+
		"                  end: %s\n"+
		"      Max Total Power: %s GW\n\n",
		ls.maxTotalPowerSat, ls.maxTotalPowerSector,
		ls.maxTotalPowerStart.UTC().Format(time.ANSIC), ls.maxTotalPowerEnd.UTC().Format(time.ANSIC),
		humanize.Commaf(math.Round(ls.maxTotalPower/1000.0)))

	fmt.Fprintf(w, "\n\nMin Image Power Stats:\n"+
		"            satellite: %s\n"+
		"               sector: %s\n"+
		"                start: %s\n"+
		"                  end: %s\n"+
		"      Min Total Power: %s MW\n\n",
		ls.minTotalPowerSat, ls.minTotalPowerSector,
		ls.minTotalPowerStart.UTC().Format(time.ANSIC), ls.minTotalPowerEnd.UTC().Format(time.ANSIC),
		humanize.Commaf(math.Round(ls.minTotalPower)))

	fmt.Fprintf(w, "\n\nMax Image Number Clusters:\n"+
		"                satellite: %s\n"+
		"                   sector: %s\n"+
		"                    start: %s\n"+
		"                      end: %s\n"+
		"           Total Clusters: %s\n\n",
		ls.maxNumClustersSat, ls.maxNumClustersSector,
		ls.maxNumClustersStart.UTC().Format(time.ANSIC), ls.maxNumClustersEnd.UTC().Format(time.ANSIC),
		humanize.Comma(int64(ls.maxNumClusters)))

	fmt.Fprintf(w, "\n\nMin Image Number Clusters:\n"+
		"                satellite: %s\n"+
		"                   sector: %s\n"+
		"                    start: %s\n"+
		"                      end: %s\n"+
		"           Total Clusters: %s\n\n",
		ls.minNumClustersSat, ls.minNumClustersSector,
		ls.minNumClustersStart.UTC().Format(time.ANSIC), ls.minNumClustersEnd.UTC().Format(time.ANSIC),
		humanize.Comma(int64(ls.minNumClusters)))
}
