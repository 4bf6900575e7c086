package pipeline

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunPathFilterDropsNonNCFiles(t *testing.T) {
	s := openTestStore(t)

	from := NewCourier[string](context.Background(), 4)
	to := NewCourier[string](context.Background(), 4)

	from.RegisterSender()
	to.RegisterReceiver()

	go func() {
		defer from.DoneSending()
		from.Send("archive/G16/ABI-L2-FDCF/2020/150/10/readme.txt")
		from.Send("archive/G16/ABI-L2-FDCF/2020/150/10/OR_ABI-L2-FDCF-M6_G16_s20201501000000_e20201501005000_c0.nc")
	}()

	go func() {
		RunPathFilter(from, to, s)
	}()

	got := 0
	for {
		_, ok := to.Receive()
		if !ok {
			break
		}
		got++
	}
	to.DoneReceiving()

	if got != 1 {
		t.Errorf("filter passed %d paths through, want 1 (the .nc granule)", got)
	}
}

func TestRunPathFilterDropsMesoSector(t *testing.T) {
	s := openTestStore(t)

	from := NewCourier[string](context.Background(), 4)
	to := NewCourier[string](context.Background(), 4)
	from.RegisterSender()
	to.RegisterReceiver()

	go func() {
		defer from.DoneSending()
		from.Send("archive/G16/ABI-L2-FDCM1/2020/150/10/OR_ABI-L2-FDCM1-M6_G16_s20201501000000_e20201501005000_c0.nc")
	}()

	go RunPathFilter(from, to, s)

	_, ok := to.Receive()
	to.DoneReceiving()
	if ok {
		t.Error("expected Meso-sector granule to be dropped, but one was forwarded")
	}
}

func TestRunWriterPersistsAndAccumulatesStats(t *testing.T) {
	s := openTestStore(t)

	from := NewCourier[*cluster.List](context.Background(), 4)
	from.RegisterSender()

	c, err := cluster.NewClusterFromPixels([]geo.SatPixel{
		{UL: geo.Coord{Lat: 1, Lon: 0}, UR: geo.Coord{Lat: 1, Lon: 1}, LR: geo.Coord{Lat: 0, Lon: 1}, LL: geo.Coord{Lat: 0, Lon: 0}, PowerMW: 7},
	})
	if err != nil {
		t.Fatalf("NewClusterFromPixels: %v", err)
	}

	list := &cluster.List{
		Satellite: cluster.SatelliteG16,
		Sector:    cluster.SectorFullDisk,
		Clusters:  []*cluster.Cluster{c},
	}

	go func() {
		defer from.DoneSending()
		from.Send(list)
		from.Send(&cluster.List{Err: "boom"})
	}()

	result := RunWriter(from, s, zap.NewNop().Sugar())

	if result.Stats.Biggest() == nil {
		t.Error("expected writer to have recorded the successfully persisted cluster")
	}
}
