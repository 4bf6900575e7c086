package cluster

import (
	"github.com/rnleach/satfire/internal/geo"
)

// unionFind is a standard disjoint-set structure over indices [0, n).
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: make([]int, n)}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// eps is the closeness tolerance, in decimal degrees, used for every
// overlap/adjacency predicate during clustering.
const eps = 1.0e-6

// FromPixels groups pixels into clusters by connected components over the
// pixels-overlap / pixels-adjacent predicate: pixels with power <= 0 MW
// are discarded first, then every ordered pair i<j is unioned when
// geo.SatPixel.Overlaps or geo.SatPixel.AdjacentTo reports true. This is
// an O(|P|²) pairwise comparison; no spatial-index library exists anywhere
// in the retrieval pack to replace it with, so none is used.
func FromPixels(pixels []geo.SatPixel) ([]*Cluster, error) {
	live := make([]geo.SatPixel, 0, len(pixels))
	for _, p := range pixels {
		if p.PowerMW > 0 {
			live = append(live, p)
		}
	}

	if len(live) == 0 {
		return nil, nil
	}

	uf := newUnionFind(len(live))
	for i := 0; i < len(live); i++ {
		for j := i + 1; j < len(live); j++ {
			if live[i].Overlaps(live[j], eps) || live[i].AdjacentTo(live[j], eps) {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int][]geo.SatPixel)
	for i, p := range live {
		root := uf.find(i)
		groups[root] = append(groups[root], p)
	}

	clusters := make([]*Cluster, 0, len(groups))
	for _, members := range groups {
		c, err := NewClusterFromPixels(members)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, c)
	}

	return clusters, nil
}
