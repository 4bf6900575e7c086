package geo

import (
	"math"
	"testing"
)

func square(x0, y0, x1, y1 float64) SatPixel {
	return SatPixel{
		UL: Coord{Lat: y1, Lon: x0},
		UR: Coord{Lat: y1, Lon: x1},
		LR: Coord{Lat: y0, Lon: x1},
		LL: Coord{Lat: y0, Lon: x0},
	}
}

func TestCentroidIsInteriorToConvexQuad(t *testing.T) {
	p := square(0, 0, 1, 1)
	c, err := p.Centroid()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.ContainsCoord(c, 1e-9) {
		t.Errorf("centroid %+v not contained in pixel", c)
	}
}

func TestOverlapSelfAndApproxEqual(t *testing.T) {
	p := square(0, 0, 1, 1)
	if !p.Overlaps(p, 1e-9) {
		t.Error("a pixel should overlap itself")
	}
	if !p.ApproxEqual(p, 0) {
		t.Error("a pixel should be approx-equal to itself with eps=0")
	}
}

func TestOverlapSymmetric(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(0.5, 0, 1.5, 1)
	if a.Overlaps(b, 1e-9) != b.Overlaps(a, 1e-9) {
		t.Error("overlap must be symmetric")
	}
}

func TestNoBoundingBoxIntersectionMeansNoOverlap(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(10, 10, 11, 11)
	if a.Overlaps(b, 1e-9) {
		t.Error("disjoint bounding boxes must not overlap")
	}
}

func TestOverlappingSquaresScenario(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(0.5, 0, 1.5, 1)
	if !a.Overlaps(b, 1e-9) {
		t.Error("expected overlap = true")
	}
	if a.AdjacentTo(b, 1e-9) {
		t.Error("expected adjacent = false")
	}
}

func TestAdjacentNeighborScenario(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(1, 0, 2, 1)
	if a.Overlaps(b, 1e-9) {
		t.Error("expected overlap = false")
	}
	if !a.AdjacentTo(b, 1e-9) {
		t.Error("expected adjacent = true (shared edge)")
	}
}

func TestGreatCircleDistanceZero(t *testing.T) {
	d := GreatCircleDistanceKM(10, 20, 10, 20)
	if math.Abs(d) > 1e-9 {
		t.Errorf("distance from a point to itself should be 0, got %v", d)
	}
}

func TestGreatCircleDistanceQuarterCircumference(t *testing.T) {
	d := GreatCircleDistanceKM(0, 0, 0, 90)
	want := math.Pi / 2 * EarthRadiusKM
	if math.Abs(d-want) > 1.0 {
		t.Errorf("distance = %v, want %v +/- 1km", d, want)
	}
}

func TestGreatCircleDistanceAntipodalOnEquator(t *testing.T) {
	d := GreatCircleDistanceKM(0, 0, 0, 180)
	want := math.Pi * EarthRadiusKM
	if math.Abs(d-want) > 1.0 {
		t.Errorf("distance = %v, want %v +/- 1km", d, want)
	}
}

func TestGreatCircleDistanceEquatorQuarter(t *testing.T) {
	// Scenario from spec: (0,0) to (0,90) ~= 10007.543 km +/- 1km
	d := GreatCircleDistanceKM(0, 0, 0, 90)
	if math.Abs(d-10007.543) > 1.0 {
		t.Errorf("distance = %v, want ~10007.543km", d)
	}
}
