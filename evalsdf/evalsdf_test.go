package evalsdf

import (
	"math"
	"testing"

	"github.com/chazu/xtreecad/xtree"
	"github.com/deadsy/sdfx/sdf"
)

func mustSphere(t *testing.T, r float64) sdf.SDF3 {
	t.Helper()
	s, err := sdf.Sphere3D(r)
	if err != nil {
		t.Fatalf("sdf.Sphere3D: %v", err)
	}
	return s
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	s := mustSphere(t, 1)
	if _, err := New(s, 0); err == nil {
		t.Fatal("New with capacity=0 should fail")
	}
}

func TestBoundingBoxRegion3D(t *testing.T) {
	s := mustSphere(t, 2)
	r := BoundingBoxRegion(s, 3)
	if r.Dim != 3 {
		t.Fatalf("Dim = %d, want 3", r.Dim)
	}
	for i, lo := range r.Lower {
		if lo >= 0 {
			t.Errorf("Lower[%d] = %v, want negative for a sphere centered at origin", i, lo)
		}
	}
	for i, hi := range r.Upper {
		if hi <= 0 {
			t.Errorf("Upper[%d] = %v, want positive for a sphere centered at origin", i, hi)
		}
	}
}

func TestEvalIntervalInsideSphere(t *testing.T) {
	s := mustSphere(t, 2)
	e, err := New(s, xtree.MaxGridSamples)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	iv := e.EvalInterval([3]float64{-0.1, -0.1, -0.1}, [3]float64{0.1, 0.1, 0.1})
	if iv.Hi >= 0 {
		t.Errorf("interval near origin inside r=2 sphere has Hi=%v, want < 0", iv.Hi)
	}
}

func TestValuesAndDerivsOnSphere(t *testing.T) {
	s := mustSphere(t, 1)
	e, err := New(s, xtree.MaxGridSamples)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Set([3]float64{1, 0, 0}, 0)

	vals := e.Values(1)
	if math.Abs(float64(vals[0])) > 1e-3 {
		t.Errorf("value at surface point = %v, want near 0", vals[0])
	}

	d := e.Derivs(1)
	// gradient of |p|-r at (1,0,0) should point outward along x.
	if d.Dx[0] < 0.9 || d.Dx[0] > 1.1 {
		t.Errorf("Dx = %v, want near 1", d.Dx[0])
	}
	if math.Abs(float64(d.Dy[0])) > 0.1 || math.Abs(float64(d.Dz[0])) > 0.1 {
		t.Errorf("Dy,Dz = %v,%v, want near 0", d.Dy[0], d.Dz[0])
	}
}

func TestPushPopPanicsOnImbalance(t *testing.T) {
	s := mustSphere(t, 1)
	e, err := New(s, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Pop without Push should panic")
		}
	}()
	e.Pop()
}

func TestBuildXTreeFromSDF(t *testing.T) {
	s := mustSphere(t, 1)
	e, err := New(s, xtree.MaxGridSamples)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	region := BoundingBoxRegion(s, 3)
	root, err := xtree.New(e, region, xtree.DefaultOptions())
	if err != nil {
		t.Fatalf("xtree.New: %v", err)
	}
	if root.Type != xtree.Ambiguous {
		t.Fatalf("root.Type = %v, want AMBIGUOUS", root.Type)
	}
}
