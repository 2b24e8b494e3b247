package xtree

import "testing"

func TestRegionVolume(t *testing.T) {
	r := NewRegion(3, []float64{0, 0, 0}, []float64{2, 3, 4}, nil)
	if got, want := r.Volume(), 24.0; got != want {
		t.Errorf("Volume() = %v, want %v", got, want)
	}
}

func TestRegionSubdivide3D(t *testing.T) {
	r := NewRegion(3, []float64{-1, -1, -1}, []float64{1, 1, 1}, nil)
	subs := r.Subdivide()
	if len(subs) != 8 {
		t.Fatalf("len(Subdivide()) = %d, want 8", len(subs))
	}
	for i, s := range subs {
		for k := 0; k < 3; k++ {
			wantUpperHalf := i&(1<<uint(k)) != 0
			if wantUpperHalf && s.Lower[k] != 0 {
				t.Errorf("child %d axis %d: Lower = %v, want 0 (upper half)", i, k, s.Lower[k])
			}
			if !wantUpperHalf && s.Upper[k] != 0 {
				t.Errorf("child %d axis %d: Upper = %v, want 0 (lower half)", i, k, s.Upper[k])
			}
		}
		if s.Volume() != 1.0 {
			t.Errorf("child %d: Volume() = %v, want 1.0", i, s.Volume())
		}
	}
}

func TestRegionSubdivide2D(t *testing.T) {
	r := NewRegion(2, []float64{0, 0}, []float64{2, 2}, []float64{5})
	subs := r.Subdivide()
	if len(subs) != 4 {
		t.Fatalf("len(Subdivide()) = %d, want 4", len(subs))
	}
	for _, s := range subs {
		if len(s.Perp) != 1 || s.Perp[0] != 5 {
			t.Errorf("child Perp = %v, want [5]", s.Perp)
		}
	}
}

func TestRegionCornerPos(t *testing.T) {
	r := NewRegion(2, []float64{0, 0}, []float64{1, 1}, []float64{0})
	want := map[int][2]float64{
		0: {0, 0},
		1: {1, 0},
		2: {0, 1},
		3: {1, 1},
	}
	for i, w := range want {
		p := r.CornerPos(i)
		if p[0] != w[0] || p[1] != w[1] {
			t.Errorf("CornerPos(%d) = %v, want %v", i, p, w)
		}
	}
}

func TestRegionLower3Upper3(t *testing.T) {
	r := NewRegion(2, []float64{1, 2}, []float64{3, 4}, []float64{9})
	if got, want := r.Lower3(), [3]float64{1, 2, 9}; got != want {
		t.Errorf("Lower3() = %v, want %v", got, want)
	}
	if got, want := r.Upper3(), [3]float64{3, 4, 9}; got != want {
		t.Errorf("Upper3() = %v, want %v", got, want)
	}
}
