// Package evalsdf adapts github.com/deadsy/sdfx's SDF3 representation
// into the xtree.Evaluator capability set, so the XTree mesher can be
// driven from real implicit solids (spheres, boxes, booleans,
// transforms) instead of a hand-rolled test field. This is the
// "production backend" variant the evaluator interface calls for.
package evalsdf

import (
	"fmt"
	"math"

	"github.com/chazu/xtreecad/xtree"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ xtree.Evaluator = (*Evaluator)(nil)

// gradientStep is the central-difference step used to estimate the
// gradient of an sdf.SDF3, which exposes only point evaluation.
const gradientStep = 1e-5

// Evaluator wraps an sdf.SDF3 as an xtree.Evaluator. It has no
// branch-specialization cache of its own (sdf.SDF3 evaluation is already
// cheap pure-function evaluation), so Push/Pop only track balance for
// debugging; Pop panics if it is called without a matching Push, the
// same defensive posture the teacher's ManifoldKernel finalizer takes
// toward misuse.
type Evaluator struct {
	solid sdf.SDF3

	slots     []v3.Vec
	pushDepth int
}

// New wraps solid as an xtree.Evaluator. capacity must be at least as
// large as any batch this evaluator will be asked to hold (see
// xtree.Options.EvaluatorCapacity / xtree.MaxGridSamples).
func New(solid sdf.SDF3, capacity int) (*Evaluator, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("evalsdf: capacity must be positive, got %d", capacity)
	}
	return &Evaluator{solid: solid, slots: make([]v3.Vec, capacity)}, nil
}

// BoundingBoxRegion builds an xtree.Region covering the solid's bounding
// box. dim must be 2 or 3; for dim=2, perp fixes the z coordinate at the
// box's z-center.
func BoundingBoxRegion(solid sdf.SDF3, dim int) xtree.Region {
	bb := solid.BoundingBox()
	switch dim {
	case 3:
		return xtree.NewRegion(3,
			[]float64{bb.Min.X, bb.Min.Y, bb.Min.Z},
			[]float64{bb.Max.X, bb.Max.Y, bb.Max.Z},
			nil)
	case 2:
		return xtree.NewRegion(2,
			[]float64{bb.Min.X, bb.Min.Y},
			[]float64{bb.Max.X, bb.Max.Y},
			[]float64{(bb.Min.Z + bb.Max.Z) / 2})
	default:
		panic(fmt.Sprintf("evalsdf: unsupported dimension %d", dim))
	}
}

func vecOf(p [3]float64) v3.Vec {
	return v3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

// EvalInterval returns a conservative enclosure of the field over the
// box, assuming the wrapped SDF is (approximately) 1-Lipschitz: for any
// two points p, q, |f(p)-f(q)| <= |p-q|. sdfx's SDF3 implementations are
// documented as approximate signed distance fields built to satisfy this
// bound closely, so centering on the box midpoint and widening by the
// half-diagonal is a safe (if not maximally tight) enclosure. This is a
// deliberate approximation, not true interval arithmetic over the SDF's
// expression tree — that lives in the excluded front-end evaluator, not
// this adapter.
func (e *Evaluator) EvalInterval(lo, hi [3]float64) xtree.Interval {
	center := v3.Vec{
		X: (lo[0] + hi[0]) / 2,
		Y: (lo[1] + hi[1]) / 2,
		Z: (lo[2] + hi[2]) / 2,
	}
	radius := center.Sub(vecOf(hi)).Length()
	v := e.solid.Evaluate(center)
	return xtree.Interval{Lo: float32(v - radius), Hi: float32(v + radius)}
}

// Set places p into slot, identically to SetRaw: this adapter has no
// specialization cache to bypass.
func (e *Evaluator) Set(p [3]float64, slot int) {
	e.slots[slot] = vecOf(p)
}

// SetRaw places p into slot, bypassing (the absent) specialization cache.
func (e *Evaluator) SetRaw(p [3]float64, slot int) {
	e.slots[slot] = vecOf(p)
}

// Values evaluates the first n loaded slots.
func (e *Evaluator) Values(n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(e.solid.Evaluate(e.slots[i]))
	}
	return out
}

// Derivs evaluates value and a central-difference gradient estimate for
// the first n loaded slots.
func (e *Evaluator) Derivs(n int) xtree.Derivs {
	d := xtree.Derivs{
		V:  make([]float32, n),
		Dx: make([]float32, n),
		Dy: make([]float32, n),
		Dz: make([]float32, n),
	}
	for i := 0; i < n; i++ {
		p := e.slots[i]
		d.V[i] = float32(e.solid.Evaluate(p))

		px1 := p
		px1.X += gradientStep
		px2 := p
		px2.X -= gradientStep
		d.Dx[i] = float32((e.solid.Evaluate(px1) - e.solid.Evaluate(px2)) / (2 * gradientStep))

		py1 := p
		py1.Y += gradientStep
		py2 := p
		py2.Y -= gradientStep
		d.Dy[i] = float32((e.solid.Evaluate(py1) - e.solid.Evaluate(py2)) / (2 * gradientStep))

		pz1 := p
		pz1.Z += gradientStep
		pz2 := p
		pz2.Z -= gradientStep
		d.Dz[i] = float32((e.solid.Evaluate(pz1) - e.solid.Evaluate(pz2)) / (2 * gradientStep))

		if math.IsNaN(float64(d.Dx[i])) || math.IsNaN(float64(d.Dy[i])) || math.IsNaN(float64(d.Dz[i])) {
			d.Dx[i], d.Dy[i], d.Dz[i] = float32(math.NaN()), float32(math.NaN()), float32(math.NaN())
		}
	}
	return d
}

// Push acquires a specialization frame. This adapter has no cache to
// specialize, so it only tracks nesting depth for Pop's balance check.
func (e *Evaluator) Push() {
	e.pushDepth++
}

// Pop releases the most recently acquired specialization frame.
func (e *Evaluator) Pop() {
	e.pushDepth--
	if e.pushDepth < 0 {
		panic("evalsdf: Pop called without matching Push")
	}
}
