package xtree

// Interval is a conservative enclosure of the field's range over a box,
// as returned by Evaluator.EvalInterval.
type Interval struct {
	Lo, Hi float32
}

// IsFilled reports whether the interval proves the whole box is inside
// the solid (every possible value is negative).
func (iv Interval) IsFilled() bool {
	return iv.Hi < 0
}

// IsEmpty reports whether the interval proves the whole box is outside
// the solid (every possible value is non-negative).
func (iv Interval) IsEmpty() bool {
	return iv.Lo >= 0
}

// Derivs bundles a value and a gradient for a batch of sampled points.
// Any component may be NaN when the field is non-differentiable at that
// point; callers must handle that (see buildQEF's zero-row substitution).
type Derivs struct {
	V, Dx, Dy, Dz []float32
}

// Evaluator is the abstract scalar-field capability the XTree constructor
// consumes. It models interval evaluation on a box, point evaluation of up
// to a batch of samples, and gradient evaluation of up to a batch of
// samples, plus scoped push/pop for branch specialization caching.
//
// Implementations work in 3-space regardless of the XTree's own
// dimensionality (2 or 3); the XTree layer only reads the first Dim
// components of any gradient or position it receives.
//
// Implementations must tolerate Push/Pop calls that are not perfectly
// balanced by a panicking caller: XTree's construction always pairs every
// Push with a deferred Pop, but a defensive Evaluator should not corrupt
// its own state if that invariant is ever violated.
type Evaluator interface {
	// EvalInterval returns a conservative enclosure of the field over the
	// box [lo, hi].
	EvalInterval(lo, hi [3]float64) Interval

	// Set places p into batch slot, applying any branch-specialization
	// caching the evaluator supports.
	Set(p [3]float64, slot int)

	// SetRaw places p into batch slot, bypassing specialization caching.
	// Used during edge-intersection search so the bisection probes do not
	// pollute a branch's cache.
	SetRaw(p [3]float64, slot int)

	// Values evaluates (or returns already-evaluated) the first n loaded
	// slots.
	Values(n int) []float32

	// Derivs evaluates value and gradient for the first n loaded slots.
	Derivs(n int) Derivs

	// Push acquires a specialization frame, scoped to the enclosing
	// subdivision. Must be released with a matching Pop on every exit
	// path.
	Push()

	// Pop releases the most recently acquired specialization frame.
	Pop()
}
