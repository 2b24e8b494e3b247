package xtree

import "math"

// planeEval is a minimal Evaluator over the signed distance to the plane
// x=0 (negative for x<0, i.e. "inside"). Used by internal QEF/solver
// tests that need a real evaluator but not a full scenario.
type planeEval struct {
	slots     [64][3]float64
	pushDepth int
}

func (e *planeEval) f(p [3]float64) float64 { return p[0] }

func (e *planeEval) EvalInterval(lo, hi [3]float64) Interval {
	vlo, vhi := e.f(lo), e.f(hi)
	if vlo > vhi {
		vlo, vhi = vhi, vlo
	}
	return Interval{Lo: float32(vlo), Hi: float32(vhi)}
}

func (e *planeEval) Set(p [3]float64, slot int)    { e.slots[slot] = p }
func (e *planeEval) SetRaw(p [3]float64, slot int) { e.slots[slot] = p }

func (e *planeEval) Values(n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(e.f(e.slots[i]))
	}
	return out
}

func (e *planeEval) Derivs(n int) Derivs {
	d := Derivs{V: make([]float32, n), Dx: make([]float32, n), Dy: make([]float32, n), Dz: make([]float32, n)}
	for i := 0; i < n; i++ {
		d.V[i] = float32(e.f(e.slots[i]))
		d.Dx[i], d.Dy[i], d.Dz[i] = 1, 0, 0
	}
	return d
}

func (e *planeEval) Push() { e.pushDepth++ }
func (e *planeEval) Pop()  { e.pushDepth-- }

// sphereEval is the signed distance to a sphere of radius r centered at
// the origin (negative inside).
type sphereEval struct {
	r         float64
	slots     [64][3]float64
	pushDepth int
}

func (e *sphereEval) f(p [3]float64) float64 {
	return math.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]) - e.r
}

func (e *sphereEval) EvalInterval(lo, hi [3]float64) Interval {
	var center [3]float64
	for i := 0; i < 3; i++ {
		center[i] = (lo[i] + hi[i]) / 2
	}
	var radius float64
	for i := 0; i < 3; i++ {
		d := hi[i] - center[i]
		radius += d * d
	}
	radius = math.Sqrt(radius)
	v := e.f(center)
	return Interval{Lo: float32(v - radius), Hi: float32(v + radius)}
}

func (e *sphereEval) Set(p [3]float64, slot int)    { e.slots[slot] = p }
func (e *sphereEval) SetRaw(p [3]float64, slot int) { e.slots[slot] = p }

func (e *sphereEval) Values(n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(e.f(e.slots[i]))
	}
	return out
}

func (e *sphereEval) Derivs(n int) Derivs {
	const h = 1e-4
	d := Derivs{V: make([]float32, n), Dx: make([]float32, n), Dy: make([]float32, n), Dz: make([]float32, n)}
	for i := 0; i < n; i++ {
		p := e.slots[i]
		d.V[i] = float32(e.f(p))
		px1, px2 := p, p
		px1[0] += h
		px2[0] -= h
		d.Dx[i] = float32((e.f(px1) - e.f(px2)) / (2 * h))
		py1, py2 := p, p
		py1[1] += h
		py2[1] -= h
		d.Dy[i] = float32((e.f(py1) - e.f(py2)) / (2 * h))
		pz1, pz2 := p, p
		pz1[2] += h
		pz2[2] -= h
		d.Dz[i] = float32((e.f(pz1) - e.f(pz2)) / (2 * h))
	}
	return d
}

func (e *sphereEval) Push() { e.pushDepth++ }
func (e *sphereEval) Pop()  { e.pushDepth-- }
