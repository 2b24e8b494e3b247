package xtree

import "math"

// newSquareMatrix allocates a dim x dim matrix of zeros.
func newSquareMatrix(dim int) [][]float64 {
	m := make([][]float64, dim)
	for i := range m {
		m[i] = make([]float64, dim)
	}
	return m
}

// addMatrix accumulates src into dst, elementwise.
func addMatrix(dst, src [][]float64) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] += src[i][j]
		}
	}
}

// addVector accumulates src into dst, elementwise.
func addVector(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// dot returns the dot product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// lerp linearly interpolates between a and b by frac (0 at a, 1 at b).
func lerp(a, b []float64, frac float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i]*(1-frac) + b[i]*frac
	}
	return out
}

// massPoint returns _mass_point.head<Dim>() / _mass_point(Dim), the
// homogeneous-coordinate centroid of accumulated edge-crossing samples.
func (t *XTree) massPoint() []float64 {
	w := t.MassPoint[t.Dim]
	out := make([]float64, t.Dim)
	for i := 0; i < t.Dim; i++ {
		out[i] = t.MassPoint[i] / w
	}
	return out
}

// accumulateMassPoint builds the mass point from edge-crossing samples
// (spec §4.5): for every edge whose corners differ in sign, binary-search
// along the edge for the zero crossing and accumulate the inside point.
func accumulateMassPoint(eval Evaluator, t *XTree) {
	for _, e := range edgeList(t.Dim) {
		u, v := e[0], e[1]
		if t.Corners[u] == t.Corners[v] {
			continue
		}

		inside, outside := t.Region.CornerPos(u), t.Region.CornerPos(v)
		if t.Corners[u] != Filled {
			inside, outside = outside, inside
		}

		pts := make([][]float64, edgeSearchNum)
		for it := 0; it < edgeSearchIter; it++ {
			for j := 0; j < edgeSearchNum; j++ {
				// Corrected from the original's `j / (N - 1.0)` (N = spatial
				// dimension), which does not evenly space the NUM candidate
				// points — see DESIGN.md Open Question log.
				frac := float64(j) / float64(edgeSearchNum-1)
				p := lerp(inside, outside, frac)
				pts[j] = p
				eval.SetRaw(pad3(p, t.Region.Perp), j)
			}

			vals := eval.Values(edgeSearchNum)
			for j := 0; j < edgeSearchNum; j++ {
				if vals[j] >= 0 {
					if j > 0 {
						inside = pts[j-1]
					}
					outside = pts[j]
					break
				}
			}
		}

		mp := make([]float64, t.Dim+1)
		copy(mp, inside)
		mp[t.Dim] = 1
		addVector(t.MassPoint, mp)
	}
}

// buildQEF constructs the leaf's AtA/AtB/BtB matrices from a regular grid
// of gradient samples (spec §4.4). It does not set Rank or Vert; the
// caller runs the eigendecomposition-based solver afterward.
func buildQEF(eval Evaluator, t *XTree, opts Options) {
	dim := t.Dim
	r := opts.GridResolution
	n := opts.gridSampleCount(dim)

	axis := make([][]float64, r)
	for i := 0; i < r; i++ {
		frac := float64(i) / float64(r-1)
		row := make([]float64, dim)
		for k := 0; k < dim; k++ {
			row[k] = t.Region.Lower[k]*(1-frac) + t.Region.Upper[k]*frac
		}
		axis[i] = row
	}

	positions := make([][]float64, n)
	pow := make([]int, dim+1)
	pow[0] = 1
	for k := 0; k < dim; k++ {
		pow[k+1] = pow[k] * r
	}

	for i := 0; i < n; i++ {
		p := make([]float64, dim)
		for k := 0; k < dim; k++ {
			p[k] = axis[(i%pow[k+1])/pow[k]][k]
		}
		positions[i] = p
		eval.Set(pad3(p, t.Region.Perp), i)
	}

	ds := eval.Derivs(n)

	rows := make([][]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		dx, dy, dz := float64(ds.Dx[i]), float64(ds.Dy[i]), float64(ds.Dz[i])
		row := make([]float64, dim)
		nan := math.IsNaN(dx) || math.IsNaN(dy) || math.IsNaN(dz)
		if nan {
			// Zero row and zero b: this sample contributes nothing to the QEF.
		} else {
			g := [3]float64{dx, dy, dz}
			norm := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if norm > 0 {
				for k := 0; k < dim; k++ {
					row[k] = g[k] / norm
				}
			}
		}
		rows[i] = row
		if !nan {
			b[i] = dot(row, positions[i]) - float64(ds.V[i])
		}
	}

	t.AtA = newSquareMatrix(dim)
	t.AtB = make([]float64, dim)
	t.BtB = 0
	for i := 0; i < n; i++ {
		for a := 0; a < dim; a++ {
			t.AtB[a] += rows[i][a] * b[i]
			for c := 0; c < dim; c++ {
				t.AtA[a][c] += rows[i][a] * rows[i][c]
			}
		}
		t.BtB += b[i] * b[i]
	}
}
