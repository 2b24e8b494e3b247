package xtree

import "gonum.org/v1/gonum/mat"

// eigenDecompose runs a real-symmetric eigendecomposition of AtA (dim x
// dim), returning eigenvalues and their orthonormal eigenvectors as
// columns of a dim x dim matrix.
func eigenDecompose(AtA [][]float64, dim int) (values []float64, vectors *mat.Dense) {
	flat := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		copy(flat[i*dim:(i+1)*dim], AtA[i])
	}
	sym := mat.NewSymDense(dim, flat)

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		// A non-convergent decomposition is only possible for pathological
		// input; treat every direction as singular, matching the
		// "SingularQEF" handling in spec §7 (vert collapses to massPoint).
		return make([]float64, dim), mat.NewDense(dim, dim, nil)
	}

	values = eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	return values, &vecs
}

// countRank returns the number of eigenvalues with |lambda| >= cutoff.
func countRank(values []float64, cutoff float64) uint32 {
	var rank uint32
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		if v >= cutoff {
			rank++
		}
	}
	return rank
}

// solveVertex builds the truncated pseudo-inverse of AtA from its
// precomputed eigendecomposition and solves for the vertex position
// biased toward the mass point (spec §4.4 step 4). It sets t.Vert and
// returns the QEF residual error at that vertex.
//
// Callers decompose AtA once and reuse it here rather than
// re-decomposing: leaves use the decomposition to set Rank before
// calling this; branches decompose the freshly-summed AtA purely to
// solve (their Rank is the max of their children's ranks, not
// re-derived from this decomposition, per spec §4.6).
func solveVertex(t *XTree, opts Options, values []float64, vecs *mat.Dense) float64 {
	dim := t.Dim
	center := t.massPoint()

	// AtA * center
	ataCenter := make([]float64, dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			ataCenter[i] += t.AtA[i][j] * center[j]
		}
	}

	rhs := make([]float64, dim)
	for i := 0; i < dim; i++ {
		rhs[i] = t.AtB[i] - ataCenter[i]
	}

	// Pseudo-inverse application: x = U * D * U^T * rhs, D truncating
	// near-zero eigenvalues.
	// First project rhs onto the eigenbasis: y = U^T * rhs.
	y := make([]float64, dim)
	for i := 0; i < dim; i++ {
		absV := values[i]
		if absV < 0 {
			absV = -absV
		}
		if absV < opts.EigenCutoff {
			continue // truncated: y[i] stays 0
		}
		var s float64
		for k := 0; k < dim; k++ {
			s += vecs.At(k, i) * rhs[k]
		}
		y[i] = s / values[i]
	}

	// x = U * y
	vert := make([]float64, dim)
	for i := 0; i < dim; i++ {
		var s float64
		for k := 0; k < dim; k++ {
			s += vecs.At(i, k) * y[k]
		}
		vert[i] = s + center[i]
	}
	t.Vert = vert

	// residual = vert^T AtA vert - 2 vert^T AtB + BtB
	var quad, lin float64
	ataVert := make([]float64, dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			ataVert[i] += t.AtA[i][j] * vert[j]
		}
	}
	for i := 0; i < dim; i++ {
		quad += vert[i] * ataVert[i]
		lin += vert[i] * t.AtB[i]
	}
	return quad - 2*lin + t.BtB
}
