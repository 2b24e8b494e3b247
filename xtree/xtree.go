package xtree

// XTree is a node of the adaptive octree/quadtree. It is immutable after
// construction except for the last act of its own constructor, which may
// drop its children (a manifold-safe, low-residual collapse).
//
// A leaf's Children is empty; a branch's Children has exactly
// 2^Dim entries, one per Region.Subdivide() slot. Children[i] owns
// corner i of the parent (the "diagonal pickup" invariant): Corners[i]
// always equals Children[i].Corners[i].
type XTree struct {
	Dim      int
	Region   Region
	Type     CellType
	Children []*XTree
	Corners  []CellType
	Level    uint32
	Manifold bool
	Rank     uint32

	// QEF: AtA (Dim x Dim, symmetric positive-semidefinite), AtB (Dim),
	// BtB (scalar). MassPoint is the homogeneous (Dim+1) sum of
	// edge-crossing sample contributions; massPoint() = head(Dim)/last.
	AtA       [][]float64
	AtB       []float64
	BtB       float64
	MassPoint []float64

	// Vert is the solved vertex position, meaningful only when Type is
	// Ambiguous or this node is a collapsed (formerly branch) leaf.
	Vert []float64
}

// IsBranch reports whether this node has children.
func (t *XTree) IsBranch() bool {
	return len(t.Children) > 0
}

// Vert3 pads Vert with the region's fixed perp coordinates, producing the
// vertex position in 3-space regardless of the tree's dimensionality.
func (t *XTree) Vert3() [3]float64 {
	return pad3(t.Vert, t.Region.Perp)
}

// New constructs an XTree rooted at region, using eval to classify cells
// and place vertices. opts controls the adaptive-meshing numeric
// parameters; pass DefaultOptions() for the spec's default constants.
//
// Construction is single-threaded against this eval: the evaluator's
// scoped Push/Pop bracket every AMBIGUOUS descent and must not be shared
// with a concurrent construction. Parallel meshing across disjoint
// subregions is safe as long as each worker owns its own Evaluator.
func New(eval Evaluator, region Region, opts Options) (*XTree, error) {
	if region.Dim != 2 && region.Dim != 3 {
		return nil, &ErrDimension{Dim: region.Dim}
	}
	needed := opts.gridSampleCount(region.Dim)
	if needed > opts.EvaluatorCapacity {
		return nil, &ErrCapacity{
			Dim: region.Dim, Resolution: opts.GridResolution,
			Needed: needed, Capacity: opts.EvaluatorCapacity,
		}
	}
	return build(eval, region, opts), nil
}

// build is the recursive constructor: classification (§4.3), recursive
// descent or corner point-sampling, leaf QEF/mass-point construction
// (§4.4-4.5), and bottom-up branch simplification (§4.6).
func build(eval Evaluator, region Region, opts Options) *XTree {
	t := &XTree{Dim: region.Dim, Region: region}
	numCorners := region.cornerCount()
	t.Corners = make([]CellType, numCorners)

	iv := eval.EvalInterval(region.Lower3(), region.Upper3())

	eval.Push()
	defer eval.Pop()
	switch {
	case iv.IsFilled():
		t.Type = Filled
	case iv.IsEmpty():
		t.Type = Empty
	default:
		allEmpty, allFull := true, true
		if region.Volume() > opts.MinVolume {
			subs := region.Subdivide()
			t.Children = make([]*XTree, numCorners)
			for i, sr := range subs {
				child := build(eval, sr, opts)
				t.Children[i] = child
				t.Corners[i] = child.Corners[i]
				allEmpty = allEmpty && child.Type == Empty
				allFull = allFull && child.Type == Filled
			}
		} else {
			for i := 0; i < numCorners; i++ {
				eval.Set(pad3(region.CornerPos(i), region.Perp), i)
			}
			vals := eval.Values(numCorners)
			for i := 0; i < numCorners; i++ {
				if vals[i] < 0 {
					t.Corners[i] = Filled
				} else {
					t.Corners[i] = Empty
				}
				allFull = allFull && t.Corners[i] == Filled
				allEmpty = allEmpty && t.Corners[i] == Empty
			}
		}
		switch {
		case allEmpty:
			t.Type = Empty
		case allFull:
			t.Type = Filled
		default:
			t.Type = Ambiguous
		}
	}

	if t.Type == Filled || t.Type == Empty {
		for i := range t.Corners {
			t.Corners[i] = t.Type
		}
		t.Manifold = true
		t.Children = nil
	}

	if t.IsBranch() {
		simplifyBranch(t, opts)
	} else if t.Type == Ambiguous {
		buildLeaf(eval, t, opts)
	}
	return t
}

// simplifyBranch implements spec §4.6 step 5: level bookkeeping, then (if
// every child is itself a leaf) the manifold-safety and QEF-residual
// checks from [Ju et al. 2002] that decide whether this branch collapses.
func simplifyBranch(t *XTree, opts Options) {
	var maxChildLevel uint32
	allLeaves := true
	for _, c := range t.Children {
		if c.Level > maxChildLevel {
			maxChildLevel = c.Level
		}
		if c.IsBranch() {
			allLeaves = false
		}
	}
	t.Level = maxChildLevel + 1

	if !allLeaves {
		return
	}

	childrenManifold := true
	for _, c := range t.Children {
		childrenManifold = childrenManifold && c.Manifold
	}
	t.Manifold = cornersAreManifold(cornerMask(t.Corners), t.Dim) &&
		childrenManifold &&
		leafsAreManifold(t.Dim, t.Children)

	if !t.Manifold {
		return
	}

	var rank uint32
	for _, c := range t.Children {
		if c.Rank > rank {
			rank = c.Rank
		}
	}
	t.Rank = rank

	t.AtA = newSquareMatrix(t.Dim)
	t.AtB = make([]float64, t.Dim)
	t.MassPoint = make([]float64, t.Dim+1)
	for _, c := range t.Children {
		// FILLED/EMPTY children carry no QEF or mass point (all zero).
		if c.AtA != nil {
			addMatrix(t.AtA, c.AtA)
			addVector(t.AtB, c.AtB)
			t.BtB += c.BtB
		}
		if c.Rank == t.Rank && c.MassPoint != nil {
			addVector(t.MassPoint, c.MassPoint)
		}
	}

	values, vecs := eigenDecompose(t.AtA, t.Dim)
	if residual := solveVertex(t, opts, values, vecs); residual < opts.CollapseThreshold {
		t.Children = nil
		t.Level = 0
	}
}

// buildLeaf implements spec §4.6 step 6: an ambiguous leaf's manifold
// check, mass-point accumulation (always), and QEF-based vertex solve
// (manifold) or mass-point vertex (non-manifold).
func buildLeaf(eval Evaluator, t *XTree, opts Options) {
	t.Manifold = cornersAreManifold(cornerMask(t.Corners), t.Dim)

	t.MassPoint = make([]float64, t.Dim+1)
	accumulateMassPoint(eval, t)

	if t.Manifold {
		buildQEF(eval, t, opts)
		values, vecs := eigenDecompose(t.AtA, t.Dim)
		t.Rank = countRank(values, opts.EigenCutoff)
		// The QEF residual is discarded here: this is the bottom of the
		// recursion, so there is no collapse decision to make.
		solveVertex(t, opts, values, vecs)
	} else {
		t.Vert = t.massPoint()
	}
}
