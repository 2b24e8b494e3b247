package xtree

// cornerMask packs the 2^Dim corner states into a bitmask, FILLED = 1.
func cornerMask(corners []CellType) uint8 {
	var mask uint8
	for i, c := range corners {
		if c == Filled {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// edgeList enumerates the edges of a Dim-cube as (u, v) corner-index
// pairs whose indices differ in exactly one bit.
func edgeList(dim int) [][2]int {
	n := 1 << uint(dim)
	var edges [][2]int
	for u := 0; u < n; u++ {
		for k := 0; k < dim; k++ {
			v := u ^ (1 << uint(k))
			if v > u {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return edges
}

// cornersAreManifold implements the corner-sign manifold predicate from
// [Ju et al. 2002]: a cell's corner configuration is unsafe to simplify
// exactly when some 2-face of the cube shows the ambiguous "checkerboard"
// diagonal pattern (two opposite corners of the face share a sign that
// differs from the other two). For Dim=2 there is exactly one face (the
// whole square), matching spec §4.7's "trivially true except for the two
// diagonal cases" directly. For Dim=3 this checks the cube's six faces.
//
// This is the necessary face-local condition the paper's full topology
// table encodes; it is not the hand-enumerated 256-entry table itself
// (see DESIGN.md for why that distinction is an accepted simplification
// here).
func cornersAreManifold(mask uint8, dim int) bool {
	get := func(idx int) bool {
		return mask&(1<<uint(idx)) != 0
	}

	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			// Enumerate the 2^(dim-2) fixed settings of the other axes.
			otherAxes := make([]int, 0, dim-2)
			for a := 0; a < dim; a++ {
				if a != i && a != j {
					otherAxes = append(otherAxes, a)
				}
			}
			nOther := 1 << uint(len(otherAxes))
			for fixed := 0; fixed < nOther; fixed++ {
				base := 0
				for bi, axis := range otherAxes {
					if fixed&(1<<uint(bi)) != 0 {
						base |= 1 << uint(axis)
					}
				}
				c00 := get(base)
				c10 := get(base | 1<<uint(i))
				c01 := get(base | 1<<uint(j))
				c11 := get(base | 1<<uint(i) | 1<<uint(j))
				if c00 == c11 && c01 == c10 && c00 != c01 {
					return false
				}
			}
		}
	}
	return true
}

// leafsAreManifold checks the combined 3^Dim corner pattern formed by
// this branch's children — parent corners at the grid extremes, plus the
// face/edge/center midpoints contributed by the children's own corners —
// for manifold safety, per spec §4.7. Every axis-aligned 2^Dim sub-cube of
// that 3^Dim grid must itself satisfy cornersAreManifold; this is the
// standard finer-resolution refinement of the Ju et al. check used to
// catch configurations a single coarse corner mask would miss.
//
// Each point of the 3^Dim grid corresponds to exactly one specific
// child's own corner (see the index derivation below), so no
// interpolation or agreement-checking between children is needed: by
// invariant 2 (diagonal pickup) and the evaluator's determinism, two
// children that would reference the same physical point always agree on
// its classification.
func leafsAreManifold(dim int, children []*XTree) bool {
	size := 3
	gridLen := 1
	for i := 0; i < dim; i++ {
		gridLen *= size
	}

	grid := make([]CellType, gridLen)
	coord := make([]int, dim)
	for g := 0; g < gridLen; g++ {
		rem := g
		for k := 0; k < dim; k++ {
			coord[k] = rem % size
			rem /= size
		}

		childBits := 0
		cornerBits := 0
		for k := 0; k < dim; k++ {
			switch coord[k] {
			case 2:
				childBits |= 1 << uint(k)
				cornerBits |= 1 << uint(k)
			case 1:
				cornerBits |= 1 << uint(k)
			}
		}
		grid[g] = children[childBits].Corners[cornerBits]
	}

	// Check every axis-aligned 2^Dim sub-cube (base index 0 or 1 per axis).
	nSub := 1 << uint(dim)
	for base := 0; base < nSub; base++ {
		var mask uint8
		for corner := 0; corner < nSub; corner++ {
			idx := 0
			stride := 1
			for k := 0; k < dim; k++ {
				b := 0
				if base&(1<<uint(k)) != 0 {
					b = 1
				}
				if corner&(1<<uint(k)) != 0 {
					b++
				}
				idx += b * stride
				stride *= size
			}
			if grid[idx] == Filled {
				mask |= 1 << uint(corner)
			}
		}
		if !cornersAreManifold(mask, dim) {
			return false
		}
	}
	return true
}
