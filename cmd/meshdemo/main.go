// Command meshdemo builds an implicit solid with github.com/deadsy/sdfx,
// meshes it with the xtree package, and logs leaf/vertex/manifold
// statistics. It does not write any mesh file: exporting a tessellated
// mesh to disk is out of scope for this module.
package main

import (
	"log"

	"github.com/chazu/xtreecad/evalsdf"
	"github.com/chazu/xtreecad/xtree"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
)

// scene returns a box with a spherical bite taken out of one corner, to
// exercise both smooth (sphere) and creased (box edge/corner) surface
// regions in the same run.
func scene() sdf.SDF3 {
	box, err := sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0)
	if err != nil {
		log.Fatalf("sdf.Box3D: %v", err)
	}
	bite, err := sdf.Sphere3D(0.9)
	if err != nil {
		log.Fatalf("sdf.Sphere3D: %v", err)
	}
	bite = sdf.Transform3D(bite, sdf.Translate3d(v3.Vec{X: 1, Y: 1, Z: 1}))
	return sdf.Difference3D(box, bite)
}

// stats accumulates leaf statistics while walking the tree.
type stats struct {
	leaves, ambiguous, filled, empty, nonManifold int
	rankHist                                      [4]int
}

func (s *stats) visit(t *xtree.XTree) {
	if t.IsBranch() {
		for _, c := range t.Children {
			s.visit(c)
		}
		return
	}
	s.leaves++
	switch t.Type {
	case xtree.Ambiguous:
		s.ambiguous++
		if t.Rank < uint32(len(s.rankHist)) {
			s.rankHist[t.Rank]++
		}
	case xtree.Filled:
		s.filled++
	case xtree.Empty:
		s.empty++
	}
	if !t.Manifold {
		s.nonManifold++
	}
}

func main() {
	runID := uuid.New()
	log.Printf("meshdemo run %s starting", runID)

	solid := scene()
	opts := xtree.DefaultOptions()

	eval, err := evalsdf.New(solid, opts.EvaluatorCapacity)
	if err != nil {
		log.Fatalf("run %s: evalsdf.New: %v", runID, err)
	}
	region := evalsdf.BoundingBoxRegion(solid, 3)

	root, err := xtree.New(eval, region, opts)
	if err != nil {
		log.Fatalf("run %s: xtree.New: %v", runID, err)
	}

	var s stats
	s.visit(root)

	log.Printf("run %s: root type=%s branch=%v", runID, root.Type, root.IsBranch())
	log.Printf("run %s: leaves=%d filled=%d empty=%d ambiguous=%d non-manifold=%d",
		runID, s.leaves, s.filled, s.empty, s.ambiguous, s.nonManifold)
	for rank, count := range s.rankHist {
		if count > 0 {
			log.Printf("run %s: ambiguous leaves with rank=%d: %d", runID, rank, count)
		}
	}
}
