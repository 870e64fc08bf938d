package engine

import (
	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/geom"
)

// FindIntersecting returns the indices, in insertion order, of every
// constraint whose segment crosses the cut segment (from, to). Indices are
// valid until the next topology mutation. Cuts parallel to a constraint
// never match; see geom.SegmentIntersection.
func FindIntersecting(topo *cloth.Topology, from, to geom.Vec2) []int {
	var hits []int
	for i, c := range topo.Constraints() {
		a := topo.Point(c.A).Pos
		b := topo.Point(c.B).Pos
		if _, ok := geom.SegmentIntersection(from, to, a, b); ok {
			hits = append(hits, i)
		}
	}
	return hits
}

// Cut severs every constraint crossing the segment (from, to) in one batch
// and prunes any points left untethered. Returns the number of constraints
// removed.
func (e *Engine) Cut(from, to geom.Vec2) int {
	hits := FindIntersecting(e.topo, from, to)
	e.topo.RemoveConstraints(hits)
	return len(hits)
}
