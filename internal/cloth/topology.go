package cloth

import (
	"errors"

	"github.com/colinbarry/verlet-cloth/internal/geom"
)

// ErrInvalidDimensions indicates a grid too small to form any constraint.
var ErrInvalidDimensions = errors.New("cloth: grid needs at least 2 columns and 2 rows")

// Point is a simulated mass node. Fixed points anchor the mesh and are never
// displaced by integration or relaxation.
type Point struct {
	Pos   geom.Vec2
	Prev  geom.Vec2
	Fixed bool
}

// Constraint pins two points toward a fixed rest length. A and B index into
// the topology's point arena. Rest is set at creation and never recomputed.
type Constraint struct {
	A, B int
	Rest float64
}

// Topology owns the point arena and the constraint list of one cloth
// instance. Points keep stable indices for their whole lifetime; removal
// retires the index rather than compacting the arena, so constraints can
// reference endpoints by index without invalidation.
//
// Not safe for concurrent use. The host must serialize ticks and tears.
type Topology struct {
	points      []Point
	retired     []bool
	constraints []Constraint
}

// NewTopology assembles a topology from prebuilt points and constraints.
// Build is the normal entry point; this exists for hand-crafted meshes.
func NewTopology(points []Point, constraints []Constraint) *Topology {
	return &Topology{
		points:      points,
		retired:     make([]bool, len(points)),
		constraints: constraints,
	}
}

// Build lays out columns x rows points in the unit square and links them with
// distance constraints. Row 0 is fixed, as if the cloth hangs from a rod.
//
// Constraints are generated horizontals first, then one alternating diagonal
// per cell, then verticals. Relaxation visits constraints in this stored
// order and reads positions updated earlier in the same pass, so the order is
// part of the observable behavior and must not be rearranged.
func Build(columns, rows int) (*Topology, error) {
	if columns < 2 || rows < 2 {
		return nil, ErrInvalidDimensions
	}

	t := &Topology{
		points:  make([]Point, 0, columns*rows),
		retired: make([]bool, columns*rows),
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			pos := geom.V(float64(c)/float64(columns-1), float64(r)/float64(rows-1))
			t.points = append(t.points, Point{Pos: pos, Prev: pos, Fixed: r == 0})
		}
	}

	at := func(r, c int) int { return r*columns + c }

	for r := 0; r < rows; r++ {
		for c := 0; c+1 < columns; c++ {
			t.join(at(r, c), at(r, c+1))
		}
	}
	for r := 0; r+1 < rows; r++ {
		for c := 0; c+1 < columns; c++ {
			// Alternate the shear diagonal by cell parity to avoid a
			// systematic directional bias.
			if (r+c)%2 == 1 {
				t.join(at(r, c), at(r+1, c+1))
			} else {
				t.join(at(r, c+1), at(r+1, c))
			}
		}
	}
	for c := 0; c < columns; c++ {
		for r := 0; r+1 < rows; r++ {
			t.join(at(r, c), at(r+1, c))
		}
	}

	return t, nil
}

// join appends a constraint with rest length equal to the current distance
// between the endpoints, so a freshly built grid starts unstressed.
func (t *Topology) join(a, b int) {
	rest := t.points[a].Pos.Distance(t.points[b].Pos)
	t.constraints = append(t.constraints, Constraint{A: a, B: b, Rest: rest})
}

// Point returns the arena slot for index i, retired or not. Callers holding
// an index from Constraints or PointIndices may mutate positions through it.
func (t *Topology) Point(i int) *Point {
	return &t.points[i]
}

// Alive reports whether index i refers to a point still in the topology.
func (t *Topology) Alive(i int) bool {
	return i >= 0 && i < len(t.points) && !t.retired[i]
}

// ArenaSize returns the arena length including retired slots; valid indices
// are [0, ArenaSize).
func (t *Topology) ArenaSize() int {
	return len(t.points)
}

// NumPoints counts the points still present.
func (t *Topology) NumPoints() int {
	n := 0
	for _, r := range t.retired {
		if !r {
			n++
		}
	}
	return n
}

func (t *Topology) NumConstraints() int {
	return len(t.constraints)
}

// Constraints exposes the constraint list in insertion order. The slice is
// the topology's own backing store; treat it as read-only.
func (t *Topology) Constraints() []Constraint {
	return t.constraints
}

// PointIndices returns the indices of all live points in ascending order.
func (t *Topology) PointIndices() []int {
	idx := make([]int, 0, len(t.points))
	for i := range t.points {
		if !t.retired[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

// ActivePoints snapshots the current positions of all live points, in arena
// order. This is the read surface the renderer consumes after each tick.
func (t *Topology) ActivePoints() []geom.Vec2 {
	pts := make([]geom.Vec2, 0, len(t.points))
	for i := range t.points {
		if !t.retired[i] {
			pts = append(pts, t.points[i].Pos)
		}
	}
	return pts
}

// Segments snapshots every constraint as its two endpoint positions, in
// insertion order.
func (t *Topology) Segments() [][2]geom.Vec2 {
	segs := make([][2]geom.Vec2, len(t.constraints))
	for i, c := range t.constraints {
		segs[i] = [2]geom.Vec2{t.points[c.A].Pos, t.points[c.B].Pos}
	}
	return segs
}

// RemoveConstraints deletes the constraints at the given indices in one
// batch, then retires every point left with no remaining constraint. Orphan
// eligibility is judged against the fully updated constraint set, so a drag
// gesture should collect all crossed constraints into a single call rather
// than removing them one at a time.
func (t *Topology) RemoveConstraints(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(t.constraints) {
			drop[i] = true
		}
	}

	kept := t.constraints[:0]
	for i, c := range t.constraints {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	t.constraints = kept
	t.pruneOrphans()
}

// RemovePoint retires the point at index i and cascades to delete every
// constraint referencing it. The tear workflow goes through
// RemoveConstraints; this is the direct primitive.
func (t *Topology) RemovePoint(i int) {
	if !t.Alive(i) {
		return
	}
	t.retired[i] = true

	kept := t.constraints[:0]
	for _, c := range t.constraints {
		if c.A != i && c.B != i {
			kept = append(kept, c)
		}
	}
	t.constraints = kept
}

// pruneOrphans retires every live point no constraint references. An
// untethered point has no visual or physical meaning.
func (t *Topology) pruneOrphans() {
	refs := make([]int, len(t.points))
	for _, c := range t.constraints {
		refs[c.A]++
		refs[c.B]++
	}
	for i := range t.points {
		if !t.retired[i] && refs[i] == 0 {
			t.retired[i] = true
		}
	}
}
