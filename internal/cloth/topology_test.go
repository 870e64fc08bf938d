package cloth

import (
	"errors"
	"math"
	"testing"

	"github.com/colinbarry/verlet-cloth/internal/geom"
)

func TestBuildInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		columns, rows int
	}{
		{"one column", 1, 5},
		{"one row", 5, 1},
		{"zero", 0, 0},
		{"negative", -3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.columns, tt.rows)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Build(%d, %d) error = %v, want ErrInvalidDimensions", tt.columns, tt.rows, err)
			}
		})
	}
}

func TestBuildCounts(t *testing.T) {
	tests := []struct {
		columns, rows         int
		constraints           int
		points, fixed         int
	}{
		// rows*(cols-1) horizontals + (rows-1)*(cols-1) diagonals + cols*(rows-1) verticals
		{2, 2, 5, 4, 2},
		{3, 3, 16, 9, 3},
		{4, 3, 23, 12, 4},
		{10, 8, 205, 80, 10},
	}

	for _, tt := range tests {
		topo, err := Build(tt.columns, tt.rows)
		if err != nil {
			t.Fatalf("Build(%d, %d) failed: %v", tt.columns, tt.rows, err)
		}
		if got := topo.NumConstraints(); got != tt.constraints {
			t.Errorf("%dx%d: %d constraints, want %d", tt.columns, tt.rows, got, tt.constraints)
		}
		if got := topo.NumPoints(); got != tt.points {
			t.Errorf("%dx%d: %d points, want %d", tt.columns, tt.rows, got, tt.points)
		}
		fixed := 0
		for _, i := range topo.PointIndices() {
			if topo.Point(i).Fixed {
				fixed++
			}
		}
		if fixed != tt.fixed {
			t.Errorf("%dx%d: %d fixed points, want %d", tt.columns, tt.rows, fixed, tt.fixed)
		}
	}
}

func TestBuildLayout(t *testing.T) {
	topo, err := Build(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	// Corners of the unit square, zero initial velocity.
	checks := []struct {
		index int
		pos   geom.Vec2
	}{
		{0, geom.V(0, 0)},
		{2, geom.V(1, 0)},
		{6, geom.V(0, 1)},
		{8, geom.V(1, 1)},
		{4, geom.V(0.5, 0.5)},
	}
	for _, c := range checks {
		p := topo.Point(c.index)
		if p.Pos != c.pos {
			t.Errorf("point %d at %v, want %v", c.index, p.Pos, c.pos)
		}
		if p.Prev != p.Pos {
			t.Errorf("point %d Prev = %v, want %v", c.index, p.Prev, p.Pos)
		}
	}

	for i := 0; i < 9; i++ {
		wantFixed := i < 3
		if topo.Point(i).Fixed != wantFixed {
			t.Errorf("point %d Fixed = %v, want %v", i, topo.Point(i).Fixed, wantFixed)
		}
	}
}

// Relaxation is order-dependent, so the builder's constraint order is
// observable: horizontals by row, then alternating diagonals, then verticals.
func TestBuildConstraintOrder(t *testing.T) {
	topo, err := Build(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	cons := topo.Constraints()

	want := []Constraint{
		{A: 0, B: 1}, {A: 1, B: 2}, // row 0
		{A: 3, B: 4}, {A: 4, B: 5}, // row 1
		{A: 6, B: 7}, {A: 7, B: 8}, // row 2
		{A: 1, B: 3}, {A: 1, B: 5}, // cells (0,0) even, (0,1) odd
		{A: 3, B: 7}, {A: 5, B: 7}, // cells (1,0) odd, (1,1) even
		{A: 0, B: 3}, {A: 3, B: 6}, // column 0
		{A: 1, B: 4}, {A: 4, B: 7}, // column 1
		{A: 2, B: 5}, {A: 5, B: 8}, // column 2
	}
	if len(cons) != len(want) {
		t.Fatalf("%d constraints, want %d", len(cons), len(want))
	}
	for i, w := range want {
		if cons[i].A != w.A || cons[i].B != w.B {
			t.Errorf("constraint %d = (%d,%d), want (%d,%d)", i, cons[i].A, cons[i].B, w.A, w.B)
		}
	}
}

func TestRestLengthsMatchInitialDistances(t *testing.T) {
	topo, err := Build(5, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range topo.Constraints() {
		dist := topo.Point(c.A).Pos.Distance(topo.Point(c.B).Pos)
		if math.Abs(dist-c.Rest) > 1e-12 {
			t.Errorf("constraint %d: rest %v, distance %v", i, c.Rest, dist)
		}
		if c.Rest < 0 {
			t.Errorf("constraint %d: negative rest length %v", i, c.Rest)
		}
		if c.A == c.B {
			t.Errorf("constraint %d: degenerate endpoints %d", i, c.A)
		}
	}
}

func TestRemovePointCascades(t *testing.T) {
	topo, err := Build(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	// The center of a 3x3 grid touches two horizontals and two verticals;
	// the alternating diagonals all skirt around it.
	before := topo.NumConstraints()
	topo.RemovePoint(4)

	if topo.Alive(4) {
		t.Error("point 4 still alive after removal")
	}
	if got := topo.NumPoints(); got != 8 {
		t.Errorf("%d points, want 8", got)
	}
	if got := topo.NumConstraints(); got != before-4 {
		t.Errorf("%d constraints, want %d", got, before-4)
	}
	for i, c := range topo.Constraints() {
		if c.A == 4 || c.B == 4 {
			t.Errorf("constraint %d still references removed point", i)
		}
	}
}

func TestRemoveConstraintsPrunesOrphans(t *testing.T) {
	topo, err := Build(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	// Collect every constraint touching the bottom-left corner (index 6).
	var touching []int
	for i, c := range topo.Constraints() {
		if c.A == 6 || c.B == 6 {
			touching = append(touching, i)
		}
	}
	if len(touching) == 0 {
		t.Fatal("corner point has no constraints")
	}

	topo.RemoveConstraints(touching)

	if topo.Alive(6) {
		t.Error("orphaned corner point still alive")
	}
	pts := topo.ActivePoints()
	if len(pts) != 8 {
		t.Errorf("%d active points, want 8", len(pts))
	}
	for _, p := range pts {
		if p == (geom.Vec2{X: 0, Y: 1}) {
			t.Error("retired point still listed in ActivePoints")
		}
	}
}

// Orphan eligibility is judged once against the fully updated constraint
// set, so a batch that strands a point mid-way still prunes it.
func TestRemoveConstraintsBatchSemantics(t *testing.T) {
	pts := []Point{
		{Pos: geom.V(0, 0)},
		{Pos: geom.V(1, 0)},
		{Pos: geom.V(2, 0)},
	}
	cons := []Constraint{
		{A: 0, B: 1, Rest: 1},
		{A: 1, B: 2, Rest: 1},
	}
	topo := NewTopology(pts, cons)

	topo.RemoveConstraints([]int{0, 1})

	if topo.NumPoints() != 0 {
		t.Errorf("%d points survive a full shred, want 0", topo.NumPoints())
	}
	if topo.NumConstraints() != 0 {
		t.Errorf("%d constraints survive, want 0", topo.NumConstraints())
	}
}

func TestRemoveConstraintsEmptyAndOutOfRange(t *testing.T) {
	topo, err := Build(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	points, cons := topo.NumPoints(), topo.NumConstraints()

	topo.RemoveConstraints(nil)
	topo.RemoveConstraints([]int{-1, 99})

	if topo.NumPoints() != points || topo.NumConstraints() != cons {
		t.Error("no-op removals mutated the topology")
	}
}

func TestSegmentsMatchConstraints(t *testing.T) {
	topo, err := Build(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	segs := topo.Segments()
	cons := topo.Constraints()
	if len(segs) != len(cons) {
		t.Fatalf("%d segments for %d constraints", len(segs), len(cons))
	}
	for i, c := range cons {
		if segs[i][0] != topo.Point(c.A).Pos || segs[i][1] != topo.Point(c.B).Pos {
			t.Errorf("segment %d does not match constraint endpoints", i)
		}
	}
}
