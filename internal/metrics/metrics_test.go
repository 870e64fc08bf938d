package metrics

import (
	"math"
	"testing"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/geom"
)

func TestStretchEnergyOfRestGrid(t *testing.T) {
	topo, err := cloth.Build(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := StretchEnergyOf(topo); got != 0 {
		t.Errorf("fresh grid energy = %v, want 0", got)
	}
}

func stretchedPair() *cloth.Topology {
	return cloth.NewTopology(
		[]cloth.Point{
			{Pos: geom.V(0, 0), Prev: geom.V(0, 0)},
			{Pos: geom.V(2, 0), Prev: geom.V(2, 0)},
		},
		[]cloth.Constraint{{A: 0, B: 1, Rest: 1}},
	)
}

func TestStretchEnergyOfStretchedConstraint(t *testing.T) {
	topo := stretchedPair()
	// Deviation 1 at spring constant 1: energy = 0.5.
	if got := StretchEnergyOf(topo); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("energy = %v, want 0.5", got)
	}
}

func TestMaxStretchOf(t *testing.T) {
	topo := stretchedPair()
	if got := MaxStretchOf(topo); math.Abs(got-2) > 1e-12 {
		t.Errorf("max stretch = %v, want 2", got)
	}

	empty := cloth.NewTopology(nil, nil)
	if got := MaxStretchOf(empty); got != 0 {
		t.Errorf("empty mesh max stretch = %v, want 0", got)
	}
}

func TestStretchEnergyMetricAverages(t *testing.T) {
	m := NewStretchEnergy()
	if m.Name() != "stretch_energy" {
		t.Errorf("name = %s", m.Name())
	}

	stretched := stretchedPair()
	rest, err := cloth.Build(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	m.Observe(stretched, 0)
	m.Observe(rest, 1)

	if got := m.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("mean energy = %v, want 0.25", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear the metric")
	}
}

func TestAttrition(t *testing.T) {
	topo, err := cloth.Build(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	a := NewAttrition()
	a.Observe(topo, 0)
	if a.Value() != 0 {
		t.Errorf("intact mesh attrition = %v, want 0", a.Value())
	}

	// 3x3 builds 16 constraints; dropping 4 loses a quarter.
	topo.RemoveConstraints([]int{0, 1, 2, 3})
	a.Observe(topo, 1)
	if got := a.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("attrition = %v, want 0.25", got)
	}

	a.Reset()
	if a.Value() != 0 {
		t.Error("reset did not clear attrition")
	}
}
