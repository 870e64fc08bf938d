// Package metrics provides run-level observations over a cloth topology:
// elastic strain aggregates and constraint attrition.
package metrics

import (
	"github.com/colinbarry/verlet-cloth/internal/cloth"
)

// StretchEnergyOf sums the squared rest-length deviation over all
// constraints, the elastic energy of the mesh up to a spring constant.
func StretchEnergyOf(topo *cloth.Topology) float64 {
	total := 0.0
	for _, c := range topo.Constraints() {
		length := topo.Point(c.A).Pos.Distance(topo.Point(c.B).Pos)
		d := length - c.Rest
		total += 0.5 * d * d
	}
	return total
}

// MaxStretchOf returns the largest length/rest ratio over all constraints,
// or 0 for an empty mesh.
func MaxStretchOf(topo *cloth.Topology) float64 {
	max := 0.0
	for _, c := range topo.Constraints() {
		length := topo.Point(c.A).Pos.Distance(topo.Point(c.B).Pos)
		if ratio := length / c.Rest; ratio > max {
			max = ratio
		}
	}
	return max
}

// StretchEnergy reports the mean elastic energy over the observed frames.
type StretchEnergy struct {
	name    string
	samples int
	total   float64
}

func NewStretchEnergy() *StretchEnergy {
	return &StretchEnergy{name: "stretch_energy"}
}

func (s *StretchEnergy) Name() string { return s.name }

func (s *StretchEnergy) Observe(topo *cloth.Topology, t float64) {
	s.total += StretchEnergyOf(topo)
	s.samples++
}

func (s *StretchEnergy) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *StretchEnergy) Reset() {
	s.total = 0
	s.samples = 0
}

// MaxStretch reports the worst length/rest ratio seen across the whole run.
type MaxStretch struct {
	name string
	max  float64
}

func NewMaxStretch() *MaxStretch {
	return &MaxStretch{name: "max_stretch"}
}

func (m *MaxStretch) Name() string { return m.name }

func (m *MaxStretch) Observe(topo *cloth.Topology, t float64) {
	if v := MaxStretchOf(topo); v > m.max {
		m.max = v
	}
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }
