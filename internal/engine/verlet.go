package engine

import (
	"math/rand"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/geom"
)

const (
	// MaxStep caps the integration timestep. Explicit Verlet is only stable
	// for small steps; a stalled frame must not turn into one huge step.
	MaxStep = 1.0 / 30

	// Gravity is the constant downward force applied every tick.
	Gravity = 0.8

	// GustMax bounds the randomized horizontal force component.
	GustMax = 0.1
)

// Integrate advances every free point one Verlet step under gravity plus a
// horizontal gust. The gust is sampled once per call and applied identically
// to all points, giving a coherent per-frame wind rather than per-particle
// noise. dt is clamped to MaxStep; zero or negative dt degenerates to no or
// reversed motion and is deliberately not rejected.
func Integrate(topo *cloth.Topology, dt float64, rng *rand.Rand) {
	if dt > MaxStep {
		dt = MaxStep
	}
	force := geom.V(rng.Float64()*GustMax, Gravity)
	dt2 := dt * dt

	for i, n := 0, topo.ArenaSize(); i < n; i++ {
		if !topo.Alive(i) {
			continue
		}
		p := topo.Point(i)
		if p.Fixed {
			continue
		}
		next := p.Pos.Scale(2).Sub(p.Prev).Add(force.Scale(dt2))
		p.Prev = p.Pos
		p.Pos = next
	}
}
