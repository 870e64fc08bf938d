package engine

import (
	"math/rand"
	"testing"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/geom"
)

func benchTopology(b *testing.B, columns, rows int) *cloth.Topology {
	b.Helper()
	topo, err := cloth.Build(columns, rows)
	if err != nil {
		b.Fatal(err)
	}
	return topo
}

func BenchmarkIntegrate(b *testing.B) {
	topo := benchTopology(b, 48, 32)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Integrate(topo, 1.0/60, rng)
	}
}

func BenchmarkRelax(b *testing.B) {
	topo := benchTopology(b, 48, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Relax(topo, DefaultIterations)
	}
}

func BenchmarkStep(b *testing.B) {
	topo := benchTopology(b, 48, 32)
	eng := New(topo, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Step(1.0 / 60)
	}
}

func BenchmarkFindIntersecting(b *testing.B) {
	topo := benchTopology(b, 48, 32)
	from, to := geom.V(-0.5, 0.5), geom.V(1.5, 0.55)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FindIntersecting(topo, from, to)
	}
}
