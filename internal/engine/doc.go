// Package engine implements the per-frame physics of the cloth simulation:
// Verlet integration under gravity and wind, iterative distance-constraint
// relaxation, and the tear operation that severs constraints crossed by a
// cut segment.
//
// # Example
//
//	topo, _ := cloth.Build(24, 16)
//	eng := engine.New(topo, seed)
//	eng.Advance(hostTimestamp) // per display refresh
//	eng.Cut(from, to)          // per drag sample
//
// # Thread Safety
//
// Engine instances are NOT thread-safe; the host must serialize ticks and
// tears on one goroutine or behind one lock.
package engine
