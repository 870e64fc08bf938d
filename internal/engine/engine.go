package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
	"github.com/colinbarry/verlet-cloth/internal/geom"
)

// Metric aggregates an observation over the course of a run.
type Metric interface {
	Name() string
	Observe(topo *cloth.Topology, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnStep(topo *cloth.Topology, t float64)
}

// Engine drives one cloth instance: integrate, relax, tear. It owns the
// topology and a seedable random source for the per-frame gust, so two
// engines built with the same seed and fed the same inputs evolve
// identically.
//
// Engine is not thread-safe. Ticks and tears must not overlap; a host whose
// input handling runs on another goroutine needs its own mutual exclusion.
type Engine struct {
	topo       *cloth.Topology
	rng        *rand.Rand
	iterations int
	metrics    []Metric
	observers  []Observer

	t         float64 // accumulated simulation time
	lastStamp float64
	started   bool
}

func New(topo *cloth.Topology, seed int64) *Engine {
	return &Engine{
		topo:       topo,
		rng:        rand.New(rand.NewSource(seed)),
		iterations: DefaultIterations,
	}
}

func (e *Engine) Topology() *cloth.Topology { return e.topo }
func (e *Engine) Time() float64             { return e.t }
func (e *Engine) Iterations() int           { return e.iterations }

// SetIterations adjusts the relaxation pass count; values below 1 clamp to 1.
func (e *Engine) SetIterations(n int) {
	if n < 1 {
		n = 1
	}
	e.iterations = n
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Advance ticks the simulation from a host-supplied monotonically increasing
// timestamp, in seconds. The first call only establishes the baseline and
// produces no motion; each later call steps by the elapsed difference.
func (e *Engine) Advance(timestamp float64) {
	if !e.started {
		e.started = true
		e.lastStamp = timestamp
		return
	}
	dt := timestamp - e.lastStamp
	e.lastStamp = timestamp
	e.Step(dt)
}

// Step runs one full tick: Verlet integration followed by constraint
// relaxation, then observer and metric notification. dt above MaxStep is
// clamped; simulation time advances by the clamped amount.
func (e *Engine) Step(dt float64) {
	if dt > MaxStep {
		dt = MaxStep
	}
	Integrate(e.topo, dt, e.rng)
	Relax(e.topo, e.iterations)
	e.t += dt

	for _, m := range e.metrics {
		m.Observe(e.topo, e.t)
	}
	for _, obs := range e.observers {
		obs.OnStep(e.topo, e.t)
	}
}

// TimedCut schedules a cut segment to fire once simulation time reaches At.
type TimedCut struct {
	At       float64
	From, To geom.Vec2
}

// RunConfig parameterizes a headless run.
type RunConfig struct {
	Dt       float64
	Duration float64
	Cuts     []TimedCut
}

// Result summarizes a headless run.
type Result struct {
	Times            []float64
	PointCounts      []int
	ConstraintCounts []int
	CutsFired        int
	Metrics          map[string]float64
	StepsTaken       int
}

// Run drives the engine for Duration seconds of fixed-dt ticks, firing
// scheduled cuts as simulation time passes them. The per-frame series in the
// Result record topology attrition over time.
func (e *Engine) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	cuts := make([]TimedCut, len(cfg.Cuts))
	copy(cuts, cfg.Cuts)
	sort.SliceStable(cuts, func(i, j int) bool { return cuts[i].At < cuts[j].At })

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:            make([]float64, 0, steps),
		PointCounts:      make([]int, 0, steps),
		ConstraintCounts: make([]int, 0, steps),
		Metrics:          make(map[string]float64),
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	next := 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(cuts) && cuts[next].At <= e.t {
			e.Cut(cuts[next].From, cuts[next].To)
			result.CutsFired++
			next++
		}

		e.Step(cfg.Dt)
		result.StepsTaken++
		result.Times = append(result.Times, e.t)
		result.PointCounts = append(result.PointCounts, e.topo.NumPoints())
		result.ConstraintCounts = append(result.ConstraintCounts, e.topo.NumConstraints())
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
