package metrics

import "github.com/colinbarry/verlet-cloth/internal/cloth"

// Attrition reports the fraction of constraints lost since the first
// observed frame, 0 for an intact mesh through 1 for a fully shredded one.
type Attrition struct {
	name    string
	initial int
	current int
	seen    bool
}

func NewAttrition() *Attrition {
	return &Attrition{name: "attrition"}
}

func (a *Attrition) Name() string { return a.name }

func (a *Attrition) Observe(topo *cloth.Topology, t float64) {
	if !a.seen {
		a.initial = topo.NumConstraints()
		a.seen = true
	}
	a.current = topo.NumConstraints()
}

func (a *Attrition) Value() float64 {
	if !a.seen || a.initial == 0 {
		return 0
	}
	return 1 - float64(a.current)/float64(a.initial)
}

func (a *Attrition) Reset() {
	a.initial = 0
	a.current = 0
	a.seen = false
}
