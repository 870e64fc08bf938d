package export

import (
	"encoding/json"
	"io"

	"github.com/colinbarry/verlet-cloth/internal/cloth"
)

type snapshotPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed"`
}

type snapshotConstraint struct {
	A    int     `json:"a"`
	B    int     `json:"b"`
	Rest float64 `json:"rest"`
}

type snapshot struct {
	Points      []snapshotPoint      `json:"points"`
	Constraints []snapshotConstraint `json:"constraints"`
}

// WriteSnapshot emits the topology as indented JSON. Constraint endpoint
// indices refer to positions in the points array, which lists live points
// in arena order.
func WriteSnapshot(w io.Writer, topo *cloth.Topology) error {
	indices := topo.PointIndices()
	remap := make(map[int]int, len(indices))

	snap := snapshot{
		Points:      make([]snapshotPoint, 0, len(indices)),
		Constraints: make([]snapshotConstraint, 0, topo.NumConstraints()),
	}
	for out, i := range indices {
		remap[i] = out
		p := topo.Point(i)
		snap.Points = append(snap.Points, snapshotPoint{X: p.Pos.X, Y: p.Pos.Y, Fixed: p.Fixed})
	}
	for _, c := range topo.Constraints() {
		snap.Constraints = append(snap.Constraints, snapshotConstraint{
			A: remap[c.A], B: remap[c.B], Rest: c.Rest,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
