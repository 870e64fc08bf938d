package engine

import "github.com/colinbarry/verlet-cloth/internal/cloth"

// DefaultIterations is the default number of relaxation passes per tick.
// More passes give a stiffer, less elastic cloth at proportional cost; this
// is a tuning knob, not a correctness parameter.
const DefaultIterations = 2

// Relax sweeps the constraint list the given number of times, nudging each
// pair of endpoints toward its rest length. Each sweep is Gauss-Seidel:
// corrections read positions already updated by earlier constraints in the
// same pass, so results depend on the insertion order the builder produced.
//
// A zero-length constraint makes the correction factor a division by zero
// and poisons the touched positions with non-finite values. The model
// accepts that instability; guarding it here would change behavior.
func Relax(topo *cloth.Topology, iterations int) {
	if iterations < 1 {
		iterations = 1
	}
	for n := 0; n < iterations; n++ {
		for _, c := range topo.Constraints() {
			a, b := topo.Point(c.A), topo.Point(c.B)

			diff := a.Pos.Sub(b.Pos)
			length := diff.Length()
			factor := (c.Rest - length) / length / 2
			offset := diff.Scale(factor)

			if !a.Fixed {
				a.Pos = a.Pos.Add(offset)
			}
			if !b.Fixed {
				b.Pos = b.Pos.Sub(offset)
			}
		}
	}
}
