package synth

import (
	"math/bits"
	"time"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/logger"
)

type tbsGate struct {
	controls uint32
	target   int
}

// TBS synthesizes a circuit for a reversible function given as a permutation
// using transformation-based synthesis: rows are fixed to the identity in
// ascending order by multiple-controlled NOT gates applied to the output
// side, and the collected gates are emitted in reverse.
//
// The resulting circuit uses positively controlled NOT gates only and no
// ancilla qubits.
func TBS(p Permutation) (*circuit.Circuit, error) {
	log := logger.Logger()
	start := time.Now()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.NbVars()
	work := make(Permutation, len(p))
	copy(work, p)

	var gates []tbsGate
	apply := func(controls uint32, target int) {
		e := uint32(1) << target
		for v := range work {
			if work[v]&controls == controls {
				work[v] ^= e
			}
		}
		gates = append(gates, tbsGate{controls: controls, target: target})
	}

	// Fixed rows stay fixed: work[k] = k for k < i never matches the control
	// masks below, since a superset of the set bits of work[i] ≥ i would be
	// a value ≥ i.
	for i := range work {
		y := work[i]
		// set the bits of i missing from the image
		for diff := uint32(i) &^ y; diff != 0; diff &= diff - 1 {
			b := bits.TrailingZeros32(diff)
			apply(y, b)
			y |= 1 << b
		}
		// clear the extra bits
		for diff := y &^ uint32(i); diff != 0; diff &= diff - 1 {
			apply(uint32(i), bits.TrailingZeros32(diff))
		}
	}

	circ := circuit.New(n)
	for k := len(gates) - 1; k >= 0; k-- {
		g := gates[k]
		var controls []circuit.Control
		for m := g.controls; m != 0; m &= m - 1 {
			controls = append(controls, circuit.Pos(circuit.Qubit(bits.TrailingZeros32(m))))
		}
		emitX(circ, circuit.Qubit(g.target), controls...)
	}

	log.Debug().Int("nbQubits", n).Int("nbGates", circ.NbGates()).
		Dur("took", time.Since(start)).Msg("transformation-based synthesis done")
	return circ, nil
}
