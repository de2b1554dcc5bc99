package synth

import (
	"time"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/logger"
	"github.com/qsynth/qsynth/truthtable"
)

// Oracle synthesizes a circuit over n+1 qubits computing
//
//	|x⟩|y⟩ ↦ |x⟩|y ⊕ f(x)⟩
//
// for an n-variable truth table f; qubits 0..n-1 carry the inputs and qubit
// n is the target. The decomposition of the single-target gate is chosen by
// kind, with Spectrum as the fallback for unrecognized values.
func Oracle(f *truthtable.TruthTable, kind Kind) (*circuit.Circuit, error) {
	log := logger.Logger()
	start := time.Now()

	n := f.NbVars()
	circ := circuit.New(n + 1)
	strategy(kind)(circ, wires(n), circuit.Qubit(n), f)

	log.Debug().Int("nbVars", n).Stringer("kind", kind).
		Int("nbGates", circ.NbGates()).Dur("took", time.Since(start)).Msg("oracle synthesis done")
	return circ, nil
}
