package synth

import (
	"fmt"
	"math/bits"
	"time"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/logger"
)

// Diagonal synthesizes a CNOT+Rz circuit realizing the diagonal unitary
// diag(1, e^{-iθ_1}, ..., e^{-iθ_{2^n-1}}) over n qubits; angles[k-1] is the
// phase θ_k of basis state k. The leading entry is fixed to 1, so the angle
// list must have length 2^n-1 for some n ≥ 1.
func Diagonal(angles []float64) (*circuit.Circuit, error) {
	log := logger.Logger()
	start := time.Now()

	size := len(angles) + 1
	if len(angles) == 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: got %d angles, want 2^n-1", ErrInvalidAngleCount, len(angles))
	}
	n := bits.Len(uint(size)) - 1

	phases := make([]float64, size)
	copy(phases[1:], angles)

	circ := circuit.New(n)
	graySynth(circ, wires(n), phasePolynomial(phases))

	log.Debug().Int("nbQubits", n).Int("nbGates", circ.NbGates()).
		Dur("took", time.Since(start)).Msg("diagonal synthesis done")
	return circ, nil
}
