package synth

import (
	"fmt"
	"math/bits"
	"sort"
	"time"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/logger"
)

// ParityTerm pairs a subset of input variables (the set bits of Mask) with a
// rotation angle: the circuit applies the phase e^{-iAngle} to every basis
// state whose selected variables have odd parity.
type ParityTerm struct {
	Mask  uint32
	Angle float64
}

// Gray synthesizes a CNOT+Rz circuit over nbVars qubits realizing the
// product of the given parity phase rotations.
//
// Terms are processed per working wire in Gray-code order so that
// consecutive terms reuse the previous term's accumulated parity, one CNOT
// per toggled variable. Terms with mask 0 are an unobservable global phase
// and are skipped. Zero terms yield an empty circuit over nbVars qubits.
func Gray(nbVars int, terms []ParityTerm) (*circuit.Circuit, error) {
	log := logger.Logger()
	start := time.Now()

	if nbVars < 0 || nbVars > 30 {
		return nil, fmt.Errorf("%w: variable count %d out of range", ErrInconsistentTermWidth, nbVars)
	}
	for _, t := range terms {
		if t.Mask>>nbVars != 0 {
			return nil, fmt.Errorf("%w: mask %b exceeds %d variables", ErrInconsistentTermWidth, t.Mask, nbVars)
		}
	}

	circ := circuit.New(nbVars)
	graySynth(circ, wires(nbVars), terms)

	log.Debug().Int("nbQubits", nbVars).Int("nbTerms", len(terms)).
		Int("nbGates", circ.NbGates()).Dur("took", time.Since(start)).Msg("gray synthesis done")
	return circ, nil
}

// graySynth appends the CNOT+Rz realization of terms onto circ; wires[v] is
// the circuit qubit carrying variable v. All wires are returned to their
// identity parity, so the appended gates act as a pure phase.
//
// Invariant: at most one wire holds a combined parity at any time, so a CNOT
// from wire c always mixes in the plain variable c.
func graySynth(circ *circuit.Circuit, w []circuit.Qubit, terms []ParityTerm) {
	groups := make([][]ParityTerm, len(w))
	for _, t := range terms {
		if t.Mask == 0 {
			continue // global phase
		}
		top := bits.Len32(t.Mask) - 1
		groups[top] = append(groups[top], t)
	}

	for top, group := range groups {
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return grayRank(group[i].Mask) < grayRank(group[j].Mask)
		})

		cur := uint32(1) << top
		for _, term := range group {
			for diff := cur ^ term.Mask; diff != 0; diff &= diff - 1 {
				c := bits.TrailingZeros32(diff)
				emitCX(circ, w[c], w[top])
				cur ^= 1 << c
			}
			emitRz(circ, w[top], term.Angle)
		}
		// restore the working wire to its own variable
		for diff := cur ^ 1<<top; diff != 0; diff &= diff - 1 {
			emitCX(circ, w[bits.TrailingZeros32(diff)], w[top])
		}
	}
}

// grayRank returns the position of mask in the binary-reflected Gray-code
// sequence, i.e. the inverse of k ↦ k ^ (k >> 1).
func grayRank(mask uint32) uint32 {
	r := mask
	for s := 1; s < 32; s <<= 1 {
		r ^= r >> s
	}
	return r
}
