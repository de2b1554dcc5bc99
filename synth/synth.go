// Package synth implements the circuit synthesis algorithms: GraySynth,
// transformation-based synthesis (TBS), decomposition-based synthesis (DBS),
// diagonal-unitary synthesis, truth-table oracle synthesis and hierarchical
// reversible logic synthesis (LHRS).
//
// Each entry point validates its input eagerly, builds a fresh circuit and
// returns it; a failing call never returns a partially built circuit. All
// algorithms are deterministic and own their working state for the duration
// of the call, so independent calls may run concurrently.
package synth

import (
	"errors"

	"github.com/qsynth/qsynth/circuit"
)

var (
	// ErrInconsistentTermWidth is returned by Gray when a parity term's mask
	// does not fit in the declared variable count.
	ErrInconsistentTermWidth = errors.New("inconsistent parity term width")

	// ErrInvalidPermutation is returned when a permutation's size is not a
	// power of two or its values are not a bijection on {0,...,2^n-1}.
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrInvalidAngleCount is returned by Diagonal when the angle list's
	// length is not 2^n-1 for any n ≥ 1.
	ErrInvalidAngleCount = errors.New("invalid angle count")
)

// Kind selects a single-target gate decomposition strategy.
//
// Unrecognized values deterministically fall back to Spectrum; this holds
// for every operation parametrized by a Kind (Oracle and DBS alike).
type Kind uint8

const (
	// Spectrum decomposes via the function's Walsh spectrum into a
	// Hadamard-conjugated phase polynomial; the general-purpose default.
	Spectrum Kind = iota
	// PPRM uses the positive-polarity Reed-Muller expansion.
	PPRM
	// PKRM uses a pseudo-Kronecker Reed-Muller expansion with per-variable
	// polarity choice.
	PKRM
)

func (k Kind) String() string {
	switch k {
	case Spectrum:
		return "spectrum"
	case PPRM:
		return "pprm"
	case PKRM:
		return "pkrm"
	default:
		return "spectrum(fallback)"
	}
}

// ParseKind maps a strategy name to its Kind; unknown names map to Spectrum,
// mirroring the Kind fallback.
func ParseKind(s string) Kind {
	switch s {
	case "pprm":
		return PPRM
	case "pkrm":
		return PKRM
	default:
		return Spectrum
	}
}

// emit appends a gate the algorithms constructed themselves; any failure is
// a bug, not an input error.
func emit(c *circuit.Circuit, g circuit.Gate) {
	if err := c.Append(g); err != nil {
		panic("qsynth internal error: " + err.Error())
	}
}

func emitX(c *circuit.Circuit, target circuit.Qubit, controls ...circuit.Control) {
	emit(c, circuit.Gate{Kind: circuit.X, Target: target, Controls: controls})
}

func emitCX(c *circuit.Circuit, control, target circuit.Qubit) {
	emitX(c, target, circuit.Pos(control))
}

func emitRz(c *circuit.Circuit, target circuit.Qubit, angle float64) {
	emit(c, circuit.Gate{Kind: circuit.Rz, Target: target, Angle: angle})
}

func emitH(c *circuit.Circuit, target circuit.Qubit) {
	emit(c, circuit.Gate{Kind: circuit.H, Target: target})
}

// wires returns the identity wire assignment q0..q(n-1).
func wires(n int) []circuit.Qubit {
	w := make([]circuit.Qubit, n)
	for i := range w {
		w[i] = circuit.Qubit(i)
	}
	return w
}
