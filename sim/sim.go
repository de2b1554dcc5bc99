// Package sim simulates circuits produced by the synthesis algorithms.
//
// Two engines are provided: a classical bit-twiddling engine for circuits
// containing only (multiple-controlled) NOT gates, and a full statevector
// engine for circuits that also contain Hadamard and Rz gates. Tests use
// these engines to check truth-table and phase-level equivalence.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/qsynth/qsynth/circuit"
)

// ErrNotClassical is returned by Run when the circuit contains gates that
// are not permutations of the computational basis.
var ErrNotClassical = errors.New("circuit is not classical")

// IsClassical reports whether the circuit permutes the computational basis,
// i.e. contains only NOT gates (Rz gates only contribute phases and are
// tolerated).
func IsClassical(c *circuit.Circuit) bool {
	for _, g := range c.Gates() {
		if g.Kind == circuit.H {
			return false
		}
	}
	return true
}

func controlsSatisfied(x uint64, controls []circuit.Control) bool {
	for _, ctrl := range controls {
		set := x&(1<<ctrl.Qubit) != 0
		if set == (ctrl.Polarity == circuit.Negative) {
			return false
		}
	}
	return true
}

// Run applies the circuit to the basis state x and returns the resulting
// basis state. It fails with ErrNotClassical if the circuit contains an H
// gate; Rz gates are skipped since they leave basis states unchanged up to
// phase.
func Run(c *circuit.Circuit, x uint64) (uint64, error) {
	for _, g := range c.Gates() {
		switch g.Kind {
		case circuit.X:
			if controlsSatisfied(x, g.Controls) {
				x ^= 1 << g.Target
			}
		case circuit.Rz:
			// phase only
		default:
			return 0, fmt.Errorf("%w: contains %s gate", ErrNotClassical, g.Kind)
		}
	}
	return x, nil
}

// State is a statevector over a register of qubits; basis state x has bit q
// of x equal to the value of qubit q.
type State struct {
	nbQubits int
	amps     []complex128
}

// NewState returns the all-zero basis state |0...0⟩.
func NewState(nbQubits int) *State {
	return NewBasisState(nbQubits, 0)
}

// NewBasisState returns the basis state |x⟩.
func NewBasisState(nbQubits int, x uint64) *State {
	s := &State{
		nbQubits: nbQubits,
		amps:     make([]complex128, 1<<nbQubits),
	}
	s.amps[x] = 1
	return s
}

// NbQubits returns the register size.
func (s *State) NbQubits() int { return s.nbQubits }

// Amplitude returns the amplitude of basis state x.
func (s *State) Amplitude(x uint64) complex128 { return s.amps[x] }

// Apply applies a single gate to the state.
func (s *State) Apply(g circuit.Gate) {
	bit := uint64(1) << g.Target
	switch g.Kind {
	case circuit.X:
		for i := uint64(0); i < uint64(len(s.amps)); i++ {
			if i&bit == 0 && controlsSatisfied(i, g.Controls) {
				j := i | bit
				s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
			}
		}
	case circuit.Rz:
		// e^{-iθ} on basis states with the target bit set
		phase := cmplx.Exp(complex(0, -g.Angle))
		for i := uint64(0); i < uint64(len(s.amps)); i++ {
			if i&bit != 0 && controlsSatisfied(i, g.Controls) {
				s.amps[i] *= phase
			}
		}
	case circuit.H:
		f := complex(1/math.Sqrt2, 0)
		for i := uint64(0); i < uint64(len(s.amps)); i++ {
			if i&bit == 0 {
				j := i | bit
				a, b := s.amps[i], s.amps[j]
				s.amps[i] = f * (a + b)
				s.amps[j] = f * (a - b)
			}
		}
	}
}

// ApplyCircuit applies every gate of c in order.
func (s *State) ApplyCircuit(c *circuit.Circuit) {
	for _, g := range c.Gates() {
		s.Apply(g)
	}
}

// Basis reports whether the state is (numerically) a single basis state and
// returns it.
func (s *State) Basis() (uint64, bool) {
	const tol = 1e-9
	for i, a := range s.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p > 1-tol {
			return uint64(i), true
		}
	}
	return 0, false
}

// OutputBasis applies the circuit to basis state x and returns the resulting
// basis state, using the classical engine when possible and the statevector
// engine otherwise. It fails if the result is not a basis state.
func OutputBasis(c *circuit.Circuit, x uint64) (uint64, error) {
	if IsClassical(c) {
		return Run(c, x)
	}
	s := NewBasisState(c.NbQubits(), x)
	s.ApplyCircuit(c)
	out, ok := s.Basis()
	if !ok {
		return 0, fmt.Errorf("circuit output on basis state %d is not a basis state", x)
	}
	return out, nil
}
