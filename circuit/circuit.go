// Package circuit defines the gate-level netlist produced by the synthesis
// algorithms: a fixed qubit register together with an ordered, append-only
// sequence of gates.
//
// Circuits are built incrementally by a synthesis call and returned as
// immutable results; no removal or reordering operation is exposed.
package circuit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qsynth/qsynth/profile"
)

// ErrInvalidGate is returned by Append when a gate references a qubit outside
// the register, lists its target among its controls, or carries an angle
// inconsistent with its kind.
var ErrInvalidGate = errors.New("invalid gate")

// Qubit is an index into a circuit's register.
type Qubit uint32

// Polarity of a gate control.
type Polarity uint8

const (
	// Positive controls activate on |1⟩.
	Positive Polarity = iota
	// Negative controls activate on |0⟩.
	Negative
)

// Kind enumerates the gate kinds emitted by the synthesis algorithms.
type Kind uint8

const (
	// H is the Hadamard gate. It takes no controls and no angle.
	H Kind = iota
	// X is the NOT gate; with k controls it is a multiple-controlled NOT
	// (k=1 CNOT, k=2 Toffoli).
	X
	// Rz is a phase rotation: basis states with the target bit set are
	// multiplied by e^{-iθ}.
	Rz
)

func (k Kind) String() string {
	switch k {
	case H:
		return "h"
	case X:
		return "x"
	case Rz:
		return "rz"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Control is a control qubit tagged with a polarity.
type Control struct {
	Qubit    Qubit
	Polarity Polarity
}

// Pos returns a positive-polarity control on q.
func Pos(q Qubit) Control { return Control{Qubit: q} }

// Neg returns a negative-polarity control on q.
func Neg(q Qubit) Control { return Control{Qubit: q, Polarity: Negative} }

// Gate is an elementary operation: a kind, an ordered set of controls, one
// target and, for Rz, a rotation angle in radians.
type Gate struct {
	Kind     Kind
	Controls []Control
	Target   Qubit
	Angle    float64
}

// Circuit is an ordered sequence of gates over a fixed-size qubit register.
type Circuit struct {
	nbQubits uint32
	gates    []Gate
}

// New returns an empty circuit with a register of nbQubits qubits.
func New(nbQubits int) *Circuit {
	return &Circuit{nbQubits: uint32(nbQubits)}
}

// AddQubit grows the register by one and returns the new qubit's index.
func (c *Circuit) AddQubit() Qubit {
	q := Qubit(c.nbQubits)
	c.nbQubits++
	return q
}

// NbQubits returns the size of the circuit's register.
func (c *Circuit) NbQubits() int { return int(c.nbQubits) }

// NbGates returns the number of gates appended so far.
func (c *Circuit) NbGates() int { return len(c.gates) }

// Gates returns the circuit's gates in execution order. The returned slice is
// owned by the circuit and must not be modified.
func (c *Circuit) Gates() []Gate { return c.gates }

// Append validates g against the register and appends it. The circuit is
// untouched if validation fails.
func (c *Circuit) Append(g Gate) error {
	if g.Target >= Qubit(c.nbQubits) {
		return fmt.Errorf("%w: target %d out of range (register size %d)", ErrInvalidGate, g.Target, c.nbQubits)
	}
	seen := make(map[Qubit]struct{}, len(g.Controls))
	for _, ctrl := range g.Controls {
		if ctrl.Qubit >= Qubit(c.nbQubits) {
			return fmt.Errorf("%w: control %d out of range (register size %d)", ErrInvalidGate, ctrl.Qubit, c.nbQubits)
		}
		if ctrl.Qubit == g.Target {
			return fmt.Errorf("%w: target %d appears among controls", ErrInvalidGate, g.Target)
		}
		if _, ok := seen[ctrl.Qubit]; ok {
			return fmt.Errorf("%w: duplicate control %d", ErrInvalidGate, ctrl.Qubit)
		}
		seen[ctrl.Qubit] = struct{}{}
	}
	switch g.Kind {
	case H:
		if len(g.Controls) != 0 {
			return fmt.Errorf("%w: h takes no controls", ErrInvalidGate)
		}
		fallthrough
	case X:
		if g.Angle != 0 {
			return fmt.Errorf("%w: %s takes no angle", ErrInvalidGate, g.Kind)
		}
	case Rz:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidGate, uint8(g.Kind))
	}
	c.gates = append(c.gates, g)
	profile.RecordGate()
	return nil
}

func (c *Circuit) String() string {
	var sbb strings.Builder
	fmt.Fprintf(&sbb, "circuit with %d qubits, %d gates\n", c.nbQubits, len(c.gates))
	for _, g := range c.gates {
		sbb.WriteString(g.String())
		sbb.WriteByte('\n')
	}
	return sbb.String()
}

func (g Gate) String() string {
	var sbb strings.Builder
	sbb.WriteString(g.Kind.String())
	if g.Kind == Rz {
		fmt.Fprintf(&sbb, "(%g)", g.Angle)
	}
	fmt.Fprintf(&sbb, " q%d", g.Target)
	for i, ctrl := range g.Controls {
		if i == 0 {
			sbb.WriteString(" ?")
		}
		if ctrl.Polarity == Negative {
			fmt.Fprintf(&sbb, " !q%d", ctrl.Qubit)
		} else {
			fmt.Fprintf(&sbb, " q%d", ctrl.Qubit)
		}
	}
	return sbb.String()
}
