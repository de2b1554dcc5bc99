// Package logic implements combinational logic networks: directed acyclic
// graphs of AND/XOR/MAJ gates with complemented edges, designated primary
// inputs and designated primary outputs.
//
// Networks are built once through the append-only builder API (or read from
// a bench file) and consumed read-only by the synthesis algorithms.
package logic

import (
	"errors"
	"fmt"
)

// ErrInvalidLogicNetwork is returned when a network is structurally malformed
// or a primary output is not reachable from the primary inputs.
var ErrInvalidLogicNetwork = errors.New("invalid logic network")

// Signal references a node together with a complement flag on the edge.
type Signal uint32

// MakeSignal builds a signal pointing at node with the given complement flag.
func MakeSignal(node uint32, complemented bool) Signal {
	s := Signal(node << 1)
	if complemented {
		s |= 1
	}
	return s
}

// Node returns the index of the referenced node.
func (s Signal) Node() uint32 { return uint32(s) >> 1 }

// Complemented reports whether the edge inverts the node's value.
func (s Signal) Complemented() bool { return s&1 == 1 }

// Not returns the complemented signal.
func (s Signal) Not() Signal { return s ^ 1 }

// ConstFalse is the constant-false signal (node 0); its complement is
// constant true.
const ConstFalse Signal = 0

// ConstTrue is the constant-true signal.
const ConstTrue Signal = 1

// GateKind enumerates the node functions a network may contain.
type GateKind uint8

const (
	// And is the 2-input conjunction.
	And GateKind = iota
	// Xor is the 2-input exclusive or.
	Xor
	// Maj is the 3-input majority.
	Maj
)

func (k GateKind) String() string {
	switch k {
	case And:
		return "and"
	case Xor:
		return "xor"
	case Maj:
		return "maj"
	default:
		return fmt.Sprintf("gatekind(%d)", uint8(k))
	}
}

type node struct {
	kind   GateKind
	fanins []Signal
}

// Network is a logic network. Node 0 is the constant false; nodes 1..NbInputs
// are the primary inputs; the remaining nodes are gates in topological order.
type Network struct {
	nbInputs int
	nodes    []node
	outputs  []Signal
}

// New returns an empty network.
func New() *Network {
	return &Network{nodes: make([]node, 1)}
}

// AddInput appends a primary input and returns its signal. Inputs must be
// declared before any gate.
func (n *Network) AddInput() Signal {
	if len(n.nodes) != n.nbInputs+1 {
		panic("logic: primary inputs must be declared before gates")
	}
	n.nbInputs++
	n.nodes = append(n.nodes, node{})
	return MakeSignal(uint32(len(n.nodes)-1), false)
}

func (n *Network) checkSignal(s Signal) {
	if int(s.Node()) >= len(n.nodes) {
		panic(fmt.Sprintf("logic: signal references unknown node %d", s.Node()))
	}
}

func (n *Network) appendGate(kind GateKind, fanins ...Signal) Signal {
	n.nodes = append(n.nodes, node{kind: kind, fanins: fanins})
	return MakeSignal(uint32(len(n.nodes)-1), false)
}

// AddAnd returns a signal computing a ∧ b, folding constants and trivial
// cases so that gate nodes never have constant fanins.
func (n *Network) AddAnd(a, b Signal) Signal {
	n.checkSignal(a)
	n.checkSignal(b)
	switch {
	case a == ConstFalse || b == ConstFalse:
		return ConstFalse
	case a == ConstTrue:
		return b
	case b == ConstTrue:
		return a
	case a == b:
		return a
	case a == b.Not():
		return ConstFalse
	}
	return n.appendGate(And, a, b)
}

// AddOr returns a signal computing a ∨ b via De Morgan on AddAnd.
func (n *Network) AddOr(a, b Signal) Signal {
	return n.AddAnd(a.Not(), b.Not()).Not()
}

// AddXor returns a signal computing a ⊕ b.
func (n *Network) AddXor(a, b Signal) Signal {
	n.checkSignal(a)
	n.checkSignal(b)
	// normalize the complement onto the edge we return
	switch {
	case a == ConstFalse:
		return b
	case a == ConstTrue:
		return b.Not()
	case b == ConstFalse:
		return a
	case b == ConstTrue:
		return a.Not()
	case a == b:
		return ConstFalse
	case a == b.Not():
		return ConstTrue
	}
	compl := a.Complemented() != b.Complemented()
	s := n.appendGate(Xor, a&^1, b&^1)
	if compl {
		s = s.Not()
	}
	return s
}

// AddMaj returns a signal computing the majority of a, b and c.
func (n *Network) AddMaj(a, b, c Signal) Signal {
	n.checkSignal(a)
	n.checkSignal(b)
	n.checkSignal(c)
	switch {
	case a == b || a == c:
		return a
	case b == c:
		return b
	case a == b.Not():
		return c
	case a == c.Not():
		return b
	case b == c.Not():
		return a
	}
	switch {
	case a == ConstFalse:
		return n.AddAnd(b, c)
	case a == ConstTrue:
		return n.AddOr(b, c)
	case b == ConstFalse:
		return n.AddAnd(a, c)
	case b == ConstTrue:
		return n.AddOr(a, c)
	case c == ConstFalse:
		return n.AddAnd(a, b)
	case c == ConstTrue:
		return n.AddOr(a, b)
	}
	return n.appendGate(Maj, a, b, c)
}

// AddOutput declares s as the next primary output.
func (n *Network) AddOutput(s Signal) {
	n.checkSignal(s)
	n.outputs = append(n.outputs, s)
}

// NbInputs returns the number of primary inputs.
func (n *Network) NbInputs() int { return n.nbInputs }

// NbOutputs returns the number of primary outputs.
func (n *Network) NbOutputs() int { return len(n.outputs) }

// NbGates returns the number of gate nodes.
func (n *Network) NbGates() int { return len(n.nodes) - 1 - n.nbInputs }

// Outputs returns the primary output signals in declaration order. The
// returned slice must not be modified.
func (n *Network) Outputs() []Signal { return n.outputs }

// InputSignal returns the signal of the i-th primary input.
func (n *Network) InputSignal(i int) Signal {
	return MakeSignal(uint32(1+i), false)
}

// IsInput reports whether node is a primary input.
func (n *Network) IsInput(node uint32) bool {
	return node >= 1 && int(node) <= n.nbInputs
}

// firstGate returns the index of the first gate node.
func (n *Network) firstGate() uint32 { return uint32(n.nbInputs + 1) }

// Kind returns the gate kind of the given gate node.
func (n *Network) Kind(node uint32) GateKind { return n.nodes[node].kind }

// Fanins returns the fanin signals of the given gate node. The returned
// slice must not be modified.
func (n *Network) Fanins(node uint32) []Signal { return n.nodes[node].fanins }

// ForEachGate calls f for every gate node in topological order.
func (n *Network) ForEachGate(f func(node uint32, kind GateKind, fanins []Signal)) {
	for i := n.firstGate(); i < uint32(len(n.nodes)); i++ {
		f(i, n.nodes[i].kind, n.nodes[i].fanins)
	}
}

// Validate checks the structural invariants: gate fanins reference earlier,
// non-constant nodes with the arity their kind requires, and every primary
// output is reachable from the primary inputs.
func (n *Network) Validate() error {
	if len(n.nodes) == 0 {
		return fmt.Errorf("%w: missing constant node", ErrInvalidLogicNetwork)
	}
	if len(n.outputs) == 0 {
		return fmt.Errorf("%w: no primary outputs", ErrInvalidLogicNetwork)
	}
	for i := n.firstGate(); i < uint32(len(n.nodes)); i++ {
		nd := n.nodes[i]
		arity := 2
		if nd.kind == Maj {
			arity = 3
		}
		if nd.kind > Maj {
			return fmt.Errorf("%w: node %d has unknown kind", ErrInvalidLogicNetwork, i)
		}
		if len(nd.fanins) != arity {
			return fmt.Errorf("%w: node %d has %d fanins, %s requires %d", ErrInvalidLogicNetwork, i, len(nd.fanins), nd.kind, arity)
		}
		for _, s := range nd.fanins {
			if s.Node() == 0 {
				return fmt.Errorf("%w: node %d has a constant fanin", ErrInvalidLogicNetwork, i)
			}
			if s.Node() >= i {
				return fmt.Errorf("%w: node %d fanin %d breaks topological order", ErrInvalidLogicNetwork, i, s.Node())
			}
		}
	}
	for i, s := range n.outputs {
		if int(s.Node()) >= len(n.nodes) {
			return fmt.Errorf("%w: output %d references unknown node %d", ErrInvalidLogicNetwork, i, s.Node())
		}
		if s.Node() == 0 {
			return fmt.Errorf("%w: output %d is not reachable from the primary inputs", ErrInvalidLogicNetwork, i)
		}
	}
	return nil
}

// Eval evaluates the network on the given input assignment (bit i is the
// i-th primary input) and returns the output assignment (bit j is the j-th
// primary output).
func (n *Network) Eval(input uint64) uint64 {
	values := make([]bool, len(n.nodes))
	for i := 0; i < n.nbInputs; i++ {
		values[1+i] = input&(1<<i) != 0
	}
	lit := func(s Signal) bool { return values[s.Node()] != s.Complemented() }
	for i := n.firstGate(); i < uint32(len(n.nodes)); i++ {
		nd := n.nodes[i]
		switch nd.kind {
		case And:
			values[i] = lit(nd.fanins[0]) && lit(nd.fanins[1])
		case Xor:
			values[i] = lit(nd.fanins[0]) != lit(nd.fanins[1])
		case Maj:
			a, b, c := lit(nd.fanins[0]), lit(nd.fanins[1]), lit(nd.fanins[2])
			values[i] = (a && b) || (a && c) || (b && c)
		}
	}
	var out uint64
	for j, s := range n.outputs {
		if lit(s) {
			out |= 1 << j
		}
	}
	return out
}
