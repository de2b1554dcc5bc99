package synth

import (
	"errors"
	"time"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/debug"
	"github.com/qsynth/qsynth/logger"
	"github.com/qsynth/qsynth/logic"
)

// Stats reports where a hierarchically synthesized circuit's logical inputs
// and outputs ended up in the qubit register.
type Stats struct {
	InputIndexes  []uint32
	OutputIndexes []uint32
}

// LHRS synthesizes a Bennett-style reversible circuit from a logic network:
// every gate node is computed into an ancilla qubit with Toffoli-class gates
// and uncomputed once its last consumer no longer needs it, so that at the
// end only the primary inputs (unchanged) and the primary outputs hold
// non-zero values. Freed ancillae are reused.
//
// Qubits 0..NbInputs-1 carry the primary inputs; the returned Stats gives
// the input and output qubit indexes.
func LHRS(ntk *logic.Network) (*circuit.Circuit, *Stats, error) {
	log := logger.Logger()
	start := time.Now()

	if ntk == nil {
		return nil, nil, errors.New("nil logic network")
	}
	if err := ntk.Validate(); err != nil {
		return nil, nil, err
	}

	nbNodes := uint32(1 + ntk.NbInputs() + ntk.NbGates())
	circ := circuit.New(0)
	stats := &Stats{}

	qubitOf := make([]int32, nbNodes)
	for i := range qubitOf {
		qubitOf[i] = -1
	}
	for i := 0; i < ntk.NbInputs(); i++ {
		q := circ.AddQubit()
		qubitOf[ntk.InputSignal(i).Node()] = int32(q)
		stats.InputIndexes = append(stats.InputIndexes, uint32(q))
	}

	// nodes not in the transitive fanin of an output are never computed
	alive := make([]bool, nbNodes)
	var stack []uint32
	for _, s := range ntk.Outputs() {
		stack = append(stack, s.Node())
	}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if alive[nd] {
			continue
		}
		alive[nd] = true
		if !ntk.IsInput(nd) {
			for _, s := range ntk.Fanins(nd) {
				stack = append(stack, s.Node())
			}
		}
	}

	refs := make([]int, nbNodes)
	poCount := make([]int, nbNodes)
	ntk.ForEachGate(func(idx uint32, _ logic.GateKind, fanins []logic.Signal) {
		if !alive[idx] {
			return
		}
		for _, s := range fanins {
			refs[s.Node()]++
		}
	})
	for _, s := range ntk.Outputs() {
		refs[s.Node()]++
		poCount[s.Node()]++
	}

	// a gate node claimed by an output keeps its qubit forever and is never
	// uncomputed; a node whose outputs are all shared complements is copied
	// instead and must be cleaned up like any other ancilla
	willClaim := make([]bool, nbNodes)
	for _, s := range ntk.Outputs() {
		nd := s.Node()
		if !ntk.IsInput(nd) && (poCount[nd] == 1 || !s.Complemented()) {
			willClaim[nd] = true
		}
	}

	var free []circuit.Qubit
	alloc := func() circuit.Qubit {
		if len(free) > 0 {
			q := free[len(free)-1]
			free = free[:len(free)-1]
			return q
		}
		return circ.AddQubit()
	}

	// compute gates per node, replayed in reverse to uncompute
	seqs := make([][]circuit.Gate, nbNodes)

	var release func(node uint32)
	uncompute := func(idx uint32) {
		seq := seqs[idx]
		for i := len(seq) - 1; i >= 0; i-- {
			emit(circ, seq[i])
		}
		free = append(free, circuit.Qubit(qubitOf[idx]))
		qubitOf[idx] = -1
		seqs[idx] = nil
		for _, s := range ntk.Fanins(idx) {
			release(s.Node())
		}
	}
	release = func(node uint32) {
		if ntk.IsInput(node) {
			return
		}
		refs[node]--
		if refs[node] == 0 {
			uncompute(node)
		}
	}

	ntk.ForEachGate(func(idx uint32, kind logic.GateKind, fanins []logic.Signal) {
		if !alive[idx] {
			return
		}
		q := alloc()
		seq := computeGates(kind, fanins, qubitOf, q)
		for _, g := range seq {
			emit(circ, g)
		}
		seqs[idx] = seq
		qubitOf[idx] = int32(q)
		if willClaim[idx] {
			// the node outlives the synthesis; its fanin holds end here
			for _, s := range fanins {
				release(s.Node())
			}
		}
	})

	// flips on claimed qubits wait until the cleanup below is done, since a
	// claimed qubit may still control an uncompute sequence
	var deferredFlips []circuit.Qubit
	claimed := make([]bool, nbNodes)
	for _, s := range ntk.Outputs() {
		nd := s.Node()
		nq := circuit.Qubit(qubitOf[nd])
		var q circuit.Qubit
		switch {
		case !ntk.IsInput(nd) && !claimed[nd] && poCount[nd] == 1:
			q = nq
			claimed[nd] = true
			if s.Complemented() {
				deferredFlips = append(deferredFlips, q)
			}
		case !ntk.IsInput(nd) && !claimed[nd] && !s.Complemented():
			// shared node, first plain reference keeps it
			q = nq
			claimed[nd] = true
		default:
			q = alloc()
			emitCX(circ, nq, q)
			if s.Complemented() {
				emitX(circ, q)
			}
		}
		stats.OutputIndexes = append(stats.OutputIndexes, uint32(q))
	}

	// output nodes consumed only through copies still hold their function;
	// uncompute them now, newest first so fanin holds unwind in order
	for idx := nbNodes - 1; idx >= 1; idx-- {
		if ntk.IsInput(idx) || !alive[idx] || poCount[idx] == 0 || willClaim[idx] {
			continue
		}
		refs[idx] -= poCount[idx]
		debug.Assert(refs[idx] == 0, "copied output node must have no remaining consumers")
		uncompute(idx)
	}
	for _, q := range deferredFlips {
		emitX(circ, q)
	}

	log.Debug().Int("nbInputs", ntk.NbInputs()).Int("nbOutputs", ntk.NbOutputs()).
		Int("nbQubits", circ.NbQubits()).Int("nbGates", circ.NbGates()).
		Dur("took", time.Since(start)).Msg("hierarchical synthesis done")
	return circ, stats, nil
}

// computeGates returns the self-inverse gate sequence XOR-ing the node's
// function into target, with fanin complements absorbed as negative controls
// (or a trailing X for XOR parity).
func computeGates(kind logic.GateKind, fanins []logic.Signal, qubitOf []int32, target circuit.Qubit) []circuit.Gate {
	ctrl := func(s logic.Signal) circuit.Control {
		q := circuit.Qubit(qubitOf[s.Node()])
		if s.Complemented() {
			return circuit.Neg(q)
		}
		return circuit.Pos(q)
	}
	qb := func(s logic.Signal) circuit.Qubit { return circuit.Qubit(qubitOf[s.Node()]) }

	switch kind {
	case logic.And:
		return []circuit.Gate{
			{Kind: circuit.X, Target: target, Controls: []circuit.Control{ctrl(fanins[0]), ctrl(fanins[1])}},
		}
	case logic.Xor:
		seq := []circuit.Gate{
			{Kind: circuit.X, Target: target, Controls: []circuit.Control{circuit.Pos(qb(fanins[0]))}},
			{Kind: circuit.X, Target: target, Controls: []circuit.Control{circuit.Pos(qb(fanins[1]))}},
		}
		if fanins[0].Complemented() != fanins[1].Complemented() {
			seq = append(seq, circuit.Gate{Kind: circuit.X, Target: target})
		}
		return seq
	case logic.Maj:
		// maj(a,b,c) = ab ⊕ ac ⊕ bc on the literals
		return []circuit.Gate{
			{Kind: circuit.X, Target: target, Controls: []circuit.Control{ctrl(fanins[0]), ctrl(fanins[1])}},
			{Kind: circuit.X, Target: target, Controls: []circuit.Control{ctrl(fanins[0]), ctrl(fanins[2])}},
			{Kind: circuit.X, Target: target, Controls: []circuit.Control{ctrl(fanins[1]), ctrl(fanins[2])}},
		}
	default:
		panic("qsynth internal error: unknown gate kind " + kind.String())
	}
}
