package synth

import (
	"time"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/debug"
	"github.com/qsynth/qsynth/logger"
	"github.com/qsynth/qsynth/truthtable"
)

// DBS synthesizes a circuit for a reversible function given as a permutation
// using decomposition-based synthesis: for each variable v the permutation is
// rewritten as L ∘ p' ∘ R where L and R are single-target gates on v and p'
// preserves v, leaving the identity once every variable is processed. The 2n
// collected single-target gates are decomposed with the given strategy
// (Spectrum for unrecognized kinds).
//
// No ancilla qubits are used; each single-target gate is controlled by a
// function of the remaining n-1 variables.
func DBS(p Permutation, kind Kind) (*circuit.Circuit, error) {
	log := logger.Logger()
	start := time.Now()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.NbVars()
	work := make(Permutation, len(p))
	copy(work, p)

	rights := make([]*truthtable.TruthTable, n)
	lefts := make([]*truthtable.TruthTable, n)
	for v := 0; v < n; v++ {
		rights[v], lefts[v] = decompose(work, v)
	}
	for x := range work {
		debug.Assert(work[x] == uint32(x), "residual permutation must be the identity")
	}

	circ := circuit.New(n)
	stg := strategy(kind)
	for v := 0; v < n; v++ {
		emitSTG(circ, stg, n, v, rights[v])
	}
	for v := n - 1; v >= 0; v-- {
		emitSTG(circ, stg, n, v, lefts[v])
	}

	log.Debug().Int("nbQubits", n).Stringer("kind", kind).
		Int("nbGates", circ.NbGates()).Dur("took", time.Since(start)).Msg("decomposition-based synthesis done")
	return circ, nil
}

// decompose rewrites work as L ∘ work' ∘ R in place (work becomes work',
// which preserves bit v) and returns the control functions of R and L over
// the remaining variables, indexed by the other bits packed together.
//
// R and L act on pairs {x, x^e}: complementing bit v on the input side (R)
// or output side (L) when the pair's control bit is set. Input and output
// pairs form disjoint alternating cycles (each pair is incident to exactly
// two permutation edges); each cycle is seeded with an unflipped input pair
// and walked edge by edge, leaving every input pair through the member it
// was not entered on, so that every pair constraint on the cycle is
// propagated.
func decompose(work Permutation, v int) (r, l *truthtable.TruthTable) {
	n := work.NbVars()
	e := uint32(1) << v
	pairOf := func(x uint32) uint32 { return x&(e-1) | x>>1&^(e-1) }

	r = truthtable.New(n - 1)
	l = truthtable.New(n - 1)
	inv := work.inverse()

	visited := make([]bool, len(work)/2)
	for seed := range work {
		// x is a pre-R domain element; rbit is its pair's R flip
		x := uint32(seed)
		rbit := false
		for {
			pid := pairOf(x)
			if visited[pid] {
				break
			}
			visited[pid] = true
			if rbit {
				r.Set(int(pid))
			}
			xp := x
			if rbit {
				xp ^= e
			}
			y := work[xp]
			// L must restore bit v of the input
			lbit := (y&e != 0) != (x&e != 0)
			if lbit {
				l.Set(int(pairOf(y)))
			}
			// the partner output y^e shares the output pair's L flip,
			// which forces bit v of its preimage's domain element and
			// hence the R flip of the next input pair on the cycle
			y2 := y ^ e
			z := inv[y2]
			x2 := z &^ e
			if (y2&e != 0) != lbit {
				x2 |= e
			}
			rbit = x2 != z
			// continue through the other member of z's pair
			x = x2 ^ e
		}
	}

	next := make(Permutation, len(work))
	for x := range work {
		xp := uint32(x)
		if r.Bit(int(pairOf(uint32(x)))) {
			xp ^= e
		}
		t := work[xp]
		if l.Bit(int(pairOf(t))) {
			t ^= e
		}
		next[x] = t
	}
	copy(work, next)
	return r, l
}

// emitSTG appends the single-target gate on variable v controlled by the
// function control of the other variables in ascending order. Gates with an
// identically false control are the identity and are skipped.
func emitSTG(circ *circuit.Circuit, stg stgFn, n, v int, control *truthtable.TruthTable) {
	if control.IsZero() {
		return
	}
	inputs := make([]circuit.Qubit, 0, n-1)
	for q := 0; q < n; q++ {
		if q != v {
			inputs = append(inputs, circuit.Qubit(q))
		}
	}
	stg(circ, inputs, circuit.Qubit(v), control)
}
