package synth

import (
	"math"
	"math/bits"
	"slices"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/truthtable"
)

// stgFn appends a single-target gate onto circ: it flips target exactly on
// assignments where f(inputs) = 1 and restores the input qubits. inputs[v]
// carries variable v of f.
type stgFn func(circ *circuit.Circuit, inputs []circuit.Qubit, target circuit.Qubit, f *truthtable.TruthTable)

func strategy(kind Kind) stgFn {
	switch kind {
	case PPRM:
		return stgFromPPRM
	case PKRM:
		return stgFromPKRM
	default:
		return stgFromSpectrum
	}
}

// stgFromSpectrum conjugates a phase polynomial with Hadamards on the target:
// basis states where f holds pick up a π phase on the target's |1⟩ branch,
// which HZH turns into a NOT.
func stgFromSpectrum(circ *circuit.Circuit, inputs []circuit.Qubit, target circuit.Qubit, f *truthtable.TruthTable) {
	n := len(inputs)
	phases := make([]float64, 1<<(n+1))
	for x := 0; x < 1<<n; x++ {
		if f.Bit(x) {
			phases[1<<n|x] = math.Pi
		}
	}
	w := append(slices.Clone(inputs), target)

	emitH(circ, target)
	graySynth(circ, w, phasePolynomial(phases))
	emitH(circ, target)
}

// stgFromPPRM emits one positively controlled NOT per monomial of the
// positive-polarity Reed-Muller expansion of f.
func stgFromPPRM(circ *circuit.Circuit, inputs []circuit.Qubit, target circuit.Qubit, f *truthtable.TruthTable) {
	anf := f.PPRM()
	for m := 0; m < anf.Length(); m++ {
		if !anf.Bit(m) {
			continue
		}
		var controls []circuit.Control
		for vars := uint32(m); vars != 0; vars &= vars - 1 {
			controls = append(controls, circuit.Pos(inputs[bits.TrailingZeros32(vars)]))
		}
		emitX(circ, target, controls...)
	}
}

// stgFromPKRM emits one mixed-polarity controlled NOT per cube of an
// exclusive-sum-of-products cover of f. The cover never has more cubes than
// the PPRM expansion since positive Davio expansion is among the candidates
// at every variable.
func stgFromPKRM(circ *circuit.Circuit, inputs []circuit.Qubit, target circuit.Qubit, f *truthtable.TruthTable) {
	for _, cb := range optimumPKRM(f) {
		var controls []circuit.Control
		for vars := cb.mask; vars != 0; vars &= vars - 1 {
			v := bits.TrailingZeros32(vars)
			if cb.polarity&(1<<v) != 0 {
				controls = append(controls, circuit.Pos(inputs[v]))
			} else {
				controls = append(controls, circuit.Neg(inputs[v]))
			}
		}
		emitX(circ, target, controls...)
	}
}

// cube is a product of literals: the set bits of mask select the variables,
// polarity gives each selected variable's phase (1 = plain, 0 = negated).
type cube struct {
	mask, polarity uint32
}

// optimumPKRM covers f with an exclusive sum of mixed-polarity cubes. At each
// variable it recursively compares the Shannon, positive-Davio and
// negative-Davio expansions and keeps the smallest cover; subcovers are
// memoized on the cofactor's bit pattern.
func optimumPKRM(f *truthtable.TruthTable) []cube {
	memo := make(map[string][]cube)
	return pkrmCover(f, memo)
}

func pkrmCover(f *truthtable.TruthTable, memo map[string][]cube) []cube {
	if f.IsZero() {
		return nil
	}
	key := f.String()
	if cover, ok := memo[key]; ok {
		return cover
	}
	v := topVar(f)
	if v < 0 {
		// constant one
		cover := []cube{{}}
		memo[key] = cover
		return cover
	}

	f0 := f.Cofactor0(v)
	f1 := f.Cofactor1(v)
	f2 := f0.Xor(f1)

	c0 := pkrmCover(f0, memo)
	c1 := pkrmCover(f1, memo)
	c2 := pkrmCover(f2, memo)

	costPosDavio := len(c0) + len(c2)
	costNegDavio := len(c1) + len(c2)
	costShannon := len(c0) + len(c1)

	var cover []cube
	switch {
	case costPosDavio <= costNegDavio && costPosDavio <= costShannon:
		cover = append(withLiteral(c2, v, true), c0...)
	case costNegDavio <= costShannon:
		cover = append(withLiteral(c2, v, false), c1...)
	default:
		cover = append(withLiteral(c0, v, false), withLiteral(c1, v, true)...)
	}
	memo[key] = cover
	return cover
}

// withLiteral copies the cubes, each extended with a literal on variable v.
func withLiteral(cubes []cube, v int, positive bool) []cube {
	out := make([]cube, 0, len(cubes))
	for _, cb := range cubes {
		cb.mask |= 1 << v
		if positive {
			cb.polarity |= 1 << v
		}
		out = append(out, cb)
	}
	return out
}

// topVar returns the highest variable f depends on, or -1 when f is constant.
func topVar(f *truthtable.TruthTable) int {
	for v := f.NbVars() - 1; v >= 0; v-- {
		if f.DependsOn(v) {
			return v
		}
	}
	return -1
}
