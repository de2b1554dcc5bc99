// Package test provides helpers to check synthesized circuits against the
// mathematical objects they were synthesized from.
package test

import (
	"bytes"
	"fmt"
	"io"
	"math/bits"
	"math/cmplx"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/qsynth/qsynth/circuit"
	qsynthio "github.com/qsynth/qsynth/io"
	"github.com/qsynth/qsynth/logic"
	"github.com/qsynth/qsynth/sim"
	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/truthtable"
)

// phaseTol bounds the accumulated floating point error tolerated when
// comparing amplitudes.
const phaseTol = 1e-9

// Assert is a helper to test synthesized circuits.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for
// convenience.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized by
// the description strings descs.
func (assert *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	assert.t.Run(desc, func(t *testing.T) {
		fn(&Assert{t, require.New(t)})
	})
}

// Log logs using the test instance logger.
func (assert *Assert) Log(v ...interface{}) {
	assert.t.Log(v...)
}

// CheckPermutation fails the test unless circ maps every basis state x to
// p[x]; basis states are swept in parallel.
func (assert *Assert) CheckPermutation(circ *circuit.Circuit, p synth.Permutation) {
	assert.Equal(p.NbVars(), circ.NbQubits(), "register size")

	var g errgroup.Group
	for x := range p {
		g.Go(func() error {
			out, err := sim.OutputBasis(circ, uint64(x))
			if err != nil {
				return err
			}
			if out != uint64(p[x]) {
				return fmt.Errorf("input %d: got %d, want %d", x, out, p[x])
			}
			return nil
		})
	}
	assert.NoError(g.Wait(), "circuit does not realize the permutation")
}

// CheckOracle fails the test unless circ maps |x⟩|y⟩ to |x⟩|y ⊕ f(x)⟩ for
// every input x and target value y.
func (assert *Assert) CheckOracle(circ *circuit.Circuit, f *truthtable.TruthTable) {
	n := f.NbVars()
	assert.Equal(n+1, circ.NbQubits(), "register size")

	var g errgroup.Group
	for x := 0; x < f.Length(); x++ {
		for y := uint64(0); y <= 1; y++ {
			in := uint64(x) | y<<n
			want := uint64(x) | (y^b2u(f.Bit(x)))<<n
			g.Go(func() error {
				out, err := sim.OutputBasis(circ, in)
				if err != nil {
					return err
				}
				if out != want {
					return fmt.Errorf("input %b: got %b, want %b", in, out, want)
				}
				return nil
			})
		}
	}
	assert.NoError(g.Wait(), "circuit does not realize the oracle")
}

// CheckDiagonal fails the test unless circ realizes
// diag(1, e^{-iθ_1}, ..., e^{-iθ_{2^n-1}}) with angles[k-1] = θ_k.
func (assert *Assert) CheckDiagonal(circ *circuit.Circuit, angles []float64) {
	phases := make([]float64, len(angles)+1)
	copy(phases[1:], angles)
	assert.checkPhases(circ, phases)
}

// CheckParityPhases fails the test unless circ multiplies every basis state x
// by e^{-iφ(x)} with φ(x) the sum of the angles of the terms whose selected
// variables have odd parity in x.
func (assert *Assert) CheckParityPhases(circ *circuit.Circuit, terms []synth.ParityTerm) {
	phases := make([]float64, 1<<circ.NbQubits())
	for x := range phases {
		for _, term := range terms {
			if bits.OnesCount32(uint32(x)&term.Mask)&1 == 1 {
				phases[x] += term.Angle
			}
		}
	}
	assert.checkPhases(circ, phases)
}

// checkPhases verifies circ acts as diag(e^{-i phases[x]}) on the basis.
func (assert *Assert) checkPhases(circ *circuit.Circuit, phases []float64) {
	assert.Equal(len(phases), 1<<circ.NbQubits(), "register size")

	var g errgroup.Group
	for x := range phases {
		g.Go(func() error {
			s := sim.NewBasisState(circ.NbQubits(), uint64(x))
			s.ApplyCircuit(circ)
			want := cmplx.Exp(complex(0, -phases[x]))
			if d := cmplx.Abs(s.Amplitude(uint64(x)) - want); d > phaseTol {
				return fmt.Errorf("basis state %d: amplitude off by %g", x, d)
			}
			return nil
		})
	}
	assert.NoError(g.Wait(), "circuit does not realize the diagonal")
}

// CheckNetwork fails the test unless circ computes the network's outputs on
// the qubits stats reports, leaves the input qubits unchanged and returns
// every ancilla to zero, for all input assignments.
func (assert *Assert) CheckNetwork(circ *circuit.Circuit, stats *synth.Stats, ntk *logic.Network) {
	assert.Equal(ntk.NbInputs(), len(stats.InputIndexes), "input count")
	assert.Equal(ntk.NbOutputs(), len(stats.OutputIndexes), "output count")

	isOutput := make(map[uint32]bool, len(stats.OutputIndexes))
	for _, q := range stats.OutputIndexes {
		isOutput[q] = true
	}

	var g errgroup.Group
	for x := uint64(0); x < 1<<ntk.NbInputs(); x++ {
		g.Go(func() error {
			var in uint64
			for i, q := range stats.InputIndexes {
				if x&(1<<i) != 0 {
					in |= 1 << q
				}
			}
			out, err := sim.Run(circ, in)
			if err != nil {
				return err
			}
			want := ntk.Eval(x)
			for j, q := range stats.OutputIndexes {
				if out&(1<<q) != 0 != (want&(1<<j) != 0) {
					return fmt.Errorf("input %b: output %d wrong", x, j)
				}
			}
			for i, q := range stats.InputIndexes {
				if out&(1<<q) != 0 != (x&(1<<i) != 0) {
					return fmt.Errorf("input %b: input qubit %d modified", x, q)
				}
			}
			for q := uint32(0); q < uint32(circ.NbQubits()); q++ {
				if isOutput[q] || int(q) < len(stats.InputIndexes) {
					continue
				}
				if out&(1<<q) != 0 {
					return fmt.Errorf("input %b: ancilla %d not returned to zero", x, q)
				}
			}
			return nil
		})
	}
	assert.NoError(g.Wait(), "circuit does not realize the network")
}

// RoundTripCheck serializes from, reconstructs a fresh object with builder
// and compares; every (WriteTo, WriteRawTo) x (ReadFrom, UnsafeReadFrom)
// combination the two objects implement is exercised.
func (assert *Assert) RoundTripCheck(from any, builder func() any, descs ...string) {
	assert.Run(func(assert *Assert) {
		var buf bytes.Buffer

		check := func(written int64) {
			// if builder implements io.ReaderFrom
			if r, ok := builder().(io.ReaderFrom); ok {
				read, err := r.ReadFrom(bytes.NewReader(buf.Bytes()))
				assert.NoError(err)
				assert.True(reflect.DeepEqual(from, r), "reconstructed object don't match original (ReadFrom)")
				assert.Equal(written, read, "bytes written / read don't match")
			}

			// if builder implements qsynthio.UnsafeReaderFrom
			if r, ok := builder().(qsynthio.UnsafeReaderFrom); ok {
				read, err := r.UnsafeReadFrom(bytes.NewReader(buf.Bytes()))
				assert.NoError(err)
				assert.True(reflect.DeepEqual(from, r), "reconstructed object don't match original (UnsafeReadFrom)")
				assert.Equal(written, read, "bytes written / read don't match")
			}
		}

		// if from implements io.WriterTo
		if w, ok := from.(io.WriterTo); ok {
			written, err := w.WriteTo(&buf)
			assert.NoError(err)

			check(written)
		}

		buf.Reset()

		// if from implements qsynthio.WriterRawTo
		if w, ok := from.(qsynthio.WriterRawTo); ok {
			written, err := w.WriteRawTo(&buf)
			assert.NoError(err)

			check(written)
		}
	}, descs...)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
