package qsynth_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/test"
	"github.com/qsynth/qsynth/truthtable"
)

// TestPermutationSynthesisAgreement cross-checks the two permutation
// synthesizers: whatever the gate decomposition, the synthesized circuits
// must realize the same function.
func TestPermutationSynthesisAgreement(t *testing.T) {
	assert := test.NewAssert(t)
	rng := rand.New(rand.NewSource(17))

	for n := 1; n <= 4; n++ {
		p := make(synth.Permutation, 1<<n)
		for i, v := range rng.Perm(len(p)) {
			p[i] = uint32(v)
		}
		assert.Run(func(assert *test.Assert) {
			tbs, err := synth.TBS(p)
			assert.NoError(err)
			assert.CheckPermutation(tbs, p)

			for _, kind := range []synth.Kind{synth.Spectrum, synth.PPRM, synth.PKRM} {
				dbs, err := synth.DBS(p, kind)
				assert.NoError(err)
				assert.CheckPermutation(dbs, p)
			}
		})
	}
}

// TestSynthesizeSerializeSimulate runs the full pipeline: synthesize an
// oracle, serialize it, read it back and check the deserialized circuit still
// computes the function.
func TestSynthesizeSerializeSimulate(t *testing.T) {
	assert := test.NewAssert(t)

	f, err := truthtable.FromBinaryString("11101000")
	assert.NoError(err)

	for _, kind := range []synth.Kind{synth.Spectrum, synth.PPRM, synth.PKRM} {
		assert.Run(func(assert *test.Assert) {
			circ, err := synth.Oracle(f, kind)
			assert.NoError(err)

			var buf bytes.Buffer
			_, err = circ.WriteTo(&buf)
			assert.NoError(err)

			var back circuit.Circuit
			_, err = back.ReadFrom(&buf)
			assert.NoError(err)

			assert.CheckOracle(&back, f)
		}, kind.String())
	}
}
