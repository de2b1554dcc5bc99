package synth_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/sim"
	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/test"
)

func randomPermutation(seed int64, nbVars int) synth.Permutation {
	rng := rand.New(rand.NewSource(seed))
	p := make(synth.Permutation, 1<<nbVars)
	for i, v := range rng.Perm(len(p)) {
		p[i] = uint32(v)
	}
	return p
}

func realizesPermutation(circ *circuit.Circuit, p synth.Permutation) bool {
	for x := range p {
		out, err := sim.OutputBasis(circ, uint64(x))
		if err != nil || out != uint64(p[x]) {
			return false
		}
	}
	return true
}

func TestTBSKnownPermutations(t *testing.T) {
	assert := test.NewAssert(t)

	cases := map[string]synth.Permutation{
		"identity": {0, 1, 2, 3},
		"not":      {1, 0},
		"cnot":     {0, 1, 3, 2},
		"swap":     {0, 2, 1, 3},
		"toffoli":  {0, 1, 2, 3, 4, 5, 7, 6},
		"fredkin":  {0, 1, 2, 3, 4, 6, 5, 7},
		"cycle":    {1, 2, 3, 0},
	}
	for name, p := range cases {
		assert.Run(func(assert *test.Assert) {
			circ, err := synth.TBS(p)
			assert.NoError(err)
			assert.CheckPermutation(circ, p)
		}, name)
	}
}

func TestTBSIdentityIsEmpty(t *testing.T) {
	assert := test.NewAssert(t)

	circ, err := synth.TBS(synth.Permutation{0, 1, 2, 3, 4, 5, 6, 7})
	assert.NoError(err)
	assert.Equal(0, circ.NbGates())
}

func TestTBSEmitsOnlyPositiveMCX(t *testing.T) {
	assert := test.NewAssert(t)

	circ, err := synth.TBS(randomPermutation(7, 4))
	assert.NoError(err)
	for _, g := range circ.Gates() {
		assert.Equal(circuit.X, g.Kind)
		for _, ctrl := range g.Controls {
			assert.Equal(circuit.Positive, ctrl.Polarity)
		}
	}
}

func TestTBSInvalidPermutation(t *testing.T) {
	assert := test.NewAssert(t)

	for _, p := range []synth.Permutation{
		{0, 1, 1},    // not a power of two
		{0, 1, 1, 0}, // repeated image
		{0, 1, 2, 4}, // out of range
		{},
	} {
		_, err := synth.TBS(p)
		assert.Error(err)
		assert.True(errors.Is(err, synth.ErrInvalidPermutation))
	}
}

func TestTBSRandomPermutations(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)
	properties.Property("synthesized circuit realizes the permutation", prop.ForAll(
		func(seed int64, nbVars int) bool {
			p := randomPermutation(seed, nbVars)
			circ, err := synth.TBS(p)
			if err != nil {
				return false
			}
			return realizesPermutation(circ, p)
		},
		gen.Int64(),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
