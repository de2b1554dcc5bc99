package synth_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/test"
)

var stgKinds = map[string]synth.Kind{
	"spectrum": synth.Spectrum,
	"pprm":     synth.PPRM,
	"pkrm":     synth.PKRM,
}

func TestDBSKnownPermutations(t *testing.T) {
	assert := test.NewAssert(t)

	cases := map[string]synth.Permutation{
		"identity":  {0, 1},
		"not":       {1, 0},
		"cnot":      {0, 1, 3, 2},
		"swap":      {0, 2, 1, 3},
		"toffoli":   {0, 1, 2, 3, 4, 5, 7, 6},
		"fredkin":   {0, 1, 2, 3, 4, 6, 5, 7},
		"cycle":     {1, 2, 3, 0},
		"high_swap": {0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 9, 11, 12, 14, 13, 15},
	}
	for name, p := range cases {
		for kindName, kind := range stgKinds {
			assert.Run(func(assert *test.Assert) {
				circ, err := synth.DBS(p, kind)
				assert.NoError(err)
				assert.CheckPermutation(circ, p)
			}, name, kindName)
		}
	}
}

func TestDBSNoAncilla(t *testing.T) {
	assert := test.NewAssert(t)

	p := randomPermutation(3, 3)
	for _, kind := range stgKinds {
		circ, err := synth.DBS(p, kind)
		assert.NoError(err)
		assert.Equal(3, circ.NbQubits())
	}
}

func TestDBSUnknownKindFallsBack(t *testing.T) {
	assert := test.NewAssert(t)

	p := randomPermutation(11, 3)
	want, err := synth.DBS(p, synth.Spectrum)
	assert.NoError(err)
	got, err := synth.DBS(p, synth.Kind(250))
	assert.NoError(err)
	assert.Empty(cmp.Diff(want.Gates(), got.Gates()))
}

func TestDBSInvalidPermutation(t *testing.T) {
	assert := test.NewAssert(t)

	_, err := synth.DBS(synth.Permutation{0, 1, 1}, synth.Spectrum)
	assert.Error(err)
	assert.True(errors.Is(err, synth.ErrInvalidPermutation))
}

func TestDBSRandomPermutations(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)
	for kindName, kind := range stgKinds {
		properties.Property("realizes the permutation with "+kindName, prop.ForAll(
			func(seed int64, nbVars int) bool {
				p := randomPermutation(seed, nbVars)
				circ, err := synth.DBS(p, kind)
				if err != nil {
					return false
				}
				return realizesPermutation(circ, p)
			},
			gen.Int64(),
			gen.IntRange(1, 4),
		))
	}

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
