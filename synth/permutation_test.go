package synth_test

import (
	"errors"
	"testing"

	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/test"
)

func TestPermutationValidate(t *testing.T) {
	assert := test.NewAssert(t)

	assert.NoError(synth.Permutation{0}.Validate())
	assert.NoError(synth.Permutation{1, 0}.Validate())
	assert.NoError(synth.Permutation{3, 1, 0, 2}.Validate())

	for _, p := range []synth.Permutation{
		nil,
		{},
		{0, 1, 2},
		{0, 0},
		{0, 2},
		{4, 1, 2, 3},
	} {
		err := p.Validate()
		assert.Error(err)
		assert.True(errors.Is(err, synth.ErrInvalidPermutation))
	}
}

func TestPermutationNbVars(t *testing.T) {
	assert := test.NewAssert(t)

	assert.Equal(0, synth.Permutation{0}.NbVars())
	assert.Equal(1, synth.Permutation{0, 1}.NbVars())
	assert.Equal(3, make(synth.Permutation, 8).NbVars())
}
