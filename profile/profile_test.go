package profile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qsynth/qsynth/profile"
	"github.com/qsynth/qsynth/synth"
)

func TestProfileCountsGates(t *testing.T) {
	assert := require.New(t)

	// overlapping sessions are allowed; the outer one sees both runs
	outer := profile.Start(profile.WithNoOutput())

	toffoli := synth.Permutation{0, 1, 2, 3, 4, 5, 7, 6}
	first, err := synth.TBS(toffoli)
	assert.NoError(err)

	inner := profile.Start(profile.WithNoOutput())
	second, err := synth.TBS(toffoli)
	assert.NoError(err)
	inner.Stop()

	outer.Stop()

	assert.Equal(second.NbGates(), inner.NbGates())
	assert.Equal(first.NbGates()+second.NbGates(), outer.NbGates())

	top := outer.Top()
	assert.True(strings.HasPrefix(top, "Showing nodes accounting for"), top)
	assert.Contains(top, "synth.TBS")
}
