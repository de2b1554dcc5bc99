package qsynth

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert := require.New(t)

	assert.NoError(Version.Validate())
	assert.True(Version.GTE(semver.MustParse("0.1.0")))
	assert.Empty(Version.Build, "releases carry no build metadata")
}
