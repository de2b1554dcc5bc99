package synth_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/test"
)

func TestDiagonalSingleQubit(t *testing.T) {
	assert := test.NewAssert(t)

	angles := []float64{math.Pi / 8}
	circ, err := synth.Diagonal(angles)
	assert.NoError(err)
	assert.Equal(1, circ.NbQubits())
	assert.CheckDiagonal(circ, angles)
}

func TestDiagonalRandomAngles(t *testing.T) {
	assert := test.NewAssert(t)
	rng := rand.New(rand.NewSource(5))

	for n := 1; n <= 4; n++ {
		angles := make([]float64, 1<<n-1)
		for i := range angles {
			angles[i] = rng.Float64()*2*math.Pi - math.Pi
		}
		assert.Run(func(assert *test.Assert) {
			circ, err := synth.Diagonal(angles)
			assert.NoError(err)
			assert.Equal(n, circ.NbQubits())
			assert.CheckDiagonal(circ, angles)
		})
	}
}

func TestDiagonalZeroAngles(t *testing.T) {
	assert := test.NewAssert(t)

	circ, err := synth.Diagonal([]float64{0, 0, 0})
	assert.NoError(err)
	assert.Equal(0, circ.NbGates())
}

func TestDiagonalInvalidAngleCount(t *testing.T) {
	assert := test.NewAssert(t)

	for _, count := range []int{0, 2, 4, 6, 8} {
		_, err := synth.Diagonal(make([]float64, count))
		assert.Error(err, "count %d", count)
		assert.True(errors.Is(err, synth.ErrInvalidAngleCount))
	}
}
