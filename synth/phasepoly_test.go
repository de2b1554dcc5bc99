package synth

import (
	"math"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFWHT(t *testing.T) {
	a := []float64{1, 0, 0, 0}
	fwht(a)
	require.Equal(t, []float64{1, 1, 1, 1}, a)

	// transform is an involution up to scaling
	b := []float64{3, -1, 4, 1, -5, 9, 2, -6}
	orig := append([]float64(nil), b...)
	fwht(b)
	fwht(b)
	for i := range b {
		require.InDelta(t, orig[i]*float64(len(b)), b[i], 1e-12)
	}
}

func TestPhasePolynomialReconstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 1; n <= 5; n++ {
		phases := make([]float64, 1<<n)
		for x := 1; x < len(phases); x++ {
			phases[x] = rng.Float64()*2*math.Pi - math.Pi
		}
		terms := phasePolynomial(phases)
		for _, term := range terms {
			require.NotZero(t, term.Mask, "mask 0 would be a global phase")
		}

		// summing the angles over odd-parity masks must reproduce the phases
		for x := 0; x < len(phases); x++ {
			var got float64
			for _, term := range terms {
				if bits.OnesCount32(uint32(x)&term.Mask)&1 == 1 {
					got += term.Angle
				}
			}
			require.InDelta(t, phases[x], got, 1e-9, "n=%d x=%d", n, x)
		}
	}
}

func TestPhasePolynomialSparse(t *testing.T) {
	// a pure parity phase must come back as the single matching term
	phases := make([]float64, 8)
	for x := range phases {
		if bits.OnesCount(uint(x)&0b101)&1 == 1 {
			phases[x] = 0.75
		}
	}
	terms := phasePolynomial(phases)
	require.Len(t, terms, 1)
	require.Equal(t, uint32(0b101), terms[0].Mask)
	require.InDelta(t, 0.75, terms[0].Angle, 1e-12)
}

func TestGrayRank(t *testing.T) {
	// grayRank inverts the standard Gray code
	for k := uint32(0); k < 1024; k++ {
		require.Equal(t, k, grayRank(k^k>>1))
	}
}
