package synth

import (
	"math"

	"github.com/qsynth/qsynth/debug"
)

// phasePolynomial expresses target phases as parity terms.
//
// Given phases[x] = φ(x) over 2^n basis states with φ(0) = 0, it returns
// terms (s, θ_s) such that Σ_s θ_s·[⟨s,x⟩ odd] = φ(x) for every x: applying
// e^{-iθ_s} on odd ⟨s,x⟩ (the Gray-code core's semantics) realizes exactly
// diag(e^{-iφ(x)}). The coefficients come from the fast Walsh-Hadamard
// transform of W with W(0)=0 and W(x)=-2φ(x).
func phasePolynomial(phases []float64) []ParityTerm {
	debug.Assert(len(phases) > 0 && len(phases)&(len(phases)-1) == 0, "phase vector length must be a power of two")
	debug.Assert(phases[0] == 0, "phase of basis state 0 must vanish")
	w := make([]float64, len(phases))
	for x := 1; x < len(phases); x++ {
		w[x] = -2 * phases[x]
	}
	fwht(w)
	scale := 1 / float64(len(phases))

	const eps = 1e-12
	var terms []ParityTerm
	for s := 1; s < len(w); s++ {
		if coeff := w[s] * scale; math.Abs(coeff) > eps {
			terms = append(terms, ParityTerm{Mask: uint32(s), Angle: coeff})
		}
	}
	return terms
}

// fwht runs the in-place fast Walsh-Hadamard transform.
func fwht(a []float64) {
	for h := 1; h < len(a); h <<= 1 {
		for i := 0; i < len(a); i += h << 1 {
			for j := i; j < i+h; j++ {
				x, y := a[j], a[j+h]
				a[j], a[j+h] = x+y, x-y
			}
		}
	}
}
