package synth

import (
	"fmt"
	"math/bits"
)

// Permutation specifies a reversible function as the image of every input
// basis state: p[x] is the output for input x. A valid permutation has
// power-of-two length and is a bijection on {0, ..., len(p)-1}.
type Permutation []uint32

// NbVars returns the number of variables the permutation acts on.
func (p Permutation) NbVars() int {
	return bits.Len(uint(len(p))) - 1
}

// Validate checks the permutation's length and bijectivity.
func (p Permutation) Validate() error {
	if len(p) == 0 || len(p)&(len(p)-1) != 0 {
		return fmt.Errorf("%w: size %d is not a power of two", ErrInvalidPermutation, len(p))
	}
	seen := make([]bool, len(p))
	for x, y := range p {
		if int(y) >= len(p) {
			return fmt.Errorf("%w: image %d of %d out of range", ErrInvalidPermutation, y, x)
		}
		if seen[y] {
			return fmt.Errorf("%w: image %d repeated", ErrInvalidPermutation, y)
		}
		seen[y] = true
	}
	return nil
}

// inverse returns q with q[p[x]] = x; p must be valid.
func (p Permutation) inverse() Permutation {
	inv := make(Permutation, len(p))
	for x, y := range p {
		inv[y] = uint32(x)
	}
	return inv
}
