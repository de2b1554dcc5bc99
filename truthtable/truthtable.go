// Package truthtable implements fixed-size bit-vector representations of
// single-output Boolean functions over n variables; bit i of the vector is
// f(i) with i read in binary.
//
// Truth tables are consulted, never mutated, by the synthesis algorithms.
package truthtable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// MaxVars bounds the supported variable count; the bit vector holds 2^n bits.
const MaxVars = 24

// TruthTable is a Boolean function of nbVars variables stored as a bit vector
// of length 2^nbVars.
type TruthTable struct {
	nbVars int
	bits   *bitset.BitSet
}

// New returns the constant-false function over nbVars variables.
func New(nbVars int) *TruthTable {
	if nbVars < 0 || nbVars > MaxVars {
		panic(fmt.Sprintf("truthtable: unsupported variable count %d", nbVars))
	}
	return &TruthTable{
		nbVars: nbVars,
		bits:   bitset.New(uint(1) << nbVars),
	}
}

// NthVar returns the projection function f(x) = x_v over nbVars variables.
func NthVar(nbVars, v int) *TruthTable {
	t := New(nbVars)
	for x := 0; x < t.Length(); x++ {
		if x&(1<<v) != 0 {
			t.bits.Set(uint(x))
		}
	}
	return t
}

// FromBinaryString parses a truth table from a binary string whose first
// character is the most significant bit, f(2^n-1). The length must be a
// power of two.
func FromBinaryString(s string) (*TruthTable, error) {
	n := 0
	for 1<<n < len(s) {
		n++
	}
	if len(s) == 0 || 1<<n != len(s) {
		return nil, errors.New("truth table length must be a power of two")
	}
	t := New(n)
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			t.bits.Set(uint(len(s) - 1 - i))
		default:
			return nil, fmt.Errorf("invalid truth table character %q", c)
		}
	}
	return t, nil
}

// FromHex parses a truth table from a hexadecimal string whose first
// character holds the most significant bits. Functions of fewer than two
// variables can not be written in hex; use FromBinaryString.
func FromHex(s string) (*TruthTable, error) {
	n := 2
	for 1<<n < 4*len(s) {
		n++
	}
	if len(s) == 0 || 1<<n != 4*len(s) {
		return nil, errors.New("truth table hex length must be a power of two")
	}
	t := New(n)
	for i, c := range strings.ToLower(s) {
		var nibble int
		switch {
		case c >= '0' && c <= '9':
			nibble = int(c - '0')
		case c >= 'a' && c <= 'f':
			nibble = int(c-'a') + 10
		default:
			return nil, fmt.Errorf("invalid truth table hex character %q", c)
		}
		base := 4 * (len(s) - 1 - i)
		for b := 0; b < 4; b++ {
			if nibble&(1<<b) != 0 {
				t.bits.Set(uint(base + b))
			}
		}
	}
	return t, nil
}

// NbVars returns the number of variables.
func (t *TruthTable) NbVars() int { return t.nbVars }

// Length returns the number of rows, 2^nbVars.
func (t *TruthTable) Length() int { return 1 << t.nbVars }

// Bit returns f(x).
func (t *TruthTable) Bit(x int) bool { return t.bits.Test(uint(x)) }

// SetTo sets f(x) to v.
func (t *TruthTable) SetTo(x int, v bool) { t.bits.SetTo(uint(x), v) }

// Set sets f(x) to true.
func (t *TruthTable) Set(x int) { t.bits.Set(uint(x)) }

// IsZero reports whether f is the constant-false function.
func (t *TruthTable) IsZero() bool { return t.bits.None() }

// CountOnes returns the number of satisfying assignments.
func (t *TruthTable) CountOnes() int { return int(t.bits.Count()) }

// Clone returns a deep copy of t.
func (t *TruthTable) Clone() *TruthTable {
	return &TruthTable{nbVars: t.nbVars, bits: t.bits.Clone()}
}

// Equal reports whether t and other represent the same function.
func (t *TruthTable) Equal(other *TruthTable) bool {
	return t.nbVars == other.nbVars && t.bits.Equal(other.bits)
}

// Xor returns the function t ⊕ other. Both operands must have the same
// variable count.
func (t *TruthTable) Xor(other *TruthTable) *TruthTable {
	if t.nbVars != other.nbVars {
		panic("truthtable: xor of functions with different variable counts")
	}
	r := t.Clone()
	r.bits.InPlaceSymmetricDifference(other.bits)
	return r
}

// Cofactor0 returns f with variable v fixed to 0; the result keeps the
// variable count and no longer depends on v.
func (t *TruthTable) Cofactor0(v int) *TruthTable {
	r := New(t.nbVars)
	for x := 0; x < t.Length(); x++ {
		r.SetTo(x, t.Bit(x&^(1<<v)))
	}
	return r
}

// Cofactor1 returns f with variable v fixed to 1.
func (t *TruthTable) Cofactor1(v int) *TruthTable {
	r := New(t.nbVars)
	for x := 0; x < t.Length(); x++ {
		r.SetTo(x, t.Bit(x|1<<v))
	}
	return r
}

// DependsOn reports whether f depends on variable v.
func (t *TruthTable) DependsOn(v int) bool {
	e := 1 << v
	for x := 0; x < t.Length(); x++ {
		if x&e == 0 && t.Bit(x) != t.Bit(x|e) {
			return true
		}
	}
	return false
}

// PPRM returns the coefficients of the positive-polarity Reed-Muller (ANF)
// expansion: bit m of the result is the coefficient of the monomial whose
// variables are the set bits of m, so that f(x) = ⊕_{m⊆x} coeff(m).
func (t *TruthTable) PPRM() *TruthTable {
	r := t.Clone()
	for v := 0; v < r.nbVars; v++ {
		e := 1 << v
		for x := 0; x < r.Length(); x++ {
			if x&e != 0 && r.Bit(x^e) {
				r.bits.Flip(uint(x))
			}
		}
	}
	return r
}

// String returns the binary string form, most significant bit first.
func (t *TruthTable) String() string {
	var sbb strings.Builder
	sbb.Grow(t.Length())
	for x := t.Length() - 1; x >= 0; x-- {
		if t.Bit(x) {
			sbb.WriteByte('1')
		} else {
			sbb.WriteByte('0')
		}
	}
	return sbb.String()
}
