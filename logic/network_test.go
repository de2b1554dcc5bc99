package logic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderEval(t *testing.T) {
	assert := require.New(t)

	n := New()
	a, b, c := n.AddInput(), n.AddInput(), n.AddInput()
	n.AddOutput(n.AddAnd(a, b))
	n.AddOutput(n.AddOr(a, c))
	n.AddOutput(n.AddXor(b, c))
	n.AddOutput(n.AddMaj(a, b, c))
	assert.NoError(n.Validate())

	for x := uint64(0); x < 8; x++ {
		va, vb, vc := x&1, x>>1&1, x>>2&1
		want := va&vb | (va|vc)<<1 | (vb^vc)<<2 | (va&vb|va&vc|vb&vc)<<3
		assert.Equal(want, n.Eval(x), "input %b", x)
	}
}

func TestBuilderConstantFolding(t *testing.T) {
	assert := require.New(t)

	n := New()
	a := n.AddInput()

	assert.Equal(ConstFalse, n.AddAnd(a, ConstFalse))
	assert.Equal(a, n.AddAnd(a, ConstTrue))
	assert.Equal(a, n.AddAnd(a, a))
	assert.Equal(ConstFalse, n.AddAnd(a, a.Not()))

	assert.Equal(a, n.AddXor(a, ConstFalse))
	assert.Equal(a.Not(), n.AddXor(a, ConstTrue))
	assert.Equal(ConstFalse, n.AddXor(a, a))
	assert.Equal(ConstTrue, n.AddXor(a, a.Not()))

	b := n.AddInput()
	assert.Equal(a, n.AddMaj(a, a, b))
	assert.Equal(b, n.AddMaj(a, a.Not(), b))

	// no gate node was created by any of the above
	assert.Equal(0, n.NbGates())
}

func TestXorComplementNormalization(t *testing.T) {
	assert := require.New(t)

	n := New()
	a, b := n.AddInput(), n.AddInput()
	s := n.AddXor(a.Not(), b)
	assert.True(s.Complemented(), "complement must move to the output edge")
	for _, f := range n.Fanins(s.Node()) {
		assert.False(f.Complemented())
	}
}

func TestSignal(t *testing.T) {
	assert := require.New(t)

	s := MakeSignal(5, true)
	assert.Equal(uint32(5), s.Node())
	assert.True(s.Complemented())
	assert.Equal(s, s.Not().Not())
	assert.False(s.Not().Complemented())
}

func TestValidate(t *testing.T) {
	assert := require.New(t)

	n := New()
	n.AddInput()
	err := n.Validate()
	assert.Error(err, "no outputs")

	n.AddOutput(ConstFalse)
	err = n.Validate()
	assert.ErrorIs(err, ErrInvalidLogicNetwork)
}

func TestInputAfterGatePanics(t *testing.T) {
	assert := require.New(t)

	n := New()
	a, b := n.AddInput(), n.AddInput()
	n.AddAnd(a, b)
	assert.Panics(func() { n.AddInput() })
}
