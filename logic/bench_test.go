package logic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBench(t *testing.T) {
	assert := require.New(t)

	src := `
# full adder
INPUT(a)
INPUT(b)
INPUT(cin)
OUTPUT(sum)
OUTPUT(cout)
t = XOR(a, b)
sum = XOR(t, cin)
c1 = AND(a, b)
c2 = AND(t, cin)
cout = OR(c1, c2)
`
	n, err := ParseBench(strings.NewReader(src))
	assert.NoError(err)
	assert.Equal(3, n.NbInputs())
	assert.Equal(2, n.NbOutputs())

	for x := uint64(0); x < 8; x++ {
		va, vb, vc := x&1, x>>1&1, x>>2&1
		sum := va ^ vb ^ vc
		cout := va&vb | (va^vb)&vc
		assert.Equal(sum|cout<<1, n.Eval(x), "input %b", x)
	}
}

func TestParseBenchOutOfOrder(t *testing.T) {
	assert := require.New(t)

	src := `
INPUT(a)
INPUT(b)
OUTPUT(y)
y = NAND(x, b)
x = OR(a, b)
`
	n, err := ParseBench(strings.NewReader(src))
	assert.NoError(err)
	for x := uint64(0); x < 4; x++ {
		va, vb := x&1, x>>1&1
		assert.Equal(1&^((va|vb)&vb), n.Eval(x))
	}
}

func TestParseBenchWideGate(t *testing.T) {
	assert := require.New(t)

	src := `
INPUT(a)
INPUT(b)
INPUT(c)
INPUT(d)
OUTPUT(y)
y = AND(a, b, c, d)
`
	n, err := ParseBench(strings.NewReader(src))
	assert.NoError(err)
	for x := uint64(0); x < 16; x++ {
		want := uint64(0)
		if x == 15 {
			want = 1
		}
		assert.Equal(want, n.Eval(x))
	}
}

func TestParseBenchErrors(t *testing.T) {
	assert := require.New(t)

	cases := map[string]string{
		"cycle":            "INPUT(a)\nOUTPUT(y)\nx = AND(y, a)\ny = AND(x, a)\n",
		"missing signal":   "INPUT(a)\nOUTPUT(y)\ny = AND(a, ghost)\n",
		"duplicate signal": "INPUT(a)\nINPUT(a)\nOUTPUT(a)\n",
		"unknown operator": "INPUT(a)\nOUTPUT(y)\ny = MUX(a, a, a)\n",
		"bad line":         "INPUT(a)\nOUTPUT(y)\nwhat is this\n",
		"missing output":   "INPUT(a)\nOUTPUT(y)\n",
		"no output":        "INPUT(a)\nx = BUFF(a)\n",
	}
	for name, src := range cases {
		_, err := ParseBench(strings.NewReader(src))
		assert.Error(err, name)
		assert.ErrorIs(err, ErrInvalidLogicNetwork, name)
	}
}
