package ioutils

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUints32RoundTrip(t *testing.T) {
	assert := require.New(t)
	rng := rand.New(rand.NewSource(1))

	cases := [][]uint32{
		nil,
		{},
		{0},
		{1, 2, 3, 4, 5},
		make([]uint32, 1000),
	}
	random := make([]uint32, 257)
	for i := range random {
		random[i] = rng.Uint32()
	}
	cases = append(cases, random)

	var buf bytes.Buffer
	var scratch []uint32
	for _, in := range cases {
		buf.Reset()
		var err error
		scratch, err = CompressAndWriteUints32(&buf, in, scratch)
		assert.NoError(err)

		n, out, err := ReadAndDecompressUints32(&buf)
		assert.NoError(err)
		assert.Equal(0, buf.Len(), "all written bytes must be consumed")
		assert.Greater(n, 0)
		assert.Equal(len(in), len(out))
		for i := range in {
			assert.Equal(in[i], out[i])
		}
	}
}

func TestUints64RoundTrip(t *testing.T) {
	assert := require.New(t)
	rng := rand.New(rand.NewSource(2))

	in := make([]uint64, 300)
	for i := range in {
		in[i] = rng.Uint64()
	}

	var buf bytes.Buffer
	assert.NoError(CompressAndWriteUints64(&buf, in))
	_, out, err := ReadAndDecompressUints64(&buf)
	assert.NoError(err)
	assert.Equal(in, out)
}
