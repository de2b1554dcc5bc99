package truthtable

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// WriteTo serializes the truth table to w, bit-packed: a byte holding the
// variable count followed by the 2^n function bits.
func (t *TruthTable) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bitio.NewWriter(cw)
	if err := bw.WriteBits(uint64(t.nbVars), 8); err != nil {
		return cw.n, err
	}
	for x := 0; x < t.Length(); x++ {
		b := uint64(0)
		if t.Bit(x) {
			b = 1
		}
		if err := bw.WriteBits(b, 1); err != nil {
			return cw.n, err
		}
	}
	err := bw.Close()
	return cw.n, err
}

// ReadFrom deserializes a truth table written by WriteTo.
func (t *TruthTable) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	br := bitio.NewReader(cr)
	nbVars, err := br.ReadBits(8)
	if err != nil {
		return cr.n, err
	}
	if nbVars > MaxVars {
		return cr.n, errors.New("serialized truth table has too many variables")
	}
	fresh := New(int(nbVars))
	for x := 0; x < fresh.Length(); x++ {
		b, err := br.ReadBits(1)
		if err != nil {
			return cr.n, err
		}
		fresh.SetTo(x, b == 1)
	}
	*t = *fresh
	return cr.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
