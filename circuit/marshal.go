package circuit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/blang/semver/v4"
	"github.com/consensys/compress/lzss"
	"github.com/fxamacker/cbor/v2"
	qsynth "github.com/qsynth/qsynth"
	"github.com/qsynth/qsynth/internal/ioutils"
	"golang.org/x/sync/errgroup"
)

// binary frame: magic | flags | payload length | payload.
// The payload holds the gate streams (intcomp compressed) followed by a small
// CBOR-encoded header; WriteTo additionally compresses the payload with lzss.
var binaryMagic = [8]byte{'q', 's', 'y', 'n', 't', 'h', 0, 1}

const (
	flagLzss   = 1
	frameLen   = 8 + 1 + 8
	maxPayload = 1 << 34
)

type serializationHeader struct {
	Version  string
	NbQubits uint32
	NbGates  uint64
}

func (h *serializationHeader) check() error {
	v, err := semver.Parse(h.Version)
	if err != nil {
		return fmt.Errorf("invalid serialized circuit version %q: %w", h.Version, err)
	}
	if v.Major != qsynth.Version.Major {
		return fmt.Errorf("serialized circuit version %s is incompatible with qsynth %s", v, qsynth.Version)
	}
	return nil
}

// WriteTo serializes the circuit to w, compressing the payload with lzss.
func (c *Circuit) WriteTo(w io.Writer) (int64, error) {
	return c.writeTo(w, true)
}

// WriteRawTo serializes the circuit to w without compression.
func (c *Circuit) WriteRawTo(w io.Writer) (int64, error) {
	return c.writeTo(w, false)
}

func (c *Circuit) writeTo(w io.Writer, compressed bool) (int64, error) {
	// gate streams and the CBOR header are independent; encode them in
	// parallel.
	var gates, body []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		gates, err = c.gatesToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		body, err = c.headerToBytes()
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	payload := make([]byte, 0, 8+len(gates)+len(body))
	payload = binary.LittleEndian.AppendUint64(payload, uint64(len(gates)))
	payload = append(payload, gates...)
	payload = append(payload, body...)

	var flags byte
	if compressed {
		compressor, err := lzss.NewCompressor(nil)
		if err != nil {
			return 0, err
		}
		if payload, err = compressor.Compress(payload); err != nil {
			return 0, err
		}
		flags |= flagLzss
	}

	frame := make([]byte, 0, frameLen+len(payload))
	frame = append(frame, binaryMagic[:]...)
	frame = append(frame, flags)
	frame = binary.LittleEndian.AppendUint64(frame, uint64(len(payload)))
	frame = append(frame, payload...)

	n, err := w.Write(frame)
	return int64(n), err
}

// ReadFrom deserializes a circuit from r, validating every gate against the
// deserialized register size.
func (c *Circuit) ReadFrom(r io.Reader) (int64, error) {
	return c.readFrom(r, false)
}

// UnsafeReadFrom deserializes a circuit from r without validating gates.
func (c *Circuit) UnsafeReadFrom(r io.Reader) (int64, error) {
	return c.readFrom(r, true)
}

func (c *Circuit) readFrom(r io.Reader, unsafe bool) (int64, error) {
	var frame [frameLen]byte
	if _, err := io.ReadFull(r, frame[:]); err != nil {
		return 0, err
	}
	if !bytes.Equal(frame[:8], binaryMagic[:]) {
		return frameLen, errors.New("not a serialized qsynth circuit")
	}
	flags := frame[8]
	payloadLen := binary.LittleEndian.Uint64(frame[9:])
	if payloadLen > maxPayload {
		return frameLen, errors.New("serialized circuit payload too large")
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return frameLen, err
	}
	read := int64(frameLen) + int64(payloadLen)

	if flags&flagLzss != 0 {
		var err error
		if payload, err = lzss.Decompress(payload, nil); err != nil {
			return read, err
		}
	}
	if len(payload) < 8 {
		return read, errors.New("invalid serialized circuit")
	}
	gatesLen := binary.LittleEndian.Uint64(payload[:8])
	if uint64(len(payload)-8) < gatesLen {
		return read, errors.New("invalid serialized circuit")
	}

	// header first; gate validation needs the register size.
	var h serializationHeader
	if err := c.headerFromBytes(payload[8+gatesLen:], &h); err != nil {
		return read, err
	}
	if err := h.check(); err != nil {
		return read, err
	}
	c.nbQubits = h.NbQubits
	c.gates = nil

	if err := c.gatesFromBytes(payload[8:8+gatesLen], h.NbGates, unsafe); err != nil {
		return read, err
	}
	return read, nil
}

func (c *Circuit) headerToBytes() ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := enc.NewEncoder(&buf).Encode(serializationHeader{
		Version:  qsynth.Version.String(),
		NbQubits: c.nbQubits,
		NbGates:  uint64(len(c.gates)),
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Circuit) headerFromBytes(in []byte, h *serializationHeader) error {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return err
	}
	return dm.NewDecoder(bytes.NewReader(in)).Decode(h)
}

func (c *Circuit) gatesToBytes() ([]byte, error) {
	kinds := make([]uint32, len(c.gates))
	targets := make([]uint32, len(c.gates))
	nbControls := make([]uint32, len(c.gates))
	var controls []uint32
	var angles []uint64
	for i, g := range c.gates {
		kinds[i] = uint32(g.Kind)
		targets[i] = uint32(g.Target)
		nbControls[i] = uint32(len(g.Controls))
		for _, ctrl := range g.Controls {
			controls = append(controls, uint32(ctrl.Qubit)<<1|uint32(ctrl.Polarity))
		}
		if g.Kind == Rz {
			angles = append(angles, math.Float64bits(g.Angle))
		}
	}

	var buf bytes.Buffer
	var buf32 []uint32
	var err error
	for _, s := range [][]uint32{kinds, targets, nbControls, controls} {
		if buf32, err = ioutils.CompressAndWriteUints32(&buf, s, buf32); err != nil {
			return nil, err
		}
	}
	if err := ioutils.CompressAndWriteUints64(&buf, angles); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Circuit) gatesFromBytes(in []byte, nbGates uint64, unsafe bool) error {
	r := bytes.NewReader(in)
	streams := make([][]uint32, 4)
	for i := range streams {
		var err error
		if _, streams[i], err = ioutils.ReadAndDecompressUints32(r); err != nil {
			return err
		}
	}
	_, angles, err := ioutils.ReadAndDecompressUints64(r)
	if err != nil {
		return err
	}
	kinds, targets, nbControls, controls := streams[0], streams[1], streams[2], streams[3]
	if uint64(len(kinds)) != nbGates || uint64(len(targets)) != nbGates || uint64(len(nbControls)) != nbGates {
		return errors.New("invalid serialized circuit: gate count mismatch")
	}

	if nbGates > 0 {
		c.gates = make([]Gate, 0, nbGates)
	}
	iCtrl, iAngle := 0, 0
	for i := range kinds {
		g := Gate{
			Kind:   Kind(kinds[i]),
			Target: Qubit(targets[i]),
		}
		nc := int(nbControls[i])
		if iCtrl+nc > len(controls) {
			return errors.New("invalid serialized circuit: truncated control stream")
		}
		if nc > 0 {
			g.Controls = make([]Control, nc)
			for j := 0; j < nc; j++ {
				packed := controls[iCtrl+j]
				g.Controls[j] = Control{Qubit: Qubit(packed >> 1), Polarity: Polarity(packed & 1)}
			}
			iCtrl += nc
		}
		if g.Kind == Rz {
			if iAngle >= len(angles) {
				return errors.New("invalid serialized circuit: truncated angle stream")
			}
			g.Angle = math.Float64frombits(angles[iAngle])
			iAngle++
		}
		if unsafe {
			c.gates = append(c.gates, g)
		} else if err := c.Append(g); err != nil {
			return err
		}
	}
	return nil
}
