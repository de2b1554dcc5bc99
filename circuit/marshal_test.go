package circuit_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/test"
)

func randomCircuit(seed int64, nbQubits, nbGates int) *circuit.Circuit {
	rng := rand.New(rand.NewSource(seed))
	c := circuit.New(nbQubits)
	for i := 0; i < nbGates; i++ {
		target := circuit.Qubit(rng.Intn(nbQubits))
		var g circuit.Gate
		switch rng.Intn(3) {
		case 0:
			g = circuit.Gate{Kind: circuit.H, Target: target}
		case 1:
			g = circuit.Gate{Kind: circuit.Rz, Target: target, Angle: rng.Float64()*2*math.Pi - math.Pi}
		default:
			g = circuit.Gate{Kind: circuit.X, Target: target}
			for _, q := range rng.Perm(nbQubits)[:rng.Intn(nbQubits)] {
				if circuit.Qubit(q) == target {
					continue
				}
				ctrl := circuit.Pos(circuit.Qubit(q))
				if rng.Intn(2) == 1 {
					ctrl = circuit.Neg(circuit.Qubit(q))
				}
				g.Controls = append(g.Controls, ctrl)
			}
		}
		if err := c.Append(g); err != nil {
			panic(err)
		}
	}
	return c
}

func TestSerializationRoundTrip(t *testing.T) {
	assert := test.NewAssert(t)

	for _, seed := range []int64{1, 2, 3} {
		c := randomCircuit(seed, 5, 40)
		assert.RoundTripCheck(c, func() any { return new(circuit.Circuit) }, "random")
	}

	assert.RoundTripCheck(randomCircuit(4, 1, 3), func() any { return new(circuit.Circuit) }, "single_qubit")
	assert.RoundTripCheck(circuit.New(2), func() any { return new(circuit.Circuit) }, "empty")
}

func TestSerializationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("compressed and raw forms deserialize to the same circuit", prop.ForAll(
		func(seed int64) bool {
			c := randomCircuit(seed, 4, 20)

			var compressed, raw bytes.Buffer
			if _, err := c.WriteTo(&compressed); err != nil {
				return false
			}
			if _, err := c.WriteRawTo(&raw); err != nil {
				return false
			}

			var a, b circuit.Circuit
			if _, err := a.ReadFrom(&compressed); err != nil {
				return false
			}
			if _, err := b.UnsafeReadFrom(&raw); err != nil {
				return false
			}
			return a.String() == c.String() && b.String() == c.String()
		},
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDeserializationRejectsGarbage(t *testing.T) {
	assert := require.New(t)

	var c circuit.Circuit
	_, err := c.ReadFrom(bytes.NewReader([]byte("definitely not a circuit")))
	assert.Error(err)

	// truncated frame
	var buf bytes.Buffer
	_, err = randomCircuit(1, 3, 10).WriteTo(&buf)
	assert.NoError(err)
	_, err = c.ReadFrom(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))
	assert.Error(err)
}

func TestReadReportsConsumedBytes(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	written, err := randomCircuit(6, 4, 30).WriteTo(&buf)
	assert.NoError(err)

	// trailing data must be left unread
	buf.WriteString("trailing")
	var c circuit.Circuit
	read, err := c.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)
	assert.Equal("trailing", buf.String())
}
