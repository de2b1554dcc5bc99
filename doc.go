// Package qsynth synthesizes reversible and quantum gate circuits from
// combinatorial specifications.
//
// qsynth provides the following synthesis algorithms:
//   - GraySynth: CNOT+Rz circuits from parity-term lists
//   - TBS: transformation-based synthesis of permutations
//   - DBS: decomposition-based synthesis of permutations
//   - Oracle: single-target gate synthesis from truth tables
//   - Diagonal: diagonal unitaries from angle lists
//   - LHRS: hierarchical reversible synthesis of logic networks
//
// Each algorithm consumes an in-memory specification (a permutation, a truth
// table, parity terms, angles, or a logic network) and produces an
// append-only circuit over a fixed qubit register; see the synth, circuit,
// truthtable and logic packages.
package qsynth

import (
	"github.com/blang/semver/v4"
)

// Version of the qsynth library; stamped into serialized circuits.
var Version = semver.MustParse("0.3.0")
