package main

import (
	"fmt"
	"math/bits"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qsynth/qsynth/circuit"
	"github.com/qsynth/qsynth/logic"
	"github.com/qsynth/qsynth/synth"
	"github.com/qsynth/qsynth/truthtable"
)

var tbsCmd = &cobra.Command{
	Use:   "tbs image...",
	Short: "synthesize a permutation with transformation-based synthesis",
	Long: `Synthesize a reversible circuit for the permutation whose images are given
in input order, e.g. "qsynth tbs 0 1 3 2" for a controlled NOT.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := parsePermutation(args)
		exitOnError(err)
		err = withProfile(cmd, func() error {
			circ, err := synth.TBS(p)
			if err != nil {
				return err
			}
			return writeCircuit(cmd, circ)
		})
		exitOnError(err)
	},
}

var dbsCmd = &cobra.Command{
	Use:   "dbs image...",
	Short: "synthesize a permutation with decomposition-based synthesis",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := parsePermutation(args)
		exitOnError(err)
		kind, _ := cmd.Flags().GetString("stg")
		err = withProfile(cmd, func() error {
			circ, err := synth.DBS(p, synth.ParseKind(kind))
			if err != nil {
				return err
			}
			return writeCircuit(cmd, circ)
		})
		exitOnError(err)
	},
}

var oracleCmd = &cobra.Command{
	Use:   "oracle truthtable",
	Short: "synthesize an oracle for a truth table",
	Long: `Synthesize a circuit computing |x⟩|y⟩ ↦ |x⟩|y ⊕ f(x)⟩ from the binary
string of f, most significant bit first, e.g. "qsynth oracle 0110" for XOR.
Tables with a 0x prefix are read as hexadecimal.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *truthtable.TruthTable
		var err error
		if hexTable, ok := strings.CutPrefix(args[0], "0x"); ok {
			f, err = truthtable.FromHex(hexTable)
		} else {
			f, err = truthtable.FromBinaryString(args[0])
		}
		exitOnError(err)
		kind, _ := cmd.Flags().GetString("stg")
		err = withProfile(cmd, func() error {
			circ, err := synth.Oracle(f, synth.ParseKind(kind))
			if err != nil {
				return err
			}
			return writeCircuit(cmd, circ)
		})
		exitOnError(err)
	},
}

var diagonalCmd = &cobra.Command{
	Use:   "diagonal angle...",
	Short: "synthesize a diagonal unitary from its 2^n-1 phase angles",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		angles := make([]float64, len(args))
		for i, a := range args {
			var err error
			angles[i], err = strconv.ParseFloat(a, 64)
			exitOnError(err)
		}
		err := withProfile(cmd, func() error {
			circ, err := synth.Diagonal(angles)
			if err != nil {
				return err
			}
			return writeCircuit(cmd, circ)
		})
		exitOnError(err)
	},
}

var grayCmd = &cobra.Command{
	Use:   "gray mask:angle...",
	Short: "synthesize a phase polynomial from parity terms",
	Long: `Synthesize a CNOT+Rz circuit from parity terms given as mask:angle pairs,
e.g. "qsynth gray --vars 2 0b11:0.25". Masks accept 0b and 0x prefixes.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		nbVars, _ := cmd.Flags().GetInt("vars")
		terms := make([]synth.ParityTerm, len(args))
		for i, arg := range args {
			m, a, found := strings.Cut(arg, ":")
			if !found {
				exitOnError(fmt.Errorf("malformed term %q, want mask:angle", arg))
			}
			mask, err := strconv.ParseUint(m, 0, 32)
			exitOnError(err)
			angle, err := strconv.ParseFloat(a, 64)
			exitOnError(err)
			terms[i] = synth.ParityTerm{Mask: uint32(mask), Angle: angle}
		}
		if nbVars == 0 {
			for _, t := range terms {
				if l := bits.Len32(t.Mask); l > nbVars {
					nbVars = l
				}
			}
		}
		err := withProfile(cmd, func() error {
			circ, err := synth.Gray(nbVars, terms)
			if err != nil {
				return err
			}
			return writeCircuit(cmd, circ)
		})
		exitOnError(err)
	},
}

var lhrsCmd = &cobra.Command{
	Use:   "lhrs bench_file",
	Short: "synthesize a logic network from a bench file",
	Long: `Synthesize a garbage-free reversible circuit from a combinational logic
network in the Berkeley bench format.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		exitOnError(err)
		defer f.Close()
		ntk, err := logic.ParseBench(f)
		exitOnError(err)
		err = withProfile(cmd, func() error {
			circ, stats, err := synth.LHRS(ntk)
			if err != nil {
				return err
			}
			fmt.Printf("inputs: %v\noutputs: %v\n", stats.InputIndexes, stats.OutputIndexes)
			return writeCircuit(cmd, circ)
		})
		exitOnError(err)
	},
}

func init() {
	dbsCmd.Flags().String("stg", "spectrum", "single-target gate strategy (spectrum|pprm|pkrm)")
	oracleCmd.Flags().String("stg", "spectrum", "single-target gate strategy (spectrum|pprm|pkrm)")
	grayCmd.Flags().Int("vars", 0, "number of variables (0 infers from the largest mask)")
	rootCmd.AddCommand(tbsCmd, dbsCmd, oracleCmd, diagonalCmd, grayCmd, lhrsCmd)
}

func parsePermutation(args []string) (synth.Permutation, error) {
	p := make(synth.Permutation, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 0, 32)
		if err != nil {
			return nil, err
		}
		p[i] = uint32(v)
	}
	return p, nil
}

// writeCircuit prints the circuit to stdout, or serializes it to --output,
// honoring --raw and --stats.
func writeCircuit(cmd *cobra.Command, circ *circuit.Circuit) error {
	if printStats, _ := cmd.Flags().GetBool("stats"); printStats {
		s := circ.Stats()
		fmt.Printf("qubits: %d\nh: %d\nx: %d\ncx: %d\nmcx: %d\nrz: %d\n",
			circ.NbQubits(), s.NbH, s.NbX, s.NbCX, s.NbMCX, s.NbRz)
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		fmt.Print(circ.String())
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err = circ.WriteRawTo(f)
	} else {
		_, err = circ.WriteTo(f)
	}
	return err
}
