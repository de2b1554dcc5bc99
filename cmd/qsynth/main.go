// qsynth is a command line front end to the synthesis algorithms: it reads a
// specification (permutation, truth table, parity terms, angles or a bench
// file), synthesizes a circuit and prints it or writes it in binary form.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	qsynth "github.com/qsynth/qsynth"
	"github.com/qsynth/qsynth/profile"
)

var rootCmd = &cobra.Command{
	Use:   "qsynth",
	Short: "A synthesizer for reversible and quantum circuits.",
	Long: `qsynth turns mathematical specifications (permutations, truth tables,
parity terms, phase angles and logic networks) into gate-level circuits.`,
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Print("qsynth ")
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				fmt.Println(info.Main.Version)
			} else {
				fmt.Println(qsynth.Version.String())
			}
			return
		}
		_ = cmd.Help()
	},
}

func main() {
	cobra.OnInitialize(func() {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			zerolog.SetGlobalLevel(zerolog.TraceLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write the circuit in binary form to this file instead of printing it")
	rootCmd.PersistentFlags().Bool("raw", false, "skip compression when writing the binary form")
	rootCmd.PersistentFlags().Bool("stats", false, "print gate counts")
	rootCmd.PersistentFlags().String("profile", "", "write a pprof gate profile to this file")
}

// withProfile runs fn inside a profiling session when --profile is set.
func withProfile(cmd *cobra.Command, fn func() error) error {
	path, _ := cmd.Flags().GetString("profile")
	if path == "" {
		return fn()
	}
	p := profile.Start(profile.WithPath(path))
	defer p.Stop()
	return fn()
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
