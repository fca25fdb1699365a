package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via
// "go install" (matches Consensys-go-corset's pkg/cmd/root.go).
var Version string

// rootCmd is the base command when hlslspvc is invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hlslspvc",
	Short: "A SPIR-V code generator for a pre-typed HLSL AST.",
	Long: `hlslspvc lowers a pre-typed HLSL translation unit to a SPIR-V binary
module. It does not parse HLSL source text itself — the "compile" command
loads a fixed demo AST in place of a real front end (see the --demo flag) so
the emitter can be exercised end to end.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("hlslspvc ")
			switch {
			case Version != "":
				fmt.Printf("%s", Version)
			default:
				if info, ok := debug.ReadBuildInfo(); ok {
					fmt.Printf("%s", info.Main.Version)
				} else {
					fmt.Printf("(unknown version)")
				}
			}
			fmt.Println()
			return
		}
		cmd.Help() //nolint:errcheck
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once by main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
}

// GetFlag gets an expected bool flag, exiting on a programming error (an
// unregistered flag name), matching pkg/cmd/util.go's helpers.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}

// GetString gets an expected string flag.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	return r
}
