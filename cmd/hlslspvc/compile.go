package main

import (
	"fmt"
	"os"

	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/internal/fixtures"
	"github.com/gogpu/hlslspv/spirv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var demos = map[string]func() *ast.TranslationUnit{
	"passthrough": fixtures.PassThroughFragment,
	"swizzle":     fixtures.SwizzleWrite,
	"ifelse":      fixtures.IfElse,
	"loop":        fixtures.Loop,
	"switch":      fixtures.Switch,
	"dot":         fixtures.DotProduct,
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "compile a demo HLSL AST into a SPIR-V binary module.",
	Long: `Compile lowers one of the built-in demo translation units (see --demo) to
a SPIR-V binary module and writes it to --output. Each demo corresponds to a
concrete scenario from this compiler's test suite (pass-through fragment,
swizzle write, if/else, loop, switch, dot product).`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		demoName := GetString(cmd, "demo")
		build, ok := demos[demoName]
		if !ok {
			fmt.Printf("unknown demo %q (see --help for the list)\n", demoName)
			os.Exit(2)
		}
		tu := build()

		opts := spirv.DefaultCodeGenOptions()
		opts.EntryPoint = GetString(cmd, "entry")
		opts.Profile = GetString(cmd, "profile")

		sink := &logrusSink{}
		emitter := spirv.NewEmitter(tu, opts, sink)
		module := emitter.Compile(opts)
		if sink.errored {
			fmt.Println("compilation failed, see log output above")
			os.Exit(1)
		}

		output := GetString(cmd, "output")
		if err := os.WriteFile(output, module, 0644); err != nil {
			fmt.Printf("error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d bytes)\n", output, len(module))
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("demo", "passthrough", "demo AST to compile (passthrough, swizzle, ifelse, loop, switch, dot)")
	compileCmd.Flags().String("entry", "main", "entry point function name")
	compileCmd.Flags().String("profile", "ps_6_0", "HLSL shader profile string")
	compileCmd.Flags().StringP("output", "o", "a.spv", "output file")
	compileCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
