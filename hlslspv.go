// Package hlslspv compiles a pre-typed HLSL translation unit directly to a
// SPIR-V binary module.
//
// Unlike a source-to-source compiler, hlslspv takes no HLSL text: the
// upstream parser and type checker (an external collaborator, out of scope
// for this module) are assumed to have already produced a typed
// ast.TranslationUnit. This package's job starts there: pick an entry
// point, run the emitter, and hand back the serialized word stream.
//
// Example usage:
//
//	opts := hlslspv.DefaultCodeGenOptions()
//	opts.EntryPoint = "main"
//	opts.Profile = "ps_6_0"
//	spv, err := hlslspv.Compile(tu, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package hlslspv

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/diag"
	"github.com/gogpu/hlslspv/spirv"
)

// CodeGenOptions re-exports spirv.CodeGenOptions so callers need not import
// the spirv package directly for the common case.
type CodeGenOptions = spirv.CodeGenOptions

// DefaultCodeGenOptions returns CodeGenOptions with no entry point selected;
// callers must set EntryPoint and Profile before compiling.
func DefaultCodeGenOptions() CodeGenOptions {
	return spirv.DefaultCodeGenOptions()
}

// CompileError reports every diagnostic emitted during a failed Compile
// call: the emitter keeps going after an error so it can surface as many
// as possible in one pass.
type CompileError struct {
	Errors   []*diag.Error
	Warnings []*diag.Error
}

// Error implements the error interface, joining every error diagnostic.
func (e *CompileError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("hlslspv: %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Compile lowers the entry point named in opts to a SPIR-V binary module.
//
// If any error diagnostic is emitted during lowering, Compile returns a
// nil byte slice and a *CompileError describing every diagnostic: callers
// must discard the output whenever an error was reported.
func Compile(tu *ast.TranslationUnit, opts CodeGenOptions) ([]byte, error) {
	sink := diag.NewCollectingSink()
	emitter := spirv.NewEmitter(tu, opts, sink)
	module := emitter.Compile(opts)

	if sink.HasErrors() {
		return nil, &CompileError{Errors: sink.Errors, Warnings: sink.Warnings}
	}
	return module, nil
}

// CompileTo is Compile, writing the word stream to w instead of returning
// it. Warnings are never fatal and are dropped on a successful compile;
// CompileWithSink reports them to a caller-supplied diag.Sink.
func CompileTo(tu *ast.TranslationUnit, opts CodeGenOptions, w io.Writer) error {
	module, err := Compile(tu, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(module)
	return err
}

// CompileWithSink lowers the entry point named in opts, reporting every
// diagnostic to sink as it occurs rather than collecting them, so a caller
// can stream diagnostics (e.g. through a logrus adapter) as lowering
// proceeds instead of only after the fact.
func CompileWithSink(tu *ast.TranslationUnit, opts CodeGenOptions, sink diag.Sink) []byte {
	emitter := spirv.NewEmitter(tu, opts, sink)
	return emitter.Compile(opts)
}
