package hlslspv

import (
	"bytes"
	"testing"

	"github.com/gogpu/hlslspv/diag"
	"github.com/gogpu/hlslspv/internal/fixtures"
)

func TestCompilePassThrough(t *testing.T) {
	tu := fixtures.PassThroughFragment()
	opts := DefaultCodeGenOptions()
	opts.EntryPoint = "main"
	opts.Profile = "ps_6_0"

	module, err := Compile(tu, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(module) == 0 {
		t.Fatal("Compile returned an empty module")
	}
	if len(module)%4 != 0 {
		t.Fatalf("module length %d is not word-aligned", len(module))
	}
}

func TestCompileUnknownEntryPoint(t *testing.T) {
	tu := fixtures.PassThroughFragment()
	opts := DefaultCodeGenOptions()
	opts.EntryPoint = "nope"
	opts.Profile = "ps_6_0"

	module, err := Compile(tu, opts)
	if err == nil {
		t.Fatal("expected an error for an unknown entry point")
	}
	if module != nil {
		t.Error("expected a nil module on error")
	}
	var compileErr *CompileError
	if !asCompileError(err, &compileErr) {
		t.Fatalf("error is %T, want *CompileError", err)
	}
	if len(compileErr.Errors) == 0 {
		t.Error("expected at least one diagnostic in CompileError.Errors")
	}
}

func asCompileError(err error, target **CompileError) bool {
	if ce, ok := err.(*CompileError); ok {
		*target = ce
		return true
	}
	return false
}

func TestCompileTo(t *testing.T) {
	tu := fixtures.PassThroughFragment()
	opts := DefaultCodeGenOptions()
	opts.EntryPoint = "main"
	opts.Profile = "ps_6_0"

	var buf bytes.Buffer
	if err := CompileTo(tu, opts, &buf); err != nil {
		t.Fatalf("CompileTo: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("CompileTo wrote no bytes")
	}
}

func TestCompileWithSinkSucceeds(t *testing.T) {
	tu := fixtures.PassThroughFragment()
	opts := DefaultCodeGenOptions()
	opts.EntryPoint = "main"
	opts.Profile = "ps_6_0"

	sink := diag.NewCollectingSink()
	module := CompileWithSink(tu, opts, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	if len(module) == 0 {
		t.Fatal("CompileWithSink returned an empty module")
	}
}
