// Package diag provides the diagnostic sink interface used by the SPIR-V
// emitter to report errors and warnings without aborting compilation early.
package diag

import "fmt"

// Kind categorizes an emitter diagnostic.
type Kind uint8

const (
	// KindUnknownProfile indicates a profile string that does not begin with
	// a recognized shader-stage character.
	KindUnknownProfile Kind = iota

	// KindUnsupported indicates an AST node shape the emitter does not
	// implement: global variables, matrix arguments to all/any/as*,
	// non-32-bit literal widths, the if-lowered switch fallback, unsupported
	// cast kinds, unsupported intrinsics.
	KindUnsupported

	// KindInvalidAST indicates the AST contains a reference that should have
	// been resolved by the upstream type checker (e.g. a DeclRefExpr whose
	// target is not a NamedDecl). Always a programming error upstream.
	KindInvalidAST

	// KindInternal indicates an emitter invariant was violated: duplicate
	// block label, terminator on an already-terminated block, two
	// in-progress functions, and similar.
	KindInternal
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUnknownProfile:
		return "UnknownProfile"
	case KindUnsupported:
		return "Unsupported"
	case KindInvalidAST:
		return "InvalidAst"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Span identifies a source range for a diagnostic, when available.
type Span struct {
	Start uint32
	End   uint32
}

// Error is a single diagnostic emitted by the emitter.
type Error struct {
	Kind    Kind
	Message string
	Span    *Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span != nil {
		return fmt.Sprintf("%s at [%d:%d]: %s", e.Kind, e.Span.Start, e.Span.End, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New creates a diagnostic without span information.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewWithSpan creates a diagnostic with span information.
func NewWithSpan(kind Kind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: &span}
}

// Sink receives diagnostics as they are produced. Implementations must not
// panic; the emitter calls Error for every failure and keeps going with a
// best-effort zero result id so it can surface as many diagnostics as
// possible in one pass.
type Sink interface {
	Error(err *Error)
	Warning(err *Error)
}

// CollectingSink is a Sink that only accumulates diagnostics in memory. It is
// the default sink used by the top-level Compile API.
type CollectingSink struct {
	Errors   []*Error
	Warnings []*Error
}

// NewCollectingSink creates an empty CollectingSink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

// Error records an error diagnostic.
func (s *CollectingSink) Error(err *Error) {
	s.Errors = append(s.Errors, err)
}

// Warning records a warning diagnostic.
func (s *CollectingSink) Warning(err *Error) {
	s.Warnings = append(s.Warnings, err)
}

// HasErrors reports whether any error diagnostic was recorded. Per the
// emitter's propagation policy, callers should discard emitted output
// whenever this is true.
func (s *CollectingSink) HasErrors() bool {
	return len(s.Errors) > 0
}
