// Package ast defines the typed HLSL AST consumed by the SPIR-V emitter.
//
// The upstream parser and type checker that produce this tree are outside
// this module's scope: the emitter only ever walks a tree of these node
// types. Concrete Go types are defined here because the emitter cannot
// walk an opaque value — this is the minimal surface a front end needs to
// populate.
package ast

// ScalarKind identifies an HLSL scalar element kind.
type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarInt
	ScalarUint
	ScalarFloat
)

// String returns a debug name for the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case ScalarBool:
		return "bool"
	case ScalarInt:
		return "int"
	case ScalarUint:
		return "uint"
	case ScalarFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Type is an HLSL QualType as seen by the emitter. Every concrete type below
// implements the marker method so the set is closed to this package's
// deliberate catalog, mirroring the ir.TypeInner tagged-union pattern.
type Type interface {
	hlslType()
}

// VoidType is the HLSL "void" type, valid only as a function return type.
type VoidType struct{}

func (VoidType) hlslType() {}

// ScalarType is bool/int/uint/float. Width is in bits; the emitter reports
// KindUnsupported for an integer or float literal whose Width is not 32,
// and translates every int/uint/float scalar type to a 32-bit SPIR-V type.
type ScalarType struct {
	Kind  ScalarKind
	Width uint8
}

func (ScalarType) hlslType() {}

// VectorType is an N-wide vector of a scalar kind, N in [1,4]. Count == 1 is
// permitted as the degenerate "scalar as 1-vector" shape some cast kinds
// produce (HLSLVectorToScalarCast et al. operate on it).
type VectorType struct {
	Elem  ScalarType
	Count uint8
}

func (VectorType) hlslType() {}

// MatrixType is Rows x Cols of a float scalar, each dimension in [2,4] (the
// bound SPIR-V itself accepts). Represented as Rows row-vectors of Cols
// elements.
type MatrixType struct {
	Elem ScalarType
	Rows uint8
	Cols uint8
}

func (MatrixType) hlslType() {}

// ArrayType is a fixed-length array of a base type.
type ArrayType struct {
	Elem Type
	Size uint32
}

func (ArrayType) hlslType() {}

// RecordType references a user struct declaration.
type RecordType struct {
	Decl *RecordDecl
}

func (RecordType) hlslType() {}

// IsScalar reports whether t is a ScalarType.
func IsScalar(t Type) bool {
	_, ok := t.(ScalarType)
	return ok
}

// ScalarKindOf returns the element scalar kind of t, for any type whose
// per-component kind is meaningful (scalar, vector, matrix).
func ScalarKindOf(t Type) (ScalarKind, bool) {
	switch v := t.(type) {
	case ScalarType:
		return v.Kind, true
	case VectorType:
		return v.Elem.Kind, true
	case MatrixType:
		return v.Elem.Kind, true
	default:
		return 0, false
	}
}

// VectorSizeOf returns the component count of t if t is a vector, else 1 for
// a scalar, else (0, false).
func VectorSizeOf(t Type) (uint8, bool) {
	switch v := t.(type) {
	case ScalarType:
		return 1, true
	case VectorType:
		return v.Count, true
	default:
		return 0, false
	}
}
