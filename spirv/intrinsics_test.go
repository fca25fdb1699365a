package spirv

import (
	"testing"

	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/diag"
)

func floatVec(count int, v float64) *ast.InitListExpr {
	elemT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	inits := make([]ast.Expr, count)
	for i := range inits {
		inits[i] = &ast.FloatingLiteral{Value: v, Type: elemT}
	}
	return &ast.InitListExpr{Type: ast.VectorType{Elem: elemT, Count: uint8(count)}, Inits: inits}
}

func TestLowerDotScalarIsMultiply(t *testing.T) {
	e := newTestEmitter(t)
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	a := &ast.FloatingLiteral{Value: 2, Type: floatT}
	b := &ast.FloatingLiteral{Value: 3, Type: floatT}

	e.lowerDot(a, b)

	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpFMul) != 1 {
		t.Error("scalar dot should lower to a single float multiply")
	}
	if countOpcode(insts, OpDot) != 0 {
		t.Error("scalar dot must not use OpDot")
	}
}

func TestLowerDotFloatVectorUsesOpDot(t *testing.T) {
	e := newTestEmitter(t)
	a := floatVec(4, 1)
	b := floatVec(4, 2)

	e.lowerDot(a, b)

	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpDot) != 1 {
		t.Error("float4 dot should lower to a single OpDot")
	}
	if countOpcode(insts, OpCompositeExtract) != 0 {
		t.Error("a float vector dot must not fall back to the pairwise-extract path")
	}
}

func TestLowerAllAnyScalarIsIdentity(t *testing.T) {
	e := newTestEmitter(t)
	arg := &ast.BoolLiteral{Value: true}

	id := e.lowerAllAny(arg, true)
	if id == 0 {
		t.Fatal("lowerAllAny(scalar) returned 0")
	}
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpAll) != 0 || countOpcode(insts, OpAny) != 0 {
		t.Error("a scalar bool argument must not emit OpAll/OpAny")
	}
}

func TestLowerAllAnyVectorDispatchesAllVsAny(t *testing.T) {
	e := newTestEmitter(t)
	boolElem := ast.ScalarType{Kind: ast.ScalarBool, Width: 32}
	vecT := ast.VectorType{Elem: boolElem, Count: 3}
	arg := &ast.InitListExpr{Type: vecT, Inits: []ast.Expr{
		&ast.BoolLiteral{Value: true}, &ast.BoolLiteral{Value: false}, &ast.BoolLiteral{Value: true},
	}}

	e.lowerAllAny(arg, true)
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpAll) != 1 {
		t.Error("all() on a bool vector should emit exactly one OpAll")
	}

	e2 := newTestEmitter(t)
	e2.lowerAllAny(arg, false)
	insts2 := e2.builder.fn.insertPoint.instructions
	if countOpcode(insts2, OpAny) != 1 {
		t.Error("any() on a bool vector should emit exactly one OpAny")
	}
}

func TestLowerAsTypeIdentityWhenTypesMatch(t *testing.T) {
	e := newTestEmitter(t)
	intT := ast.ScalarType{Kind: ast.ScalarInt, Width: 32}
	arg := &ast.IntegerLiteral{Value: 3, Type: intT}

	id := e.lowerAsType(arg, intT)
	if id == 0 {
		t.Fatal("lowerAsType returned 0")
	}
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpBitcast) != 0 {
		t.Error("asint on an already-int value should be an identity, not a bitcast")
	}
}

func TestLowerAsTypeBitcastsOnKindMismatch(t *testing.T) {
	e := newTestEmitter(t)
	intT := ast.ScalarType{Kind: ast.ScalarInt, Width: 32}
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	arg := &ast.IntegerLiteral{Value: 3, Type: intT}

	e.lowerAsType(arg, floatT)

	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpBitcast) != 1 {
		t.Error("asfloat on an int value should emit exactly one OpBitcast")
	}
}

func TestLowerAsTypeRejectsMatrixArgument(t *testing.T) {
	e := newTestEmitter(t)
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	matT := ast.MatrixType{Elem: floatT, Rows: 4, Cols: 4}
	arg := &ast.DeclRefExpr{Decl: &ast.VarDecl{Name: "m", Type: matT}, Type: matT}
	collecting := e.sink.(*diag.CollectingSink)

	id := e.lowerAsType(arg, floatT)
	if id != 0 {
		t.Error("a matrix argument to as* must be rejected with a 0 result")
	}
	if !collecting.HasErrors() {
		t.Error("a matrix argument to as* should report an error")
	}
}
