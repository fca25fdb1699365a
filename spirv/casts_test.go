package spirv

import (
	"testing"

	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/diag"
)

// newTestEmitter returns an Emitter with an open function and basic block,
// ready to lower expressions directly (bypassing Compile's full pipeline).
func newTestEmitter(t *testing.T) *Emitter {
	t.Helper()
	sink := diag.NewCollectingSink()
	e := &Emitter{
		builder: NewBuilder(Version1_3),
		sink:    sink,
	}
	e.decls = NewDeclMapper(e.builder)
	voidT := e.builder.Types.Void()
	fnType := e.builder.Types.Function(voidT, nil)
	e.builder.BeginFunction(fnType, voidT, "test")
	bb := e.builder.CreateBasicBlock("bb.entry")
	e.builder.SetInsertPoint(bb)
	return e
}

func TestCastToFloatFromInt(t *testing.T) {
	e := newTestEmitter(t)
	intT := ast.ScalarType{Kind: ast.ScalarInt, Width: 32}
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	sub := &ast.IntegerLiteral{Value: 3, Type: intT}

	id := e.castToFloat(sub, floatT)
	if id == 0 {
		t.Fatal("castToFloat returned 0")
	}
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpConvertSToF) != 1 {
		t.Error("expected exactly one OpConvertSToF")
	}
}

func TestCastToFloatFromUint(t *testing.T) {
	e := newTestEmitter(t)
	uintT := ast.ScalarType{Kind: ast.ScalarUint, Width: 32}
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	sub := &ast.IntegerLiteral{Value: 3, Type: uintT}

	e.castToFloat(sub, floatT)
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpConvertUToF) != 1 {
		t.Error("expected exactly one OpConvertUToF")
	}
}

func TestCastToIntFromFloatSigned(t *testing.T) {
	e := newTestEmitter(t)
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	intT := ast.ScalarType{Kind: ast.ScalarInt, Width: 32}
	sub := &ast.FloatingLiteral{Value: 3.5, Type: floatT}

	e.castToInt(sub, intT)
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpConvertFToS) != 1 {
		t.Error("expected exactly one OpConvertFToS")
	}
}

func TestCastToIntFromFloatUnsigned(t *testing.T) {
	e := newTestEmitter(t)
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	uintT := ast.ScalarType{Kind: ast.ScalarUint, Width: 32}
	sub := &ast.FloatingLiteral{Value: 3.5, Type: floatT}

	e.castToInt(sub, uintT)
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpConvertFToU) != 1 {
		t.Error("expected exactly one OpConvertFToU")
	}
}

func TestCastIntUintSameWidthIsBitcast(t *testing.T) {
	e := newTestEmitter(t)
	intT := ast.ScalarType{Kind: ast.ScalarInt, Width: 32}
	uintT := ast.ScalarType{Kind: ast.ScalarUint, Width: 32}
	sub := &ast.IntegerLiteral{Value: 3, Type: intT}

	e.castToInt(sub, uintT)
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpBitcast) != 1 {
		t.Error("expected exactly one OpBitcast for int<->uint reinterpretation")
	}
}

func TestLowerVectorSplat(t *testing.T) {
	e := newTestEmitter(t)
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	vec3 := ast.VectorType{Elem: floatT, Count: 3}
	sub := &ast.FloatingLiteral{Value: 1, Type: floatT}

	id := e.lowerVectorSplat(sub, vec3)
	if id == 0 {
		t.Fatal("lowerVectorSplat returned 0")
	}
	insts := e.builder.fn.insertPoint.instructions
	construct := findOne(t, insts, OpCompositeConstruct)
	// result type + result id + 3 constituents = 5 operand words
	if len(construct.Words) != 5 {
		t.Errorf("OpCompositeConstruct has %d operand words, want 5 (type+id+3 lanes)", len(construct.Words))
	}
}

func TestLowerVectorTruncationToScalar(t *testing.T) {
	e := newTestEmitter(t)
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	sub := &ast.FloatingLiteral{Value: 1, Type: floatT}

	id := e.lowerVectorTruncation(sub, floatT)
	if id == 0 {
		t.Fatal("lowerVectorTruncation to a scalar target returned 0")
	}
	insts := e.builder.fn.insertPoint.instructions
	if countOpcode(insts, OpCompositeExtract) != 1 {
		t.Error("truncation to a 1-wide target should extract exactly one lane")
	}
}
