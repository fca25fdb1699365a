package spirv

import (
	"testing"

	"github.com/gogpu/hlslspv/ast"
)

func TestTranslateOpArithmetic(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		kind ast.ScalarKind
		want OpCode
	}{
		{ast.BinAdd, ast.ScalarFloat, OpFAdd},
		{ast.BinAdd, ast.ScalarInt, OpIAdd},
		{ast.BinAdd, ast.ScalarUint, OpIAdd},
		{ast.BinSub, ast.ScalarFloat, OpFSub},
		{ast.BinSub, ast.ScalarInt, OpISub},
		{ast.BinMul, ast.ScalarFloat, OpFMul},
		{ast.BinMul, ast.ScalarInt, OpIMul},
		{ast.BinDiv, ast.ScalarFloat, OpFDiv},
		{ast.BinDiv, ast.ScalarUint, OpUDiv},
		{ast.BinDiv, ast.ScalarInt, OpSDiv},
		{ast.BinRem, ast.ScalarFloat, OpFRem},
		{ast.BinRem, ast.ScalarUint, OpUMod},
		{ast.BinRem, ast.ScalarInt, OpSRem},
	}
	for _, c := range cases {
		got, ok := translateOp(c.op, c.kind)
		if !ok {
			t.Errorf("translateOp(%v, %v): ok = false, want true", c.op, c.kind)
			continue
		}
		if got != c.want {
			t.Errorf("translateOp(%v, %v) = %d, want %d", c.op, c.kind, got, c.want)
		}
	}
}

func TestTranslateOpComparison(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		kind ast.ScalarKind
		want OpCode
	}{
		{ast.BinLT, ast.ScalarFloat, OpFOrdLessThan},
		{ast.BinLT, ast.ScalarUint, OpULessThan},
		{ast.BinLT, ast.ScalarInt, OpSLessThan},
		{ast.BinGE, ast.ScalarFloat, OpFOrdGreaterThanEqual},
		{ast.BinGE, ast.ScalarUint, OpUGreaterThanEqual},
		{ast.BinGE, ast.ScalarInt, OpSGreaterThanEqual},
		{ast.BinEQ, ast.ScalarFloat, OpFOrdEqual},
		{ast.BinEQ, ast.ScalarInt, OpIEqual},
		{ast.BinNE, ast.ScalarFloat, OpFOrdNotEqual},
		{ast.BinNE, ast.ScalarUint, OpINotEqual},
	}
	for _, c := range cases {
		got, ok := translateOp(c.op, c.kind)
		if !ok || got != c.want {
			t.Errorf("translateOp(%v, %v) = (%d, %v), want (%d, true)", c.op, c.kind, got, ok, c.want)
		}
	}
}

func TestTranslateOpBitwiseRejectsFloat(t *testing.T) {
	for _, op := range []ast.BinaryOp{ast.BinAnd, ast.BinOr, ast.BinXor, ast.BinShl, ast.BinShr} {
		if _, ok := translateOp(op, ast.ScalarFloat); ok {
			t.Errorf("translateOp(%v, ScalarFloat): ok = true, want false (no bitwise op on floats)", op)
		}
	}
}

func TestTranslateOpBitwiseInts(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOp
		kind ast.ScalarKind
		want OpCode
	}{
		{ast.BinAnd, ast.ScalarInt, OpBitwiseAnd},
		{ast.BinOr, ast.ScalarInt, OpBitwiseOr},
		{ast.BinXor, ast.ScalarInt, OpBitwiseXor},
		{ast.BinShl, ast.ScalarInt, OpShiftLeftLogical},
		{ast.BinShr, ast.ScalarUint, OpShiftRightLogical},
		{ast.BinShr, ast.ScalarInt, OpShiftRightArithmetic},
	}
	for _, c := range cases {
		got, ok := translateOp(c.op, c.kind)
		if !ok || got != c.want {
			t.Errorf("translateOp(%v, %v) = (%d, %v), want (%d, true)", c.op, c.kind, got, ok, c.want)
		}
	}
}

func TestTranslateOpLogicalRequiresBool(t *testing.T) {
	if _, ok := translateOp(ast.BinLAnd, ast.ScalarInt); ok {
		t.Error("BinLAnd on ScalarInt should be rejected (logical ops are bool-only)")
	}
	if got, ok := translateOp(ast.BinLAnd, ast.ScalarBool); !ok || got != OpLogicalAnd {
		t.Errorf("translateOp(BinLAnd, ScalarBool) = (%d, %v), want (OpLogicalAnd, true)", got, ok)
	}
	if got, ok := translateOp(ast.BinLOr, ast.ScalarBool); !ok || got != OpLogicalOr {
		t.Errorf("translateOp(BinLOr, ScalarBool) = (%d, %v), want (OpLogicalOr, true)", got, ok)
	}
}

func TestTranslateOpUnknownOperator(t *testing.T) {
	if _, ok := translateOp(ast.BinAssign, ast.ScalarInt); ok {
		t.Error("BinAssign is not a translate_op entry and should report ok = false")
	}
}
