package spirv

import "github.com/gogpu/hlslspv/ast"

// translateOp selects the SPIR-V opcode for an HLSL binary operator given
// the element scalar kind of its operands. ok is false for an
// operator/kind combination that has no SPIR-V equivalent (e.g. bitwise
// ops on floats).
func translateOp(op ast.BinaryOp, kind ast.ScalarKind) (OpCode, bool) {
	switch op {
	case ast.BinAdd:
		switch kind {
		case ast.ScalarFloat:
			return OpFAdd, true
		default:
			return OpIAdd, true
		}
	case ast.BinSub:
		switch kind {
		case ast.ScalarFloat:
			return OpFSub, true
		default:
			return OpISub, true
		}
	case ast.BinMul:
		switch kind {
		case ast.ScalarFloat:
			return OpFMul, true
		default:
			return OpIMul, true
		}
	case ast.BinDiv:
		switch kind {
		case ast.ScalarFloat:
			return OpFDiv, true
		case ast.ScalarUint:
			return OpUDiv, true
		default:
			return OpSDiv, true
		}
	case ast.BinRem:
		// C-like semantics: the result's sign matches the dividend, hence
		// OpSRem/OpFRem rather than OpSMod/OpFMod for mixed-sign inputs.
		switch kind {
		case ast.ScalarFloat:
			return OpFRem, true
		case ast.ScalarUint:
			return OpUMod, true
		default:
			return OpSRem, true
		}
	case ast.BinLT:
		switch kind {
		case ast.ScalarFloat:
			return OpFOrdLessThan, true
		case ast.ScalarUint:
			return OpULessThan, true
		default:
			return OpSLessThan, true
		}
	case ast.BinLE:
		switch kind {
		case ast.ScalarFloat:
			return OpFOrdLessThanEqual, true
		case ast.ScalarUint:
			return OpULessThanEqual, true
		default:
			return OpSLessThanEqual, true
		}
	case ast.BinGT:
		switch kind {
		case ast.ScalarFloat:
			return OpFOrdGreaterThan, true
		case ast.ScalarUint:
			return OpUGreaterThan, true
		default:
			return OpSGreaterThan, true
		}
	case ast.BinGE:
		switch kind {
		case ast.ScalarFloat:
			return OpFOrdGreaterThanEqual, true
		case ast.ScalarUint:
			return OpUGreaterThanEqual, true
		default:
			return OpSGreaterThanEqual, true
		}
	case ast.BinEQ:
		switch kind {
		case ast.ScalarFloat:
			return OpFOrdEqual, true
		default:
			return OpIEqual, true
		}
	case ast.BinNE:
		switch kind {
		case ast.ScalarFloat:
			return OpFOrdNotEqual, true
		default:
			return OpINotEqual, true
		}
	case ast.BinAnd:
		if kind == ast.ScalarFloat {
			return 0, false
		}
		return OpBitwiseAnd, true
	case ast.BinOr:
		if kind == ast.ScalarFloat {
			return 0, false
		}
		return OpBitwiseOr, true
	case ast.BinXor:
		if kind == ast.ScalarFloat {
			return 0, false
		}
		return OpBitwiseXor, true
	case ast.BinShl:
		if kind == ast.ScalarFloat {
			return 0, false
		}
		return OpShiftLeftLogical, true
	case ast.BinShr:
		switch kind {
		case ast.ScalarFloat:
			return 0, false
		case ast.ScalarUint:
			return OpShiftRightLogical, true
		default:
			return OpShiftRightArithmetic, true
		}
	case ast.BinLAnd:
		if kind != ast.ScalarBool {
			return 0, false
		}
		return OpLogicalAnd, true
	case ast.BinLOr:
		if kind != ast.ScalarBool {
			return 0, false
		}
		return OpLogicalOr, true
	default:
		return 0, false
	}
}
