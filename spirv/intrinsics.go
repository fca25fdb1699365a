package spirv

import "github.com/gogpu/hlslspv/ast"

// lowerIntrinsic dispatches a recognized HLSL intrinsic call.
func (e *Emitter) lowerIntrinsic(call *ast.CallExpr) uint32 {
	switch call.Intrinsic {
	case ast.IntrinsicDot:
		return e.lowerDot(call.Args[0], call.Args[1])
	case ast.IntrinsicAll:
		return e.lowerAllAny(call.Args[0], true)
	case ast.IntrinsicAny:
		return e.lowerAllAny(call.Args[0], false)
	case ast.IntrinsicAsFloat:
		return e.lowerAsType(call.Args[0], call.Type)
	case ast.IntrinsicAsInt, ast.IntrinsicAsUint:
		return e.lowerAsType(call.Args[0], call.Type)
	default:
		e.unsupported("unrecognized intrinsic")
		return 0
	}
}

// lowerDot implements dot(a,b): scalar multiply for size-1 vectors, OpDot
// for float vectors, pairwise multiply + accumulate for integer vectors
// (SPIR-V OpDot requires floats).
func (e *Emitter) lowerDot(a, b ast.Expr) uint32 {
	lhs := e.lowerExpr(a)
	rhs := e.lowerExpr(b)
	count, _ := ast.VectorSizeOf(a.ExprType())
	kind, _ := ast.ScalarKindOf(a.ExprType())
	resultType := e.builder.TranslateType(ast.ScalarType{Kind: kind, Width: scalarWidth})

	if count == 1 {
		op, _ := translateOp(ast.BinMul, kind)
		return e.builder.CreateBinaryOp(op, resultType, lhs, rhs)
	}
	if kind == ast.ScalarFloat {
		return e.builder.CreateBinaryOp(OpDot, resultType, lhs, rhs)
	}

	elemType := resultType
	mulOp, _ := translateOp(ast.BinMul, kind)
	addOp, _ := translateOp(ast.BinAdd, kind)
	var sum uint32
	for i := uint32(0); i < uint32(count); i++ {
		li := e.builder.CreateCompositeExtract(elemType, lhs, []uint32{i})
		ri := e.builder.CreateCompositeExtract(elemType, rhs, []uint32{i})
		prod := e.builder.CreateBinaryOp(mulOp, elemType, li, ri)
		if i == 0 {
			sum = prod
		} else {
			sum = e.builder.CreateBinaryOp(addOp, elemType, sum, prod)
		}
	}
	return sum
}

// lowerAllAny implements all(x)/any(x): bool-cast the argument, then
// identity for scalar bool or OpAll/OpAny for a bool vector.
func (e *Emitter) lowerAllAny(arg ast.Expr, wantAll bool) uint32 {
	boolArg := e.boolCast(arg)
	count, _ := ast.VectorSizeOf(arg.ExprType())
	resultType := e.builder.Types.Bool()
	if count == 1 {
		return boolArg
	}
	if wantAll {
		return e.builder.CreateUnaryOp(OpAll, resultType, boolArg)
	}
	return e.builder.CreateUnaryOp(OpAny, resultType, boolArg)
}

// boolCast produces a bool (or bool vector) value for arg, comparing
// against zero when arg is not already boolean.
func (e *Emitter) boolCast(arg ast.Expr) uint32 {
	kind, _ := ast.ScalarKindOf(arg.ExprType())
	if kind == ast.ScalarBool {
		return e.lowerExpr(arg)
	}
	val := e.lowerExpr(arg)
	resultType := e.builder.TranslateType(boolTypeLike(arg.ExprType()))
	zero := e.zeroConstant(arg.ExprType())
	op, _ := translateOp(ast.BinNE, kind)
	return e.builder.CreateBinaryOp(op, resultType, val, zero)
}

func boolTypeLike(t ast.Type) ast.Type {
	if vt, ok := t.(ast.VectorType); ok {
		return ast.VectorType{Elem: ast.ScalarType{Kind: ast.ScalarBool, Width: scalarWidth}, Count: vt.Count}
	}
	return ast.ScalarType{Kind: ast.ScalarBool, Width: scalarWidth}
}

// lowerAsType implements asfloat/asint/asuint: identity when types already
// match, otherwise OpBitcast. Matrix arguments are unsupported in this core.
func (e *Emitter) lowerAsType(arg ast.Expr, target ast.Type) uint32 {
	if _, ok := arg.ExprType().(ast.MatrixType); ok {
		e.unsupported("as* intrinsics do not support matrix arguments")
		return 0
	}
	val := e.lowerExpr(arg)
	if typesEqual(arg.ExprType(), target) {
		return val
	}
	return e.builder.CreateUnaryOp(OpBitcast, e.builder.TranslateType(target), val)
}

func typesEqual(a, b ast.Type) bool {
	ak, aok := ast.ScalarKindOf(a)
	bk, bok := ast.ScalarKindOf(b)
	if !aok || !bok {
		return false
	}
	an, _ := ast.VectorSizeOf(a)
	bn, _ := ast.VectorSizeOf(b)
	return ak == bk && an == bn
}
