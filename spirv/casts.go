package spirv

import "github.com/gogpu/hlslspv/ast"

// lowerCast dispatches a CastExpr by its kind. Everything not in the
// catalog reports KindUnsupported and returns 0.
func (e *Emitter) lowerCast(c *ast.CastExpr) uint32 {
	if cv, ok := ast.EvaluateAsConstant(c); ok {
		if id, ok := e.constantFromValue(cv); ok {
			return id
		}
	}

	switch c.Kind {
	case ast.CastNoOp, ast.CastFunctionToPointerDecay:
		return e.lowerExpr(c.Sub)

	case ast.CastLValueToRValue:
		if ve, ok := ast.IgnoreParens(c.Sub).(*ast.VectorElementExpr); ok && e.swizzleProducesShuffle(ve) {
			return e.lowerExpr(c.Sub)
		}
		ptr := e.lowerExpr(c.Sub)
		return e.builder.CreateLoad(e.builder.TranslateType(c.Sub.ExprType()), ptr)

	case ast.CastIntegralCast, ast.CastFloatingToIntegral:
		return e.castToInt(c.Sub, c.Type)

	case ast.CastFloatingCast, ast.CastIntegralToFloating:
		return e.castToFloat(c.Sub, c.Type)

	case ast.CastIntegralToBoolean, ast.CastFloatingToBoolean:
		return e.castToBool(c.Sub, c.Type)

	case ast.CastHLSLVectorSplat:
		return e.lowerVectorSplat(c.Sub, c.Type)

	case ast.CastHLSLVectorTruncation:
		return e.lowerVectorTruncation(c.Sub, c.Type)

	case ast.CastHLSLVectorToScalar, ast.CastHLSLVectorToMatrix,
		ast.CastHLSLMatrixToScalar, ast.CastHLSLMatrixToVector:
		return e.lowerExpr(c.Sub)

	case ast.CastHLSLMatrixSplat:
		return e.lowerMatrixSplat(c.Sub, c.Type)

	default:
		e.unsupported("unsupported cast kind")
		return 0
	}
}

// castToBool implements cast_to_bool: compare against zero of e's type.
func (e *Emitter) castToBool(sub ast.Expr, target ast.Type) uint32 {
	val := e.lowerExpr(sub)
	kind, _ := ast.ScalarKindOf(sub.ExprType())
	boolType := e.builder.TranslateType(target)
	zero := e.zeroConstant(sub.ExprType())
	op, _ := translateOp(ast.BinNE, kind)
	return e.builder.CreateBinaryOp(op, boolType, val, zero)
}

// castToInt implements cast_to_int.
func (e *Emitter) castToInt(sub ast.Expr, target ast.Type) uint32 {
	val := e.lowerExpr(sub)
	targetType := e.builder.TranslateType(target)
	srcKind, _ := ast.ScalarKindOf(sub.ExprType())
	dstKind, _ := ast.ScalarKindOf(target)

	switch srcKind {
	case ast.ScalarBool:
		one := e.intConstant(target, 1)
		zero := e.intConstant(target, 0)
		return e.builder.CreateSelect(targetType, val, one, zero)
	case ast.ScalarFloat:
		if dstKind == ast.ScalarUint {
			return e.builder.CreateUnaryOp(OpConvertFToU, targetType, val)
		}
		return e.builder.CreateUnaryOp(OpConvertFToS, targetType, val)
	default: // int <-> uint, same width
		if srcKind == dstKind {
			return val
		}
		return e.builder.CreateUnaryOp(OpBitcast, targetType, val)
	}
}

// castToFloat implements cast_to_float.
func (e *Emitter) castToFloat(sub ast.Expr, target ast.Type) uint32 {
	val := e.lowerExpr(sub)
	targetType := e.builder.TranslateType(target)
	srcKind, _ := ast.ScalarKindOf(sub.ExprType())

	switch srcKind {
	case ast.ScalarBool:
		one := e.floatConstant(target, 1)
		zero := e.floatConstant(target, 0)
		return e.builder.CreateSelect(targetType, val, one, zero)
	case ast.ScalarUint:
		return e.builder.CreateUnaryOp(OpConvertUToF, targetType, val)
	case ast.ScalarFloat:
		return val
	default:
		return e.builder.CreateUnaryOp(OpConvertSToF, targetType, val)
	}
}

// lowerVectorSplat constructs an N-vector from a scalar.
func (e *Emitter) lowerVectorSplat(sub ast.Expr, target ast.Type) uint32 {
	scalar := e.lowerExpr(sub)
	count, _ := ast.VectorSizeOf(target)
	targetType := e.builder.TranslateType(target)
	constituents := make([]uint32, count)
	for i := range constituents {
		constituents[i] = scalar
	}
	return e.builder.CreateCompositeConstruct(targetType, constituents)
}

// lowerMatrixSplat constructs a matrix from a scalar via nested vector
// splat: one row-vector splat of the scalar, repeated Rows times.
func (e *Emitter) lowerMatrixSplat(sub ast.Expr, target ast.Type) uint32 {
	mat, ok := target.(ast.MatrixType)
	if !ok {
		e.unsupported("matrix splat target is not a matrix type")
		return 0
	}
	scalar := e.lowerExpr(sub)
	rowType := e.builder.Types.Vector(e.builder.TranslateType(mat.Elem), uint32(mat.Cols))
	rowConstituents := make([]uint32, mat.Cols)
	for i := range rowConstituents {
		rowConstituents[i] = scalar
	}
	row := e.builder.CreateCompositeConstruct(rowType, rowConstituents)
	rows := make([]uint32, mat.Rows)
	for i := range rows {
		rows[i] = row
	}
	matType := e.builder.TranslateType(target)
	return e.builder.CreateCompositeConstruct(matType, rows)
}

// lowerVectorTruncation drops trailing lanes: OpCompositeExtract per
// surviving lane plus OpCompositeConstruct, or a single OpCompositeExtract
// of lane 0 (no construct) for N=1.
func (e *Emitter) lowerVectorTruncation(sub ast.Expr, target ast.Type) uint32 {
	base := e.lowerExpr(sub)
	count, _ := ast.VectorSizeOf(target)
	if count == 1 {
		elemType := e.builder.TranslateType(target)
		return e.builder.CreateCompositeExtract(elemType, base, []uint32{0})
	}
	vt, ok := target.(ast.VectorType)
	if !ok {
		e.unsupported("vector truncation target is not a vector type")
		return 0
	}
	elemType := e.builder.TranslateType(vt.Elem)
	lanes := make([]uint32, count)
	for i := range lanes {
		lanes[i] = e.builder.CreateCompositeExtract(elemType, base, []uint32{uint32(i)})
	}
	targetType := e.builder.TranslateType(target)
	return e.builder.CreateCompositeConstruct(targetType, lanes)
}
