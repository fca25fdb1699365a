package spirv

import (
	"github.com/gogpu/hlslspv/ast"
	"github.com/gogpu/hlslspv/diag"
)

// lowerExpr is the expression dispatcher. DeclRefExpr and MemberExpr always
// yield pointers, as do prefix ++/--, compound assignments, and a
// single-lane or identity VectorElementExpr over an addressable base (see
// isLValue); every other node yields an rvalue. A non-identity multi-selector
// VectorElementExpr in lvalue position is never lowered to a pointer: an
// enclosing assignment/compound-assignment recognizes it by shape rather
// than by a wrapper type (see assignTo).
func (e *Emitter) lowerExpr(expr ast.Expr) uint32 {
	switch v := expr.(type) {
	case *ast.DeclRefExpr:
		return e.localVars[v.Decl]

	case *ast.ParenExpr:
		return e.lowerExpr(v.Sub)

	case *ast.MemberExpr:
		return e.lowerMember(v)

	case *ast.CastExpr:
		return e.lowerCast(v)

	case *ast.IntegerLiteral:
		return e.intLiteral(v)

	case *ast.FloatingLiteral:
		return e.floatLiteral(v)

	case *ast.BoolLiteral:
		return e.builder.Constants.Bool(e.builder.Types.Bool(), v.Value)

	case *ast.InitListExpr:
		return e.lowerInitList(v)

	case *ast.BinaryOperator:
		return e.lowerBinary(v)

	case *ast.CompoundAssignOperator:
		return e.lowerCompoundAssign(v)

	case *ast.UnaryOperator:
		return e.lowerUnary(v)

	case *ast.VectorElementExpr:
		return e.lowerSwizzle(v)

	case *ast.ConditionalOperator:
		return e.lowerConditional(v)

	case *ast.CallExpr:
		return e.lowerCall(v)

	default:
		e.unsupported("unsupported expression node")
		return 0
	}
}

// lowerMember lowers a struct field access as a pointer (an access chain
// into the base) — member access always occurs on an addressable struct
// local in this core (no nested rvalue structs).
func (e *Emitter) lowerMember(m *ast.MemberExpr) uint32 {
	basePtr := e.lowerExpr(m.Base)
	fieldType := e.builder.TranslateType(m.Field.Type)
	ptrType := e.builder.Types.Pointer(fieldType, StorageClassFunction)
	idx := e.builder.Constants.Uint32(e.builder.Types.Int(scalarWidth, false), uint32(m.Field.Index))
	return e.builder.CreateAccessChain(ptrType, basePtr, []uint32{idx})
}

// intLiteral interns a 32-bit integer constant at its literal's own type; a
// literal of any other width is reported as KindUnsupported.
func (e *Emitter) intLiteral(lit *ast.IntegerLiteral) uint32 {
	if st, ok := lit.Type.(ast.ScalarType); ok && st.Width != scalarWidth {
		e.unsupported("%d-bit integer literal is not supported", st.Width)
		return 0
	}
	kind, _ := ast.ScalarKindOf(lit.Type)
	t := e.builder.TranslateType(lit.Type)
	if kind == ast.ScalarUint {
		return e.builder.Constants.Uint32(t, uint32(lit.Value))
	}
	return e.builder.Constants.Int32(t, int32(lit.Value))
}

// floatLiteral interns a 32-bit float constant; a literal of any other
// width is reported as KindUnsupported.
func (e *Emitter) floatLiteral(lit *ast.FloatingLiteral) uint32 {
	t := e.builder.TranslateType(lit.Type)
	if st, ok := lit.Type.(ast.ScalarType); ok && st.Width != scalarWidth {
		e.unsupported("%d-bit float literal is not supported", st.Width)
		return 0
	}
	return e.builder.Constants.Float32(t, float32(lit.Value))
}

// lowerInitList lowers a brace initializer: constant-folds to a single
// interned composite constant when every element folds, else emits
// OpCompositeConstruct from the lowered elements.
func (e *Emitter) lowerInitList(lit *ast.InitListExpr) uint32 {
	if cv, ok := ast.EvaluateAsConstant(lit); ok {
		if id, ok := e.constantFromValue(cv); ok {
			return id
		}
	}
	t := e.builder.TranslateType(lit.Type)
	parts := make([]uint32, len(lit.Inits))
	for i, sub := range lit.Inits {
		parts[i] = e.lowerExpr(sub)
	}
	return e.builder.CreateCompositeConstruct(t, parts)
}

// lowerBinary lowers a non-assignment binary operator via translateOp,
// with a float-vector * float-scalar special case using
// OpVectorTimesScalar instead of a per-component multiply.
func (e *Emitter) lowerBinary(b *ast.BinaryOperator) uint32 {
	if b.Op == ast.BinAssign {
		rhs := e.lowerExpr(b.RHS)
		e.assignTo(b.LHS, rhs)
		return rhs
	}

	lhs := e.lowerExpr(b.LHS)
	rhs := e.lowerExpr(b.RHS)
	resultType := e.builder.TranslateType(b.Type)

	if op, ok := e.vectorTimesScalarOp(b); ok {
		return e.builder.CreateBinaryOp(op, resultType, lhs, rhs)
	}

	kind, _ := ast.ScalarKindOf(b.LHS.ExprType())
	op, ok := translateOp(b.Op, kind)
	if !ok {
		e.unsupported("binary operator has no SPIR-V equivalent for this operand kind")
		return 0
	}
	return e.builder.CreateBinaryOp(op, resultType, lhs, rhs)
}

// vectorTimesScalarOp recognizes float-vector * float-scalar (in either
// operand order) and returns OpVectorTimesScalar.
func (e *Emitter) vectorTimesScalarOp(b *ast.BinaryOperator) (OpCode, bool) {
	if b.Op != ast.BinMul {
		return 0, false
	}
	lKind, _ := ast.ScalarKindOf(b.LHS.ExprType())
	rKind, _ := ast.ScalarKindOf(b.RHS.ExprType())
	if lKind != ast.ScalarFloat || rKind != ast.ScalarFloat {
		return 0, false
	}
	_, lVec := b.LHS.ExprType().(ast.VectorType)
	_, rVec := b.RHS.ExprType().(ast.VectorType)
	if lVec != rVec {
		return OpVectorTimesScalar, true
	}
	return 0, false
}

// lowerUnary lowers pre/post inc/dec, logical not, bitwise complement,
// unary plus (identity) and unary negate.
func (e *Emitter) lowerUnary(u *ast.UnaryOperator) uint32 {
	switch u.Op {
	case ast.UnaryPreInc, ast.UnaryPreDec, ast.UnaryPostInc, ast.UnaryPostDec:
		return e.lowerIncDec(u)

	case ast.UnaryNot:
		boolVal := e.boolCast(u.Sub)
		return e.builder.CreateUnaryOp(OpLogicalNot, e.builder.TranslateType(u.Type), boolVal)

	case ast.UnaryComplement:
		val := e.lowerExpr(u.Sub)
		return e.builder.CreateUnaryOp(OpNot, e.builder.TranslateType(u.Type), val)

	case ast.UnaryPlus:
		return e.lowerExpr(u.Sub)

	case ast.UnaryNeg:
		val := e.lowerExpr(u.Sub)
		kind, _ := ast.ScalarKindOf(u.Type)
		op := OpSNegate
		if kind == ast.ScalarFloat {
			op = OpFNegate
		}
		return e.builder.CreateUnaryOp(op, e.builder.TranslateType(u.Type), val)

	default:
		e.unsupported("unsupported unary operator")
		return 0
	}
}

func (e *Emitter) lowerIncDec(u *ast.UnaryOperator) uint32 {
	ptr := e.lowerExpr(u.Sub)
	t := e.builder.TranslateType(u.Type)
	cur := e.builder.CreateLoad(t, ptr)

	kind, _ := ast.ScalarKindOf(u.Type)
	isDec := u.Op == ast.UnaryPreDec || u.Op == ast.UnaryPostDec
	delta := e.oneConstant(u.Type)
	binOp := ast.BinAdd
	if isDec {
		binOp = ast.BinSub
	}
	op, _ := translateOp(binOp, kind)
	next := e.builder.CreateBinaryOp(op, t, cur, delta)
	e.builder.CreateStore(ptr, next)

	if u.Op == ast.UnaryPreInc || u.Op == ast.UnaryPreDec {
		return ptr
	}
	return cur
}

// lowerConditional lowers HLSL's ternary via OpSelect (no short-circuit:
// both arms are always evaluated, matching SPIR-V's value-select
// semantics; HLSL's ?: does not introduce control flow).
func (e *Emitter) lowerConditional(c *ast.ConditionalOperator) uint32 {
	cond := e.lowerExpr(c.Cond)
	trueVal := e.lowerExpr(c.True)
	falseVal := e.lowerExpr(c.False)
	return e.builder.CreateSelect(e.builder.TranslateType(c.Type), cond, trueVal, falseVal)
}

// lowerCall dispatches a CallExpr to the intrinsic catalog or to a
// user-defined function, enqueuing the callee for later lowering
// (enqueue-if-unseen) and reserving its id up
// front so the call can reference it before it is lowered.
func (e *Emitter) lowerCall(call *ast.CallExpr) uint32 {
	if call.Intrinsic != ast.IntrinsicNone {
		return e.lowerIntrinsic(call)
	}
	if call.Callee == nil {
		e.unsupported("call to unresolved function")
		return 0
	}
	e.enqueue(call.Callee)
	calleeID := e.funcID(call.Callee)

	args := make([]uint32, len(call.Args))
	for i, a := range call.Args {
		valType := e.builder.TranslateType(a.ExprType())
		ptrType := e.builder.Types.Pointer(valType, StorageClassFunction)
		tmp := e.builder.AddFnVariable(ptrType, "param.var", nil)
		e.builder.CreateStore(tmp, e.lowerExpr(a))
		args[i] = tmp
	}
	resultType := e.builder.TranslateType(call.Type)
	return e.builder.CreateFunctionCall(resultType, calleeID, args)
}

// --- swizzles ---

// swizzleComponent maps an accessor letter to its vector lane index,
// supporting both the xyzw and rgba naming conventions.
func swizzleComponent(c byte) (int, bool) {
	switch c {
	case 'x', 'r':
		return 0, true
	case 'y', 'g':
		return 1, true
	case 'z', 'b':
		return 2, true
	case 'w', 'a':
		return 3, true
	default:
		return 0, false
	}
}

// composeSwizzle resolves nested swizzles (v.xyzw.zx == v.zx) down to a
// non-swizzle base expression and a flat list of lane indices into it.
func composeSwizzle(ve *ast.VectorElementExpr) (ast.Expr, []int) {
	indices := make([]int, 0, len(ve.Accessor))
	for i := 0; i < len(ve.Accessor); i++ {
		idx, ok := swizzleComponent(ve.Accessor[i])
		if !ok {
			idx = 0
		}
		indices = append(indices, idx)
	}
	base := ast.Expr(ve)
	for {
		inner, ok := base.(*ast.VectorElementExpr)
		if !ok {
			break
		}
		if inner == ve {
			base = inner.Base
			continue
		}
		innerBase, innerIdx := composeSwizzle(inner)
		for i, idx := range indices {
			indices[i] = innerIdx[idx]
		}
		base = innerBase
	}
	return base, indices
}

func isIdentityOrder(indices []int, n int) bool {
	if len(indices) != n {
		return false
	}
	for i, idx := range indices {
		if idx != i {
			return false
		}
	}
	return true
}

// swizzleProducesShuffle reports whether ve, read as an rvalue, is lowered
// via an actual OpVectorShuffle — i.e. it selects more than one lane and is
// not the identity permutation (a swizzle already lowered to a value must
// not be loaded again).
func (e *Emitter) swizzleProducesShuffle(ve *ast.VectorElementExpr) bool {
	base, indices := composeSwizzle(ve)
	baseSize, _ := ast.VectorSizeOf(base.ExprType())
	return len(indices) > 1 && !(int(baseSize) == len(indices) && isIdentityOrder(indices, int(baseSize)))
}

// isLValue reports whether expr denotes an addressable SPIR-V pointer
// rather than a value (DeclRefExpr/MemberExpr always do; a
// VectorElementExpr does only when it degenerates to a single-lane access
// or a full identity permutation).
func isLValue(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.DeclRefExpr, *ast.MemberExpr, *ast.CompoundAssignOperator:
		return true
	case *ast.ParenExpr:
		return isLValue(v.Sub)
	case *ast.UnaryOperator:
		return v.Op == ast.UnaryPreInc || v.Op == ast.UnaryPreDec
	case *ast.VectorElementExpr:
		base, indices := composeSwizzle(v)
		baseSize, _ := ast.VectorSizeOf(base.ExprType())
		if len(indices) == 1 {
			return isLValue(base)
		}
		if int(baseSize) == len(indices) && isIdentityOrder(indices, int(baseSize)) {
			return isLValue(base)
		}
		return false
	default:
		return false
	}
}

// rvalueOf loads base through basePtr if base is addressable, else returns
// basePtr as-is (it is already a value).
func (e *Emitter) rvalueOf(base ast.Expr, basePtr uint32) uint32 {
	if !isLValue(base) {
		return basePtr
	}
	t := e.builder.TranslateType(base.ExprType())
	return e.builder.CreateLoad(t, basePtr)
}

// lowerSwizzle lowers a VectorElementExpr, dispatching on lane count and
// whether the base itself is addressable.
func (e *Emitter) lowerSwizzle(ve *ast.VectorElementExpr) uint32 {
	base, indices := composeSwizzle(ve)
	baseSize, _ := ast.VectorSizeOf(base.ExprType())
	baseID := e.lowerExpr(base)

	if len(indices) == 1 {
		if int(baseSize) == 1 {
			return baseID
		}
		elemType := e.builder.TranslateType(ve.Type)
		if isLValue(base) {
			idxConst := e.builder.Constants.Uint32(e.builder.Types.Int(scalarWidth, false), uint32(indices[0]))
			ptrType := e.builder.Types.Pointer(elemType, StorageClassFunction)
			return e.builder.CreateAccessChain(ptrType, baseID, []uint32{idxConst})
		}
		return e.builder.CreateCompositeExtract(elemType, baseID, []uint32{uint32(indices[0])})
	}

	if int(baseSize) == 1 {
		scalarVal := e.rvalueOf(base, baseID)
		t := e.builder.TranslateType(ve.Type)
		constituents := make([]uint32, len(indices))
		for i := range constituents {
			constituents[i] = scalarVal
		}
		return e.builder.CreateCompositeConstruct(t, constituents)
	}

	if int(baseSize) == len(indices) && isIdentityOrder(indices, int(baseSize)) {
		return baseID
	}

	vecVal := e.rvalueOf(base, baseID)
	t := e.builder.TranslateType(ve.Type)
	selectors := make([]uint32, len(indices))
	for i, idx := range indices {
		selectors[i] = uint32(idx)
	}
	return e.builder.CreateVectorShuffle(t, vecVal, vecVal, selectors)
}

// mergedSelector builds the OpVectorShuffle selector list for storing a
// len(indices)-lane RHS back into specific lanes of a baseSize-lane
// vector: identity for every untouched lane, baseSize+k for the lane
// written by RHS component k.
func mergedSelector(indices []int, baseSize int) []uint32 {
	merged := make([]uint32, baseSize)
	for i := range merged {
		merged[i] = uint32(i)
	}
	for k, idx := range indices {
		merged[idx] = uint32(baseSize + k)
	}
	return merged
}

// swizzleNeedsMerge reports whether ve, used in lvalue position, requires
// the merged-selector read-modify-write shuffle rather than a plain
// pointer store (i.e. it selects more than one lane and is not the
// identity permutation).
func swizzleNeedsMerge(ve *ast.VectorElementExpr) (base ast.Expr, indices []int, needs bool) {
	base, indices = composeSwizzle(ve)
	baseSize, _ := ast.VectorSizeOf(base.ExprType())
	needs = len(indices) > 1 && !(int(baseSize) == len(indices) && isIdentityOrder(indices, int(baseSize)))
	return
}

// assignTo stores rhsVal into lhs, handling the non-identity multi-lane
// swizzle case via a merged-selector
// read-modify-write shuffle instead of treating the swizzle as a plain
// pointer.
func (e *Emitter) assignTo(lhs ast.Expr, rhsVal uint32) uint32 {
	lhs = ast.IgnoreParens(lhs)
	if ve, ok := lhs.(*ast.VectorElementExpr); ok {
		if base, indices, needs := swizzleNeedsMerge(ve); needs {
			basePtr := e.lowerExpr(base)
			baseType := e.builder.TranslateType(base.ExprType())
			baseSize, _ := ast.VectorSizeOf(base.ExprType())
			loadedBase := e.builder.CreateLoad(baseType, basePtr)
			merged := mergedSelector(indices, int(baseSize))
			shuffled := e.builder.CreateVectorShuffle(baseType, loadedBase, rhsVal, merged)
			e.builder.CreateStore(basePtr, shuffled)
			return basePtr
		}
	}
	ptr := e.lowerExpr(lhs)
	e.builder.CreateStore(ptr, rhsVal)
	return ptr
}

// lowerCompoundAssign lowers a compound-assignment (+=, -=, ...): load the
// current LHS value, apply translate_op, store back, and return the LHS
// pointer (not the stored value — a deliberate deviation from plain
// assignment's "return the value" behavior).
func (e *Emitter) lowerCompoundAssign(ca *ast.CompoundAssignOperator) uint32 {
	rhs := e.lowerExpr(ca.RHS)
	lhs := ast.IgnoreParens(ca.LHS)
	kind, _ := ast.ScalarKindOf(ca.Type)
	op, ok := translateOp(ca.Op, kind)
	if !ok {
		e.unsupported("compound-assignment operator has no SPIR-V equivalent for this operand kind")
		return 0
	}

	if ve, isVe := lhs.(*ast.VectorElementExpr); isVe {
		if base, indices, needs := swizzleNeedsMerge(ve); needs {
			basePtr := e.lowerExpr(base)
			baseType := e.builder.TranslateType(base.ExprType())
			baseSize, _ := ast.VectorSizeOf(base.ExprType())
			loadedBase := e.builder.CreateLoad(baseType, basePtr)

			curType := e.builder.TranslateType(ca.Type)
			selIdx := make([]uint32, len(indices))
			for i, idx := range indices {
				selIdx[i] = uint32(idx)
			}
			curVal := e.builder.CreateVectorShuffle(curType, loadedBase, loadedBase, selIdx)
			newVal := e.builder.CreateBinaryOp(op, curType, curVal, rhs)

			merged := mergedSelector(indices, int(baseSize))
			shuffled := e.builder.CreateVectorShuffle(baseType, loadedBase, newVal, merged)
			e.builder.CreateStore(basePtr, shuffled)
			return basePtr
		}
	}

	ptr := e.lowerExpr(lhs)
	t := e.builder.TranslateType(ca.Type)
	cur := e.builder.CreateLoad(t, ptr)
	next := e.builder.CreateBinaryOp(op, t, cur, rhs)
	e.builder.CreateStore(ptr, next)
	return ptr
}

// --- constants ---

// zeroConstant returns a zero value of t: a scalar zero, or a composite of
// repeated scalar zeros for a vector type.
func (e *Emitter) zeroConstant(t ast.Type) uint32 {
	switch v := t.(type) {
	case ast.ScalarType:
		return e.scalarZero(v)
	case ast.VectorType:
		zero := e.scalarZero(v.Elem)
		vt := e.builder.TranslateType(t)
		parts := make([]uint32, v.Count)
		for i := range parts {
			parts[i] = zero
		}
		return e.builder.Constants.Composite(vt, parts)
	default:
		e.unsupported("zero constant requested for unsupported type")
		return 0
	}
}

func (e *Emitter) scalarZero(s ast.ScalarType) uint32 {
	t := e.builder.TranslateType(s)
	switch s.Kind {
	case ast.ScalarBool:
		return e.builder.Constants.Bool(e.builder.Types.Bool(), false)
	case ast.ScalarUint:
		return e.builder.Constants.Uint32(t, 0)
	case ast.ScalarFloat:
		return e.builder.Constants.Float32(t, 0)
	default:
		return e.builder.Constants.Int32(t, 0)
	}
}

// oneConstant returns a scalar 1 of t's kind, used by ++/-- lowering.
func (e *Emitter) oneConstant(t ast.Type) uint32 {
	s, ok := t.(ast.ScalarType)
	if !ok {
		e.unsupported("non-scalar operand to increment/decrement")
		return 0
	}
	id := e.builder.TranslateType(s)
	switch s.Kind {
	case ast.ScalarUint:
		return e.builder.Constants.Uint32(id, 1)
	case ast.ScalarFloat:
		return e.builder.Constants.Float32(id, 1)
	default:
		return e.builder.Constants.Int32(id, 1)
	}
}

// intConstant returns a scalar int/uint constant of the given value at
// target's type (used by cast_to_int's bool-source case).
func (e *Emitter) intConstant(target ast.Type, v int64) uint32 {
	s, ok := target.(ast.ScalarType)
	if !ok {
		e.unsupported("non-scalar target for integer constant")
		return 0
	}
	t := e.builder.TranslateType(s)
	if s.Kind == ast.ScalarUint {
		return e.builder.Constants.Uint32(t, uint32(v))
	}
	return e.builder.Constants.Int32(t, int32(v))
}

// floatConstant returns a scalar float constant of the given value at
// target's type (used by cast_to_float's bool-source case).
func (e *Emitter) floatConstant(target ast.Type, v float64) uint32 {
	s, ok := target.(ast.ScalarType)
	if !ok {
		e.unsupported("non-scalar target for float constant")
		return 0
	}
	t := e.builder.TranslateType(s)
	if s.Width == 64 {
		return e.builder.Constants.Float64(t, v)
	}
	return e.builder.Constants.Float32(t, float32(v))
}

// constantFromValue interns a folded constant (ast.EvaluateAsConstant's
// result) as a SPIR-V constant id.
func (e *Emitter) constantFromValue(cv ast.ConstValue) (uint32, bool) {
	t := e.builder.TranslateType(cv.Type)
	switch cv.Kind {
	case ast.ConstBool:
		return e.builder.Constants.Bool(e.builder.Types.Bool(), cv.Bool), true
	case ast.ConstInt:
		return e.builder.Constants.Int32(t, int32(cv.Int)), true
	case ast.ConstUint:
		return e.builder.Constants.Uint32(t, uint32(cv.Uint)), true
	case ast.ConstFloat:
		if s, ok := cv.Type.(ast.ScalarType); ok && s.Width == 64 {
			return e.builder.Constants.Float64(t, cv.Float), true
		}
		return e.builder.Constants.Float32(t, float32(cv.Float)), true
	case ast.ConstComposite:
		parts := make([]uint32, len(cv.Elems))
		for i, elem := range cv.Elems {
			id, ok := e.constantFromValue(elem)
			if !ok {
				return 0, false
			}
			parts[i] = id
		}
		return e.builder.Constants.Composite(t, parts), true
	default:
		return 0, false
	}
}

// unsupported reports a lowering failure and lets the caller continue with
// a best-effort zero result id.
func (e *Emitter) unsupported(format string, args ...any) {
	e.sink.Error(diag.New(diag.KindUnsupported, format, args...))
}
