package ast

import "testing"

func intLit(v int64) *IntegerLiteral {
	return &IntegerLiteral{Value: v, Type: ScalarType{Kind: ScalarInt, Width: 32}}
}

func floatLit(v float64) *FloatingLiteral {
	return &FloatingLiteral{Value: v, Type: ScalarType{Kind: ScalarFloat, Width: 32}}
}

func TestEvaluateAsConstantLiterals(t *testing.T) {
	cv, ok := EvaluateAsConstant(intLit(7))
	if !ok || cv.Kind != ConstInt || cv.Int != 7 {
		t.Fatalf("got %+v, %v, want ConstInt 7", cv, ok)
	}

	cv, ok = EvaluateAsConstant(floatLit(1.5))
	if !ok || cv.Kind != ConstFloat || cv.Float != 1.5 {
		t.Fatalf("got %+v, %v, want ConstFloat 1.5", cv, ok)
	}

	cv, ok = EvaluateAsConstant(&BoolLiteral{Value: true})
	if !ok || cv.Kind != ConstBool || !cv.Bool {
		t.Fatalf("got %+v, %v, want ConstBool true", cv, ok)
	}
}

func TestEvaluateAsConstantArithmetic(t *testing.T) {
	expr := &BinaryOperator{Op: BinAdd, LHS: intLit(3), RHS: intLit(4), Type: ScalarType{Kind: ScalarInt, Width: 32}}
	cv, ok := EvaluateAsConstant(expr)
	if !ok || cv.Int != 7 {
		t.Fatalf("3+4 folded to %+v, ok=%v, want 7", cv, ok)
	}
}

func TestEvaluateAsConstantDivisionByZeroFails(t *testing.T) {
	expr := &BinaryOperator{Op: BinDiv, LHS: intLit(1), RHS: intLit(0), Type: ScalarType{Kind: ScalarInt, Width: 32}}
	if _, ok := EvaluateAsConstant(expr); ok {
		t.Error("division by zero must not fold to a constant")
	}
}

func TestEvaluateAsConstantNonConstFails(t *testing.T) {
	ref := &DeclRefExpr{Decl: &VarDecl{Name: "x", Type: ScalarType{Kind: ScalarInt, Width: 32}}, Type: ScalarType{Kind: ScalarInt, Width: 32}}
	if _, ok := EvaluateAsConstant(ref); ok {
		t.Error("a DeclRefExpr to a runtime variable must not fold")
	}
}

func TestEvaluateAsConstantUnaryNeg(t *testing.T) {
	expr := &UnaryOperator{Op: UnaryNeg, Sub: intLit(5), Type: ScalarType{Kind: ScalarInt, Width: 32}}
	cv, ok := EvaluateAsConstant(expr)
	if !ok || cv.Int != -5 {
		t.Fatalf("-5 folded to %+v, ok=%v, want -5", cv, ok)
	}
}

func TestEvaluateAsConstantVectorSplat(t *testing.T) {
	vecT := VectorType{Elem: ScalarType{Kind: ScalarFloat, Width: 32}, Count: 3}
	cast := &CastExpr{Sub: floatLit(2), Kind: CastHLSLVectorSplat, Type: vecT}
	cv, ok := EvaluateAsConstant(cast)
	if !ok || cv.Kind != ConstComposite || len(cv.Elems) != 3 {
		t.Fatalf("splat folded to %+v, ok=%v, want a 3-element composite", cv, ok)
	}
	for i, e := range cv.Elems {
		if e.Float != 2 {
			t.Errorf("elem[%d] = %v, want 2", i, e.Float)
		}
	}
}

func TestEvaluateAsConstantInitList(t *testing.T) {
	vecT := VectorType{Elem: ScalarType{Kind: ScalarFloat, Width: 32}, Count: 2}
	init := &InitListExpr{Type: vecT, Inits: []Expr{floatLit(1), floatLit(2)}}
	cv, ok := EvaluateAsConstant(init)
	if !ok || len(cv.Elems) != 2 {
		t.Fatalf("got %+v, %v, want a 2-element composite", cv, ok)
	}
}

func TestEvaluateAsConstantCastIntegralToFloating(t *testing.T) {
	floatT := ScalarType{Kind: ScalarFloat, Width: 32}
	cast := &CastExpr{Sub: intLit(3), Kind: CastIntegralToFloating, Type: floatT}
	cv, ok := EvaluateAsConstant(cast)
	if !ok || cv.Kind != ConstFloat || cv.Float != 3 {
		t.Fatalf("got %+v, %v, want ConstFloat 3", cv, ok)
	}
}
