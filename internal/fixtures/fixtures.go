// Package fixtures builds small, pre-typed ast.TranslationUnit trees for a
// handful of representative shader shapes (pass-through fragment, swizzle
// write, if/else, loop, switch, dot product). They stand in for the
// upstream HLSL parser/type checker, which is outside this module's scope
// — every front end this module ships (the CLI's --demo flag, the spirv
// package's scenario tests) exercises the emitter through one of these
// rather than parsing HLSL text.
package fixtures

import "github.com/gogpu/hlslspv/ast"

func scalar(kind ast.ScalarKind) ast.Type {
	return ast.ScalarType{Kind: kind, Width: 32}
}

func vec(kind ast.ScalarKind, n uint8) ast.Type {
	return ast.VectorType{Elem: ast.ScalarType{Kind: kind, Width: 32}, Count: n}
}

// load wraps an lvalue expression (a DeclRefExpr, MemberExpr, or a
// single-lane/identity VectorElementExpr) in the CastLValueToRValue a real
// HLSL Sema inserts whenever it is used in value position. Every fixture below must wrap a DeclRefExpr
// this way wherever it feeds an operator, call, or return as a value; the
// unwrapped ref is kept only where the emitter's contract requires the
// pointer itself (an assignment/compound-assignment LHS, a ++/-- operand).
func load(sub ast.Expr) ast.Expr {
	return &ast.CastExpr{Sub: sub, Kind: ast.CastLValueToRValue, Type: sub.ExprType()}
}

// PassThroughFragment builds S1: "float4 main(float4 a : A) : SV_Target { return a; }"
func PassThroughFragment() *ast.TranslationUnit {
	float4 := vec(ast.ScalarFloat, 4)
	a := &ast.ParmVarDecl{Name: "a", Type: float4, Semantic: "A", Dir: ast.DirIn}
	aRef := &ast.DeclRefExpr{Decl: a, Type: float4}

	main := &ast.FunctionDecl{
		Name:           "main",
		Params:         []*ast.ParmVarDecl{a},
		ReturnType:     float4,
		ReturnSemantic: "SV_Target",
		Body: &ast.CompoundStmt{Body: []ast.Stmt{
			&ast.ReturnStmt{Value: load(aRef)},
		}},
	}
	return &ast.TranslationUnit{Decls: []ast.Decl{main}}
}

// SwizzleWrite builds S2: "float4 main(float4 v : V) : SV_Target { v.yz = float2(1,2); return v; }"
func SwizzleWrite() *ast.TranslationUnit {
	float4 := vec(ast.ScalarFloat, 4)
	float2 := vec(ast.ScalarFloat, 2)
	v := &ast.ParmVarDecl{Name: "v", Type: float4, Semantic: "V", Dir: ast.DirIn}
	vRef := &ast.DeclRefExpr{Decl: v, Type: float4}

	yz := &ast.VectorElementExpr{Base: vRef, Accessor: "yz", Type: float2}
	rhs := &ast.InitListExpr{
		Type: float2,
		Inits: []ast.Expr{
			&ast.FloatingLiteral{Value: 1, Type: scalar(ast.ScalarFloat)},
			&ast.FloatingLiteral{Value: 2, Type: scalar(ast.ScalarFloat)},
		},
	}
	assign := &ast.BinaryOperator{Op: ast.BinAssign, LHS: yz, RHS: rhs, Type: float2}

	main := &ast.FunctionDecl{
		Name:           "main",
		Params:         []*ast.ParmVarDecl{v},
		ReturnType:     float4,
		ReturnSemantic: "SV_Target",
		Body: &ast.CompoundStmt{Body: []ast.Stmt{
			assign,
			&ast.ReturnStmt{Value: load(vRef)},
		}},
	}
	return &ast.TranslationUnit{Decls: []ast.Decl{main}}
}

// IfElse builds S3: "int main(int x : X) : SV_Target { if (x>0) return 1; else return 2; }"
func IfElse() *ast.TranslationUnit {
	intT := scalar(ast.ScalarInt)
	x := &ast.ParmVarDecl{Name: "x", Type: intT, Semantic: "X", Dir: ast.DirIn}
	xRef := &ast.DeclRefExpr{Decl: x, Type: intT}

	cond := &ast.BinaryOperator{
		Op:   ast.BinGT,
		LHS:  load(xRef),
		RHS:  &ast.IntegerLiteral{Value: 0, Type: intT},
		Type: ast.ScalarType{Kind: ast.ScalarBool, Width: 32},
	}
	ifStmt := &ast.IfStmt{
		Cond: cond,
		Then: &ast.ReturnStmt{Value: &ast.IntegerLiteral{Value: 1, Type: intT}},
		Else: &ast.ReturnStmt{Value: &ast.IntegerLiteral{Value: 2, Type: intT}},
	}

	main := &ast.FunctionDecl{
		Name:           "main",
		Params:         []*ast.ParmVarDecl{x},
		ReturnType:     intT,
		ReturnSemantic: "SV_Target",
		Body:           &ast.CompoundStmt{Body: []ast.Stmt{ifStmt}},
	}
	return &ast.TranslationUnit{Decls: []ast.Decl{main}}
}

// Loop builds S4: "int main() : SV_Target { int s=0; for (int i=0;i<4;++i) s+=i; return s; }"
func Loop() *ast.TranslationUnit {
	intT := scalar(ast.ScalarInt)

	sDecl := &ast.VarDecl{Name: "s", Type: intT, Init: &ast.IntegerLiteral{Value: 0, Type: intT}}
	sRef := &ast.DeclRefExpr{Decl: sDecl, Type: intT}

	iDecl := &ast.VarDecl{Name: "i", Type: intT, Init: &ast.IntegerLiteral{Value: 0, Type: intT}}
	iRef := &ast.DeclRefExpr{Decl: iDecl, Type: intT}

	cond := &ast.BinaryOperator{
		Op:   ast.BinLT,
		LHS:  load(iRef),
		RHS:  &ast.IntegerLiteral{Value: 4, Type: intT},
		Type: ast.ScalarType{Kind: ast.ScalarBool, Width: 32},
	}
	inc := &ast.UnaryOperator{Op: ast.UnaryPreInc, Sub: iRef, Type: intT}
	body := &ast.CompoundAssignOperator{Op: ast.BinAdd, LHS: sRef, RHS: load(iRef), Type: intT}

	forStmt := &ast.ForStmt{
		Init: &ast.DeclStmt{Decls: []*ast.VarDecl{iDecl}},
		Cond: cond,
		Inc:  inc,
		Body: &ast.CompoundStmt{Body: []ast.Stmt{body}},
	}

	main := &ast.FunctionDecl{
		Name:           "main",
		ReturnType:     intT,
		ReturnSemantic: "SV_Target",
		Body: &ast.CompoundStmt{Body: []ast.Stmt{
			&ast.DeclStmt{Decls: []*ast.VarDecl{sDecl}},
			forStmt,
			&ast.ReturnStmt{Value: load(sRef)},
		}},
	}
	return &ast.TranslationUnit{Decls: []ast.Decl{main}}
}

// Switch builds S5:
// "int main(int x:X):SV_Target { switch(x){case 1:return 10;case 2:case 3:return 20;default:return 0;} }"
func Switch() *ast.TranslationUnit {
	intT := scalar(ast.ScalarInt)
	x := &ast.ParmVarDecl{Name: "x", Type: intT, Semantic: "X", Dir: ast.DirIn}
	xRef := &ast.DeclRefExpr{Decl: x, Type: intT}

	lit := func(v int64) ast.Expr { return &ast.IntegerLiteral{Value: v, Type: intT} }

	case3 := &ast.CaseStmt{Value: lit(3), Sub: &ast.ReturnStmt{Value: lit(20)}}
	case2 := &ast.CaseStmt{Value: lit(2), Sub: case3}
	case1 := &ast.CaseStmt{Value: lit(1), Sub: &ast.ReturnStmt{Value: lit(10)}}
	deflt := &ast.DefaultStmt{Sub: &ast.ReturnStmt{Value: lit(0)}}

	switchStmt := &ast.SwitchStmt{
		Cond: load(xRef),
		Body: &ast.CompoundStmt{Body: []ast.Stmt{case1, case2, deflt}},
	}

	main := &ast.FunctionDecl{
		Name:           "main",
		Params:         []*ast.ParmVarDecl{x},
		ReturnType:     intT,
		ReturnSemantic: "SV_Target",
		Body:           &ast.CompoundStmt{Body: []ast.Stmt{switchStmt}},
	}
	return &ast.TranslationUnit{Decls: []ast.Decl{main}}
}

// DotProduct builds S6: "int main(int4 a:A,int4 b:B):SV_Target { return dot(a,b); }"
func DotProduct() *ast.TranslationUnit {
	intT := scalar(ast.ScalarInt)
	int4 := vec(ast.ScalarInt, 4)
	a := &ast.ParmVarDecl{Name: "a", Type: int4, Semantic: "A", Dir: ast.DirIn}
	b := &ast.ParmVarDecl{Name: "b", Type: int4, Semantic: "B", Dir: ast.DirIn}
	aRef := &ast.DeclRefExpr{Decl: a, Type: int4}
	bRef := &ast.DeclRefExpr{Decl: b, Type: int4}

	call := &ast.CallExpr{
		Intrinsic: ast.IntrinsicDot,
		Args:      []ast.Expr{load(aRef), load(bRef)},
		Type:      intT,
	}

	main := &ast.FunctionDecl{
		Name:           "main",
		Params:         []*ast.ParmVarDecl{a, b},
		ReturnType:     intT,
		ReturnSemantic: "SV_Target",
		Body: &ast.CompoundStmt{Body: []ast.Stmt{
			&ast.ReturnStmt{Value: call},
		}},
	}
	return &ast.TranslationUnit{Decls: []ast.Decl{main}}
}
