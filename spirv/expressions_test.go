package spirv

import (
	"reflect"
	"testing"

	"github.com/gogpu/hlslspv/ast"
)

func vec4RefExpr(name string) *ast.DeclRefExpr {
	floatT := ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}
	vecT := ast.VectorType{Elem: floatT, Count: 4}
	decl := &ast.VarDecl{Name: name, Type: vecT}
	return &ast.DeclRefExpr{Decl: decl, Type: vecT}
}

func TestComposeSwizzleSingleLevel(t *testing.T) {
	v := vec4RefExpr("v")
	ve := &ast.VectorElementExpr{Base: v, Accessor: "zx"}

	base, indices := composeSwizzle(ve)
	if base != ast.Expr(v) {
		t.Errorf("base = %#v, want the DeclRefExpr", base)
	}
	if !reflect.DeepEqual(indices, []int{2, 0}) {
		t.Errorf("indices = %v, want [2 0]", indices)
	}
}

func TestComposeSwizzleNested(t *testing.T) {
	v := vec4RefExpr("v")
	// v.xyzw.zx == v.zx: the outer accessor indexes into the inner one.
	inner := &ast.VectorElementExpr{Base: v, Accessor: "xyzw"}
	outer := &ast.VectorElementExpr{Base: inner, Accessor: "zx"}

	base, indices := composeSwizzle(outer)
	if base != ast.Expr(v) {
		t.Errorf("base = %#v, want the innermost DeclRefExpr", base)
	}
	if !reflect.DeepEqual(indices, []int{2, 0}) {
		t.Errorf("indices = %v, want [2 0]", indices)
	}
}

func TestIsIdentityOrder(t *testing.T) {
	if !isIdentityOrder([]int{0, 1, 2, 3}, 4) {
		t.Error("[0 1 2 3] over size 4 should be identity")
	}
	if isIdentityOrder([]int{1, 0}, 2) {
		t.Error("[1 0] is a swap, not identity")
	}
	if isIdentityOrder([]int{0, 1}, 4) {
		t.Error("a shorter selection can never be the full identity permutation")
	}
}

func TestSwizzleNeedsMergeSingleLaneNeverNeeds(t *testing.T) {
	v := vec4RefExpr("v")
	ve := &ast.VectorElementExpr{Base: v, Accessor: "y"}
	_, _, needs := swizzleNeedsMerge(ve)
	if needs {
		t.Error("a single-lane swizzle should write through a plain pointer, not a merge")
	}
}

func TestSwizzleNeedsMergeIdentityNeverNeeds(t *testing.T) {
	v := vec4RefExpr("v")
	ve := &ast.VectorElementExpr{Base: v, Accessor: "xyzw"}
	_, _, needs := swizzleNeedsMerge(ve)
	if needs {
		t.Error("the full identity permutation should write through a plain pointer, not a merge")
	}
}

func TestSwizzleNeedsMergeMultiLaneNonIdentityNeeds(t *testing.T) {
	v := vec4RefExpr("v")
	ve := &ast.VectorElementExpr{Base: v, Accessor: "zx"}
	base, indices, needs := swizzleNeedsMerge(ve)
	if !needs {
		t.Fatal("a reordering multi-lane swizzle write should require the merged-selector path")
	}
	if base != ast.Expr(v) {
		t.Errorf("base = %#v, want v", base)
	}
	if !reflect.DeepEqual(indices, []int{2, 0}) {
		t.Errorf("indices = %v, want [2 0]", indices)
	}
}

func TestMergedSelector(t *testing.T) {
	// v.zx = rhs (a 2-lane rhs) on a 4-lane base: lane 2 <- rhs[0], lane 0 <- rhs[1],
	// lanes 1 and 3 keep their own base values.
	got := mergedSelector([]int{2, 0}, 4)
	want := []uint32{4 + 1, 1, 4 + 0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergedSelector([2 0], 4) = %v, want %v", got, want)
	}
}

func TestIsLValueDeclRefAndMemberAlwaysTrue(t *testing.T) {
	v := vec4RefExpr("v")
	if !isLValue(v) {
		t.Error("a DeclRefExpr should always be an lvalue")
	}
	m := &ast.MemberExpr{Base: v, Field: &ast.FieldDecl{Name: "f", Type: ast.ScalarType{Kind: ast.ScalarFloat, Width: 32}}}
	if !isLValue(m) {
		t.Error("a MemberExpr should always be an lvalue")
	}
}

func TestIsLValueSwizzleSingleLaneDelegatesToBase(t *testing.T) {
	v := vec4RefExpr("v")
	ve := &ast.VectorElementExpr{Base: v, Accessor: "y"}
	if !isLValue(ve) {
		t.Error("a single-lane swizzle of an lvalue base should itself be an lvalue")
	}
}

func TestIsLValueSwizzleMultiLaneNonIdentityIsNotLValue(t *testing.T) {
	v := vec4RefExpr("v")
	ve := &ast.VectorElementExpr{Base: v, Accessor: "zx"}
	if isLValue(ve) {
		t.Error("a reordering multi-lane swizzle is a value, not an addressable lvalue")
	}
}

func TestIsLValueUnaryOnlyPreIncDec(t *testing.T) {
	v := vec4RefExpr("v")
	pre := &ast.UnaryOperator{Op: ast.UnaryPreInc, Sub: v, Type: v.Type}
	if !isLValue(pre) {
		t.Error("pre-increment should be an lvalue (it yields the incremented variable itself)")
	}
	post := &ast.UnaryOperator{Op: ast.UnaryPostInc, Sub: v, Type: v.Type}
	if isLValue(post) {
		t.Error("post-increment yields the old value, not an lvalue")
	}
}
