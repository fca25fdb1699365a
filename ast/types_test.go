package ast

import "testing"

func TestIsScalar(t *testing.T) {
	if !IsScalar(ScalarType{Kind: ScalarFloat, Width: 32}) {
		t.Error("ScalarType should be scalar")
	}
	if IsScalar(VectorType{Elem: ScalarType{Kind: ScalarFloat, Width: 32}, Count: 4}) {
		t.Error("VectorType should not be scalar")
	}
}

func TestScalarKindOf(t *testing.T) {
	cases := []struct {
		t    Type
		kind ScalarKind
		ok   bool
	}{
		{ScalarType{Kind: ScalarInt, Width: 32}, ScalarInt, true},
		{VectorType{Elem: ScalarType{Kind: ScalarUint, Width: 32}, Count: 3}, ScalarUint, true},
		{MatrixType{Elem: ScalarType{Kind: ScalarFloat, Width: 32}, Rows: 4, Cols: 4}, ScalarFloat, true},
		{VoidType{}, 0, false},
		{ArrayType{Elem: ScalarType{Kind: ScalarInt, Width: 32}, Size: 4}, 0, false},
	}
	for _, c := range cases {
		kind, ok := ScalarKindOf(c.t)
		if ok != c.ok || (ok && kind != c.kind) {
			t.Errorf("ScalarKindOf(%#v) = (%v, %v), want (%v, %v)", c.t, kind, ok, c.kind, c.ok)
		}
	}
}

func TestVectorSizeOf(t *testing.T) {
	if n, ok := VectorSizeOf(ScalarType{Kind: ScalarFloat, Width: 32}); !ok || n != 1 {
		t.Errorf("VectorSizeOf(scalar) = (%d, %v), want (1, true)", n, ok)
	}
	if n, ok := VectorSizeOf(VectorType{Elem: ScalarType{Kind: ScalarFloat, Width: 32}, Count: 4}); !ok || n != 4 {
		t.Errorf("VectorSizeOf(vec4) = (%d, %v), want (4, true)", n, ok)
	}
	if _, ok := VectorSizeOf(VoidType{}); ok {
		t.Error("VectorSizeOf(void) should report ok=false")
	}
}

func TestScalarKindString(t *testing.T) {
	cases := map[ScalarKind]string{
		ScalarBool:  "bool",
		ScalarInt:   "int",
		ScalarUint:  "uint",
		ScalarFloat: "float",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
