package runtime

import (
	"testing"

	"github.com/nailuj29/language/pkg/ast"
)

func TestScalarKinds(t *testing.T) {
	cases := []struct {
		value Value
		want  Kind
	}{
		{Number(1), KindNumber},
		{Bool(true), KindBool},
		{String("x"), KindString},
		{Nil{}, KindNil},
		{NewList(nil), KindList},
	}
	for _, c := range cases {
		if got := c.value.Kind(); got != c.want {
			t.Errorf("Kind() = %v, want %v", got, c.want)
		}
	}
}

func TestFunctionArityMatchesParamCount(t *testing.T) {
	decl := &ast.FunctionLiteral{Params: []string{"a", "b", "c"}}
	fn := NewFunction(decl)
	if fn.Kind() != KindFunction {
		t.Fatalf("Kind() = %v", fn.Kind())
	}
	if fn.Arity() != 3 {
		t.Fatalf("Arity() = %d, want 3", fn.Arity())
	}
}

func TestCurriedArityIsParentMinusBound(t *testing.T) {
	decl := &ast.FunctionLiteral{Params: []string{"a", "b", "c"}}
	fn := NewFunction(decl)
	curried := &Curried{Parent: fn, Bound: []Value{Number(1)}}

	if curried.Kind() != KindCurried {
		t.Fatalf("Kind() = %v", curried.Kind())
	}
	if curried.Arity() != 2 {
		t.Fatalf("Arity() = %d, want 2", curried.Arity())
	}
}

func TestNativeArityReflectsArgCount(t *testing.T) {
	n := &Native{Name: "double", ArgCount: 1, Impl: func(args []Value) (Value, error) {
		return args[0], nil
	}}
	if n.Kind() != KindNative {
		t.Fatalf("Kind() = %v", n.Kind())
	}
	if n.Arity() != 1 {
		t.Fatalf("Arity() = %d, want 1", n.Arity())
	}
}

func TestCallableInterfaceIsSatisfied(t *testing.T) {
	var _ Callable = NewFunction(&ast.FunctionLiteral{})
	var _ Callable = &Native{}
	var _ Callable = &Curried{Parent: NewFunction(&ast.FunctionLiteral{})}
}
