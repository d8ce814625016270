package runtime

import (
	"fmt"

	"github.com/nailuj29/language/pkg/ast"
)

// Kind identifies the runtime value category. Kept as a plain int enum,
// mirroring the teacher's Kind type, rather than a type switch alone, so
// every value category has a stable printable name.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindNil
	KindList
	KindFunction
	KindCurried
	KindNative
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNil:
		return "nil"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindCurried:
		return "function"
	case KindNative:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour of every runtime value. Functions are
// intentionally plain data here (a declaration, or a parent plus bound args) —
// the interpreter package owns call dispatch, which keeps this package
// free of any dependency back on the interpreter.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// Number is the language's single numeric type, a float64 (so NaN and
// Infinity literals are representable without a separate integer type).
type Number float64

func (Number) Kind() Kind { return KindNumber }

type Bool bool

func (Bool) Kind() Kind { return KindBool }

type String string

func (String) Kind() Kind { return KindString }

// Nil is the sole value of nil type.
type Nil struct{}

func (Nil) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Lists — reference semantics: indexing and index-assignment observe
// mutation through any alias of the same List.
//-----------------------------------------------------------------------------

type List struct {
	Elements []Value
}

func NewList(elements []Value) *List {
	return &List{Elements: elements}
}

func (*List) Kind() Kind { return KindList }

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// Function is a user-defined function. It carries no closure: per the
// preserved lexical quirk, every call frame parents directly to the
// global environment rather than to wherever the function was declared.
// Recursion still works because the interpreter rebinds the function's
// own name inside its call frame before running the body.
type Function struct {
	Declaration *ast.FunctionLiteral
}

func NewFunction(decl *ast.FunctionLiteral) *Function {
	return &Function{Declaration: decl}
}

func (*Function) Kind() Kind { return KindFunction }

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string {
	return fmt.Sprintf("fn %s(%s)", f.Declaration.Name.Lexeme, joinParams(f.Declaration.Params))
}

func joinParams(params []string) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// Curried wraps a partially-applied Callable: Parent's arity minus the
// number of Bound args already supplied.
type Curried struct {
	Parent Callable
	Bound  []Value
}

func (*Curried) Kind() Kind { return KindCurried }

func (c *Curried) Arity() int { return c.Parent.Arity() - len(c.Bound) }

// Native is a built-in function implemented in Go.
type Native struct {
	Name     string
	ArgCount int
	Impl     func(args []Value) (Value, error)
}

func (*Native) Kind() Kind { return KindNative }

func (n *Native) Arity() int { return n.ArgCount }

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Callable is implemented by every value that can appear as a call's
// callee: *Function, *Curried, and *Native.
type Callable interface {
	Value
	Arity() int
}
