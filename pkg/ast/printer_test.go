package ast

import (
	"strings"
	"testing"

	"github.com/nailuj29/language/pkg/token"
)

func ident(lexeme string) token.Token {
	return token.Token{Type: token.IDENTIFIER, Lexeme: lexeme}
}

func TestPrintLiteralsAndBinary(t *testing.T) {
	expr := &Binary{
		Left:     &Literal{Value: 1.0},
		Operator: token.Token{Type: token.PLUS, Lexeme: "+"},
		Right:    &Literal{Value: 2.0},
	}
	out := Print([]Statement{&ExpressionStatement{Expr: expr}})
	if strings.TrimSpace(out) != "(+ 1 2)" {
		t.Fatalf("got %q", out)
	}
}

func TestPrintVarWithAndWithoutInitializer(t *testing.T) {
	withInit := Print([]Statement{&Var{Name: ident("x"), Initializer: &Literal{Value: 1.0}}})
	if strings.TrimSpace(withInit) != "(var x 1)" {
		t.Fatalf("got %q", withInit)
	}

	withoutInit := Print([]Statement{&Var{Name: ident("x")}})
	if strings.TrimSpace(withoutInit) != "(var x)" {
		t.Fatalf("got %q", withoutInit)
	}
}

func TestPrintIfWithElse(t *testing.T) {
	stmt := &If{
		Condition: &Literal{Value: true},
		Then:      &Block{Statements: []Statement{&Break{}}},
		Else:      &Block{Statements: []Statement{&Continue{}}},
	}
	out := Print([]Statement{stmt})
	if !strings.Contains(out, "if true") || !strings.Contains(out, "(break)") || !strings.Contains(out, "(continue)") {
		t.Fatalf("got %q", out)
	}
}

func TestPrintCallIncludesCalleeAndArgs(t *testing.T) {
	call := &Call{
		Callee: &GetVar{Name: ident("add")},
		Args:   []Expression{&Literal{Value: 1.0}, &Literal{Value: 2.0}},
	}
	out := Print([]Statement{&ExpressionStatement{Expr: call}})
	if strings.TrimSpace(out) != "(call add 1 2)" {
		t.Fatalf("got %q", out)
	}
}

func TestPrintFunctionLiteralShowsParams(t *testing.T) {
	fn := &FunctionLiteral{Name: ident("add"), Params: []string{"a", "b"}, Body: &Block{}}
	out := Print([]Statement{&Var{Name: ident("add"), Initializer: &Literal{Value: fn}}})
	if !strings.Contains(out, "(fn add (a b))") {
		t.Fatalf("got %q", out)
	}
}

func TestPrintImportAccess(t *testing.T) {
	access := &ImportAccess{Module: ident("math"), Member: ident("sqrt")}
	out := Print([]Statement{&ExpressionStatement{Expr: access}})
	if strings.TrimSpace(out) != "math.sqrt" {
		t.Fatalf("got %q", out)
	}
}

func TestNodeTypeIdentifiesVariants(t *testing.T) {
	cases := []struct {
		node Node
		want NodeType
	}{
		{&Literal{}, NodeLiteral},
		{&Binary{}, NodeBinary},
		{&Call{}, NodeCall},
		{&Block{}, NodeBlock},
		{&While{}, NodeWhile},
		{&Import{}, NodeImportStmt},
	}
	for _, c := range cases {
		if got := c.node.NodeType(); got != c.want {
			t.Errorf("NodeType() = %v, want %v", got, c.want)
		}
	}
}
