package ast

import (
	"fmt"
	"strings"
)

// Print renders a list of top-level statements as a parenthesized,
// s-expression-like string. It exists purely to help debug the parser —
// nothing in the interpreter depends on its output.
func Print(statements []Statement) string {
	var b strings.Builder
	for _, stmt := range statements {
		b.WriteString(printStmt(stmt))
		b.WriteByte('\n')
	}
	return b.String()
}

func printStmt(stmt Statement) string {
	switch s := stmt.(type) {
	case *Block:
		var b strings.Builder
		for _, inner := range s.Statements {
			b.WriteString("  ")
			b.WriteString(printStmt(inner))
			b.WriteByte('\n')
		}
		return b.String()
	case *Break:
		return "(break)"
	case *Continue:
		return "(continue)"
	case *ExpressionStatement:
		return printExpr(s.Expr)
	case *If:
		return parenthesizeStmts("if "+printExpr(s.Condition), s.Then, s.Else)
	case *Import:
		return fmt.Sprintf("(import %s)", s.Name.Lexeme)
	case *Return:
		if s.Expr == nil {
			return "(return)"
		}
		return parenthesizeExprs("return", s.Expr)
	case *Var:
		if s.Initializer == nil {
			return fmt.Sprintf("(var %s)", s.Name.Lexeme)
		}
		return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, printExpr(s.Initializer))
	case *While:
		return parenthesizeStmts("while "+printExpr(s.Condition), s.Body)
	default:
		return fmt.Sprintf("(unknown-stmt %T)", stmt)
	}
}

func printExpr(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		if fn, ok := e.Value.(*FunctionLiteral); ok {
			return fmt.Sprintf("(fn %s (%s))", fn.Name.Lexeme, strings.Join(fn.Params, " "))
		}
		return fmt.Sprintf("%v", e.Value)
	case *GetVar:
		return e.Name.Lexeme
	case *Assign:
		return parenthesizeExprs("= "+e.Name.Lexeme, e.Right)
	case *AssignIndex:
		return parenthesizeExprs(fmt.Sprintf("[]= %s", e.Name.Lexeme), e.Index, e.NewValue)
	case *Binary:
		return parenthesizeExprs(e.Operator.Lexeme, e.Left, e.Right)
	case *Unary:
		return parenthesizeExprs(e.Operator.Lexeme, e.Operand)
	case *Grouping:
		return parenthesizeExprs("group", e.Inner)
	case *Call:
		args := append([]Expression{e.Callee}, e.Args...)
		return parenthesizeExprs("call", args...)
	case *Index:
		return parenthesizeExprs("index", e.Indexee, e.Index)
	case *List:
		return parenthesizeExprs("list", e.Items...)
	case *ImportAccess:
		return fmt.Sprintf("%s.%s", e.Module.Lexeme, e.Member.Lexeme)
	default:
		return fmt.Sprintf("(unknown-expr %T)", expr)
	}
}

func parenthesizeExprs(name string, exprs ...Expression) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(printExpr(e))
	}
	b.WriteByte(')')
	return b.String()
}

func parenthesizeStmts(name string, blocks ...*Block) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, blk := range blocks {
		if blk == nil {
			continue
		}
		b.WriteByte(' ')
		b.WriteByte('{')
		b.WriteString(printStmt(blk))
		b.WriteByte('}')
	}
	b.WriteByte(')')
	return b.String()
}
