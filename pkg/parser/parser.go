// Package parser implements a recursive-descent parser over a token
// stream, producing the ast package's Expression/Statement sum types. It
// also performs the two syntactic desugarings described in the language
// spec: C-style `for` and `for-in` loops are lowered into Block/While
// trees during parsing.
package parser

import (
	"fmt"
	"math"

	"github.com/nailuj29/language/pkg/ast"
	"github.com/nailuj29/language/pkg/token"
)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

// Error is raised when the token stream doesn't match the grammar. It
// carries the offending token so the driver can render a source snippet.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (line %d, column %d, at %q)", e.Message, e.Token.Line, e.Token.Column, e.Token.Lexeme)
}

// Parser is a single-pass recursive-descent parser over a token slice.
type Parser struct {
	tokens  []token.Token
	current int
}

// New constructs a Parser over the given token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the token stream to a list of top-level statements.
func Parse(tokens []token.Token) ([]ast.Statement, error) {
	return New(tokens).Parse()
}

// Parse runs the parser to completion.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.BRACE_LEFT):
		return p.blockStatement()
	case p.match(token.BREAK):
		kw := p.previous()
		if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression"); err != nil {
			return nil, err
		}
		return &ast.Break{Keyword: kw}, nil
	case p.match(token.CONTINUE):
		kw := p.previous()
		if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression"); err != nil {
			return nil, err
		}
		return &ast.Continue{Keyword: kw}, nil
	case p.match(token.FOR):
		return p.forStatement()
	case p.checkSequence(token.FN, token.IDENTIFIER):
		p.advance() // consume 'fn'
		return p.functionDeclaration()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.IMPORT):
		return p.importStatement()
	case p.match(token.LOOP):
		return p.infiniteLoop()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.VAR):
		return p.varStatement()
	default:
		return p.expressionStatement()
	}
}

// checkSequence reports whether the current token and the one right after
// it match the given types, without consuming anything.
func (p *Parser) checkSequence(first, second token.Type) bool {
	return p.check(first) && p.checkAt(1, second)
}

func (p *Parser) importStatement() (ast.Statement, error) {
	name, err := p.consume(token.IDENTIFIER, "Expect an identifier after 'import'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after statement"); err != nil {
		return nil, err
	}
	return &ast.Import{Name: name}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	if p.match(token.SEMICOLON) {
		return &ast.Return{Keyword: keyword}, nil
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after return"); err != nil {
		return nil, err
	}
	return &ast.Return{Keyword: keyword, Expr: expr}, nil
}

func (p *Parser) functionDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.IDENTIFIER, "This should never happen, please report a bug")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.PAREN_LEFT, "Expect '(' after function name"); err != nil {
		return nil, err
	}
	var params []string
	if !p.match(token.PAREN_RIGHT) {
		for p.previous().Type != token.PAREN_RIGHT {
			paramTok, err := p.consume(token.IDENTIFIER, "Expect identifier for parameter")
			if err != nil {
				return nil, err
			}
			params = append(params, paramTok.Lexeme)
			if !p.match(token.COMMA) {
				if !p.match(token.PAREN_RIGHT) {
					return nil, p.errorAt(p.peek(), "Expect ')' or ',' after parameter name")
				}
			}
		}
	}
	if _, err := p.consume(token.BRACE_LEFT, "Expect '{' after function header"); err != nil {
		return nil, err
	}
	body, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
		return nil, err
	}

	fn := &ast.FunctionLiteral{Name: name, Params: params, Body: &ast.Block{Statements: body}}
	return &ast.Var{Name: name, Initializer: &ast.Literal{Value: fn}}, nil
}

func (p *Parser) infiniteLoop() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(token.BRACE_LEFT, "Expect '{' after 'loop'"); err != nil {
		return nil, err
	}
	body, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
		return nil, err
	}
	return &ast.While{
		Condition: &ast.Literal{Value: true},
		Body:      &ast.Block{Statements: body},
		Keyword:   keyword,
	}, nil
}

// forStatement desugars C-style `for init; cond; incr { body }` into:
//
//	{ init; while cond { body...; incr; } }
//
// and for-in loops (detected by the three-token lookahead `for var IDENT
// in`) into the sentinel-driven desugaring documented in the language
// spec.
func (p *Parser) forStatement() (ast.Statement, error) {
	keyword := p.previous()
	if p.check(token.VAR) && p.checkAt(1, token.IDENTIFIER) && p.checkAt(2, token.IN) {
		return p.forEach(keyword)
	}

	initializer, err := p.statement()
	if err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after for loop condition"); err != nil {
		return nil, err
	}
	increment, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_LEFT, "Expect '{' to begin for loop"); err != nil {
		return nil, err
	}
	body, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	body = append(body, &ast.ExpressionStatement{Expr: increment})
	if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
		return nil, err
	}

	loop := &ast.While{Condition: condition, Body: &ast.Block{Statements: body}, Keyword: keyword}
	return &ast.Block{Statements: []ast.Statement{initializer, loop}}, nil
}

// forEach desugars `for var IDENT in iterable { body }`.
func (p *Parser) forEach(keyword token.Token) (ast.Statement, error) {
	if _, err := p.consume(token.VAR, "Expect 'var'"); err != nil {
		return nil, err
	}
	identifier, err := p.consume(token.IDENTIFIER, "Expect an identifier")
	if err != nil {
		return nil, err
	}
	in, err := p.consume(token.IN, "Expect 'in'")
	if err != nil {
		return nil, err
	}
	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}

	iterTok := synthIdent("__iter__")
	iterableTok := synthIdent("__iterable__")

	initIter := &ast.Var{Name: iterTok, Initializer: &ast.Literal{Value: 0.0}}
	initIterable := &ast.Var{Name: iterableTok, Initializer: iterable}

	condition := &ast.Binary{
		Left:     &ast.GetVar{Name: iterTok},
		Operator: synthToken(token.LESS, "<"),
		Right: &ast.Call{
			Callee: &ast.GetVar{Name: synthIdent("len")},
			Args:   []ast.Expression{&ast.GetVar{Name: iterableTok}},
			Paren:  in,
		},
	}

	increment := &ast.ExpressionStatement{
		Expr: &ast.Assign{
			Name: iterTok,
			Right: &ast.Binary{
				Left:     &ast.GetVar{Name: iterTok},
				Operator: synthToken(token.PLUS, "+"),
				Right:    &ast.Literal{Value: 1.0},
			},
		},
	}

	if _, err := p.consume(token.BRACE_LEFT, "Expect '{' to begin for loop"); err != nil {
		return nil, err
	}
	body := []ast.Statement{
		&ast.Var{
			Name: identifier,
			Initializer: &ast.Index{
				Index:   &ast.GetVar{Name: iterTok},
				Indexee: &ast.GetVar{Name: iterableTok},
				Bracket: in,
			},
		},
	}
	rest, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	body = append(body, rest...)
	body = append(body, increment)
	if _, err := p.consume(token.BRACE_RIGHT, "Expect '}' to close block"); err != nil {
		return nil, err
	}

	loop := &ast.While{Condition: condition, Body: &ast.Block{Statements: body}, Keyword: keyword}
	return &ast.Block{Statements: []ast.Statement{initIter, initIterable, loop}}, nil
}

func synthToken(typ token.Type, lexeme string) token.Token {
	return token.New(typ, lexeme, -1, -1)
}

func synthIdent(name string) token.Token {
	return synthToken(token.IDENTIFIER, name)
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	keyword := p.previous()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_LEFT, "Expect '{' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
		return nil, err
	}
	return &ast.While{Condition: condition, Body: &ast.Block{Statements: body}, Keyword: keyword}, nil
}

func (p *Parser) varStatement() (ast.Statement, error) {
	identifier, err := p.consume(token.IDENTIFIER, "Expect identifier after 'var'")
	if err != nil {
		return nil, err
	}
	var right ast.Expression
	if p.match(token.EQUALS) {
		right, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after statement."); err != nil {
		return nil, err
	}
	return &ast.Var{Name: identifier, Initializer: right}, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.previous()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_LEFT, "Expect '{' after if condition"); err != nil {
		return nil, err
	}
	thenStmts, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
		return nil, err
	}

	var elseStmts []ast.Statement
	if p.match(token.ELSE) {
		if _, err := p.consume(token.BRACE_LEFT, "Expect '{' after 'else'"); err != nil {
			return nil, err
		}
		elseStmts, err = p.statementsUntilBraceRight()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
			return nil, err
		}
	}

	return &ast.If{
		Condition: condition,
		Then:      &ast.Block{Statements: thenStmts},
		Else:      &ast.Block{Statements: elseStmts},
		Keyword:   keyword,
	}, nil
}

func (p *Parser) blockStatement() (ast.Statement, error) {
	stmts, err := p.statementsUntilBraceRight()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_RIGHT, "Unclosed block"); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts}, nil
}

func (p *Parser) statementsUntilBraceRight() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.check(token.BRACE_RIGHT) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after statement."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}

//-----------------------------------------------------------------------------
// Expressions — precedence climbing, lowest to highest, left-associative
// except unary.
//-----------------------------------------------------------------------------

func (p *Parser) expression() (ast.Expression, error) {
	return p.or()
}

func (p *Parser) or() (ast.Expression, error) {
	return p.leftAssocBinary(p.and, token.OR)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.leftAssocBinary(p.equality, token.AND)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.leftAssocBinary(p.comparison, token.EQUAL_EQUAL, token.NOT_EQUAL)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.leftAssocBinary(p.addition, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *Parser) addition() (ast.Expression, error) {
	return p.leftAssocBinary(p.multiplication, token.PLUS, token.MINUS)
}

func (p *Parser) multiplication() (ast.Expression, error) {
	return p.leftAssocBinary(p.unary, token.STAR, token.SLASH, token.PERCENT)
}

// leftAssocBinary parses a left-associative chain of binary operators at
// one precedence level, delegating to `next` for operands.
func (p *Parser) leftAssocBinary(next func() (ast.Expression, error), types ...token.Type) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.NOT, token.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: operator, Operand: right}, nil
	}
	return p.indexing()
}

func (p *Parser) indexing() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	finalOfIndexee := p.previous()
	if p.match(token.BRACKET_LEFT) {
		bracket := p.previous()
		idx, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.BRACKET_RIGHT, "Expect ']' after index"); err != nil {
			return nil, err
		}
		indexExpr := &ast.Index{Index: idx, Indexee: expr, Bracket: bracket}
		if p.match(token.EQUALS) && finalOfIndexee.Type == token.IDENTIFIER {
			newValue, err := p.expression()
			if err != nil {
				return nil, err
			}
			return &ast.AssignIndex{Name: finalOfIndexee, NewValue: newValue, Index: indexExpr.Index}, nil
		}
		expr = indexExpr
	}
	return expr, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}, nil
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}, nil
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}, nil
	case p.match(token.NIL):
		return &ast.Literal{Value: nil}, nil
	case p.match(token.NAN):
		return &ast.Literal{Value: nan()}, nil
	case p.match(token.INFINITY):
		return &ast.Literal{Value: inf()}, nil
	case p.match(token.IDENTIFIER):
		return p.variable()
	case p.match(token.PAREN_LEFT):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.PAREN_RIGHT, "Expect closing ')'"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: inner}, nil
	case p.match(token.BRACKET_LEFT):
		var items []ast.Expression
		for !p.check(token.BRACKET_RIGHT) {
			item, err := p.expression()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if !p.match(token.COMMA) {
				if !p.match(token.BRACKET_RIGHT) {
					return nil, p.errorAt(p.peek(), "Expect ']' or ',' after expression")
				}
				break
			}
		}
		return &ast.List{Items: items}, nil
	}
	return nil, p.errorAt(p.peek(), "Expect Expression")
}

func (p *Parser) variable() (ast.Expression, error) {
	identifier := p.previous()
	var expr ast.Expression = &ast.GetVar{Name: identifier}
	if p.match(token.EQUALS) {
		right, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: identifier, Right: right}, nil
	}
	if p.match(token.DOT) {
		member, err := p.consume(token.IDENTIFIER, "Expect an identifier")
		if err != nil {
			return nil, err
		}
		expr = &ast.ImportAccess{Module: identifier, Member: member}
	}
	if p.match(token.PAREN_LEFT) {
		paren := p.previous()
		var args []ast.Expression
		if !p.match(token.PAREN_RIGHT) {
			for p.previous().Type != token.PAREN_RIGHT {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(token.COMMA) {
					if !p.match(token.PAREN_RIGHT) {
						return nil, p.errorAt(p.peek(), "Expect ')' or ',' after argument name")
					}
				}
			}
		}
		expr = &ast.Call{Callee: expr, Args: args, Paren: paren}
	}
	return expr, nil
}

//-----------------------------------------------------------------------------
// Cursor helpers — adapted from Crafting Interpreters.
//-----------------------------------------------------------------------------

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) checkAt(distance int, t token.Type) bool {
	idx := p.current + distance
	if idx < 0 || idx >= len(p.tokens) {
		return false
	}
	return p.tokens[idx].Type == t
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) errorAt(t token.Token, message string) error {
	return &Error{Token: t, Message: message}
}
