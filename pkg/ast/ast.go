// Package ast defines the two tagged sum types — Expression and
// Statement — that the parser produces and the interpreter walks.
package ast

import "github.com/nailuj29/language/pkg/token"

// NodeType identifies a concrete AST node variant, mostly useful for
// debugging and the AST printer.
type NodeType string

const (
	NodeLiteral      NodeType = "Literal"
	NodeGetVar       NodeType = "GetVar"
	NodeAssign       NodeType = "Assign"
	NodeAssignIndex  NodeType = "AssignIndex"
	NodeBinary       NodeType = "Binary"
	NodeUnary        NodeType = "Unary"
	NodeGrouping     NodeType = "Grouping"
	NodeCall         NodeType = "Call"
	NodeIndex        NodeType = "Index"
	NodeList         NodeType = "List"
	NodeImportAccess NodeType = "ImportAccess"

	NodeBlock      NodeType = "Block"
	NodeExprStmt   NodeType = "ExpressionStatement"
	NodeVar        NodeType = "Var"
	NodeIf         NodeType = "If"
	NodeWhile      NodeType = "While"
	NodeReturn     NodeType = "Return"
	NodeBreak      NodeType = "Break"
	NodeContinue   NodeType = "Continue"
	NodeImportStmt NodeType = "Import"
)

// Node is implemented by every AST node.
type Node interface {
	NodeType() NodeType
}

// Expression is implemented by every expression-producing node.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal is a constant value baked into the AST: a number, boolean,
// string, nil, or — when the parser lowers an `fn` declaration — a
// *FunctionLiteral.
type Literal struct {
	expressionMarker
	Value any
}

func (*Literal) NodeType() NodeType { return NodeLiteral }

// FunctionLiteral is the value a `fn` declaration lowers to: a Literal
// whose Value is a *FunctionLiteral. Kept in ast (rather than runtime) so
// the parser never needs to import the runtime package.
type FunctionLiteral struct {
	Name   token.Token
	Params []string
	Body   *Block
}

// GetVar reads a variable from the current environment chain.
type GetVar struct {
	expressionMarker
	Name token.Token
}

func (*GetVar) NodeType() NodeType { return NodeGetVar }

// Assign evaluates Right and stores it at Name. Per the language's
// preserved quirk, the expression's own value is always nil.
type Assign struct {
	expressionMarker
	Name  token.Token
	Right Expression
}

func (*Assign) NodeType() NodeType { return NodeAssign }

// AssignIndex mutates element Index of the list bound to Name.
type AssignIndex struct {
	expressionMarker
	Name     token.Token
	NewValue Expression
	Index    Expression
}

func (*AssignIndex) NodeType() NodeType { return NodeAssignIndex }

// Binary applies Operator to Left and Right.
type Binary struct {
	expressionMarker
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (*Binary) NodeType() NodeType { return NodeBinary }

// Unary applies a prefix Operator to Operand.
type Unary struct {
	expressionMarker
	Operator token.Token
	Operand  Expression
}

func (*Unary) NodeType() NodeType { return NodeUnary }

// Grouping is a parenthesized expression, kept distinct from its Inner so
// the AST printer can round-trip parentheses.
type Grouping struct {
	expressionMarker
	Inner Expression
}

func (*Grouping) NodeType() NodeType { return NodeGrouping }

// Call invokes Callee (a *GetVar or *ImportAccess) with Args.
type Call struct {
	expressionMarker
	Callee Expression
	Args   []Expression
	Paren  token.Token
}

func (*Call) NodeType() NodeType { return NodeCall }

// Index reads element Index of Indexee.
type Index struct {
	expressionMarker
	Index   Expression
	Indexee Expression
	Bracket token.Token
}

func (*Index) NodeType() NodeType { return NodeIndex }

// List is a list literal.
type List struct {
	expressionMarker
	Items []Expression
}

func (*List) NodeType() NodeType { return NodeList }

// ImportAccess evaluates `module.member`.
type ImportAccess struct {
	expressionMarker
	Module token.Token
	Member token.Token
}

func (*ImportAccess) NodeType() NodeType { return NodeImportAccess }

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// Block introduces a new nested scope around Statements.
type Block struct {
	statementMarker
	Statements []Statement
}

func (*Block) NodeType() NodeType { return NodeBlock }

// ExpressionStatement evaluates Expr and discards the result.
type ExpressionStatement struct {
	statementMarker
	Expr Expression
}

func (*ExpressionStatement) NodeType() NodeType { return NodeExprStmt }

// Var declares Name in the current scope, optionally running Initializer.
type Var struct {
	statementMarker
	Name        token.Token
	Initializer Expression // nil when there is no initializer
}

func (*Var) NodeType() NodeType { return NodeVar }

// If runs Then or Else (always a non-nil, possibly empty, Block)
// according to Condition's truthiness.
type If struct {
	statementMarker
	Condition Expression
	Then      *Block
	Else      *Block
	Keyword   token.Token
}

func (*If) NodeType() NodeType { return NodeIf }

// While repeatedly runs Body while Condition is truthy.
type While struct {
	statementMarker
	Condition Expression
	Body      *Block
	Keyword   token.Token
}

func (*While) NodeType() NodeType { return NodeWhile }

// Return unwinds the nearest function call frame with Expr's value (or nil).
type Return struct {
	statementMarker
	Keyword token.Token
	Expr    Expression // nil when bare `return;`
}

func (*Return) NodeType() NodeType { return NodeReturn }

// Break unwinds the nearest enclosing loop.
type Break struct {
	statementMarker
	Keyword token.Token
}

func (*Break) NodeType() NodeType { return NodeBreak }

// Continue unwinds to the next iteration of the nearest enclosing loop.
type Continue struct {
	statementMarker
	Keyword token.Token
}

func (*Continue) NodeType() NodeType { return NodeContinue }

// Import loads a sibling source file or built-in module and binds it for
// subsequent `module.member` access.
type Import struct {
	statementMarker
	Name token.Token
}

func (*Import) NodeType() NodeType { return NodeImportStmt }
