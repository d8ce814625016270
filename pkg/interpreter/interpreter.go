// Package interpreter walks the AST produced by pkg/parser and evaluates
// it against the value model in pkg/runtime.
package interpreter

import (
	"fmt"
	"math"

	"github.com/nailuj29/language/pkg/ast"
	"github.com/nailuj29/language/pkg/runtime"
	"github.com/nailuj29/language/pkg/token"
)

// RuntimeError is a failure discovered while evaluating the AST, carrying
// the token it occurred at so the driver can render a source snippet.
type RuntimeError struct {
	Message string
	Token   token.Token
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Token.Line, e.Token.Column)
}

func newError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Token: tok}
}

// Control-flow sentinels. Each satisfies error solely so it can ride the
// same return channel as evaluation errors; executeWhile, callFunction and
// Run catch them at the construct entitled to handle them and anything else
// propagates up unchanged, the same way an uncaught Java exception would
// unwind past intervening frames.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return outside a function" }

type breakSignal struct {
	keyword token.Token
}

func (breakSignal) Error() string { return "break outside a loop" }

type continueSignal struct {
	keyword token.Token
}

func (continueSignal) Error() string { return "continue outside a loop" }

// Importer is implemented by the driver package to resolve non-builtin
// imports: sibling .scr files and git-remote-cached packages. Kept as an
// interface here so pkg/interpreter never imports pkg/driver.
type Importer interface {
	// Resolve returns the exported bindings of the named import, or an
	// error if the name isn't resolvable by this importer.
	Resolve(name string) (map[string]runtime.Value, error)
}

// Interpreter walks statements and expressions, maintaining the active
// lexical scope and the set of modules imported so far.
type Interpreter struct {
	Globals     *runtime.Environment
	environment *runtime.Environment
	imports     map[string]*runtime.Environment
	importer    Importer
}

// New constructs an Interpreter with the standard built-ins defined.
func New() *Interpreter {
	globals := runtime.NewEnvironment(nil)
	interp := &Interpreter{
		Globals:     globals,
		environment: runtime.NewEnvironment(globals),
		imports:     make(map[string]*runtime.Environment),
	}
	defineBuiltins(globals)
	return interp
}

// SetImporter installs the resolver consulted for every import before the
// built-in modules (os, io, math) are checked.
func (in *Interpreter) SetImporter(importer Importer) {
	in.importer = importer
}

// Run executes a full program's top-level statements.
func (in *Interpreter) Run(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			switch sig := err.(type) {
			case breakSignal:
				return newError(sig.keyword, "Cant break outside a loop")
			case continueSignal:
				return newError(sig.keyword, "Cant break outside a loop")
			case returnSignal:
				return nil
			default:
				return err
			}
		}
	}
	return nil
}

// RunForImport runs a program and returns its top-level environment,
// for use as the bindings of a sibling-file import.
func (in *Interpreter) RunForImport(stmts []ast.Statement) (*runtime.Environment, error) {
	if err := in.Run(stmts); err != nil {
		return nil, err
	}
	return in.environment, nil
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (in *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s, runtime.NewEnvironment(in.environment))
	case *ast.Break:
		return breakSignal{keyword: s.Keyword}
	case *ast.Continue:
		return continueSignal{keyword: s.Keyword}
	case *ast.ExpressionStatement:
		_, err := in.evaluate(s.Expr)
		return err
	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.executeBlock(s.Then, runtime.NewEnvironment(in.environment))
		}
		return in.executeBlock(s.Else, runtime.NewEnvironment(in.environment))
	case *ast.Import:
		return in.executeImport(s)
	case *ast.Return:
		if s.Expr == nil {
			return returnSignal{value: runtime.Nil{}}
		}
		val, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		return returnSignal{value: val}
	case *ast.Var:
		return in.executeVar(s)
	case *ast.While:
		return in.executeWhile(s)
	default:
		return newError(token.Token{}, "unknown statement type %T", stmt)
	}
}

func (in *Interpreter) executeBlock(block *ast.Block, scope *runtime.Environment) error {
	previous := in.environment
	in.environment = scope
	defer func() { in.environment = previous }()
	for _, stmt := range block.Statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeVar(s *ast.Var) error {
	in.environment.Declare(s.Name.Lexeme)
	if s.Initializer == nil {
		return nil
	}
	val, err := in.evaluate(s.Initializer)
	if err != nil {
		return err
	}
	return in.environment.Set(s.Name.Lexeme, val)
}

func (in *Interpreter) executeWhile(s *ast.While) error {
	for {
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		err = in.executeBlock(s.Body, runtime.NewEnvironment(in.environment))
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				continue
			default:
				return err
			}
		}
	}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func (in *Interpreter) evaluate(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return in.evaluateLiteral(e)
	case *ast.GetVar:
		v, err := in.environment.Get(e.Name.Lexeme)
		if err != nil {
			return nil, newError(e.Name, err.Error())
		}
		return v, nil
	case *ast.Assign:
		val, err := in.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		if err := in.environment.Set(e.Name.Lexeme, val); err != nil {
			return nil, newError(e.Name, err.Error())
		}
		return runtime.Nil{}, nil
	case *ast.AssignIndex:
		return in.evaluateAssignIndex(e)
	case *ast.Binary:
		return in.evaluateBinary(e)
	case *ast.Unary:
		return in.evaluateUnary(e)
	case *ast.Grouping:
		return in.evaluate(e.Inner)
	case *ast.Call:
		return in.evaluateCall(e)
	case *ast.Index:
		return in.evaluateIndex(e)
	case *ast.List:
		items := make([]runtime.Value, 0, len(e.Items))
		for _, itemExpr := range e.Items {
			v, err := in.evaluate(itemExpr)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return runtime.NewList(items), nil
	case *ast.ImportAccess:
		return in.evaluateImportAccess(e)
	default:
		return nil, fmt.Errorf("unknown expression type %T", expr)
	}
}

func (in *Interpreter) evaluateLiteral(e *ast.Literal) (runtime.Value, error) {
	switch v := e.Value.(type) {
	case nil:
		return runtime.Nil{}, nil
	case bool:
		return runtime.Bool(v), nil
	case float64:
		return runtime.Number(v), nil
	case string:
		return runtime.String(v), nil
	case *ast.FunctionLiteral:
		return runtime.NewFunction(v), nil
	default:
		return nil, fmt.Errorf("unknown literal payload %T", v)
	}
}

func (in *Interpreter) evaluateAssignIndex(e *ast.AssignIndex) (runtime.Value, error) {
	current, err := in.environment.Get(e.Name.Lexeme)
	if err != nil {
		return nil, newError(e.Name, err.Error())
	}
	list, ok := current.(*runtime.List)
	if !ok {
		return nil, newError(e.Name, "Cannot index non-iterable")
	}
	idxVal, err := in.evaluate(e.Index)
	if err != nil {
		return nil, err
	}
	num, ok := idxVal.(runtime.Number)
	if !ok {
		return nil, newError(e.Name, "Cannot index using a value that isn't a number")
	}
	idx := int(num)
	if idx < 0 || idx >= len(list.Elements) {
		return nil, newError(e.Name, "Index out of bounds: %d", idx)
	}
	newVal, err := in.evaluate(e.NewValue)
	if err != nil {
		return nil, err
	}
	list.Elements[idx] = newVal
	return current, nil
}

func (in *Interpreter) evaluateIndex(e *ast.Index) (runtime.Value, error) {
	idxVal, err := in.evaluate(e.Index)
	if err != nil {
		return nil, err
	}
	indexeeVal, err := in.evaluate(e.Indexee)
	if err != nil {
		return nil, err
	}
	list, ok := indexeeVal.(*runtime.List)
	if !ok {
		return nil, newError(e.Bracket, "Cannot index a non-iterable")
	}
	num, ok := idxVal.(runtime.Number)
	if !ok {
		return nil, newError(e.Bracket, "Cannot index with a non-number")
	}
	idx := int(num)
	if idx < 0 || idx >= len(list.Elements) {
		return nil, newError(e.Bracket, "Index out of bounds: %d", idx)
	}
	return list.Elements[idx], nil
}

func (in *Interpreter) evaluateUnary(e *ast.Unary) (runtime.Value, error) {
	target, err := in.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.MINUS:
		if n, ok := target.(runtime.Number); ok {
			return -n, nil
		}
		return nil, newError(e.Operator, "Invalid type for '-'")
	case token.NOT:
		if b, ok := target.(runtime.Bool); ok {
			return !b, nil
		}
		return nil, newError(e.Operator, "Invalid type for '!'")
	default:
		return runtime.Nil{}, nil
	}
}

func (in *Interpreter) evaluateBinary(e *ast.Binary) (runtime.Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	op := e.Operator

	switch op.Type {
	case token.PLUS:
		if ln, ok := left.(runtime.Number); ok {
			if rn, ok := right.(runtime.Number); ok {
				return ln + rn, nil
			}
		}
		if _, ok := left.(runtime.String); ok {
			return runtime.String(stringify(left) + stringify(right)), nil
		}
		if _, ok := right.(runtime.String); ok {
			return runtime.String(stringify(left) + stringify(right)), nil
		}
		if ll, ok := left.(*runtime.List); ok {
			if rl, ok := right.(*runtime.List); ok {
				combined := make([]runtime.Value, 0, len(ll.Elements)+len(rl.Elements))
				combined = append(combined, ll.Elements...)
				combined = append(combined, rl.Elements...)
				return runtime.NewList(combined), nil
			}
		}
		return nil, newError(op, "Invalid types for '+'")
	case token.MINUS:
		return numericBinary(op, left, right, "-", func(a, b float64) float64 { return a - b })
	case token.STAR:
		return numericBinary(op, left, right, "*", func(a, b float64) float64 { return a * b })
	case token.SLASH:
		return numericBinary(op, left, right, "/", func(a, b float64) float64 { return a / b })
	case token.PERCENT:
		return numericBinary(op, left, right, "%", math.Mod)
	case token.EQUAL_EQUAL:
		return runtime.Bool(valuesEqual(left, right)), nil
	case token.NOT_EQUAL:
		return runtime.Bool(!valuesEqual(left, right)), nil
	case token.GREATER:
		return numericCompare(op, left, right, ">", func(a, b float64) bool { return a > b })
	case token.GREATER_EQUAL:
		return numericCompare(op, left, right, ">=", func(a, b float64) bool { return a >= b })
	case token.LESS:
		return numericCompare(op, left, right, "<", func(a, b float64) bool { return a < b })
	case token.LESS_EQUAL:
		return numericCompare(op, left, right, "<=", func(a, b float64) bool { return a <= b })
	case token.OR:
		if lb, ok := left.(runtime.Bool); ok {
			if rb, ok := right.(runtime.Bool); ok {
				return lb || rb, nil
			}
		}
		return nil, newError(op, "Invalid types for '|'")
	case token.AND:
		if lb, ok := left.(runtime.Bool); ok {
			if rb, ok := right.(runtime.Bool); ok {
				return lb && rb, nil
			}
		}
		return nil, newError(op, "Invalid types for '&'")
	default:
		return nil, newError(op, "unreachable binary operator %s", op.Type)
	}
}

func numericBinary(op token.Token, left, right runtime.Value, symbol string, fn func(a, b float64) float64) (runtime.Value, error) {
	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if !lok || !rok {
		return nil, newError(op, "Invalid types for '%s'", symbol)
	}
	return runtime.Number(fn(float64(ln), float64(rn))), nil
}

func numericCompare(op token.Token, left, right runtime.Value, symbol string, fn func(a, b float64) bool) (runtime.Value, error) {
	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if !lok || !rok {
		return nil, newError(op, "Invalid types for '%s'", symbol)
	}
	return runtime.Bool(fn(float64(ln), float64(rn))), nil
}

func valuesEqual(left, right runtime.Value) bool {
	if _, ok := left.(runtime.Nil); ok {
		_, rightNil := right.(runtime.Nil)
		return rightNil
	}
	switch l := left.(type) {
	case runtime.Number:
		r, ok := right.(runtime.Number)
		return ok && l == r
	case runtime.String:
		r, ok := right.(runtime.String)
		return ok && l == r
	case runtime.Bool:
		r, ok := right.(runtime.Bool)
		return ok && l == r
	default:
		return left == right
	}
}

//-----------------------------------------------------------------------------
// Calls
//-----------------------------------------------------------------------------

func (in *Interpreter) evaluateCall(e *ast.Call) (runtime.Value, error) {
	calleeVal, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	callable, ok := calleeVal.(runtime.Callable)
	if !ok {
		return nil, newError(e.Paren, "Cannot call non-function")
	}

	args := make([]runtime.Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		v, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if len(args) > callable.Arity() {
		return nil, newError(e.Paren, "Incorrect argument count")
	}

	return in.callCurried(callable, args, e.Paren)
}

// callCurried mirrors the curry-by-default call convention: a call
// supplying exactly as many args as the callable's arity invokes it,
// anything short wraps a *runtime.Curried around the args supplied so far.
func (in *Interpreter) callCurried(callable runtime.Callable, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	if len(args) == callable.Arity() {
		return in.call(callable, args, paren)
	}
	return &runtime.Curried{Parent: callable, Bound: args}, nil
}

func (in *Interpreter) call(callable runtime.Callable, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	switch fn := callable.(type) {
	case *runtime.Function:
		return in.callFunction(fn, args)
	case *runtime.Native:
		return fn.Impl(args)
	case *runtime.Curried:
		combined := make([]runtime.Value, 0, len(fn.Bound)+len(args))
		combined = append(combined, fn.Bound...)
		combined = append(combined, args...)
		return in.call(fn.Parent, combined, paren)
	default:
		return nil, newError(paren, "Cannot call non-function")
	}
}

func (in *Interpreter) callFunction(fn *runtime.Function, args []runtime.Value) (runtime.Value, error) {
	scope := runtime.NewEnvironment(in.Globals)
	for i, param := range fn.Declaration.Params {
		scope.Define(param, args[i])
	}
	scope.Define(fn.Declaration.Name.Lexeme, fn)

	err := in.executeBlock(fn.Declaration.Body, scope)
	if err == nil {
		return runtime.Nil{}, nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.Nil:
		return false
	case runtime.Bool:
		return bool(val)
	default:
		return true
	}
}

// stringify renders a value the way `print` does: integral-valued numbers
// print without a trailing ".0", lists print as comma-joined, nil prints
// as the literal text "nil".
func stringify(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.Nil:
		return "nil"
	case runtime.Bool:
		if val {
			return "true"
		}
		return "false"
	case runtime.Number:
		f := float64(val)
		if f == float64(int64(f)) {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", f)
	case runtime.String:
		return string(val)
	case *runtime.List:
		out := "["
		for i, item := range val.Elements {
			if i > 0 {
				out += ", "
			}
			out += stringify(item)
		}
		return out + "]"
	case *runtime.Function, *runtime.Curried, *runtime.Native:
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", v)
	}
}
