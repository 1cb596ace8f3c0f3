package interpreter

import (
	"fmt"
	"nilan/ast"
	"nilan/report"
	"nilan/token"
	"strconv"
	"time"
)

// execSignal tags how a statement's execution completed: either it ran to
// its end (execSignalNone) or it unwound a "return" (execSignalReturn). This
// is the tagged result spec.md §9 calls for in place of using a panic/recover
// pair (or a Go error) to implement non-local return — every execute*
// method threads it through explicitly instead of unwinding the Go stack.
type execSignal int

const (
	execSignalNone execSignal = iota
	execSignalReturn
)

type execOutcome struct {
	signal execSignal
	value  any
}

// stmtResult and exprResult are the concrete values every Visit* method
// returns, boxed behind the `any` the ast.StmtVisitor/ast.ExprVisitor
// interfaces require. execute/evaluate unwrap them immediately, so the rest
// of the interpreter only ever deals in (execOutcome, error) and (any,
// error) tuples.
type stmtResult struct {
	outcome execOutcome
	err     error
}

type exprResult struct {
	value any
	err   error
}

var none = execOutcome{signal: execSignalNone}

// Interpreter executes a resolved program: a parsed and statically-resolved
// list of statements, evaluated directly against a tree of Environment
// frames rather than compiled to bytecode.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int
	reporter    *report.Reporter
}

// New creates an Interpreter with its global scope populated with the
// native functions every Nilan program can call.
func New(reporter *report.Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	interp := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expr]int),
		reporter:    reporter,
	}
	interp.defineNatives()
	return interp
}

func (i *Interpreter) defineNatives() {
	i.globals.Define("clock", NewNativeFunction("clock", 0, func(_ *Interpreter, _ []any) (any, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	}))
}

// Resolve merges the binding-distance table the resolver pass produced into
// the interpreter's own, so Variable/Assign/This/Super lookups can jump
// straight to the right environment frame. Merging rather than replacing
// matters for a REPL: each flushed top-level statement is resolved and
// interpreted against the same long-lived Interpreter, so distances
// recorded for closures from earlier statements must survive later calls
// to Resolve.
func (i *Interpreter) Resolve(locals map[ast.Expr]int) {
	for expr, distance := range locals {
		i.locals[expr] = distance
	}
}

// Interpret runs a program to completion, stopping at the first runtime
// error (if any). That error is written through the Reporter and also
// returned, so a file run can pick its exit code while a REPL just keeps
// accepting input.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	_, err := i.executeStatements(statements)
	if err != nil {
		i.reporter.Error(err)
		return err
	}
	return nil
}

func (i *Interpreter) executeStatements(statements []ast.Stmt) (execOutcome, error) {
	for _, stmt := range statements {
		outcome, err := i.executeStmt(stmt)
		if err != nil {
			return none, err
		}
		if outcome.signal != execSignalNone {
			return outcome, nil
		}
	}
	return none, nil
}

func (i *Interpreter) executeStmt(stmt ast.Stmt) (execOutcome, error) {
	result := stmt.Accept(i).(stmtResult)
	return result.outcome, result.err
}

func (i *Interpreter) evaluate(expr ast.Expr) (any, error) {
	result := expr.Accept(i).(exprResult)
	return result.value, result.err
}

func ok(outcome execOutcome) stmtResult { return stmtResult{outcome: outcome} }
func fail(err error) stmtResult         { return stmtResult{outcome: none, err: err} }
func value(v any) exprResult            { return exprResult{value: v} }
func exprFail(err error) exprResult     { return exprResult{err: err} }

// executeBlockStatements runs statements inside env, restoring the
// interpreter's previous environment before returning (including on early
// return or error) so block scoping never leaks into the caller.
func (i *Interpreter) executeBlockStatements(statements []ast.Stmt, env *Environment) (execOutcome, error) {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()
	return i.executeStatements(statements)
}

// --- StmtVisitor ---

func (i *Interpreter) VisitBlockStmt(stmt *ast.BlockStmt) any {
	outcome, err := i.executeBlockStatements(stmt.Statements, NewEnvironment(i.environment))
	if err != nil {
		return fail(err)
	}
	return ok(outcome)
}

func (i *Interpreter) VisitExpressionStmt(stmt *ast.ExpressionStmt) any {
	if _, err := i.evaluate(stmt.Expression); err != nil {
		return fail(err)
	}
	return ok(none)
}

func (i *Interpreter) VisitIfStmt(stmt *ast.IfStmt) any {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return fail(err)
	}
	if isTruthy(condition) {
		outcome, err := i.executeStmt(stmt.Then)
		if err != nil {
			return fail(err)
		}
		return ok(outcome)
	}
	if stmt.Else != nil {
		outcome, err := i.executeStmt(stmt.Else)
		if err != nil {
			return fail(err)
		}
		return ok(outcome)
	}
	return ok(none)
}

func (i *Interpreter) VisitPrintStmt(stmt *ast.PrintStmt) any {
	val, err := i.evaluate(stmt.Expression)
	if err != nil {
		return fail(err)
	}
	i.reporter.Print(stringify(val))
	return ok(none)
}

func (i *Interpreter) VisitVarStmt(stmt *ast.VarStmt) any {
	var val any
	if stmt.Initializer != nil {
		var err error
		val, err = i.evaluate(stmt.Initializer)
		if err != nil {
			return fail(err)
		}
	}
	i.environment.Define(stmt.Name.Lexeme, val)
	return ok(none)
}

func (i *Interpreter) VisitWhileStmt(stmt *ast.WhileStmt) any {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return fail(err)
		}
		if !isTruthy(condition) {
			return ok(none)
		}
		outcome, err := i.executeStmt(stmt.Body)
		if err != nil {
			return fail(err)
		}
		if outcome.signal != execSignalNone {
			return ok(outcome)
		}
	}
}

func (i *Interpreter) VisitFunctionStmt(stmt *ast.FunctionStmt) any {
	function := NewFunction(stmt, i.environment, false)
	i.environment.Define(stmt.Name.Lexeme, function)
	return ok(none)
}

func (i *Interpreter) VisitReturnStmt(stmt *ast.ReturnStmt) any {
	var val any
	if stmt.Value != nil {
		var err error
		val, err = i.evaluate(stmt.Value)
		if err != nil {
			return fail(err)
		}
	}
	return ok(execOutcome{signal: execSignalReturn, value: val})
}

func (i *Interpreter) VisitClassStmt(stmt *ast.ClassStmt) any {
	var superclass *Class
	if stmt.Superclass != nil {
		superVal, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return fail(err)
		}
		class, isClass := superVal.(*Class)
		if !isClass {
			msg := "Superclass must be a class."
			return fail(CreateRuntimeError(stmt.Superclass.Name.Line, stmt.Superclass.Name.Column, msg))
		}
		superclass = class
	}

	i.environment.Define(stmt.Name.Lexeme, nil)

	env := i.environment
	if stmt.Superclass != nil {
		env = NewEnvironment(i.environment)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = NewFunction(method, env, isInitializer)
	}

	class := NewClass(stmt.Name.Lexeme, superclass, methods)
	if err := i.environment.Assign(stmt.Name, class); err != nil {
		return fail(err)
	}
	return ok(none)
}

// --- ExprVisitor ---

func (i *Interpreter) VisitLiteral(expr *ast.Literal) any {
	return value(expr.Value)
}

func (i *Interpreter) VisitGrouping(expr *ast.Grouping) any {
	val, err := i.evaluate(expr.Expression)
	if err != nil {
		return exprFail(err)
	}
	return value(val)
}

func (i *Interpreter) VisitUnary(expr *ast.Unary) any {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return exprFail(err)
	}

	switch expr.Operator.TokenType {
	case token.MINUS:
		num, ok := toFloat(right)
		if !ok {
			msg := fmt.Sprintf("Operand must be a number, got %v.", right)
			return exprFail(CreateRuntimeError(expr.Operator.Line, expr.Operator.Column, msg))
		}
		return value(-num)
	case token.BANG:
		return value(!isTruthy(right))
	default:
		msg := fmt.Sprintf("Operator '%s' not supported for unary operations.", expr.Operator.TokenType)
		return exprFail(CreateRuntimeError(expr.Operator.Line, expr.Operator.Column, msg))
	}
}

func (i *Interpreter) VisitBinary(expr *ast.Binary) any {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return exprFail(err)
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return exprFail(err)
	}

	op := expr.Operator

	switch op.TokenType {
	case token.ADD:
		if leftNum, leftOk := toFloat(left); leftOk {
			if rightNum, rightOk := toFloat(right); rightOk {
				return value(leftNum + rightNum)
			}
		}
		if leftStr, leftOk := left.(string); leftOk {
			if rightStr, rightOk := right.(string); rightOk {
				return value(leftStr + rightStr)
			}
		}
		msg := "Operands must be two numbers or two strings."
		return exprFail(CreateRuntimeError(op.Line, op.Column, msg))
	case token.MINUS:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a - b })
	case token.MULT:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a * b })
	case token.DIV:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a / b })
	case token.LARGER:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a > b })
	case token.LARGER_EQUAL:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a >= b })
	case token.LESS:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a < b })
	case token.LESS_EQUAL:
		return i.numericBinary(op, left, right, func(a, b float64) any { return a <= b })
	case token.EQUAL_EQUAL:
		return value(isEqual(left, right))
	case token.NOT_EQUAL:
		return value(!isEqual(left, right))
	default:
		msg := fmt.Sprintf("Operator '%s' not supported.", op.TokenType)
		return exprFail(CreateRuntimeError(op.Line, op.Column, msg))
	}
}

func (i *Interpreter) numericBinary(op token.Token, left, right any, apply func(a, b float64) any) any {
	leftNum, rightNum, err := i.operandsAsNumbers(op, left, right)
	if err != nil {
		return exprFail(err)
	}
	return value(apply(leftNum, rightNum))
}

func (i *Interpreter) operandsAsNumbers(op token.Token, left, right any) (float64, float64, error) {
	leftNum, leftOk := toFloat(left)
	rightNum, rightOk := toFloat(right)
	if leftOk && rightOk {
		return leftNum, rightNum, nil
	}
	msg := fmt.Sprintf("Operands must be numbers for '%s'.", op.TokenType)
	return 0, 0, CreateRuntimeError(op.Line, op.Column, msg)
}

func (i *Interpreter) VisitLogical(expr *ast.Logical) any {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return exprFail(err)
	}
	if expr.Operator.TokenType == token.OR {
		if isTruthy(left) {
			return value(left)
		}
	} else {
		if !isTruthy(left) {
			return value(left)
		}
	}
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return exprFail(err)
	}
	return value(right)
}

func (i *Interpreter) VisitVariable(expr *ast.Variable) any {
	val, err := i.lookUpVariable(expr.Name, expr)
	if err != nil {
		return exprFail(err)
	}
	return value(val)
}

func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

func (i *Interpreter) VisitAssign(expr *ast.Assign) any {
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return exprFail(err)
	}

	if distance, ok := i.locals[expr]; ok {
		i.environment.AssignAt(distance, expr.Name, val)
	} else if err := i.globals.Assign(expr.Name, val); err != nil {
		return exprFail(err)
	}
	return value(val)
}

func (i *Interpreter) VisitCall(expr *ast.Call) any {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return exprFail(err)
	}

	arguments := make([]any, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := i.evaluate(argExpr)
		if err != nil {
			return exprFail(err)
		}
		arguments = append(arguments, arg)
	}

	callable, isCallable := callee.(Callable)
	if !isCallable {
		msg := "Can only call functions and classes."
		return exprFail(CreateRuntimeError(expr.Paren.Line, expr.Paren.Column, msg))
	}

	if len(arguments) != callable.Arity() {
		msg := fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments))
		return exprFail(CreateRuntimeError(expr.Paren.Line, expr.Paren.Column, msg))
	}

	result, err := callable.Call(i, arguments)
	if err != nil {
		return exprFail(err)
	}
	return value(result)
}

func (i *Interpreter) VisitGet(expr *ast.Get) any {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return exprFail(err)
	}
	instance, isInstance := object.(*Instance)
	if !isInstance {
		msg := "Only instances have properties."
		return exprFail(CreateRuntimeError(expr.Name.Line, expr.Name.Column, msg))
	}
	val, err := instance.Get(expr.Name)
	if err != nil {
		return exprFail(err)
	}
	return value(val)
}

func (i *Interpreter) VisitSet(expr *ast.Set) any {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return exprFail(err)
	}
	instance, isInstance := object.(*Instance)
	if !isInstance {
		msg := "Only instances have fields."
		return exprFail(CreateRuntimeError(expr.Name.Line, expr.Name.Column, msg))
	}
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return exprFail(err)
	}
	instance.Set(expr.Name, val)
	return value(val)
}

func (i *Interpreter) VisitThis(expr *ast.This) any {
	val, err := i.lookUpVariable(expr.Keyword, expr)
	if err != nil {
		return exprFail(err)
	}
	return value(val)
}

func (i *Interpreter) VisitSuper(expr *ast.Super) any {
	distance := i.locals[expr]
	superclassVal := i.environment.GetAt(distance, "super")
	superclass := superclassVal.(*Class)

	instanceVal := i.environment.GetAt(distance-1, "this")
	instance := instanceVal.(*Instance)

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		msg := fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme)
		return exprFail(CreateRuntimeError(expr.Method.Line, expr.Method.Column, msg))
	}
	return value(method.Bind(instance))
}

// isTruthy implements the language's truthiness rule: nil and the boolean
// false are falsey, everything else (including 0 and "") is truthy.
func isTruthy(val any) bool {
	if val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func toFloat(val any) (float64, bool) {
	num, ok := val.(float64)
	return num, ok
}

// stringify formats a runtime value exactly as a print statement renders it:
// nil prints as "nil", floats drop a trailing ".0" for whole numbers, and
// every other value defers to its own String()/native formatting.
func stringify(val any) string {
	if val == nil {
		return "nil"
	}
	if num, ok := val.(float64); ok {
		text := strconv.FormatFloat(num, 'g', -1, 64)
		return text
	}
	if stringer, ok := val.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%v", val)
}
