// Package resolver performs a static pass over the parsed AST between
// parsing and tree-walking evaluation. It resolves every variable reference
// to the number of scope hops between the point of use and the scope that
// declares it, so the interpreter's environment lookups can jump straight to
// the right frame instead of walking the chain outward at runtime.
//
// This package has no direct equivalent in the teacher repo — its
// interpreter does plain outward name-chain lookups with no static pass — so
// it is grounded directly on spec.md §4.3's algorithm, using the same
// Accept/Visit dispatch shape as the rest of the AST tooling.
package resolver

import (
	"fmt"
	"nilan/ast"
	"nilan/token"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
	functionTypeInitializer
	functionTypeMethod
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

// Error is a resolution-time semantic error: a local read in its own
// initializer, a "this" outside a class, a duplicate binding in the same
// scope, and so on. Names that resolve to no local scope are not errors
// here; they are left to the interpreter's global lookup.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 Nilan Resolution error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}

// Resolver walks a parsed program and produces a table of binding distances
// keyed by AST node identity (the nodes are pointers, so two syntactically
// identical variable references never collide in the table).
type Resolver struct {
	scopes          []map[string]bool
	locals          map[ast.Expr]int
	currentFunction functionType
	currentClass    classType
	errors          []error
}

// New creates a Resolver ready to resolve a program.
func New() *Resolver {
	return &Resolver{
		locals: make(map[ast.Expr]int),
	}
}

// Resolve walks the given statements and returns the binding-distance table
// plus any resolution errors encountered. Errors do not stop the walk — like
// the parser, the resolver keeps going to surface as many as it can.
func (r *Resolver) Resolve(statements []ast.Stmt) (map[ast.Expr]int, []error) {
	r.resolveStatements(statements)
	return r.locals, r.errors
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) scopeDepth() int {
	return len(r.scopes)
}

func (r *Resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) addError(tok token.Token, message string) {
	r.errors = append(r.errors, Error{Line: tok.Line, Column: tok.Column, Message: message})
}

// declare marks a name as declared-but-not-yet-defined in the innermost
// scope, so its own initializer cannot refer to it (e.g. "var a = a;").
func (r *Resolver) declare(name token.Token) {
	if r.scopeDepth() == 0 {
		return
	}
	scope := r.peekScope()
	if _, exists := scope[name.Lexeme]; exists {
		r.addError(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if r.scopeDepth() == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost to outermost looking for
// name, recording the hop count in the bindings table the first time it's
// found. An unresolved name is left out of the table entirely — the
// interpreter treats that as a global lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- StmtVisitor ---

func (r *Resolver) VisitBlockStmt(stmt *ast.BlockStmt) any {
	r.beginScope()
	r.resolveStatements(stmt.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarStmt(stmt *ast.VarStmt) any {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}
	r.define(stmt.Name)
	return nil
}

func (r *Resolver) VisitFunctionStmt(stmt *ast.FunctionStmt) any {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, functionTypeFunction)
	return nil
}

func (r *Resolver) VisitExpressionStmt(stmt *ast.ExpressionStmt) any {
	r.resolveExpr(stmt.Expression)
	return nil
}

func (r *Resolver) VisitIfStmt(stmt *ast.IfStmt) any {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Then)
	if stmt.Else != nil {
		r.resolveStmt(stmt.Else)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(stmt *ast.PrintStmt) any {
	r.resolveExpr(stmt.Expression)
	return nil
}

func (r *Resolver) VisitReturnStmt(stmt *ast.ReturnStmt) any {
	if r.currentFunction == functionTypeNone {
		r.addError(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Value != nil {
		if r.currentFunction == functionTypeInitializer {
			r.addError(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(stmt *ast.WhileStmt) any {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Body)
	return nil
}

func (r *Resolver) VisitClassStmt(stmt *ast.ClassStmt) any {
	enclosingClass := r.currentClass
	r.currentClass = classTypeClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.addError(stmt.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = classTypeSubclass
			r.resolveExpr(stmt.Superclass)
		}
	}

	if stmt.Superclass != nil {
		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range stmt.Methods {
		kind := functionTypeMethod
		if method.Name.Lexeme == "init" {
			kind = functionTypeInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()

	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

// --- ExprVisitor ---

func (r *Resolver) VisitVariable(expr *ast.Variable) any {
	if r.scopeDepth() != 0 {
		if defined, declared := r.peekScope()[expr.Name.Lexeme]; declared && !defined {
			r.addError(expr.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil
}

func (r *Resolver) VisitAssign(expr *ast.Assign) any {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr, expr.Name)
	return nil
}

func (r *Resolver) VisitBinary(expr *ast.Binary) any {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitCall(expr *ast.Call) any {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Arguments {
		r.resolveExpr(arg)
	}
	return nil
}

func (r *Resolver) VisitGet(expr *ast.Get) any {
	r.resolveExpr(expr.Object)
	return nil
}

func (r *Resolver) VisitGrouping(expr *ast.Grouping) any {
	r.resolveExpr(expr.Expression)
	return nil
}

func (r *Resolver) VisitLiteral(expr *ast.Literal) any {
	return nil
}

func (r *Resolver) VisitLogical(expr *ast.Logical) any {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitSet(expr *ast.Set) any {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil
}

func (r *Resolver) VisitSuper(expr *ast.Super) any {
	if r.currentClass == classTypeNone {
		r.addError(expr.Keyword, "Can't use 'super' outside of a class.")
	} else if r.currentClass != classTypeSubclass {
		r.addError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil
}

func (r *Resolver) VisitThis(expr *ast.This) any {
	if r.currentClass == classTypeNone {
		r.addError(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil
}

func (r *Resolver) VisitUnary(expr *ast.Unary) any {
	r.resolveExpr(expr.Right)
	return nil
}
