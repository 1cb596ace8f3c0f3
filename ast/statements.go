// statements.go contains every statement AST node. A statement node
// performs an action and does not itself produce a value.

package ast

import "nilan/token"

// ExpressionStmt is a statement consisting of a single expression, whose
// value is discarded. Example: "foo + bar;".
type ExpressionStmt struct {
	Expression Expr
}

func (stmt *ExpressionStmt) Accept(v StmtVisitor) any { return v.VisitExpressionStmt(stmt) }

// PrintStmt outputs the result of evaluating an expression.
// Example: "print foo + bar;".
type PrintStmt struct {
	Expression Expr
}

func (stmt *PrintStmt) Accept(v StmtVisitor) any { return v.VisitPrintStmt(stmt) }

// VarStmt declares a variable, optionally with an initializer expression.
// A nil Initializer means the variable starts out bound to nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (stmt *VarStmt) Accept(v StmtVisitor) any { return v.VisitVarStmt(stmt) }

// BlockStmt groups a sequence of statements that share a new lexical scope.
type BlockStmt struct {
	Statements []Stmt
}

func (stmt *BlockStmt) Accept(v StmtVisitor) any { return v.VisitBlockStmt(stmt) }

// IfStmt is a conditional statement. Else may be nil when there is no else
// branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (stmt *IfStmt) Accept(v StmtVisitor) any { return v.VisitIfStmt(stmt) }

// WhileStmt is a loop statement. The parser desugars "for" loops into
// WhileStmt plus surrounding BlockStmt nodes, so this is the only looping
// construct the interpreter and resolver need to know about.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (stmt *WhileStmt) Accept(v StmtVisitor) any { return v.VisitWhileStmt(stmt) }

// FunctionStmt declares a named function or method.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (stmt *FunctionStmt) Accept(v StmtVisitor) any { return v.VisitFunctionStmt(stmt) }

// ReturnStmt returns from the enclosing function. Value is nil when the
// "return;" form with no expression is used.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (stmt *ReturnStmt) Accept(v StmtVisitor) any { return v.VisitReturnStmt(stmt) }

// ClassStmt declares a class, its optional superclass, and its methods.
// Superclass is nil when the class has no "< Parent" clause.
type ClassStmt struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*FunctionStmt
}

func (stmt *ClassStmt) Accept(v StmtVisitor) any { return v.VisitClassStmt(stmt) }
