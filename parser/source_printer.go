package parser

import (
	"strconv"
	"strings"

	"nilan/ast"
)

// sourcePrinter renders statements back into Lox source text. It never adds
// parentheses of its own: the parser's precedence climbing already nests
// Binary/Logical/Unary/Assign/Set nodes so that printing each node's
// operator and children in order, with no extra grouping, reproduces a
// source string whose reparse yields a structurally identical tree. The
// only literal "(" ")" pairs in the output come from actual ast.Grouping
// nodes, which is exactly where the original source had explicit
// parentheses of its own. This is what lets PrintSource satisfy the
// round-trip property: print then reparse yields a structurally equal AST.
type sourcePrinter struct{}

// PrintSource renders statements as a single Lox source string, reparseable
// by Make(...).Parse().
func PrintSource(statements []ast.Stmt) string {
	p := sourcePrinter{}
	var b strings.Builder
	for _, stmt := range statements {
		b.WriteString(stmt.Accept(p).(string))
	}
	return b.String()
}

func (p sourcePrinter) VisitExpressionStmt(stmt *ast.ExpressionStmt) any {
	return stmt.Expression.Accept(p).(string) + ";"
}

func (p sourcePrinter) VisitPrintStmt(stmt *ast.PrintStmt) any {
	return "print " + stmt.Expression.Accept(p).(string) + ";"
}

func (p sourcePrinter) VisitVarStmt(stmt *ast.VarStmt) any {
	if stmt.Initializer == nil {
		return "var " + stmt.Name.Lexeme + ";"
	}
	return "var " + stmt.Name.Lexeme + " = " + stmt.Initializer.Accept(p).(string) + ";"
}

func (p sourcePrinter) VisitBlockStmt(stmt *ast.BlockStmt) any {
	var b strings.Builder
	b.WriteString("{")
	for _, s := range stmt.Statements {
		b.WriteString(s.Accept(p).(string))
	}
	b.WriteString("}")
	return b.String()
}

func (p sourcePrinter) VisitIfStmt(stmt *ast.IfStmt) any {
	text := "if (" + stmt.Condition.Accept(p).(string) + ") " + stmt.Then.Accept(p).(string)
	if stmt.Else != nil {
		text += " else " + stmt.Else.Accept(p).(string)
	}
	return text
}

func (p sourcePrinter) VisitWhileStmt(stmt *ast.WhileStmt) any {
	return "while (" + stmt.Condition.Accept(p).(string) + ") " + stmt.Body.Accept(p).(string)
}

func (p sourcePrinter) VisitFunctionStmt(stmt *ast.FunctionStmt) any {
	return "fun " + p.functionTail(stmt)
}

// functionTail renders the name, parameter list, and body shared by both a
// top-level function declaration and a method, without the leading "fun"
// keyword a method omits.
func (p sourcePrinter) functionTail(stmt *ast.FunctionStmt) string {
	params := make([]string, 0, len(stmt.Params))
	for _, param := range stmt.Params {
		params = append(params, param.Lexeme)
	}
	var b strings.Builder
	b.WriteString(stmt.Name.Lexeme + "(" + strings.Join(params, ", ") + ") {")
	for _, s := range stmt.Body {
		b.WriteString(s.Accept(p).(string))
	}
	b.WriteString("}")
	return b.String()
}

func (p sourcePrinter) VisitReturnStmt(stmt *ast.ReturnStmt) any {
	if stmt.Value == nil {
		return "return;"
	}
	return "return " + stmt.Value.Accept(p).(string) + ";"
}

func (p sourcePrinter) VisitClassStmt(stmt *ast.ClassStmt) any {
	var b strings.Builder
	b.WriteString("class " + stmt.Name.Lexeme)
	if stmt.Superclass != nil {
		b.WriteString(" < " + stmt.Superclass.Name.Lexeme)
	}
	b.WriteString(" {")
	for _, m := range stmt.Methods {
		b.WriteString(p.functionTail(m))
	}
	b.WriteString("}")
	return b.String()
}

func (p sourcePrinter) VisitLogical(expr *ast.Logical) any {
	return expr.Left.Accept(p).(string) + " " + expr.Operator.Lexeme + " " + expr.Right.Accept(p).(string)
}

func (p sourcePrinter) VisitAssign(expr *ast.Assign) any {
	return expr.Name.Lexeme + " = " + expr.Value.Accept(p).(string)
}

func (p sourcePrinter) VisitVariable(expr *ast.Variable) any {
	return expr.Name.Lexeme
}

func (p sourcePrinter) VisitBinary(expr *ast.Binary) any {
	return expr.Left.Accept(p).(string) + " " + expr.Operator.Lexeme + " " + expr.Right.Accept(p).(string)
}

func (p sourcePrinter) VisitUnary(expr *ast.Unary) any {
	return expr.Operator.Lexeme + expr.Right.Accept(p).(string)
}

func (p sourcePrinter) VisitLiteral(expr *ast.Literal) any {
	switch v := expr.Value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return `"` + v + `"`
	default:
		return "nil"
	}
}

func (p sourcePrinter) VisitGrouping(expr *ast.Grouping) any {
	return "(" + expr.Expression.Accept(p).(string) + ")"
}

func (p sourcePrinter) VisitCall(expr *ast.Call) any {
	args := make([]string, 0, len(expr.Arguments))
	for _, a := range expr.Arguments {
		args = append(args, a.Accept(p).(string))
	}
	return expr.Callee.Accept(p).(string) + "(" + strings.Join(args, ", ") + ")"
}

func (p sourcePrinter) VisitGet(expr *ast.Get) any {
	return expr.Object.Accept(p).(string) + "." + expr.Name.Lexeme
}

func (p sourcePrinter) VisitSet(expr *ast.Set) any {
	return expr.Object.Accept(p).(string) + "." + expr.Name.Lexeme + " = " + expr.Value.Accept(p).(string)
}

func (p sourcePrinter) VisitThis(expr *ast.This) any {
	return "this"
}

func (p sourcePrinter) VisitSuper(expr *ast.Super) any {
	return "super." + expr.Method.Lexeme
}
