package parser

import (
	"encoding/json"
	"fmt"
	"nilan/ast"
	"os"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements the visitor interfaces and builds a JSON-friendly
// representation of the AST using maps and slices. Each Visit method returns
// an object that can be marshaled to JSON.
type astPrinter struct{}

func (p astPrinter) VisitExpressionStmt(stmt *ast.ExpressionStmt) any {
	return map[string]any{
		"type":       "ExpressionStmt",
		"expression": stmt.Expression.Accept(p),
	}
}

func (p astPrinter) VisitPrintStmt(stmt *ast.PrintStmt) any {
	return map[string]any{
		"type":       "PrintStmt",
		"expression": stmt.Expression.Accept(p),
	}
}

func (p astPrinter) VisitVarStmt(stmt *ast.VarStmt) any {
	return map[string]any{
		"type":        "VarStmt",
		"name":        stmt.Name.Lexeme,
		"initializer": nilOrAcceptExpr(stmt.Initializer, p),
	}
}

func (p astPrinter) VisitBlockStmt(stmt *ast.BlockStmt) any {
	stmts := make([]any, 0, len(stmt.Statements))
	for _, s := range stmt.Statements {
		stmts = append(stmts, s.Accept(p))
	}
	return map[string]any{
		"type":       "BlockStmt",
		"statements": stmts,
	}
}

func (p astPrinter) VisitWhileStmt(stmt *ast.WhileStmt) any {
	return map[string]any{
		"type":      "WhileStmt",
		"condition": stmt.Condition.Accept(p),
		"body":      stmt.Body.Accept(p),
	}
}

func (p astPrinter) VisitIfStmt(stmt *ast.IfStmt) any {
	return map[string]any{
		"type":      "IfStmt",
		"condition": stmt.Condition.Accept(p),
		"then":      stmt.Then.Accept(p),
		"else":      nilOrAcceptStmt(stmt.Else, p),
	}
}

func (p astPrinter) VisitFunctionStmt(stmt *ast.FunctionStmt) any {
	params := make([]string, 0, len(stmt.Params))
	for _, param := range stmt.Params {
		params = append(params, param.Lexeme)
	}
	body := make([]any, 0, len(stmt.Body))
	for _, s := range stmt.Body {
		body = append(body, s.Accept(p))
	}
	return map[string]any{
		"type":   "FunctionStmt",
		"name":   stmt.Name.Lexeme,
		"params": params,
		"body":   body,
	}
}

func (p astPrinter) VisitReturnStmt(stmt *ast.ReturnStmt) any {
	return map[string]any{
		"type":  "ReturnStmt",
		"value": nilOrAcceptExpr(stmt.Value, p),
	}
}

func (p astPrinter) VisitClassStmt(stmt *ast.ClassStmt) any {
	var superclass any
	if stmt.Superclass != nil {
		superclass = stmt.Superclass.Name.Lexeme
	}
	methods := make([]any, 0, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods = append(methods, p.VisitFunctionStmt(m))
	}
	return map[string]any{
		"type":       "ClassStmt",
		"name":       stmt.Name.Lexeme,
		"superclass": superclass,
		"methods":    methods,
	}
}

func (p astPrinter) VisitLogical(expr *ast.Logical) any {
	return map[string]any{
		"type":     "Logical",
		"operator": expr.Operator.Lexeme,
		"left":     expr.Left.Accept(p),
		"right":    expr.Right.Accept(p),
	}
}

func (p astPrinter) VisitAssign(expr *ast.Assign) any {
	return map[string]any{
		"type":  "Assign",
		"name":  expr.Name.Lexeme,
		"value": expr.Value.Accept(p),
	}
}

func (p astPrinter) VisitVariable(expr *ast.Variable) any {
	return map[string]any{
		"type": "Variable",
		"name": expr.Name.Lexeme,
	}
}

func (p astPrinter) VisitBinary(expr *ast.Binary) any {
	return map[string]any{
		"type":     "Binary",
		"operator": expr.Operator.Lexeme,
		"left":     expr.Left.Accept(p),
		"right":    expr.Right.Accept(p),
	}
}

func (p astPrinter) VisitUnary(expr *ast.Unary) any {
	return map[string]any{
		"type":     "Unary",
		"operator": expr.Operator.Lexeme,
		"right":    expr.Right.Accept(p),
	}
}

func (p astPrinter) VisitLiteral(expr *ast.Literal) any {
	// literals are terminal values and can be used directly in JSON
	return expr.Value
}

func (p astPrinter) VisitGrouping(expr *ast.Grouping) any {
	return map[string]any{
		"type":       "Grouping",
		"expression": expr.Expression.Accept(p),
	}
}

func (p astPrinter) VisitCall(expr *ast.Call) any {
	args := make([]any, 0, len(expr.Arguments))
	for _, a := range expr.Arguments {
		args = append(args, a.Accept(p))
	}
	return map[string]any{
		"type":      "Call",
		"callee":    expr.Callee.Accept(p),
		"arguments": args,
	}
}

func (p astPrinter) VisitGet(expr *ast.Get) any {
	return map[string]any{
		"type":   "Get",
		"object": expr.Object.Accept(p),
		"name":   expr.Name.Lexeme,
	}
}

func (p astPrinter) VisitSet(expr *ast.Set) any {
	return map[string]any{
		"type":   "Set",
		"object": expr.Object.Accept(p),
		"name":   expr.Name.Lexeme,
		"value":  expr.Value.Accept(p),
	}
}

func (p astPrinter) VisitThis(expr *ast.This) any {
	return map[string]any{"type": "This"}
}

func (p astPrinter) VisitSuper(expr *ast.Super) any {
	return map[string]any{
		"type":   "Super",
		"method": expr.Method.Lexeme,
	}
}

// nilOrAcceptExpr returns nil if expr is nil, otherwise continues processing
// and returns the result. Needed because an interface value holding a typed
// nil pointer is not itself == nil, so callers must check at the ast.Expr
// level before calling Accept.
func nilOrAcceptExpr(expr ast.Expr, p ast.ExprVisitor) any {
	if expr == nil {
		return nil
	}
	return expr.Accept(p)
}

func nilOrAcceptStmt(stmt ast.Stmt, p ast.StmtVisitor) any {
	if stmt == nil {
		return nil
	}
	return stmt.Accept(p)
}

// PrintASTJSON converts a slice of statements into a prettified JSON string.
func PrintASTJSON(statements []ast.Stmt) (string, error) {
	printer := astPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Accept(printer))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	jsonStr := string(bytes)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	fmt.Println("")
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON to the given file path.
func WriteASTJSONToFile(statements []ast.Stmt, path string) error {
	s, err := PrintASTJSON(statements)
	if err != nil {
		return err
	}
	fDescriptor, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %s", err.Error())
	}
	defer fDescriptor.Close()

	if _, err := fDescriptor.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %s", err.Error())
	}
	return nil
}
