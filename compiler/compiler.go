// Package compiler implements the bytecode VM path's front end: a
// single-pass Pratt parser that consumes a token stream directly (no
// intermediate AST) and emits a bytecode.Chunk as it goes. The grammar it
// supports is deliberately narrow — numeric literals and arithmetic
// expressions (+, -, *, /, unary -, parentheses) terminated by EOF — per
// spec.md §4.6/§4.7's scope for this stage of the VM path.
package compiler

import (
	"nilan/bytecode"
	"nilan/token"
)

// Precedence levels, lowest to highest. Parsing climbs from PrecAssignment
// up through PrecUnary as operators bind tighter.
const (
	PrecNone = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm   // +, -
	PrecFactor // *, /
	PrecUnary  // unary -
	PrecCall
	PrecPrimary
)

// parseFunc is a prefix or infix parsing step: it consumes whatever tokens
// its rule covers and emits bytecode for them onto the compiler's chunk.
type parseFunc func(*Compiler)

type parseRule struct {
	prefix     parseFunc
	infix      parseFunc
	precedence int
}

// Compiler is a single-pass Pratt compiler over a flat token stream,
// grounded on the teacher's own token-driven Compiler (as opposed to its
// AST-walking twin, which this port does not carry forward — see DESIGN.md).
type Compiler struct {
	tokens       []token.Token
	position     int
	current      token.Token
	previous     token.Token
	chunk        *bytecode.Chunk
	parsingRules map[token.TokenType]parseRule
}

// New creates a Compiler over tokens, which must come from a single
// completed lexer.Scan() call (including its trailing EOF).
func New(tokens []token.Token) *Compiler {
	c := &Compiler{
		tokens: tokens,
		chunk:  bytecode.NewChunk(),
	}
	c.parsingRules = map[token.TokenType]parseRule{
		token.ADD:    {prefix: nil, infix: (*Compiler).binary, precedence: PrecTerm},
		token.MINUS:  {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PrecTerm},
		token.MULT:   {prefix: nil, infix: (*Compiler).binary, precedence: PrecFactor},
		token.DIV:    {prefix: nil, infix: (*Compiler).binary, precedence: PrecFactor},
		token.NUMBER: {prefix: (*Compiler).number, infix: nil, precedence: PrecNone},
		token.LPA:    {prefix: (*Compiler).grouping, infix: nil, precedence: PrecNone},
	}
	return c
}

// Compile parses the full token stream as a single expression and returns
// the resulting chunk, with an implicit RETURN appended.
func (c *Compiler) Compile() (*bytecode.Chunk, error) {
	var compileErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if msg, isString := r.(string); isString {
					compileErr = SyntaxError{Message: msg, Line: c.current.Line}
				} else {
					panic(r)
				}
			}
		}()
		c.advance()
		c.parsePrecedence(PrecAssignment)
		c.consume(token.EOF, "Expected end of expression.")
	}()
	if compileErr != nil {
		return nil, compileErr
	}
	c.emit(byte(bytecode.OpReturn))
	return c.chunk, nil
}

func (c *Compiler) emit(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) advance() {
	c.previous = c.current
	if c.position < len(c.tokens) {
		c.current = c.tokens[c.position]
		c.position++
	}
}

func (c *Compiler) check(tokenType token.TokenType) bool {
	return c.current.TokenType == tokenType
}

// consume advances past the current token if it matches tokenType,
// otherwise panics with message — caught and converted to a SyntaxError by
// Compile, the same shape the teacher's own Pratt compiler uses for parse
// failures (distinct from the interpreter's explicit-result control flow,
// since this is a single straight-line compile pass with no caller that
// needs to distinguish "returned a value" from "failed").
func (c *Compiler) consume(tokenType token.TokenType, message string) {
	if c.check(tokenType) {
		c.advance()
		return
	}
	panic(message)
}

func (c *Compiler) getParseRule(tokenType token.TokenType) parseRule {
	if rule, ok := c.parsingRules[tokenType]; ok {
		return rule
	}
	return parseRule{}
}

func (c *Compiler) parsePrecedence(precedence int) {
	c.advance()
	rule := c.getParseRule(c.previous.TokenType)
	if rule.prefix == nil {
		panic("Expected expression.")
	}
	rule.prefix(c)

	for !c.check(token.EOF) && c.getParseRule(c.current.TokenType).precedence >= precedence {
		c.advance()
		rule := c.getParseRule(c.previous.TokenType)
		if rule.infix == nil {
			panic("Invalid syntax.")
		}
		rule.infix(c)
	}
}

func (c *Compiler) grouping() {
	c.parsePrecedence(PrecAssignment)
	c.consume(token.RPA, "Expected ')' after expression.")
}

func (c *Compiler) number() {
	value := c.previous.Literal.(float64)
	c.chunk.WriteConstant(value, c.previous.Line)
}

func (c *Compiler) unary() {
	operator := c.previous.TokenType
	c.parsePrecedence(PrecUnary)
	if operator == token.MINUS {
		c.emit(byte(bytecode.OpNegate))
	}
}

func (c *Compiler) binary() {
	operator := c.previous.TokenType
	rule := c.getParseRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.ADD:
		c.emit(byte(bytecode.OpAdd))
	case token.MINUS:
		c.emit(byte(bytecode.OpSubtract))
	case token.MULT:
		c.emit(byte(bytecode.OpMultiply))
	case token.DIV:
		c.emit(byte(bytecode.OpDivide))
	}
}
