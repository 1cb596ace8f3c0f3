package lexer

import (
	"nilan/token"
	"testing"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	return New(source).Scan()
}

func assertTypes(t *testing.T, tokens []token.Token, want []token.TokenType) {
	t.Helper()
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, tt := range want {
		if tokens[i].TokenType != tt {
			t.Errorf("token[%d].TokenType = %v, want %v (lexeme %q)", i, tokens[i].TokenType, tt, tokens[i].Lexeme)
		}
	}
}

func TestScanPunctuation(t *testing.T) {
	tokens := scanAll(t, "(){}*;+")
	assertTypes(t, tokens, []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.MULT, token.SEMICOLON, token.ADD, token.EOF,
	})
}

func TestScanTwoCharacterOperators(t *testing.T) {
	tokens := scanAll(t, "== != <= >= < > = !")
	assertTypes(t, tokens, []token.TokenType{
		token.EQUAL_EQUAL, token.NOT_EQUAL, token.LESS_EQUAL, token.LARGER_EQUAL,
		token.LESS, token.LARGER, token.ASSIGN, token.BANG, token.EOF,
	})
}

func TestScanCommentsAreIgnored(t *testing.T) {
	tokens := scanAll(t, "1 + 2 // this is a comment\n3")
	assertTypes(t, tokens, []token.TokenType{token.NUMBER, token.ADD, token.NUMBER, token.NUMBER, token.EOF})
}

func TestScanNumber(t *testing.T) {
	tokens := scanAll(t, "123 45.67")
	assertTypes(t, tokens, []token.TokenType{token.NUMBER, token.NUMBER, token.EOF})
	if tokens[0].Literal.(float64) != 123 {
		t.Errorf("tokens[0].Literal = %v, want 123", tokens[0].Literal)
	}
	if tokens[1].Literal.(float64) != 45.67 {
		t.Errorf("tokens[1].Literal = %v, want 45.67", tokens[1].Literal)
	}
}

func TestScanNumberTrailingDotNotConsumed(t *testing.T) {
	tokens := scanAll(t, "1.")
	assertTypes(t, tokens, []token.TokenType{token.NUMBER, token.DOT, token.EOF})
	if tokens[0].Literal.(float64) != 1 {
		t.Errorf("tokens[0].Literal = %v, want 1", tokens[0].Literal)
	}
}

func TestScanString(t *testing.T) {
	tokens := scanAll(t, `"hello world"`)
	assertTypes(t, tokens, []token.TokenType{token.STRING, token.EOF})
	if tokens[0].Literal.(string) != "hello world" {
		t.Errorf("tokens[0].Literal = %q, want %q", tokens[0].Literal, "hello world")
	}
}

func TestScanUnterminatedString(t *testing.T) {
	tokens := scanAll(t, `"hello`)
	assertTypes(t, tokens, []token.TokenType{token.ERROR, token.EOF})
	if tokens[0].Lexeme != "Unterminated string." {
		t.Errorf("tokens[0].Lexeme = %q, want %q", tokens[0].Lexeme, "Unterminated string.")
	}
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	tokens := scanAll(t, "var x = foo and true")
	assertTypes(t, tokens, []token.TokenType{
		token.VAR, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER, token.AND, token.TRUE, token.EOF,
	})
}

func TestScanUnexpectedCharacter(t *testing.T) {
	tokens := scanAll(t, "@")
	assertTypes(t, tokens, []token.TokenType{token.ERROR, token.EOF})
}

func TestScanLineTracking(t *testing.T) {
	tokens := scanAll(t, "var a = 1;\nvar b = 2;")
	var lines []int
	for _, tok := range tokens {
		if tok.TokenType == token.VAR {
			lines = append(lines, tok.Line)
		}
	}
	if len(lines) != 2 || lines[0] != 1 || lines[1] != 2 {
		t.Errorf("var token lines = %v, want [1 2]", lines)
	}
}

func TestScanEmptySourceYieldsEOF(t *testing.T) {
	tokens := scanAll(t, "")
	assertTypes(t, tokens, []token.TokenType{token.EOF})
}
