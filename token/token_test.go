package token

import "testing"

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		lexeme    string
	}{
		{name: "assign token", tokenType: ASSIGN, lexeme: "="},
		{name: "multiplication token", tokenType: MULT, lexeme: "*"},
		{name: "left brace token", tokenType: LCUR, lexeme: "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateToken(tt.tokenType, tt.lexeme, 1, 0)
			if got.TokenType != tt.tokenType || got.Lexeme != tt.lexeme || got.Literal != nil {
				t.Errorf("CreateToken() = %+v, want type=%v lexeme=%q", got, tt.tokenType, tt.lexeme)
			}
		})
	}
}

func TestCreateLiteralToken(t *testing.T) {
	tok := CreateLiteralToken(NUMBER, 3.5, "3.5", 2, 4)
	if tok.TokenType != NUMBER || tok.Literal != 3.5 || tok.Lexeme != "3.5" || tok.Line != 2 || tok.Column != 4 {
		t.Errorf("CreateLiteralToken() = %+v", tok)
	}
}

func TestKeyWordsCoversReservedWords(t *testing.T) {
	reserved := []string{"and", "class", "else", "false", "for", "fun", "if",
		"nil", "or", "print", "return", "super", "this", "true", "var", "while"}
	for _, word := range reserved {
		if _, ok := KeyWords[word]; !ok {
			t.Errorf("KeyWords missing reserved word %q", word)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if ASSIGN.String() != "=" {
		t.Errorf("ASSIGN.String() = %q, want %q", ASSIGN.String(), "=")
	}
	if TokenType(9999).String() != "UNKNOWN" {
		t.Errorf("unknown TokenType.String() = %q, want UNKNOWN", TokenType(9999).String())
	}
}
