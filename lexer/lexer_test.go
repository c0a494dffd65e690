package lexer

import (
	"strings"
	"testing"

	"github.com/skx/cc-mini/token"
)

// Trivial test of the parsing of numbers and identifiers.
func TestParseNumbers(t *testing.T) {
	input := `3 43 int x`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.INT, "3"},
		{token.INT, "43"},
		{token.INT_KW, "int"},
		{token.IDENT, "x"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Trivial test of the parsing of operators.
func TestParseOperators(t *testing.T) {
	input := `+ - * / = == != < > <= >= & ! ( ) { } [ ] ; ,`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.ASSIGN, "="},
		{token.EQ, "=="},
		{token.NOT_EQ, "!="},
		{token.LT, "<"},
		{token.GT, ">"},
		{token.LE, "<="},
		{token.GE, ">="},
		{token.AMPERSAND, "&"},
		{token.BANG, "!"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.SEMICOLON, ";"},
		{token.COMMA, ","},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Trivial test of a complete function, including keywords and a comment.
func TestFunction(t *testing.T) {
	input := `int add(int a, int b) { // add two numbers
  return a+b;
}`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.INT_KW, "int"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.INT_KW, "int"},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.INT_KW, "int"},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.PLUS, "+"},
		{token.IDENT, "b"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Test that a lexical error is reported with a caret, pointing at the
// offending column.
func TestLexicalError(t *testing.T) {
	input := `int x = 3 @ 4;`

	l := New(input)
	var tok token.Token
	for {
		tok = l.NextToken()
		if tok.Type == token.ERROR || tok.Type == token.EOF {
			break
		}
	}

	if tok.Type != token.ERROR {
		t.Fatalf("expected a lexical error, got %q", tok.Type)
	}
	if !strings.Contains(tok.Literal, "^") {
		t.Errorf("expected the error message to contain a caret, got %q", tok.Literal)
	}
	if !strings.Contains(tok.Literal, "column") {
		t.Errorf("expected the error message to name the offending column, got %q", tok.Literal)
	}
}
