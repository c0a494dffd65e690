// Package lexer turns C source text into a stream of tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/skx/cc-mini/token"
)

// Lexer holds our object-state.
type Lexer struct {
	position     int    // current character position
	readPosition int    // next character position
	ch           rune   // current character
	characters   []rune // rune slice of input string

	line int // current line, 1-based, for error reporting
	col  int // current column, 1-based, for error reporting
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input), line: 1, col: 0}
	l.readChar()
	return l
}

// read one character forward
func (l *Lexer) readChar() {
	if l.ch == rune('\n') {
		l.line++
		l.col = 0
	}

	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.col++
}

// NextToken reads the next token, skipping whitespace and comments.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	for {
		l.skipWhitespace()

		if l.ch == rune('/') && l.peekChar() == rune('/') {
			l.skipLineComment()
			continue
		}
		break
	}

	switch l.ch {
	case rune('+'):
		tok = newToken(token.PLUS, l.ch)
	case rune('-'):
		tok = newToken(token.MINUS, l.ch)
	case rune('*'):
		tok = newToken(token.ASTERISK, l.ch)
	case rune('/'):
		tok = newToken(token.SLASH, l.ch)
	case rune('('):
		tok = newToken(token.LPAREN, l.ch)
	case rune(')'):
		tok = newToken(token.RPAREN, l.ch)
	case rune('{'):
		tok = newToken(token.LBRACE, l.ch)
	case rune('}'):
		tok = newToken(token.RBRACE, l.ch)
	case rune('['):
		tok = newToken(token.LBRACKET, l.ch)
	case rune(']'):
		tok = newToken(token.RBRACKET, l.ch)
	case rune(';'):
		tok = newToken(token.SEMICOLON, l.ch)
	case rune(','):
		tok = newToken(token.COMMA, l.ch)
	case rune('&'):
		tok = newToken(token.AMPERSAND, l.ch)
	case rune('='):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.EQ, Literal: "=="}
		} else {
			tok = newToken(token.ASSIGN, l.ch)
		}
	case rune('!'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Literal: "!="}
		} else {
			tok = newToken(token.BANG, l.ch)
		}
	case rune('<'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<="}
		} else {
			tok = newToken(token.LT, l.ch)
		}
	case rune('>'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">="}
		} else {
			tok = newToken(token.GT, l.ch)
		}
	case rune(0):
		tok.Literal = ""
		tok.Type = token.EOF
		return tok
	default:
		if isDigit(l.ch) {
			return l.readInteger()
		}
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			tok.Type = token.LookupIdentifier(lit)
			tok.Literal = lit
			return tok
		}

		tok.Type = token.ERROR
		tok.Literal = l.errorAt(fmt.Sprintf("unexpected character %q", l.ch))
	}
	l.readChar()
	return tok
}

// errorAt formats a lexical error with a caret pointing at the current
// column.
func (l *Lexer) errorAt(msg string) string {
	return fmt.Sprintf("%s at line %d, column %d\n%s\n%s^",
		msg, l.line, l.col, l.currentLine(), strings.Repeat(" ", l.col-1))
}

// currentLine returns the full text of the line the lexer is
// currently positioned on, for caret-style error reporting.
func (l *Lexer) currentLine() string {
	start := l.position
	for start > 0 && l.characters[start-1] != '\n' {
		start--
	}
	end := l.position
	for end < len(l.characters) && l.characters[end] != '\n' {
		end++
	}
	return string(l.characters[start:end])
}

// newToken builds a single-character token.
func newToken(tokenType token.Type, ch rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

// skipWhitespace advances past ASCII whitespace.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// skipLineComment consumes a "//" comment through the next newline.
func (l *Lexer) skipLineComment() {
	for l.ch != rune('\n') && l.ch != rune(0) {
		l.readChar()
	}
}

// readInteger reads the maximal run of digits and produces an INT
// token carrying the literal text (parsed to int32 by the caller).
func (l *Lexer) readInteger() token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.INT, Literal: string(l.characters[start:l.position])}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

// isWhitespace reports whether ch is ASCII whitespace.
func isWhitespace(ch rune) bool {
	return ch == rune(' ') || ch == rune('\t') || ch == rune('\n') || ch == rune('\r')
}

// isDigit reports whether ch is an ASCII digit.
func isDigit(ch rune) bool {
	return rune('0') <= ch && ch <= rune('9')
}

// isLetter reports whether ch can start or continue an identifier.
// Identifiers in this subset start with a lowercase letter; only
// lowercase letters continue them (no digits, no underscores).
func isLetter(ch rune) bool {
	return rune('a') <= ch && ch <= rune('z')
}

// readIdentifier reads the maximal run of lowercase letters.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) {
		l.readChar()
	}
	return string(l.characters[start:l.position])
}
