// Package parser implements the Pratt-style recursive-descent parser
// that turns a token stream into a typed AST, resolving local
// variables to stack-frame offsets as it goes.
package parser

import (
	"fmt"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/lexer"
	"github.com/skx/cc-mini/token"
	"github.com/skx/cc-mini/types"
)

// Precedence levels, lowest to highest. Index binds tightest because
// it sits above Product: "a*b[0]" parses as "a*(b[0])".
type Precedence int

const (
	Lowest Precedence = iota
	Assignment
	Equals
	LessGreater
	Sum
	Product
	Index
)

var precedences = map[token.Type]Precedence{
	token.ASSIGN:   Assignment,
	token.EQ:       Equals,
	token.NOT_EQ:   Equals,
	token.LT:       LessGreater,
	token.GT:       LessGreater,
	token.LE:       LessGreater,
	token.GE:       LessGreater,
	token.PLUS:     Sum,
	token.MINUS:    Sum,
	token.ASTERISK: Product,
	token.SLASH:    Product,
	token.LBRACKET: Index,
}

type (
	prefixParseFn func() (*ast.Expression, error)
	infixParseFn  func(left *ast.Expression) (*ast.Expression, error)
)

// LVar is one entry of a per-function local-variable table: a name
// bound to a frame offset and a type.
type LVar struct {
	Name   string
	Offset int
	Type   types.Type
}

// Parser owns the lexer, a two-token lookahead, and the
// currently-open function's local-variable table.
type Parser struct {
	l *lexer.Lexer

	current token.Token
	peek    token.Token

	locals []LVar

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser over the given lexer and primes the
// two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.INT:       p.parseIntegerLiteral,
		token.LPAREN:    p.parseGroupedExpression,
		token.MINUS:     p.parseUnaryMinus,
		token.ASTERISK:  p.parseUnaryDeref,
		token.AMPERSAND: p.parseUnaryAddr,
		token.IDENT:     p.parseIdentifier,
		token.LBRACE:    p.parseArrayLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.ASTERISK: p.parseBinaryExpression,
		token.SLASH:    p.parseBinaryExpression,
		token.LT:       p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.LE:       p.parseBinaryExpression,
		token.GE:       p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.NOT_EQ:   p.parseBinaryExpression,
		token.ASSIGN:   p.parseAssignExpression,
		token.LBRACKET: p.parseIndexExpression,
	}

	// prime current/peek
	p.advance()
	p.advance()

	return p
}

// advance shifts peek into current and reads a new peek token from
// the lexer.
func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.current.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) peekPrecedence() Precedence {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return Lowest
}

func (p *Parser) curPrecedence() Precedence {
	if pr, ok := precedences[p.current.Type]; ok {
		return pr
	}
	return Lowest
}

// expect asserts that current holds the given token type and advances
// past it; it is a syntactic error otherwise.
func (p *Parser) expect(t token.Type) error {
	if !p.curTokenIs(t) {
		return fmt.Errorf("expected token %q but got %q (%q)", t, p.current.Type, p.current.Literal)
	}
	p.advance()
	return nil
}

// Parse consumes the whole token stream and produces a Program. The
// top level contains only function definitions in practice, but the
// statement dispatcher is reused.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.ERROR) {
			return nil, fmt.Errorf("lexical error: %s", p.current.Literal)
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

// parseStatement dispatches on the current token to the right
// statement-level parser.
func (p *Parser) parseStatement() (*ast.Statement, error) {
	switch p.current.Type {
	case token.ERROR:
		return nil, fmt.Errorf("lexical error: %s", p.current.Literal)
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		if token.IsTypeKeyword(p.current.Type) {
			return p.parseDeclaration()
		}
		return p.parseExpressionStatement()
	}
}

// parseBlockStatement consumes "{" statements... "}".
func (p *Parser) parseBlockStatement() (*ast.Statement, error) {
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	var stmts []*ast.Statement
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.NewBlock(stmts), nil
}

// parseExpressionStatement parses an expression followed by ";", which
// it consumes; a ")" is also accepted as the terminator and is left
// unconsumed.
func (p *Parser) parseExpressionStatement() (*ast.Statement, error) {
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}

	if p.curTokenIs(token.SEMICOLON) {
		p.advance()
	} else if !p.curTokenIs(token.RPAREN) {
		return nil, fmt.Errorf("expected ';' or ')' after expression, got %q", p.current.Type)
	}

	return ast.NewExpressionStatement(expr), nil
}
