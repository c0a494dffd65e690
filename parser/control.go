package parser

import (
	"fmt"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/token"
)

// parseIfStatement parses "if ( cond ) then [ else else ]".
func (p *Parser) parseIfStatement() (*ast.Statement, error) {
	p.advance() // consume "if"

	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var els *ast.Statement
	if p.curTokenIs(token.ELSE) {
		p.advance()
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIf(cond, then, els), nil
}

// parseWhileStatement parses "while ( cond ) body".
func (p *Parser) parseWhileStatement() (*ast.Statement, error) {
	p.advance() // consume "while"

	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return ast.NewWhile(cond, body), nil
}

// parseForStatement parses "for ( init ; cond ; post ) body", with
// init, cond and post all individually optional.
func (p *Parser) parseForStatement() (*ast.Statement, error) {
	p.advance() // consume "for"

	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	// init and post are statement-level, not declaration-level: a
	// local declared inside a for-clause is not supported, only an
	// expression (typically an assignment).
	var init *ast.Statement
	var err error
	if !p.curTokenIs(token.SEMICOLON) {
		init, err = p.parseExpressionStatement()
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}

	var cond *ast.Expression
	if !p.curTokenIs(token.SEMICOLON) {
		cond, err = p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	var post *ast.Expression
	if !p.curTokenIs(token.RPAREN) {
		post, err = p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return ast.NewFor(init, cond, post, body), nil
}

// parseReturnStatement parses "return expr ;". A bare "return;" is
// rejected: every function in this subset returns a value on the
// stack-machine's single output slot, even void ones return 0, so the
// expression is never optional.
func (p *Parser) parseReturnStatement() (*ast.Statement, error) {
	p.advance() // consume "return"

	if p.curTokenIs(token.SEMICOLON) {
		return nil, fmt.Errorf("bare 'return;' is not allowed, a value is always required")
	}

	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewReturn(expr), nil
}
