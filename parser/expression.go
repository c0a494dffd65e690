package parser

import (
	"fmt"
	"strconv"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/token"
)

// parseExpression is the Pratt-style precedence-climbing entry point.
// Every prefix-parse function below advances past whatever it
// consumes, so on return from prefix() "current" already holds
// whatever follows the prefix expression - the would-be infix
// operator, or a terminator. The loop keeps folding in infix
// operators whose precedence strictly exceeds the precedence we were
// called with, left-associatively; parseAssignExpression is the one
// exception, recursing at a lower precedence to get right-
// associativity instead.
func (p *Parser) parseExpression(precedence Precedence) (*ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.current.Type]
	if !ok {
		return nil, fmt.Errorf("no prefix parse function for %q (%q)", p.current.Type, p.current.Literal)
	}

	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.curTokenIs(token.SEMICOLON) && precedence < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.current.Type]
		if !ok {
			return left, nil
		}

		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseIntegerLiteral() (*ast.Expression, error) {
	v, err := strconv.ParseInt(p.current.Literal, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q as an integer: %s", p.current.Literal, err)
	}
	p.advance()
	return ast.NewIntegerLiteral(int32(v)), nil
}

func (p *Parser) parseGroupedExpression() (*ast.Expression, error) {
	p.advance() // consume "("
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseUnaryMinus binds at Product precedence, same as "*" and "/".
func (p *Parser) parseUnaryMinus() (*ast.Expression, error) {
	p.advance()
	operand, err := p.parseExpression(Product)
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(ast.Neg, operand), nil
}

// parseUnaryDeref parses "*expr" (pointer dereference), binding at
// Product precedence.
func (p *Parser) parseUnaryDeref() (*ast.Expression, error) {
	p.advance()
	operand, err := p.parseExpression(Product)
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(ast.Deref, operand), nil
}

// parseUnaryAddr parses "&expr" (address-of), binding at Product
// precedence.
func (p *Parser) parseUnaryAddr() (*ast.Expression, error) {
	p.advance()
	operand, err := p.parseExpression(Product)
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(ast.Addr, operand), nil
}

// parseIdentifier resolves a bare name against the local-variable
// table, or - if followed directly by "(" - parses it as a call
// (including the "sizeof(e)" pseudo-call, resolved later at codegen
// time from e's static type rather than evaluated at run time).
func (p *Parser) parseIdentifier() (*ast.Expression, error) {
	name := p.current.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.advance() // move onto "("
		return p.parseCallExpression(name)
	}

	p.advance()

	lv, ok := p.findLocalVar(name)
	if !ok {
		return nil, fmt.Errorf("undefined variable %q", name)
	}
	return ast.NewLocalVariable(lv.Name, lv.Offset, lv.Type), nil
}

// parseCallExpression parses the "(" arg, arg, ... ")" suffix of a
// call; at most six arguments are permitted, matching the System-V
// integer-argument register count.
func (p *Parser) parseCallExpression(callee string) (*ast.Expression, error) {
	p.advance() // consume "("

	var args []*ast.Expression
	for !p.curTokenIs(token.RPAREN) {
		arg, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.curTokenIs(token.COMMA) {
			p.advance()
		} else if !p.curTokenIs(token.RPAREN) {
			return nil, fmt.Errorf("expected ',' or ')' in argument list, got %q", p.current.Type)
		}
	}

	if len(args) > 6 {
		return nil, fmt.Errorf("too many arguments to %q: at most 6 are supported", callee)
	}

	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return ast.NewCall(callee, args), nil
}

// parseArrayLiteral parses a brace-enclosed initialiser list. It is
// only reached when a prefix expression is expected, which in
// practice means the right-hand side of a declaration's initialiser.
func (p *Parser) parseArrayLiteral() (*ast.Expression, error) {
	p.advance() // consume "{"

	var elems []*ast.Expression
	for !p.curTokenIs(token.RBRACE) {
		e, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)

		if p.curTokenIs(token.COMMA) {
			p.advance()
		} else if !p.curTokenIs(token.RBRACE) {
			return nil, fmt.Errorf("expected ',' or '}' in array literal, got %q", p.current.Type)
		}
	}

	if err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return ast.NewArrayLiteral(elems), nil
}

// parseBinaryExpression parses the standard left-associative binary
// operators. ">" and ">=" are normalised here into "<" / "<=" with
// the operands swapped.
func (p *Parser) parseBinaryExpression(left *ast.Expression) (*ast.Expression, error) {
	opTok := p.current.Type
	precedence := p.curPrecedence()
	p.advance()

	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}

	switch opTok {
	case token.PLUS:
		return ast.NewBinary(ast.Add, left, right), nil
	case token.MINUS:
		return ast.NewBinary(ast.Sub, left, right), nil
	case token.ASTERISK:
		return ast.NewBinary(ast.Mul, left, right), nil
	case token.SLASH:
		return ast.NewBinary(ast.Div, left, right), nil
	case token.LT:
		return ast.NewBinary(ast.Lt, left, right), nil
	case token.LE:
		return ast.NewBinary(ast.Le, left, right), nil
	case token.GT:
		// "a > b" becomes "b < a"
		return ast.NewBinary(ast.Lt, right, left), nil
	case token.GE:
		// "a >= b" becomes "b <= a"
		return ast.NewBinary(ast.Le, right, left), nil
	case token.EQ:
		return ast.NewBinary(ast.Eq, left, right), nil
	case token.NOT_EQ:
		return ast.NewBinary(ast.NotEq, left, right), nil
	default:
		return nil, fmt.Errorf("unhandled binary operator %q", opTok)
	}
}

// parseAssignExpression parses "=", right-associatively: the
// right-hand side is parsed with a precedence one below Assignment,
// so a chained "b = 5" on the right is consumed here rather than
// deferred to the enclosing call - unlike every other (left-
// associative) operator above, whose right side is parsed at its own
// precedence so that a following operator of equal precedence is left
// for the caller to fold in from the left.
func (p *Parser) parseAssignExpression(left *ast.Expression) (*ast.Expression, error) {
	switch left.Kind {
	case ast.LocalVariable, ast.Index:
	case ast.Unary:
		if left.Operator != ast.Deref {
			return nil, fmt.Errorf("invalid assignment target")
		}
	default:
		return nil, fmt.Errorf("invalid assignment target")
	}

	p.advance()
	right, err := p.parseExpression(Assignment - 1)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(ast.Assign, left, right), nil
}

// parseIndexExpression parses the "[" index "]" suffix of a[i].
func (p *Parser) parseIndexExpression(base *ast.Expression) (*ast.Expression, error) {
	p.advance() // consume "["
	idx, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewIndex(base, idx), nil
}
