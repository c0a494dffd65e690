package parser

import (
	"fmt"
	"strconv"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/token"
	"github.com/skx/cc-mini/types"
)

// parseDeclaration is reached when the current token is a type
// keyword. It reads the shared type-and-name prefix, then decides
// between a variable declaration and a function definition based on
// what follows.
func (p *Parser) parseDeclaration() (*ast.Statement, error) {
	declType, name, err := p.parseTypeDeclaration()
	if err != nil {
		return nil, err
	}

	switch p.current.Type {
	case token.ASSIGN, token.SEMICOLON:
		return p.parseVariableDeclaration(declType, name)
	case token.LPAREN:
		return p.parseFunctionDefinition(declType, name)
	default:
		return nil, fmt.Errorf("expected '=', ';' or '(' after declaring %q, got %q", name, p.current.Type)
	}
}

// parseTypeDeclaration reads a primitive keyword, any number of "*"
// pointer prefixes, the declared name, and any number of "[N]" array
// suffixes, then combines them into a single Type.
//
// The array suffix binds tighter than the pointer prefixes: applying
// the array wrapping first and the pointer wrapping last means
// "int *a[10]" produces Pointer(Array(int, 10)) - pointer-to-array-of-
// int, not C's usual array-of-pointer. This is deliberate, not a bug.
func (p *Parser) parseTypeDeclaration() (types.Type, string, error) {
	base, err := p.primitiveFromKeyword(p.current.Type)
	if err != nil {
		return types.Type{}, "", err
	}
	p.advance()

	pointerCount := 0
	for p.curTokenIs(token.ASTERISK) {
		pointerCount++
		p.advance()
	}

	if !p.curTokenIs(token.IDENT) {
		return types.Type{}, "", fmt.Errorf("expected an identifier in declaration, got %q", p.current.Type)
	}
	name := p.current.Literal
	p.advance()

	declType := types.NewPrimitive(base)

	for p.curTokenIs(token.LBRACKET) {
		p.advance()
		if !p.curTokenIs(token.INT) {
			return types.Type{}, "", fmt.Errorf("expected an integer array size, got %q", p.current.Type)
		}
		size, err := strconv.Atoi(p.current.Literal)
		if err != nil {
			return types.Type{}, "", fmt.Errorf("invalid array size %q: %s", p.current.Literal, err)
		}
		if size <= 0 {
			return types.Type{}, "", fmt.Errorf("array size must be positive, got %d", size)
		}
		p.advance()
		if err := p.expect(token.RBRACKET); err != nil {
			return types.Type{}, "", err
		}
		declType = types.NewArray(declType, size)
	}

	for i := 0; i < pointerCount; i++ {
		declType = types.NewPointer(declType)
	}

	return declType, name, nil
}

// primitiveFromKeyword maps a type-keyword token to its Primitive.
func (p *Parser) primitiveFromKeyword(t token.Type) (types.Primitive, error) {
	switch t {
	case token.VOID:
		return types.Void, nil
	case token.CHAR:
		return types.Char, nil
	case token.SHORT:
		return types.Short, nil
	case token.INT_KW:
		return types.Int, nil
	case token.LONG:
		return types.Long, nil
	case token.FLOAT:
		return types.Float, nil
	case token.DOUBLE:
		return types.Double, nil
	default:
		return 0, fmt.Errorf("expected a type keyword, got %q", t)
	}
}

// newLocalVar inserts name into the current function's local-variable
// table, assigning it the next monotonic frame offset, and returns
// that offset. The binder calls this before parsing an initialiser,
// so the name is already in the table while its own initialiser is
// parsed: "int a = a;" resolves to the slot being declared.
func (p *Parser) newLocalVar(name string, t types.Type) int {
	prev := 0
	if n := len(p.locals); n > 0 {
		prev = p.locals[n-1].Offset
	}
	offset := prev + t.Size()
	p.locals = append(p.locals, LVar{Name: name, Offset: offset, Type: t})
	return offset
}

// findLocalVar looks up name in the current function's local-variable
// table; lookup is linear and the first match wins (there is no
// shadowing - the table is a single flat, function-wide namespace).
func (p *Parser) findLocalVar(name string) (LVar, bool) {
	for _, lv := range p.locals {
		if lv.Name == name {
			return lv, true
		}
	}
	return LVar{}, false
}

// parseVariableDeclaration parses the "= expr ;" or ";" tail of a
// local declaration whose type-and-name prefix has already been read.
func (p *Parser) parseVariableDeclaration(declType types.Type, name string) (*ast.Statement, error) {
	offset := p.newLocalVar(name, declType)

	if p.curTokenIs(token.SEMICOLON) {
		p.advance()
		return ast.NewInitDeclaration(name, offset, declType, nil), nil
	}

	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}

	init, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return ast.NewInitDeclaration(name, offset, declType, init), nil
}

// parseFunctionDefinition parses "( params ) { body }" whose
// return-type-and-name prefix has already been read. The
// local-variable table is cleared here, at the start of every
// function's parameter list, so offsets never accumulate across
// function boundaries.
func (p *Parser) parseFunctionDefinition(returnType types.Type, name string) (*ast.Statement, error) {
	p.locals = nil

	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.Expression
	for !p.curTokenIs(token.RPAREN) {
		paramType, paramName, err := p.parseTypeDeclaration()
		if err != nil {
			return nil, err
		}
		offset := p.newLocalVar(paramName, paramType)
		params = append(params, ast.NewLocalVariable(paramName, offset, paramType))

		if p.curTokenIs(token.COMMA) {
			p.advance()
		} else if !p.curTokenIs(token.RPAREN) {
			return nil, fmt.Errorf("expected ',' or ')' in parameter list, got %q", p.current.Type)
		}
	}

	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	frameSize := 0
	if n := len(p.locals); n > 0 {
		frameSize = p.locals[n-1].Offset
	}

	return ast.NewFunctionDefinition(name, params, body, frameSize), nil
}
