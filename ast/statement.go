package ast

import "github.com/skx/cc-mini/types"

// StmtKind discriminates the Statement variants.
type StmtKind byte

const (
	ExpressionStatement StmtKind = iota
	If
	While
	For
	Block
	Return
	FunctionDefinition
	InitDeclaration
)

// Statement is the typed-AST sum type for everything that does not
// produce a value by itself.
type Statement struct {
	Kind StmtKind

	// ExpressionStatement, Return
	Expr *Expression

	// If
	Cond *Expression
	Then *Statement
	Else *Statement // nil when there is no else branch

	// While: reuses Cond, Body
	// For: reuses Cond, Body, plus Init and Post below
	Init *Statement  // nil when omitted
	Post *Expression // nil when omitted
	Body *Statement

	// Block
	Statements []*Statement

	// FunctionDefinition: reuses Body
	Name       string
	Parameters []*Expression // LocalVariable expressions
	FrameSize  int           // total bytes of parameters and locals (the last frame offset), set by the binder

	// InitDeclaration
	VarName       string
	Offset        int
	DeclType      types.Type
	Initializer   *Expression // nil when there is no initialiser
}

// NewExpressionStatement builds a bare expression-statement.
func NewExpressionStatement(e *Expression) *Statement {
	return &Statement{Kind: ExpressionStatement, Expr: e}
}

// NewIf builds an if/else statement. els is nil when there is no else
// branch.
func NewIf(cond *Expression, then *Statement, els *Statement) *Statement {
	return &Statement{Kind: If, Cond: cond, Then: then, Else: els}
}

// NewWhile builds a while-loop statement.
func NewWhile(cond *Expression, body *Statement) *Statement {
	return &Statement{Kind: While, Cond: cond, Body: body}
}

// NewFor builds a for-loop statement. init, cond and post may each be
// nil when omitted from the source.
func NewFor(init *Statement, cond *Expression, post *Expression, body *Statement) *Statement {
	return &Statement{Kind: For, Init: init, Cond: cond, Post: post, Body: body}
}

// NewBlock builds a block of statements.
func NewBlock(stmts []*Statement) *Statement {
	return &Statement{Kind: Block, Statements: stmts}
}

// NewReturn builds a return statement. expr is never nil: bare
// "return;" is not part of this subset.
func NewReturn(expr *Expression) *Statement {
	return &Statement{Kind: Return, Expr: expr}
}

// NewFunctionDefinition builds a function definition.
func NewFunctionDefinition(name string, params []*Expression, body *Statement, frameSize int) *Statement {
	return &Statement{Kind: FunctionDefinition, Name: name, Parameters: params, Body: body, FrameSize: frameSize}
}

// NewInitDeclaration builds a local-variable declaration, with an
// optional initialiser.
func NewInitDeclaration(name string, offset int, t types.Type, init *Expression) *Statement {
	return &Statement{Kind: InitDeclaration, VarName: name, Offset: offset, DeclType: t, Initializer: init}
}

// Program is an ordered sequence of top-level statements; in practice
// these are function definitions.
type Program struct {
	Statements []*Statement
}
