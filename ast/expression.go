package ast

import "github.com/skx/cc-mini/types"

// ExprKind discriminates the Expression variants.
type ExprKind byte

const (
	IntegerLiteral ExprKind = iota
	LocalVariable
	Unary
	Binary
	Call
	Index
	ArrayLiteral
)

// Expression is the typed-AST sum type for everything that produces a
// value. Only the fields relevant to Kind are populated; see the
// constructor functions below.
type Expression struct {
	Kind ExprKind

	// IntegerLiteral
	IntValue int32

	// LocalVariable: resolved by the binder at parse time, so code
	// generation never needs a separate symbol-table lookup.
	Name       string
	Offset     int
	VarType    types.Type

	// Unary: Operator is one of Neg, Deref, Addr.
	// Binary: Operator is one of Add, Sub, Mul, Div, Assign, Lt, Le,
	// Eq, NotEq.
	Operator Operator
	Operand  *Expression // Unary
	Left     *Expression // Binary
	Right    *Expression // Binary

	// Call
	Callee    string
	Arguments []*Expression

	// Index
	Base  *Expression
	Index *Expression

	// ArrayLiteral
	Elements []*Expression
}

// NewIntegerLiteral builds an integer-literal expression.
func NewIntegerLiteral(v int32) *Expression {
	return &Expression{Kind: IntegerLiteral, IntValue: v}
}

// NewLocalVariable builds a resolved local-variable reference.
func NewLocalVariable(name string, offset int, t types.Type) *Expression {
	return &Expression{Kind: LocalVariable, Name: name, Offset: offset, VarType: t}
}

// NewUnary builds a unary expression.
func NewUnary(op Operator, operand *Expression) *Expression {
	return &Expression{Kind: Unary, Operator: op, Operand: operand}
}

// NewBinary builds a binary expression.
func NewBinary(op Operator, left, right *Expression) *Expression {
	return &Expression{Kind: Binary, Operator: op, Left: left, Right: right}
}

// NewCall builds a function-call expression.
func NewCall(callee string, args []*Expression) *Expression {
	return &Expression{Kind: Call, Callee: callee, Arguments: args}
}

// NewIndex builds an array/pointer indexing expression (base[index]).
func NewIndex(base, index *Expression) *Expression {
	return &Expression{Kind: Index, Base: base, Index: index}
}

// NewArrayLiteral builds a brace-enclosed initialiser list.
func NewArrayLiteral(elements []*Expression) *Expression {
	return &Expression{Kind: ArrayLiteral, Elements: elements}
}
