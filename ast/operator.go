// Package ast contains the typed abstract syntax tree built by the
// parser: Expression and Statement sum types, and the Operator tags
// that label their binary/unary forms.
//
// The AST is a tree of tagged values with recursive, exclusive
// ownership: every edge has exactly one owning pointer, there are no
// cycles, and nothing is shared between sub-trees.
package ast

// Operator tags a binary or unary expression with the operation it
// performs. Each constant documents the stack effect the code
// generator produces for it: what it pops, and what it pushes.
type Operator byte

const (
	// Add pops two operands and pushes their sum (or, if the left
	// operand is a pointer/array, the pointer advanced by the right
	// operand scaled by the pointee size).
	Add Operator = '+'

	// Sub pops two operands and pushes their difference, with the
	// same pointer-arithmetic scaling rule as Add.
	Sub Operator = '-'

	// Mul pops two operands and pushes their product.
	Mul Operator = '*'

	// Div pops two operands and pushes the truncating quotient of
	// the first by the second.
	Div Operator = '/'

	// Assign pops a value and an address, stores the value at the
	// address, and pushes the value back (assignment yields its
	// right-hand side).
	Assign Operator = '='

	// Lt pops two operands and pushes 1 if the first is less than
	// the second, else 0.
	Lt Operator = '<'

	// Le pops two operands and pushes 1 if the first is less than
	// or equal to the second, else 0.
	Le Operator = 'L'

	// Eq pops two operands and pushes 1 if they are equal, else 0.
	Eq Operator = 'E'

	// NotEq pops two operands and pushes 1 if they differ, else 0.
	NotEq Operator = 'N'

	// Neg pops one operand and pushes its arithmetic negation.
	Neg Operator = '~'

	// Deref pops an address and pushes the value stored there,
	// sized according to the pointee type.
	Deref Operator = '@'

	// Addr computes the address of its operand (an lvalue) and
	// pushes it; it never evaluates the operand as an rvalue.
	Addr Operator = '&'
)

// String renders the operator the way it appears in source, which is
// handy in error messages and test failures.
func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Assign:
		return "="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Neg:
		return "unary -"
	case Deref:
		return "unary *"
	case Addr:
		return "unary &"
	default:
		return "?"
	}
}
