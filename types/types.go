// Package types implements the small recursive type algebra used to
// describe C declarations: primitives, pointers, and single-dimension
// arrays.
package types

import "fmt"

// Kind distinguishes the three Type variants.
type Kind byte

const (
	// KindPrimitive is a scalar type such as int, char, or double.
	KindPrimitive Kind = 'p'

	// KindPointer is a pointer to another Type.
	KindPointer Kind = '*'

	// KindArray is a fixed-size array of another Type.
	KindArray Kind = '['
)

// Primitive enumerates the scalar base types of the subset.
type Primitive byte

const (
	Void Primitive = iota
	Char
	Short
	Int
	Long
	Float
	Double
)

// String renders a Primitive the way it appeared in source.
func (p Primitive) String() string {
	switch p {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return "?"
	}
}

// Type is a value describing a C type: a primitive, a pointer to a
// Type, or an array of a Type with a fixed element count. Types are
// plain values and are copied freely.
type Type struct {
	Kind      Kind
	Primitive Primitive // valid when Kind == KindPrimitive
	Inner     *Type     // valid when Kind == KindPointer or KindArray
	Count     int       // valid when Kind == KindArray
}

// NewPrimitive builds a primitive Type.
func NewPrimitive(p Primitive) Type {
	return Type{Kind: KindPrimitive, Primitive: p}
}

// NewPointer builds a Type that points to inner.
func NewPointer(inner Type) Type {
	return Type{Kind: KindPointer, Inner: &inner}
}

// NewArray builds a Type describing count contiguous elements of inner.
func NewArray(inner Type, count int) Type {
	return Type{Kind: KindArray, Inner: &inner, Count: count}
}

// IsPointer reports whether t is a pointer type.
func (t Type) IsPointer() bool { return t.Kind == KindPointer }

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool { return t.Kind == KindArray }

// Size returns the number of bytes this type occupies on the stack, or
// - for a pointee/element type - the scale factor used in pointer
// arithmetic. Per the stack-machine simplification, int, long, double
// and every pointer take a full 8 bytes; float takes 4, short 2, char 1
// and void 0; arrays occupy count*8 bytes (an 8-byte slot per element,
// matching the rest of the model, not the element's own natural size).
func (t Type) Size() int {
	switch t.Kind {
	case KindPrimitive:
		switch t.Primitive {
		case Void:
			return 0
		case Char:
			return 1
		case Short:
			return 2
		case Int, Long, Double:
			return 8
		case Float:
			return 4
		}
	case KindPointer:
		return 8
	case KindArray:
		return t.Count * 8
	}
	return 0
}

// ElementSize returns the size used to scale pointer arithmetic and
// array indexing: the size of the pointee (for a pointer) or the
// element type (for an array). It panics if called on anything else,
// since only pointers and arrays decay into an addressable sequence.
func (t Type) ElementSize() int {
	switch t.Kind {
	case KindPointer, KindArray:
		return t.Inner.Size()
	default:
		panic(fmt.Sprintf("ElementSize called on non-pointer, non-array type %s", t))
	}
}

// Elem returns the pointee/element type of a pointer or array type.
func (t Type) Elem() Type {
	switch t.Kind {
	case KindPointer, KindArray:
		return *t.Inner
	default:
		panic(fmt.Sprintf("Elem called on non-pointer, non-array type %s", t))
	}
}

// String renders the type the way it would be declared in source,
// pointer-prefix-first (e.g. "**int", "int[3]").
func (t Type) String() string {
	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.String()
	case KindPointer:
		return "*" + t.Inner.String()
	case KindArray:
		return fmt.Sprintf("%s[%d]", t.Inner.String(), t.Count)
	default:
		return "?"
	}
}
