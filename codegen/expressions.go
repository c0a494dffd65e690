package codegen

import (
	"fmt"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/types"
)

// argRegisters is the System-V integer-argument register list, in
// order, for up to six arguments.
var argRegisters = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// genExpression lowers e along the rvalue path, self-checking that
// exactly one value is left on the runtime stack.
func (g *Generator) genExpression(e *ast.Expression) error {
	g.enter()
	if err := g.lowerRvalue(e); err != nil {
		return err
	}
	return g.leaveExpr()
}

// genLvalue lowers e along the lvalue (address) path.
func (g *Generator) genLvalue(e *ast.Expression) error {
	g.enter()
	if err := g.lowerLvalue(e); err != nil {
		return err
	}
	return g.leaveExpr()
}

func (g *Generator) lowerRvalue(e *ast.Expression) error {
	switch e.Kind {
	case ast.IntegerLiteral:
		g.comment("integer literal")
		g.push(fmt.Sprintf("%d", e.IntValue))
		return nil

	case ast.LocalVariable:
		if e.VarType.IsArray() {
			// array-to-pointer decay: the value of an array
			// expression is the address of its first element.
			return g.lowerLvalue(e)
		}
		if err := g.lowerLvalue(e); err != nil {
			return err
		}
		g.pop("rax")
		g.emit("mov rax, [rax]")
		g.push("rax")
		return nil

	case ast.Unary:
		return g.lowerUnary(e)

	case ast.Binary:
		return g.lowerBinary(e)

	case ast.Call:
		return g.lowerCall(e)

	case ast.Index:
		if err := g.lowerLvalue(e); err != nil {
			return err
		}
		g.pop("rax")
		g.emit("mov rax, [rax]")
		g.push("rax")
		return nil

	case ast.ArrayLiteral:
		return fmt.Errorf("an array literal may only appear as a declaration initialiser")

	default:
		return fmt.Errorf("unhandled expression kind %v", e.Kind)
	}
}

func (g *Generator) lowerLvalue(e *ast.Expression) error {
	switch e.Kind {
	case ast.LocalVariable:
		g.lvalueAddressLocal(e.Offset, e.VarType)
		return nil

	case ast.Unary:
		if e.Operator != ast.Deref {
			return fmt.Errorf("cannot take the address of a %q expression", e.Operator)
		}
		// *p's address is simply p's value: p already holds an
		// address.
		return g.genExpression(e.Operand)

	case ast.Index:
		baseType := staticType(e.Base)
		if !baseType.IsPointer() && !baseType.IsArray() {
			return fmt.Errorf("cannot index a non-pointer, non-array expression")
		}

		if err := g.genExpression(e.Base); err != nil {
			return err
		}
		if err := g.genExpression(e.Index); err != nil {
			return err
		}
		elemSize := baseType.ElementSize()
		g.pop("rdi")
		g.pop("rax")
		g.emit("imul rdi, %d", elemSize)
		// the stack-allocated array's decayed address already points
		// at its highest-addressed element (index 0), per
		// lvalueAddressLocal's bias, so ascending indices walk down
		// to lower addresses - hence subtraction for an array base.
		// A true pointer indexes upwards, the same way "*(p+i)" does.
		if baseType.IsArray() {
			g.emit("sub rax, rdi")
		} else {
			g.emit("add rax, rdi")
		}
		g.push("rax")
		return nil

	default:
		return fmt.Errorf("invalid assignment target")
	}
}

// lvalueAddressLocal emits the address of a local variable's frame
// slot and pushes it. For an array-typed local the offset is biased
// toward the high-address end of the slot so that element 0 sits at
// the highest address the slot occupies.
func (g *Generator) lvalueAddressLocal(offset int, t types.Type) {
	g.comment("address of local variable")
	biased := offset
	if t.IsArray() {
		biased = offset - t.ElementSize()*(t.Count-1)
	}
	g.emit("mov rax, rbp")
	g.emit("sub rax, %d", biased)
	g.push("rax")
}

func (g *Generator) lowerUnary(e *ast.Expression) error {
	switch e.Operator {
	case ast.Neg:
		if err := g.genExpression(e.Operand); err != nil {
			return err
		}
		g.pop("rax")
		g.emit("neg rax")
		g.push("rax")
		return nil

	case ast.Addr:
		return g.lowerLvalue(e.Operand)

	case ast.Deref:
		if err := g.genExpression(e.Operand); err != nil {
			return err
		}
		g.pop("rax")
		ptrType := staticType(e.Operand)
		if (ptrType.IsPointer() || ptrType.IsArray()) && ptrType.Elem().Size() == 1 {
			g.emit("movzx rax, byte ptr [rax]")
		} else {
			g.emit("mov rax, [rax]")
		}
		g.push("rax")
		return nil

	default:
		return fmt.Errorf("unhandled unary operator %q", e.Operator)
	}
}

func (g *Generator) lowerBinary(e *ast.Expression) error {
	if e.Operator == ast.Assign {
		return g.lowerAssign(e)
	}

	leftType := staticType(e.Left)
	if (e.Operator == ast.Add || e.Operator == ast.Sub) && (leftType.IsPointer() || leftType.IsArray()) {
		return g.lowerPointerArithmetic(e, leftType)
	}

	if err := g.genExpression(e.Left); err != nil {
		return err
	}
	if err := g.genExpression(e.Right); err != nil {
		return err
	}
	g.pop("rdi")
	g.pop("rax")

	switch e.Operator {
	case ast.Add:
		g.emit("add rax, rdi")
	case ast.Sub:
		g.emit("sub rax, rdi")
	case ast.Mul:
		g.emit("imul rax, rdi")
	case ast.Div:
		g.emit("cqo")
		g.emit("idiv rdi")
	case ast.Lt:
		g.emit("cmp rax, rdi")
		g.emit("setl al")
		g.emit("movzx rax, al")
	case ast.Le:
		g.emit("cmp rax, rdi")
		g.emit("setle al")
		g.emit("movzx rax, al")
	case ast.Eq:
		g.emit("cmp rax, rdi")
		g.emit("sete al")
		g.emit("movzx rax, al")
	case ast.NotEq:
		g.emit("cmp rax, rdi")
		g.emit("setne al")
		g.emit("movzx rax, al")
	default:
		return fmt.Errorf("unhandled binary operator %q", e.Operator)
	}

	g.push("rax")
	return nil
}

// lowerPointerArithmetic scales the integer operand by the pointee
// size before adding/subtracting it from the pointer.
//
// A true pointer's value increases toward higher addresses as the
// index grows, so "+" adds and "-" subtracts. An array-decayed base
// is different: lvalueAddressLocal biases it to the highest address
// of the array's slot, so ascending indices walk to lower addresses
// (see the Index case in lowerLvalue) - "+" must subtract and "-" must
// add to keep a[i] and *(a+i) in agreement.
func (g *Generator) lowerPointerArithmetic(e *ast.Expression, leftType types.Type) error {
	if err := g.genExpression(e.Left); err != nil {
		return err
	}
	if err := g.genExpression(e.Right); err != nil {
		return err
	}
	g.pop("rdi")
	g.pop("rax")
	g.emit("imul rdi, %d", leftType.ElementSize())

	add := e.Operator == ast.Add
	if leftType.IsArray() {
		add = !add
	}
	if add {
		g.emit("add rax, rdi")
	} else {
		g.emit("sub rax, rdi")
	}
	g.push("rax")
	return nil
}

func (g *Generator) lowerAssign(e *ast.Expression) error {
	switch e.Left.Kind {
	case ast.LocalVariable, ast.Index:
	case ast.Unary:
		if e.Left.Operator != ast.Deref {
			return fmt.Errorf("invalid assignment target")
		}
	default:
		return fmt.Errorf("invalid assignment target")
	}

	if err := g.genLvalue(e.Left); err != nil {
		return err
	}
	if err := g.genExpression(e.Right); err != nil {
		return err
	}
	g.pop("rdi")
	g.pop("rax")
	g.emit("mov [rax], rdi")
	g.push("rdi")
	return nil
}

func (g *Generator) lowerCall(e *ast.Expression) error {
	if e.Callee == "sizeof" {
		if len(e.Arguments) != 1 {
			return fmt.Errorf("sizeof takes exactly one argument")
		}
		size, err := sizeofValue(e.Arguments[0])
		if err != nil {
			return err
		}
		g.comment("sizeof")
		g.push(fmt.Sprintf("%d", size))
		return nil
	}

	if len(e.Arguments) > len(argRegisters) {
		return fmt.Errorf("too many arguments to %q: at most %d are supported", e.Callee, len(argRegisters))
	}

	for i, arg := range e.Arguments {
		if err := g.genExpression(arg); err != nil {
			return err
		}
		g.pop(argRegisters[i])
	}

	g.emit("mov rax, 0")
	g.emit("call %s", e.Callee)
	g.push("rax")
	return nil
}

// sizeofValue resolves sizeof(e) at compile time from e's static
// shape, without evaluating e at run time.
func sizeofValue(e *ast.Expression) (int, error) {
	switch e.Kind {
	case ast.LocalVariable:
		return e.VarType.Size(), nil

	case ast.IntegerLiteral, ast.Binary:
		return 8, nil

	case ast.Unary:
		switch e.Operator {
		case ast.Addr:
			return 8, nil
		case ast.Deref:
			if e.Operand.Kind == ast.LocalVariable && e.Operand.VarType.IsPointer() {
				return e.Operand.VarType.ElementSize(), nil
			}
			return 0, fmt.Errorf("unsupported sizeof(*...) operand shape")
		default:
			return 0, fmt.Errorf("unsupported sizeof operand shape")
		}

	default:
		return 0, fmt.Errorf("unsupported sizeof operand shape")
	}
}

// staticType infers the type of an expression by walking the tree,
// using the types already attached to LocalVariable nodes by the
// binder as its only ground truth - there is no separate symbol
// table to consult.
func staticType(e *ast.Expression) types.Type {
	switch e.Kind {
	case ast.LocalVariable:
		return e.VarType

	case ast.IntegerLiteral, ast.Call:
		return types.NewPrimitive(types.Int)

	case ast.Unary:
		switch e.Operator {
		case ast.Addr:
			return types.NewPointer(staticType(e.Operand))
		case ast.Deref:
			inner := staticType(e.Operand)
			if inner.IsPointer() || inner.IsArray() {
				return inner.Elem()
			}
			return types.NewPrimitive(types.Int)
		default:
			return staticType(e.Operand)
		}

	case ast.Binary:
		if e.Operator == ast.Assign {
			return staticType(e.Left)
		}
		left := staticType(e.Left)
		if left.IsPointer() || left.IsArray() {
			return left
		}
		return left

	case ast.Index:
		base := staticType(e.Base)
		if base.IsPointer() || base.IsArray() {
			return base.Elem()
		}
		return types.NewPrimitive(types.Int)

	default:
		return types.NewPrimitive(types.Int)
	}
}
