package codegen

import (
	"fmt"

	"github.com/skx/cc-mini/ast"
)

// genStatement lowers s, self-checking that the runtime stack is left
// exactly as it was found.
func (g *Generator) genStatement(s *ast.Statement) error {
	g.enter()
	if err := g.lowerStatement(s); err != nil {
		return err
	}
	return g.leaveStmt()
}

func (g *Generator) lowerStatement(s *ast.Statement) error {
	switch s.Kind {
	case ast.ExpressionStatement:
		if err := g.genExpression(s.Expr); err != nil {
			return err
		}
		g.pop("rax")
		return nil

	case ast.Block:
		for _, stmt := range s.Statements {
			if err := g.genStatement(stmt); err != nil {
				return err
			}
		}
		return nil

	case ast.If:
		return g.genIf(s)

	case ast.While:
		return g.genWhile(s)

	case ast.For:
		return g.genFor(s)

	case ast.Return:
		if err := g.genExpression(s.Expr); err != nil {
			return err
		}
		g.pop("rax")
		g.emit("mov rsp, rbp")
		g.emit("pop rbp")
		g.emit("ret")
		return nil

	case ast.InitDeclaration:
		return g.genInitDeclaration(s)

	case ast.FunctionDefinition:
		return fmt.Errorf("a function definition may only appear at the top level")

	default:
		return fmt.Errorf("unhandled statement kind %v", s.Kind)
	}
}

func (g *Generator) genIf(s *ast.Statement) error {
	if err := g.genExpression(s.Cond); err != nil {
		return err
	}
	g.pop("rax")
	g.emit("cmp rax, 0")

	if s.Else == nil {
		lEnd := g.newLabel("end")
		g.emit("je %s", lEnd)
		if err := g.genStatement(s.Then); err != nil {
			return err
		}
		g.label(lEnd)
		return nil
	}

	lElse := g.newLabel("else")
	lEnd := g.newLabel("end")
	g.emit("je %s", lElse)
	if err := g.genStatement(s.Then); err != nil {
		return err
	}
	g.emit("jmp %s", lEnd)
	g.label(lElse)
	if err := g.genStatement(s.Else); err != nil {
		return err
	}
	g.label(lEnd)
	return nil
}

func (g *Generator) genWhile(s *ast.Statement) error {
	lBegin := g.newLabel("begin")
	lEnd := g.newLabel("end")

	g.label(lBegin)
	if err := g.genExpression(s.Cond); err != nil {
		return err
	}
	g.pop("rax")
	g.emit("cmp rax, 0")
	g.emit("je %s", lEnd)

	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	g.emit("jmp %s", lBegin)
	g.label(lEnd)
	return nil
}

func (g *Generator) genFor(s *ast.Statement) error {
	if s.Init != nil {
		if err := g.genStatement(s.Init); err != nil {
			return err
		}
	}

	lBegin := g.newLabel("begin")
	lEnd := g.newLabel("end")

	g.label(lBegin)
	if s.Cond != nil {
		if err := g.genExpression(s.Cond); err != nil {
			return err
		}
		g.pop("rax")
		g.emit("cmp rax, 0")
		g.emit("je %s", lEnd)
	}

	if err := g.genStatement(s.Body); err != nil {
		return err
	}

	if s.Post != nil {
		if err := g.genExpression(s.Post); err != nil {
			return err
		}
		g.pop("rax")
	}
	g.emit("jmp %s", lBegin)
	g.label(lEnd)
	return nil
}

// genInitDeclaration lowers a local declaration. With no initialiser
// nothing is emitted at all - the variable's frame slot needs no
// runtime action, only the offset the binder already assigned it.
func (g *Generator) genInitDeclaration(s *ast.Statement) error {
	if s.Initializer == nil {
		return nil
	}

	if s.Initializer.Kind == ast.ArrayLiteral {
		return g.genArrayLiteralInit(s)
	}

	g.lvalueAddressLocal(s.Offset, s.DeclType)
	if err := g.genExpression(s.Initializer); err != nil {
		return err
	}
	g.pop("rdi")
	g.pop("rax")
	g.emit("mov [rax], rdi")
	return nil
}

// genArrayLiteralInit lowers "type name[N] = {e1, e2, ...};", storing
// each element at its own offset within the array's slot. The offset
// arithmetic mirrors lvalueAddressLocal's bias: element i sits
// (i+1)*elementSize below the top of the slot.
func (g *Generator) genArrayLiteralInit(s *ast.Statement) error {
	elemType := s.DeclType.Elem()
	elemSize := elemType.Size()

	for i, elem := range s.Initializer.Elements {
		offset := s.Offset - s.DeclType.Size() + (i+1)*elemSize
		g.lvalueAddressLocal(offset, elemType)
		if err := g.genExpression(elem); err != nil {
			return err
		}
		g.pop("rdi")
		g.pop("rax")
		g.emit("mov [rax], rdi")
	}
	return nil
}

// endsInReturn reports whether control cannot fall off the end of s
// without having executed a return statement.
func endsInReturn(s *ast.Statement) bool {
	switch s.Kind {
	case ast.Return:
		return true
	case ast.Block:
		if len(s.Statements) == 0 {
			return false
		}
		return endsInReturn(s.Statements[len(s.Statements)-1])
	case ast.If:
		return s.Else != nil && endsInReturn(s.Then) && endsInReturn(s.Else)
	default:
		return false
	}
}
