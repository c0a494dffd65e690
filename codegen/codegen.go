// Package codegen lowers a typed AST (see package ast) to x86-64
// assembly in Intel syntax, targeting the System-V AMD64 ABI.
//
// The generator follows a stack-machine discipline throughout: code
// for any Expression leaves exactly one 8-byte value on top of the
// runtime stack, and code for any Statement leaves the runtime stack
// exactly as it found it. This is mirrored at compile time: every
// emitted push/pop adjusts a symbolic depth counter, and a Stack[int]
// holds the depth snapshot taken at the start of each expression and
// statement, so an internal bug that unbalances the real stack shows
// up as an error here rather than as a corrupted frame at run time.
package codegen

import (
	"fmt"
	"strings"

	"github.com/skx/cc-mini/ast"
	"github.com/skx/cc-mini/labels"
	"github.com/skx/cc-mini/stack"
)

// Generator holds the state threaded through one compilation: the
// output being built, the label source, and the depth-balance
// self-check.
type Generator struct {
	labels *labels.Source
	out    strings.Builder

	// depth is the symbolic number of 8-byte values the generated
	// code will have pushed since the function it is currently
	// inside began. checks stores a depth snapshot at the start of
	// every genExpression/genStatement call, so the matching return
	// can assert the promised delta actually happened.
	depth  int
	checks *stack.Stack[int]

	// debug, when set, inserts an "int 03" breakpoint at the start of
	// every function's body, ahead of the debugger.
	debug bool
}

// New builds a Generator that sources its labels from ls.
func New(ls *labels.Source) *Generator {
	return &Generator{labels: ls, checks: stack.New[int]()}
}

// SetDebug toggles breakpoint insertion in the generated assembly.
func (g *Generator) SetDebug(val bool) {
	g.debug = val
}

// Generate lowers an entire Program to assembly text.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	g.emitRaw("  .intel_syntax noprefix")
	g.emitRaw("  .global main")
	g.emitRaw("")

	for _, stmt := range prog.Statements {
		if stmt.Kind != ast.FunctionDefinition {
			return "", fmt.Errorf("top-level statements must be function definitions")
		}
		if err := g.genFunctionDefinition(stmt); err != nil {
			return "", err
		}
	}

	return g.out.String(), nil
}

// emitRaw writes a line to the output exactly as given, with no
// indentation added.
func (g *Generator) emitRaw(line string) {
	g.out.WriteString(line)
	g.out.WriteByte('\n')
}

// emit writes an indented, formatted mnemonic line.
func (g *Generator) emit(format string, args ...any) {
	g.out.WriteString("  ")
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteByte('\n')
}

// comment writes an indented "#"-prefixed informational line.
func (g *Generator) comment(format string, args ...any) {
	g.emit("# "+format, args...)
}

// label writes a column-0 label definition.
func (g *Generator) label(name string) {
	g.emitRaw(name + ":")
}

// newLabel mints a fresh label of the given kind ("begin", "else",
// "end"), per the ".Lkind<N>" convention, taking N from the
// generator's label source.
func (g *Generator) newLabel(kind string) string {
	return fmt.Sprintf(".L%s%d", kind, g.labels.Next())
}

// push emits a push of reg and records it in the depth self-check.
func (g *Generator) push(reg string) {
	g.emit("push %s", reg)
	g.depth++
}

// pop emits a pop into reg and records it in the depth self-check.
func (g *Generator) pop(reg string) {
	g.emit("pop %s", reg)
	g.depth--
}

// enter snapshots the current depth so a later call to leaveExpr or
// leaveStmt can verify the promised net change happened.
func (g *Generator) enter() {
	g.checks.Push(g.depth)
}

// leaveExpr verifies that generating one expression pushed exactly
// one value net, per the stack-machine contract.
func (g *Generator) leaveExpr() error {
	before, err := g.checks.Pop()
	if err != nil {
		return fmt.Errorf("internal error: depth-check stack underflow")
	}
	if g.depth != before+1 {
		return fmt.Errorf("internal error: expression left stack depth at %d, expected %d", g.depth, before+1)
	}
	return nil
}

// leaveStmt verifies that generating one statement left the runtime
// stack exactly as it found it.
func (g *Generator) leaveStmt() error {
	before, err := g.checks.Pop()
	if err != nil {
		return fmt.Errorf("internal error: depth-check stack underflow")
	}
	if g.depth != before {
		return fmt.Errorf("internal error: statement left stack depth at %d, expected %d", g.depth, before)
	}
	return nil
}
