package codegen

import (
	"fmt"

	"github.com/skx/cc-mini/ast"
)

// genFunctionDefinition lowers one top-level function: label,
// prologue, parameter spill, body, and a reset of the depth
// self-check for the next function.
func (g *Generator) genFunctionDefinition(fn *ast.Statement) error {
	if len(fn.Parameters) > len(argRegisters) {
		return fmt.Errorf("function %q takes too many parameters: at most %d are supported", fn.Name, len(argRegisters))
	}

	if !endsInReturn(fn.Body) {
		return fmt.Errorf("function %q does not end in a return statement", fn.Name)
	}

	g.label(fn.Name)
	g.emit("push rbp")
	g.emit("mov rbp, rsp")

	for i, param := range fn.Parameters {
		g.emit("mov [rbp-%d], %s", param.Offset, argRegisters[i])
	}
	if g.debug {
		g.comment("debug break")
		g.emit("int 03")
	}
	g.emitRaw("")

	g.depth = 0

	return g.genStatement(fn.Body)
}
