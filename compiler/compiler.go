// The compiler-package contains the core of our compiler.
//
// In brief we go through a three-step process:
//
//  1.  Lex the input into a stream of tokens.
//
//  2.  Parse the tokens into a typed program, binding every local
//      variable to a stack-frame offset as it is declared.
//
//  3.  Walk the program, generating AMD64 assembly for each function.
//
package compiler

import (
	"fmt"

	"github.com/skx/cc-mini/codegen"
	"github.com/skx/cc-mini/labels"
	"github.com/skx/cc-mini/lexer"
	"github.com/skx/cc-mini/parser"
)

// Compiler holds our object-state.
type Compiler struct {

	// debug holds a flag to decide if debugging "stuff" is generated
	// in the output assembly.
	debug bool

	// source holds the C-subset program we're compiling.
	source string
}

//
// Our public API consists of the three functions:
//  New
//  SetDebug
//  Compile
//
// The rest of the code is an implementation detail.
//

// New creates a new compiler, given the source program in the constructor.
func New(input string) *Compiler {
	c := &Compiler{source: input}
	return c
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Compile converts the input program into AMD64 assembly, Intel syntax.
func (c *Compiler) Compile() (string, error) {

	//
	// Lex and parse the program into a typed AST.  At this point
	// there might be errors.  If so report them, and terminate.
	//
	p := parser.New(lexer.New(c.source))

	prog, err := p.Parse()
	if err != nil {
		return "", fmt.Errorf("parse error: %s", err)
	}
	if len(prog.Statements) == 0 {
		return "", fmt.Errorf("parse error: the program is empty")
	}

	//
	// Walk the AST, generating assembly for every function.
	//
	gen := codegen.New(labels.New())
	if c.debug {
		gen.SetDebug(true)
	}

	out, err := gen.Generate(prog)
	if err != nil {
		return "", fmt.Errorf("code-generation error: %s", err)
	}

	return out, nil
}
