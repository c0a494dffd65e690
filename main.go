// This is the main-driver for our compiler.

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"

	"github.com/skx/cc-mini/compiler"
)

func main() {

	//
	// Look for flags.
	//
	debug := flag.Bool("debug", false, "Insert a breakpoint at the start of every function.")
	compileFlag := flag.Bool("compile", false, "Compile the program, via invoking gcc.")
	program := flag.String("filename", "a.out", "The binary to write, when -compile is given.")
	run := flag.Bool("run", false, "Run the binary, post-compile.")
	flag.Parse()

	//
	// If we're running we're also compiling.
	//
	if *run {
		*compileFlag = true
	}

	//
	// Ensure we have a single argument: either a path to a source
	// file, or the source text itself.
	//
	if len(flag.Args()) != 1 {
		fmt.Println("Usage: cc-mini [flags] file.c")
		os.Exit(1)
	}

	source, err := readSource(flag.Args()[0])
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error reading input: %s\n", err)
		os.Exit(1)
	}

	//
	// Create a compiler-object, with the program as input.
	//
	comp := compiler.New(source)

	//
	// Are we inserting debugging "stuff" ?
	//
	if *debug {
		comp.SetDebug(true)
	}

	//
	// Compile
	//
	out, err := comp.Compile()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error compiling: %s\n", err)
		os.Exit(1)
	}

	//
	// If we're not compiling the assembly language text which was
	// produced then we just write the program to STDOUT, and terminate.
	//
	if !*compileFlag {
		fmt.Printf("%s", out)
		return
	}

	//
	// OK we're compiling the program, via gcc.
	//
	gcc := exec.Command("gcc", "-static", "-o", *program, "-x", "assembler", "-")
	gcc.Stdout = os.Stdout
	gcc.Stderr = os.Stderr

	//
	// We'll pipe our generated-program to STDIN of gcc, via a
	// temporary buffer-object.
	//
	var b bytes.Buffer
	b.WriteString(out)
	gcc.Stdin = &b

	//
	// Run gcc.
	//
	err = gcc.Run()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error launching gcc: %s\n", err)
		os.Exit(1)
	}

	//
	// Running the binary too?
	//
	if *run {
		exe := exec.Command(*program)
		exe.Stdout = os.Stdout
		exe.Stderr = os.Stderr
		err = exe.Run()
		if err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error launching %s: %s\n", *program, err)
			os.Exit(1)
		}
	}
}

// readSource treats arg as a path first, falling back to treating it
// as literal source text if no such file exists. This lets the same
// binary be driven from a shell one-liner or a real ".c" file.
func readSource(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return arg, nil
}
