package main

import (
	"fmt"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/diagnostics"
	"github.com/suryamajhi/rlox/pkg/interpreter"
	"github.com/suryamajhi/rlox/pkg/parser"
	"github.com/suryamajhi/rlox/pkg/resolver"
	"github.com/suryamajhi/rlox/pkg/scanner"
)

// sysexits-style codes: 65 for anything wrong with the input program before
// execution, 70 for a runtime failure.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

var errColor = color.New(color.FgRed)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var inline string
	quiet := false

	opts, optind, err := getopt.Getopts(args, "qhe:")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return exitUsage
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			inline = opt.Value
		case 'q':
			quiet = true
		case 'h':
			usage()
			return exitOK
		}
	}
	rest := args[optind:]

	switch {
	case inline != "":
		return runSource(inline)
	case len(rest) == 1:
		return runFile(rest[0])
	case len(rest) == 0:
		return runPrompt(quiet)
	default:
		usage()
		return exitUsage
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  rlox [script]")
	fmt.Fprintln(os.Stderr, "  rlox -e <code>")
	fmt.Fprintln(os.Stderr, "  rlox            (interactive prompt; -q suppresses the banner)")
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		errColor.Fprintf(os.Stderr, "rlox: %v\n", err)
		return exitUsage
	}
	return runSource(string(source))
}

// runSource drives one script through all four phases. Lexical, syntax, and
// static errors are batch-reported and block execution; a runtime error
// aborts the run.
func runSource(source string) int {
	interp := interpreter.New(os.Stdout)

	statements, ok := frontend(source)
	if !ok {
		return exitDataErr
	}

	res, staticErrs := resolver.New().Resolve(statements)
	if len(staticErrs) > 0 {
		errColor.Fprintln(os.Stderr, diagnostics.RenderAll(diagnostics.SeverityStatic, staticErrs, source))
		return exitDataErr
	}

	interp.BindLocals(res)
	if err := interp.Interpret(statements); err != nil {
		reportRuntime(err, source)
		return exitSoftware
	}
	return exitOK
}

// frontend scans and parses, reporting every collected error. A false return
// means the program must not execute.
func frontend(source string) ([]ast.Stmt, bool) {
	tokens, lexErrs := scanner.New(source).Scan()
	if len(lexErrs) > 0 {
		errColor.Fprintln(os.Stderr, diagnostics.RenderAll(diagnostics.SeverityLexical, lexErrs, source))
		return nil, false
	}

	statements, syntaxErrs := parser.New(tokens).Parse()
	if len(syntaxErrs) > 0 {
		errColor.Fprintln(os.Stderr, diagnostics.RenderAll(diagnostics.SeveritySyntax, syntaxErrs, source))
		return nil, false
	}
	return statements, true
}

func reportRuntime(err error, source string) {
	if re, ok := err.(*interpreter.RuntimeError); ok {
		errColor.Fprintln(os.Stderr, diagnostics.Render(diagnostics.SeverityRuntime, re, source))
		return
	}
	errColor.Fprintln(os.Stderr, err)
}
