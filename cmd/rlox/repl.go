package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/diagnostics"
	"github.com/suryamajhi/rlox/pkg/interpreter"
	"github.com/suryamajhi/rlox/pkg/resolver"
	"github.com/suryamajhi/rlox/pkg/runtime"
)

const (
	historyFile = ".rlox_history"
	prompt      = "> "
)

const banner = "rlox interactive prompt\nCtrl+C cancels input, Ctrl+D exits."

// runPrompt evaluates lines against one persistent interpreter: globals and
// resolved bindings accumulate across inputs, errors reset per line.
func runPrompt(quiet bool) int {
	if !quiet {
		fmt.Println(banner)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	interp := interpreter.New(os.Stdout)

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return exitOK
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			errColor.Fprintln(os.Stderr, err)
			return exitSoftware
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		evalLine(interp, line)
	}
}

// evalLine runs one input through all phases against the shared interpreter.
// A line holding a single expression statement echoes its value.
func evalLine(interp *interpreter.Interpreter, source string) {
	statements, ok := frontend(source)
	if !ok {
		return
	}

	res, staticErrs := resolver.New().Resolve(statements)
	if len(staticErrs) > 0 {
		errColor.Fprintln(os.Stderr, diagnostics.RenderAll(diagnostics.SeverityStatic, staticErrs, source))
		return
	}
	interp.BindLocals(res)

	if expr, ok := soleExpression(statements); ok {
		value, err := interp.Evaluate(expr)
		if err != nil {
			reportRuntime(err, source)
			return
		}
		fmt.Println(runtime.Stringify(value))
		return
	}

	if err := interp.Interpret(statements); err != nil {
		reportRuntime(err, source)
	}
}

func soleExpression(statements []ast.Stmt) (ast.Expr, bool) {
	if len(statements) != 1 {
		return nil, false
	}
	stmt, ok := statements[0].(*ast.ExpressionStmt)
	if !ok {
		return nil, false
	}
	return stmt.Expression, true
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
