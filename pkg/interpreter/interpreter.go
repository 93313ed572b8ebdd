// Package interpreter executes a resolved rlox AST by walking it against a
// chain of mutable environments.
package interpreter

import (
	"fmt"
	"io"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/runtime"
	"github.com/suryamajhi/rlox/pkg/token"
)

// RuntimeError aborts the current run. It carries the token of the failing
// node so the host can report the source line.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Line implements the diagnostics source-location contract.
func (e *RuntimeError) Line() int { return e.Token.Line }

// returnSignal unwinds statement execution to the nearest call boundary. It
// is an error only so it can thread through the ordinary return path; it
// must never escape callFunction.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return outside function" }

// Interpreter owns the global environment for the lifetime of one run (or
// one REPL session) and the side table of resolved variable hop counts.
type Interpreter struct {
	globals *runtime.Environment
	locals  map[ast.Expr]int
	out     io.Writer
}

// New returns an interpreter whose `print` statements write to out. The
// globals carry the native functions from the start.
func New(out io.Writer) *Interpreter {
	i := &Interpreter{
		globals: runtime.NewEnvironment(nil),
		locals:  make(map[ast.Expr]int),
		out:     out,
	}
	i.defineNatives()
	return i
}

// Globals exposes the outermost environment, mainly for tests and for hosts
// that install extra natives.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// BindLocals merges a resolver side table into the interpreter. REPL
// sessions call this once per input line; the node identities never collide
// because every parse allocates fresh nodes.
func (i *Interpreter) BindLocals(resolutions map[ast.Expr]int) {
	for expr, depth := range resolutions {
		i.locals[expr] = depth
	}
}

// Interpret executes statements in order against the global environment. The
// first runtime error aborts the run and is returned; the interpreter itself
// stays usable for subsequent calls (REPL mode).
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := i.execute(stmt, i.globals); err != nil {
			if _, ok := err.(returnSignal); ok {
				return &RuntimeError{Message: "Can't return from top-level code."}
			}
			return err
		}
	}
	return nil
}

// Evaluate computes a single expression against the globals. The REPL uses
// it to echo the value of an expression statement.
func (i *Interpreter) Evaluate(expr ast.Expr) (runtime.Value, error) {
	return i.evaluate(expr, i.globals)
}

func (i *Interpreter) execute(stmt ast.Stmt, env *runtime.Environment) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expression, env)
		return err
	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, runtime.Stringify(value))
		return nil
	case *ast.VarStmt:
		var value runtime.Value = runtime.NilValue{}
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer, env)
			if err != nil {
				return err
			}
			value = v
		}
		env.Define(s.Name.Lexeme, value)
		return nil
	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, runtime.NewEnvironment(env))
	case *ast.IfStmt:
		condition, err := i.evaluate(s.Condition, env)
		if err != nil {
			return err
		}
		if runtime.IsTruthy(condition) {
			return i.execute(s.ThenBranch, env)
		}
		if s.ElseBranch != nil {
			return i.execute(s.ElseBranch, env)
		}
		return nil
	case *ast.WhileStmt:
		for {
			condition, err := i.evaluate(s.Condition, env)
			if err != nil {
				return err
			}
			if !runtime.IsTruthy(condition) {
				return nil
			}
			if err := i.execute(s.Body, env); err != nil {
				return err
			}
		}
	case *ast.FunctionStmt:
		fn := &runtime.FunctionValue{Declaration: s, Closure: env}
		env.Define(s.Name.Lexeme, fn)
		return nil
	case *ast.ReturnStmt:
		var value runtime.Value = runtime.NilValue{}
		if s.Value != nil {
			v, err := i.evaluate(s.Value, env)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	case *ast.ClassStmt:
		return i.executeClass(s, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", stmt.NodeType())
	}
}

func (i *Interpreter) executeBlock(statements []ast.Stmt, env *runtime.Environment) error {
	for _, stmt := range statements {
		if err := i.execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// lookUpVariable uses the resolver's hop count when one was recorded and
// falls back to a name lookup in the globals otherwise.
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		value, err := env.GetAt(distance, name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Token: name, Message: err.Error()}
		}
		return value, nil
	}
	value, err := i.globals.Get(name.Lexeme)
	if err != nil {
		return nil, &RuntimeError{Token: name, Message: err.Error()}
	}
	return value, nil
}
