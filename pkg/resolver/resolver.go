// Package resolver runs the pre-execution scope analysis pass. It pins every
// variable reference to a lexical hop count so the interpreter never scans
// enclosing scopes by name, and it rejects the handful of constructs that are
// statically wrong: reading a local in its own initializer, returning outside
// a function, `this`/`super` outside a class, and a class inheriting from
// itself.
package resolver

import (
	"fmt"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/token"
)

// StaticError is a resolution error anchored to the offending token.
type StaticError struct {
	Token   token.Token
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Line implements the diagnostics source-location contract.
func (e *StaticError) Line() int { return e.Token.Line }

// Resolutions maps a variable-reference or assignment node to its hop count.
// Nodes absent from the table resolve dynamically in the global environment.
// Keys are node pointers: names repeat across scopes, identities do not.
type Resolutions map[ast.Expr]int

// Lookup returns the hop count for a node, and whether one was recorded.
func (r Resolutions) Lookup(expr ast.Expr) (int, bool) {
	depth, ok := r[expr]
	return depth, ok
}

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks the AST once, maintaining a stack of scopes. Each scope maps
// a name to whether its initializer has finished resolving; a false entry
// read back is the `var a = a;` error.
type Resolver struct {
	scopes          []map[string]bool
	resolutions     Resolutions
	errors          []*StaticError
	currentFunction functionType
	currentClass    classType
}

func New() *Resolver {
	return &Resolver{resolutions: make(Resolutions)}
}

// Resolve analyzes a program. Errors are collected, not thrown: the rest of
// the file keeps resolving so one pass reports everything, mirroring the
// parser's recovery. Callers must not execute a program that produced errors.
func (r *Resolver) Resolve(statements []ast.Stmt) (Resolutions, []*StaticError) {
	r.resolveStatements(statements)
	return r.resolutions, r.errors
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpression(s.Expression)
	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStatement(s.ElseBranch)
		}
	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	case *ast.ReturnStmt:
		if r.currentFunction == functionNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.errorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	}
}

func (r *Resolver) resolveExpression(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		// Nothing to resolve.
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if initialized, ok := r.peekScope()[e.Name.Lexeme]; ok && !initialized {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.AssignExpr:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.LogicalExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.UnaryExpr:
		r.resolveExpression(e.Right)
	case *ast.CallExpr:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.GetExpr:
		// Property names resolve dynamically; only the object is static.
		r.resolveExpression(e.Object)
	case *ast.SetExpr:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		default:
			r.resolveLocal(e, e.Keyword)
		}
	case *ast.GroupingExpr:
		r.resolveExpression(e.Expression)
	}
}

// resolveClass pushes a `super` scope (only with a superclass) enclosing a
// `this` scope enclosing the method bodies, giving both keywords a fixed,
// distinct hop count from anywhere inside a method.
func (r *Resolver) resolveClass(stmt *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Name.Lexeme == stmt.Superclass.Name.Lexeme {
			r.errorAt(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(stmt.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range stmt.Methods {
		declaration := functionMethod
		if method.Name.Lexeme == "init" {
			declaration = functionInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, fnType functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// resolveLocal walks the scope stack innermost-out counting hops; a miss
// means the name is presumed global and left out of the side table.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.resolutions[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare marks a binding as existing but uninitialized. The global scope is
// not tracked; globals may redeclare freely.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.peekScope()
	if _, ok := scope[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *Resolver) errorAt(tok token.Token, message string) {
	r.errors = append(r.errors, &StaticError{Token: tok, Message: message})
}
