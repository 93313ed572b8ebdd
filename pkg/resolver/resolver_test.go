package resolver

import (
	"strings"
	"testing"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/parser"
	"github.com/suryamajhi/rlox/pkg/scanner"
)

func parseSource(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	tokens, lexErrs := scanner.New(source).Scan()
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	statements, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", parseErrs)
	}
	return statements
}

func resolveSource(t *testing.T, source string) (Resolutions, []*StaticError) {
	t.Helper()
	return New().Resolve(parseSource(t, source))
}

func requireNoErrors(t *testing.T, errs []*StaticError) {
	t.Helper()
	if len(errs) > 0 {
		t.Fatalf("unexpected static errors: %v", errs)
	}
}

func requireOneError(t *testing.T, errs []*StaticError, fragment string) {
	t.Helper()
	if len(errs) != 1 {
		t.Fatalf("expected one static error, got %v", errs)
	}
	if !strings.Contains(errs[0].Message, fragment) {
		t.Fatalf("expected message containing %q, got %q", fragment, errs[0].Message)
	}
}

// findVariable digs out the n-th VariableExpr with the given name, in
// statement order, so tests can assert on a specific reference.
func findVariable(statements []ast.Stmt, name string, nth int) *ast.VariableExpr {
	var found *ast.VariableExpr
	count := 0
	var walkStmt func(ast.Stmt)
	var walkExpr func(ast.Expr)

	walkExpr = func(expr ast.Expr) {
		if found != nil || expr == nil {
			return
		}
		switch e := expr.(type) {
		case *ast.VariableExpr:
			if e.Name.Lexeme == name {
				if count == nth {
					found = e
				}
				count++
			}
		case *ast.AssignExpr:
			walkExpr(e.Value)
		case *ast.LogicalExpr:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.BinaryExpr:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.UnaryExpr:
			walkExpr(e.Right)
		case *ast.CallExpr:
			walkExpr(e.Callee)
			for _, arg := range e.Arguments {
				walkExpr(arg)
			}
		case *ast.GetExpr:
			walkExpr(e.Object)
		case *ast.SetExpr:
			walkExpr(e.Object)
			walkExpr(e.Value)
		case *ast.GroupingExpr:
			walkExpr(e.Expression)
		}
	}
	walkStmt = func(stmt ast.Stmt) {
		if found != nil || stmt == nil {
			return
		}
		switch s := stmt.(type) {
		case *ast.ExpressionStmt:
			walkExpr(s.Expression)
		case *ast.PrintStmt:
			walkExpr(s.Expression)
		case *ast.VarStmt:
			walkExpr(s.Initializer)
		case *ast.BlockStmt:
			for _, inner := range s.Statements {
				walkStmt(inner)
			}
		case *ast.IfStmt:
			walkExpr(s.Condition)
			walkStmt(s.ThenBranch)
			walkStmt(s.ElseBranch)
		case *ast.WhileStmt:
			walkExpr(s.Condition)
			walkStmt(s.Body)
		case *ast.FunctionStmt:
			for _, inner := range s.Body {
				walkStmt(inner)
			}
		case *ast.ReturnStmt:
			walkExpr(s.Value)
		case *ast.ClassStmt:
			for _, method := range s.Methods {
				walkStmt(method)
			}
		}
	}
	for _, stmt := range statements {
		walkStmt(stmt)
	}
	return found
}

func TestResolveLocalHopCounts(t *testing.T) {
	source := `
{
  var a = 1;
  {
    print a;
    {
      print a;
    }
  }
}
`
	statements := parseSource(t, source)
	res, errs := New().Resolve(statements)
	requireNoErrors(t, errs)

	first := findVariable(statements, "a", 0)
	second := findVariable(statements, "a", 1)
	if first == nil || second == nil {
		t.Fatalf("test setup: references not found")
	}
	if depth, ok := res.Lookup(first); !ok || depth != 1 {
		t.Fatalf("first reference: expected depth 1, got %d (ok=%v)", depth, ok)
	}
	if depth, ok := res.Lookup(second); !ok || depth != 2 {
		t.Fatalf("second reference: expected depth 2, got %d (ok=%v)", depth, ok)
	}
}

func TestResolveGlobalsStayOutOfTable(t *testing.T) {
	source := "var a = 1;\nprint a;"
	statements := parseSource(t, source)
	res, errs := New().Resolve(statements)
	requireNoErrors(t, errs)

	ref := findVariable(statements, "a", 0)
	if _, ok := res.Lookup(ref); ok {
		t.Fatalf("global reference must resolve dynamically, not via the side table")
	}
}

func TestResolveSameNameDistinctIdentities(t *testing.T) {
	// Two references to the same name at different depths must not collide:
	// the table is keyed by node identity.
	source := `
{
  var a = 1;
  {
    var a = 2;
    print a;
  }
  print a;
}
`
	statements := parseSource(t, source)
	res, errs := New().Resolve(statements)
	requireNoErrors(t, errs)

	inner := findVariable(statements, "a", 0)
	outer := findVariable(statements, "a", 1)
	if depth, _ := res.Lookup(inner); depth != 0 {
		t.Fatalf("inner reference: expected depth 0, got %d", depth)
	}
	if depth, _ := res.Lookup(outer); depth != 0 {
		t.Fatalf("outer reference: expected depth 0 in its own scope, got %d", depth)
	}
}

func TestResolveParameterReference(t *testing.T) {
	source := "fun f(x) { return x; }"
	statements := parseSource(t, source)
	res, errs := New().Resolve(statements)
	requireNoErrors(t, errs)

	ref := findVariable(statements, "x", 0)
	if depth, ok := res.Lookup(ref); !ok || depth != 0 {
		t.Fatalf("parameter reference: expected depth 0, got %d (ok=%v)", depth, ok)
	}
}

func TestResolveSelfReferentialInitializer(t *testing.T) {
	_, errs := resolveSource(t, "{ var a = a; }")
	requireOneError(t, errs, "own initializer")
}

func TestResolveSelfReferentialInitializerIsFineForGlobals(t *testing.T) {
	// Globals are not scope-tracked; `var a = a;` at top level is a runtime
	// concern, not a static one.
	_, errs := resolveSource(t, "var a = a;")
	requireNoErrors(t, errs)
}

func TestResolveDuplicateLocalDeclaration(t *testing.T) {
	_, errs := resolveSource(t, "{ var a = 1; var a = 2; }")
	requireOneError(t, errs, "Already a variable with this name")
}

func TestResolveReturnOutsideFunction(t *testing.T) {
	_, errs := resolveSource(t, "return 1;")
	requireOneError(t, errs, "top-level code")
}

func TestResolveReturnValueFromInitializer(t *testing.T) {
	_, errs := resolveSource(t, "class A { init() { return 1; } }")
	requireOneError(t, errs, "initializer")
}

func TestResolveBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, errs := resolveSource(t, "class A { init() { return; } }")
	requireNoErrors(t, errs)
}

func TestResolveThisOutsideClass(t *testing.T) {
	_, errs := resolveSource(t, "print this;")
	requireOneError(t, errs, "outside of a class")
}

func TestResolveSuperOutsideClass(t *testing.T) {
	_, errs := resolveSource(t, "print super.x;")
	requireOneError(t, errs, "outside of a class")
}

func TestResolveSuperWithoutSuperclass(t *testing.T) {
	_, errs := resolveSource(t, "class A { f() { return super.f(); } }")
	requireOneError(t, errs, "no superclass")
}

func TestResolveSelfInheritance(t *testing.T) {
	_, errs := resolveSource(t, "class A < A {}")
	requireOneError(t, errs, "inherit from itself")
}

func TestResolveCollectsMultipleErrors(t *testing.T) {
	source := "return 1;\nprint this;"
	_, errs := resolveSource(t, source)
	if len(errs) != 2 {
		t.Fatalf("resolution should keep going after an error, got %v", errs)
	}
}

func TestResolveThisAndSuperDepths(t *testing.T) {
	source := `
class A { f() {} }
class B < A {
  f() {
    print this;
    return super.f;
  }
}
`
	statements := parseSource(t, source)
	res, errs := New().Resolve(statements)
	requireNoErrors(t, errs)

	classB := statements[1].(*ast.ClassStmt)
	method := classB.Methods[0]
	printStmt := method.Body[0].(*ast.PrintStmt)
	thisExpr := printStmt.Expression.(*ast.ThisExpr)
	returnStmt := method.Body[1].(*ast.ReturnStmt)
	superExpr := returnStmt.Value.(*ast.SuperExpr)

	// Method body scope → this scope is one hop; super sits one above this.
	if depth, ok := res.Lookup(thisExpr); !ok || depth != 1 {
		t.Fatalf("this: expected depth 1, got %d (ok=%v)", depth, ok)
	}
	if depth, ok := res.Lookup(superExpr); !ok || depth != 2 {
		t.Fatalf("super: expected depth 2, got %d (ok=%v)", depth, ok)
	}
}
