package interpreter

import (
	"fmt"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/runtime"
	"github.com/suryamajhi/rlox/pkg/token"
)

func (i *Interpreter) evaluate(expr ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil
	case *ast.GroupingExpr:
		return i.evaluate(e.Expression, env)
	case *ast.VariableExpr:
		return i.lookUpVariable(e.Name, e, env)
	case *ast.AssignExpr:
		return i.evaluateAssign(e, env)
	case *ast.LogicalExpr:
		return i.evaluateLogical(e, env)
	case *ast.BinaryExpr:
		return i.evaluateBinary(e, env)
	case *ast.UnaryExpr:
		return i.evaluateUnary(e, env)
	case *ast.CallExpr:
		return i.evaluateCall(e, env)
	case *ast.GetExpr:
		return i.evaluateGet(e, env)
	case *ast.SetExpr:
		return i.evaluateSet(e, env)
	case *ast.ThisExpr:
		return i.lookUpVariable(e.Keyword, e, env)
	case *ast.SuperExpr:
		return i.evaluateSuper(e, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", expr.NodeType())
	}
}

func literalValue(v any) runtime.Value {
	switch val := v.(type) {
	case nil:
		return runtime.NilValue{}
	case bool:
		return runtime.BoolValue{Val: val}
	case float64:
		return runtime.NumberValue{Val: val}
	case string:
		return runtime.StringValue{Val: val}
	default:
		return runtime.NilValue{}
	}
}

func (i *Interpreter) evaluateAssign(expr *ast.AssignExpr, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[expr]; ok {
		if err := env.AssignAt(distance, expr.Name.Lexeme, value); err != nil {
			return nil, &RuntimeError{Token: expr.Name, Message: err.Error()}
		}
		return value, nil
	}
	if err := i.globals.Assign(expr.Name.Lexeme, value); err != nil {
		return nil, &RuntimeError{Token: expr.Name, Message: err.Error()}
	}
	return value, nil
}

// evaluateLogical short-circuits: the result is whichever operand decided
// the outcome, not a coerced boolean.
func (i *Interpreter) evaluateLogical(expr *ast.LogicalExpr, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == token.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(expr.Right, env)
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpr, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.Type {
	case token.Plus:
		if l, ok := left.(runtime.NumberValue); ok {
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		}
		if l, ok := left.(runtime.StringValue); ok {
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
	case token.Minus:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		// Division by zero keeps IEEE-754 semantics: Inf/NaN, never an error.
		return runtime.NumberValue{Val: l / r}, nil
	case token.Greater:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l > r}, nil
	case token.GreaterEqual:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l >= r}, nil
	case token.Less:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l < r}, nil
	case token.LessEqual:
		l, r, err := numberOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l <= r}, nil
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	default:
		return nil, &RuntimeError{Token: op, Message: "Unexpected binary operator."}
	}
}

func numberOperands(op token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	return l.Val, r.Val, nil
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpr, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(right)}, nil
	case token.Minus:
		number, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, &RuntimeError{Token: expr.Operator, Message: "Operand must be a number."}
		}
		return runtime.NumberValue{Val: -number.Val}, nil
	default:
		return nil, &RuntimeError{Token: expr.Operator, Message: "Unexpected unary operator."}
	}
}

func (i *Interpreter) evaluateGet(expr *ast.GetExpr, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, &RuntimeError{Token: expr.Name, Message: "Only instances have properties."}
	}

	// Fields shadow methods.
	if value, ok := instance.Fields[expr.Name.Lexeme]; ok {
		return value, nil
	}
	if method := instance.Class.FindMethod(expr.Name.Lexeme); method != nil {
		return method.Bind(instance), nil
	}
	return nil, &RuntimeError{Token: expr.Name, Message: fmt.Sprintf("Undefined property '%s'.", expr.Name.Lexeme)}
}

// evaluateSet always succeeds on an instance, creating the field if absent.
func (i *Interpreter) evaluateSet(expr *ast.SetExpr, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, &RuntimeError{Token: expr.Name, Message: "Only instances have fields."}
	}

	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Fields[expr.Name.Lexeme] = value
	return value, nil
}

// evaluateSuper dispatches starting one level above the class that lexically
// encloses the calling method, never from the instance's runtime class. The
// resolver's `super` scope sits one environment above the `this` scope.
func (i *Interpreter) evaluateSuper(expr *ast.SuperExpr, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr]
	if !ok {
		return nil, &RuntimeError{Token: expr.Keyword, Message: "Can't use 'super' outside of a class."}
	}

	superValue, err := env.GetAt(distance, "super")
	if err != nil {
		return nil, &RuntimeError{Token: expr.Keyword, Message: err.Error()}
	}
	superclass, ok := superValue.(*runtime.ClassValue)
	if !ok {
		return nil, &RuntimeError{Token: expr.Keyword, Message: "Superclass must be a class."}
	}

	thisValue, err := env.GetAt(distance-1, "this")
	if err != nil {
		return nil, &RuntimeError{Token: expr.Keyword, Message: err.Error()}
	}
	object, ok := thisValue.(*runtime.InstanceValue)
	if !ok {
		return nil, &RuntimeError{Token: expr.Keyword, Message: "Can't use 'super' outside of a method."}
	}

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{Token: expr.Method, Message: fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme)}
	}
	return method.Bind(object), nil
}
