package interpreter

import (
	"fmt"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/runtime"
)

// evaluateCall evaluates the callee and arguments left to right, then
// dispatches on the callable kind. Arity is checked exactly for every kind.
func (i *Interpreter) evaluateCall(expr *ast.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(expr.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		arg, err := i.evaluate(argument, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if err := i.checkArity(expr, fn.Arity(), len(args)); err != nil {
			return nil, err
		}
		return i.callFunction(fn, args)
	case runtime.NativeFunctionValue:
		if err := i.checkArity(expr, fn.Arity(), len(args)); err != nil {
			return nil, err
		}
		result, err := fn.Impl(args)
		if err != nil {
			return nil, &RuntimeError{Token: expr.Paren, Message: err.Error()}
		}
		return result, nil
	case *runtime.ClassValue:
		if err := i.checkArity(expr, fn.Arity(), len(args)); err != nil {
			return nil, err
		}
		return i.instantiate(fn, args)
	default:
		return nil, &RuntimeError{Token: expr.Paren, Message: "Can only call functions and classes."}
	}
}

func (i *Interpreter) checkArity(expr *ast.CallExpr, want, got int) error {
	if want != got {
		return &RuntimeError{
			Token:   expr.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", want, got),
		}
	}
	return nil
}

// callFunction runs a user function in a fresh environment parented on the
// function's captured closure, not the caller's environment. The return
// signal stops here; falling off the end yields nil, and initializers yield
// their bound instance either way.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	if err := i.executeBlock(fn.Declaration.Body, env); err != nil {
		signal, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this")
		}
		return signal.value, nil
	}

	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	return runtime.NilValue{}, nil
}

// instantiate allocates a fresh instance and runs `init` bound to it when
// the class or an ancestor defines one. The instance is the call's value no
// matter what init returns.
func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init := class.FindMethod("init"); init != nil {
		if _, err := i.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// executeClass evaluates the superclass clause, compiles the method table
// over the defining environment (with `super` bound one frame up when a
// superclass exists), and binds the class name so it can be called.
func (i *Interpreter) executeClass(stmt *ast.ClassStmt, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if stmt.Superclass != nil {
		value, err := i.evaluate(stmt.Superclass, env)
		if err != nil {
			return err
		}
		class, ok := value.(*runtime.ClassValue)
		if !ok {
			return &RuntimeError{Token: stmt.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = class
	}

	env.Define(stmt.Name.Lexeme, runtime.NilValue{})

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &runtime.ClassValue{
		Name:       stmt.Name.Lexeme,
		Superclass: superclass,
		Methods:    methods,
	}
	if err := env.Assign(stmt.Name.Lexeme, class); err != nil {
		return &RuntimeError{Token: stmt.Name, Message: err.Error()}
	}
	return nil
}
