package runtime

import (
	"fmt"
	"strconv"

	"github.com/suryamajhi/rlox/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// FunctionValue is a user-defined function: the declaration paired with the
// environment that was current at its definition, which is what makes a
// closure lexical. IsInitializer marks `init` methods, whose calls always
// produce the bound instance.
type FunctionValue struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// Bind produces a method closure whose environment additionally maps `this`
// to the receiver.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{
		Declaration:   v.Declaration,
		Closure:       env,
		IsInitializer: v.IsInitializer,
	}
}

func (v *FunctionValue) String() string {
	return fmt.Sprintf("<fn %s>", v.Declaration.Name.Lexeme)
}

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name     string
	ArityVal int
	Impl     NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v NativeFunctionValue) Arity() int { return v.ArityVal }

func (v NativeFunctionValue) String() string { return "<native fn>" }

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

// ClassValue owns its method table and holds at most one superclass. Calling
// a class constructs an instance.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

// FindMethod walks the superclass chain from this class outward.
func (v *ClassValue) FindMethod(name string) *FunctionValue {
	if method, ok := v.Methods[name]; ok {
		return method
	}
	if v.Superclass != nil {
		return v.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is the initializer's arity, or zero without one.
func (v *ClassValue) Arity() int {
	if init := v.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (v *ClassValue) String() string { return v.Name }

// InstanceValue's field map grows on assignment; fields are never declared
// ahead of time. Method lookup defers to the class.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

func (v *InstanceValue) String() string { return v.Class.Name + " instance" }

//-----------------------------------------------------------------------------
// Shared semantics helpers
//-----------------------------------------------------------------------------

// IsTruthy: nil and false are falsy, everything else (zero and the empty
// string included) is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares by value for scalars and by identity for instances,
// functions, and classes. Values of different kinds are never equal.
func Equal(left, right Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case NilValue:
		return true
	case BoolValue:
		return l.Val == right.(BoolValue).Val
	case NumberValue:
		return l.Val == right.(NumberValue).Val
	case StringValue:
		return l.Val == right.(StringValue).Val
	default:
		return left == right
	}
}

// Stringify renders a value the way `print` emits it: numbers in shortest
// round-trip decimal form, nil as "nil", booleans as "true"/"false".
func Stringify(v Value) string {
	switch val := v.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return strconv.FormatFloat(val.Val, 'g', -1, 64)
	case StringValue:
		return val.Val
	case *FunctionValue:
		return val.String()
	case NativeFunctionValue:
		return val.String()
	case *ClassValue:
		return val.String()
	case *InstanceValue:
		return val.String()
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}
