package runtime

import (
	"math"
	"testing"
)

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  bool
	}{
		{"nil", NilValue{}, false},
		{"false", BoolValue{Val: false}, false},
		{"true", BoolValue{Val: true}, true},
		{"zero", NumberValue{Val: 0}, true},
		{"empty string", StringValue{Val: ""}, true},
		{"instance", NewInstance(&ClassValue{Name: "A"}), true},
	}
	for _, tc := range cases {
		if got := IsTruthy(tc.value); got != tc.want {
			t.Errorf("%s: IsTruthy = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEqualScalars(t *testing.T) {
	if !Equal(NilValue{}, NilValue{}) {
		t.Errorf("nil == nil")
	}
	if !Equal(NumberValue{Val: 1.5}, NumberValue{Val: 1.5}) {
		t.Errorf("equal numbers")
	}
	if Equal(NumberValue{Val: 1}, NumberValue{Val: 2}) {
		t.Errorf("distinct numbers")
	}
	if !Equal(StringValue{Val: "a"}, StringValue{Val: "a"}) {
		t.Errorf("equal strings")
	}
	if Equal(NumberValue{Val: 0}, NilValue{}) {
		t.Errorf("values of different kinds are never equal")
	}
	if Equal(StringValue{Val: "1"}, NumberValue{Val: 1}) {
		t.Errorf("no cross-kind coercion in equality")
	}
}

func TestEqualReferenceIdentity(t *testing.T) {
	class := &ClassValue{Name: "A", Methods: map[string]*FunctionValue{}}
	a := NewInstance(class)
	b := NewInstance(class)

	if !Equal(a, a) {
		t.Errorf("an instance equals itself")
	}
	if Equal(a, b) {
		t.Errorf("distinct instances of the same class are not equal")
	}
}

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	base := &ClassValue{
		Name:    "Base",
		Methods: map[string]*FunctionValue{"greet": {}},
	}
	derived := &ClassValue{
		Name:       "Derived",
		Superclass: base,
		Methods:    map[string]*FunctionValue{},
	}

	if derived.FindMethod("greet") == nil {
		t.Fatalf("inherited method not found")
	}
	if derived.FindMethod("missing") != nil {
		t.Fatalf("absent method should be nil")
	}
}

func TestClassMethodOverrideShadowsSuperclass(t *testing.T) {
	baseGreet := &FunctionValue{}
	derivedGreet := &FunctionValue{}
	base := &ClassValue{Name: "Base", Methods: map[string]*FunctionValue{"greet": baseGreet}}
	derived := &ClassValue{Name: "Derived", Superclass: base, Methods: map[string]*FunctionValue{"greet": derivedGreet}}

	if got := derived.FindMethod("greet"); got != derivedGreet {
		t.Fatalf("override must win over the inherited method")
	}
}

func TestStringify(t *testing.T) {
	class := &ClassValue{Name: "Bagel", Methods: map[string]*FunctionValue{}}
	cases := []struct {
		name  string
		value Value
		want  string
	}{
		{"nil", NilValue{}, "nil"},
		{"true", BoolValue{Val: true}, "true"},
		{"integer-valued number", NumberValue{Val: 2}, "2"},
		{"fractional number", NumberValue{Val: 2.5}, "2.5"},
		{"negative zero", NumberValue{Val: math.Copysign(0, -1)}, "-0"},
		{"infinity", NumberValue{Val: math.Inf(1)}, "+Inf"},
		{"string passes through", StringValue{Val: "hi"}, "hi"},
		{"native function", NativeFunctionValue{Name: "clock"}, "<native fn>"},
		{"class", class, "Bagel"},
		{"instance", NewInstance(class), "Bagel instance"},
	}
	for _, tc := range cases {
		if got := Stringify(tc.value); got != tc.want {
			t.Errorf("%s: Stringify = %q, want %q", tc.name, got, tc.want)
		}
	}
}
