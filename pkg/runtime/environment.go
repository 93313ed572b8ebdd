package runtime

import (
	"fmt"
	"sort"
)

// Environment provides lexical scoping for rlox runtime values. Closures and
// call frames share environments by pointer, so a mutation through one holder
// is visible to every other holder of the same frame.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in the current scope. Redefining a name
// in the same scope is legal at runtime; the resolver rejects it statically
// for local scopes.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, value)
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// GetAt reads a binding exactly distance parent hops up the chain. The
// resolver guarantees the name is defined there, so a miss is a bug in the
// resolver rather than user error.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	env := e.ancestor(distance)
	if env == nil {
		return nil, fmt.Errorf("Undefined variable '%s'.", name)
	}
	if v, ok := env.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// AssignAt writes a binding exactly distance parent hops up the chain.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	env := e.ancestor(distance)
	if env == nil {
		return fmt.Errorf("Undefined variable '%s'.", name)
	}
	env.values[name] = value
	return nil
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
