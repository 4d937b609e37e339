package lang

import (
	"slices"
)

// Environment is a single lexical scope: a mutable name-to-value
// mapping with an optional link to the enclosing scope. Chains are
// acyclic and rooted at one global scope.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment creates an empty root scope.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

// Child creates a nested scope enclosed by e. Blocks and function
// calls each execute in a child scope.
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]Value), parent: e}
}

// Define binds name to value in this scope, overwriting any existing
// binding here. Enclosing scopes are never consulted.
func (e *Environment) Define(name string, value Value) {
	e.vars[name] = value
}

// Get resolves name against this scope and then each enclosing scope
// outward, returning the first binding found.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Assign mutates the nearest existing binding of name. It reports
// false when no scope in the chain defines name; assignment never
// creates a binding.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = value

			return true
		}
	}

	return false
}

// Names returns every name visible from this scope, sorted and
// deduplicated. Shadowed bindings appear once.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})

	for env := e; env != nil; env = env.parent {
		for name := range env.vars {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
