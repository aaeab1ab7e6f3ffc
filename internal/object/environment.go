package object

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

var nextID atomic.Uint64

// Environment holds name bindings for one lexical scope and doubles as the
// ownership domain for mutable values created while it is live. Freezing an
// environment (e.g. after a module finishes loading) makes every list it owns
// read-only.
type Environment struct {
	ID       uint64
	Bindings map[string]*Binding
	Outer    *Environment

	frozen bool
	mu     sync.RWMutex
}

type Binding struct {
	Value     Object
	IsMutable bool
}

func nextEnvID() uint64 {
	return nextID.Add(1)
}

func NewEnvironment() *Environment {
	return &Environment{
		ID:       nextEnvID(),
		Bindings: make(map[string]*Binding),
	}
}

// NewEnclosedEnvironment initializes an environment with a parent scope.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.Outer = outer
	return env
}

// Freeze makes this environment, and transitively every value it owns,
// read-only. Enclosed scopes are frozen implicitly because Frozen walks the
// outer chain.
func (e *Environment) Freeze() {
	e.mu.Lock()
	e.frozen = true
	e.mu.Unlock()
	slog.Debug("environment frozen", slog.Uint64("env-id", e.ID))
}

func (e *Environment) Frozen() bool {
	e.mu.RLock()
	frozen := e.frozen
	e.mu.RUnlock()

	if frozen {
		return true
	}
	if e.Outer != nil {
		return e.Outer.Frozen()
	}
	return false
}

func (e *Environment) GetBinding(name string) (*Binding, bool) {
	e.mu.RLock()
	binding, ok := e.Bindings[name]
	e.mu.RUnlock()

	if ok {
		return binding, true
	}
	if e.Outer != nil {
		return e.Outer.GetBinding(name)
	}
	return nil, false
}

// Names returns every name bound in this scope, ignoring outer scopes.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.Bindings))
	for name := range e.Bindings {
		names = append(names, name)
	}
	return names
}

func (e *Environment) Get(name string) (Object, bool) {
	binding, ok := e.GetBinding(name)
	if !ok {
		return nil, false
	}
	return binding.Value, true
}

// Define adds a new mutable binding to this scope and returns the value.
func (e *Environment) Define(name string, val Object) (Object, error) {
	return e.define(name, val, true)
}

// DefineConstant adds a new immutable binding to this scope.
func (e *Environment) DefineConstant(name string, val Object) (Object, error) {
	return e.define(name, val, false)
}

func (e *Environment) define(name string, val Object, isMutable bool) (Object, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frozen {
		return nil, fmt.Errorf("cannot define '%s' in a frozen environment", name)
	}

	if binding, exists := e.Bindings[name]; exists && !binding.IsMutable {
		return nil, fmt.Errorf("val `%s` is already defined and cannot be redefined", name)
	}

	e.Bindings[name] = &Binding{
		Value:     val,
		IsMutable: isMutable,
	}

	slog.Debug("binding value",
		slog.Any("type", val.Type()),
		slog.String("name", name),
		slog.Bool("mutable", isMutable))
	return val, nil
}

func (e *Environment) Assign(name string, val Object) (Object, error) {
	e.mu.Lock()
	binding, exists := e.Bindings[name]
	if exists {
		defer e.mu.Unlock()
		if e.frozen {
			return nil, fmt.Errorf("cannot assign to '%s' in a frozen environment", name)
		}
		if !binding.IsMutable {
			return nil, fmt.Errorf("cannot assign to val '%s': binding is immutable", name)
		}
		binding.Value = val
		return val, nil
	}
	e.mu.Unlock()

	if e.Outer != nil {
		return e.Outer.Assign(name, val)
	}
	return nil, fmt.Errorf("cannot assign to '%s': not defined in any accessible scope", name)
}
