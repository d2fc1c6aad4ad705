package config

import (
	"fmt"
	"sync"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/fsm"
)

// BehaviorFactory builds a behavior leaf from the params given in a node
// spec. Params may be nil when the spec carries none.
type BehaviorFactory func(params map[string]any) (core.Behavior, error)

// StateFactory builds a named state from spec params.
type StateFactory func(name string, params map[string]any) (fsm.State, error)

// Registry maps the names used in YAML specs to Go constructors. Safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	predicates map[string]core.Predicate
	behaviors  map[string]BehaviorFactory
	states     map[string]StateFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		predicates: make(map[string]core.Predicate),
		behaviors:  make(map[string]BehaviorFactory),
		states:     make(map[string]StateFactory),
	}
}

// RegisterPredicate binds a named predicate for use in transition and
// conditional specs. Re-registering a name replaces the previous binding.
func (r *Registry) RegisterPredicate(name string, pred core.Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[name] = pred
}

// RegisterBehavior binds a named behavior factory for use in leaf node specs.
func (r *Registry) RegisterBehavior(name string, factory BehaviorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.behaviors[name] = factory
}

// RegisterState binds a named state factory for use in machine specs.
func (r *Registry) RegisterState(name string, factory StateFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[name] = factory
}

func (r *Registry) predicate(name string) (core.Predicate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pred, ok := r.predicates[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown predicate %q", name)
	}
	return pred, nil
}

func (r *Registry) behavior(name string) (BehaviorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.behaviors[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown behavior %q", name)
	}
	return factory, nil
}

func (r *Registry) state(name string) (StateFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.states[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown state type %q", name)
	}
	return factory, nil
}
