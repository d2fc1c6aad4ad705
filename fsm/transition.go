package fsm

import (
	"fmt"

	"github.com/hupe1980/behaviormesh/core"
)

// Transition is an immutable, priority-ordered, predicate-gated edge between
// two states of the same machine. Higher priorities are evaluated first;
// equal priorities keep registration order.
type Transition struct {
	from      string
	to        string
	predicate core.Predicate
	priority  int
	name      string
}

// NewTransition creates a transition between two state names with priority 0
// and a generated name.
func NewTransition(from, to string, predicate core.Predicate) Transition {
	return Transition{from: from, to: to, predicate: predicate, name: from + "->" + to}
}

// From returns the source state name.
func (t Transition) From() string { return t.from }

// To returns the target state name.
func (t Transition) To() string { return t.to }

// Priority returns the transition priority.
func (t Transition) Priority() int { return t.priority }

// Name returns the transition name.
func (t Transition) Name() string { return t.name }

// ShouldFire evaluates the predicate. A panic inside the predicate is caught
// at this boundary, logged and treated as "condition false".
func (t Transition) ShouldFire(ctx *core.ExecutionContext) bool {
	return t.predicate.Eval(ctx)
}

// String implements fmt.Stringer.
func (t Transition) String() string {
	return fmt.Sprintf("Transition{%s, priority=%d}", t.name, t.priority)
}

// TransitionBuilder assembles a Transition with a fluent API.
type TransitionBuilder struct {
	t Transition
}

// From begins a transition from the named state.
func From(state string) *TransitionBuilder {
	return &TransitionBuilder{t: Transition{from: state}}
}

// To sets the target state name.
func (b *TransitionBuilder) To(state string) *TransitionBuilder {
	b.t.to = state
	return b
}

// When sets the gating predicate.
func (b *TransitionBuilder) When(predicate core.Predicate) *TransitionBuilder {
	b.t.predicate = predicate
	return b
}

// Priority sets the transition priority (higher fires first).
func (b *TransitionBuilder) Priority(priority int) *TransitionBuilder {
	b.t.priority = priority
	return b
}

// Name overrides the generated transition name.
func (b *TransitionBuilder) Name(name string) *TransitionBuilder {
	b.t.name = name
	return b
}

// Build validates and returns the transition.
func (b *TransitionBuilder) Build() (Transition, error) {
	if b.t.from == "" || b.t.to == "" {
		return Transition{}, fmt.Errorf("transition: from and to states are required")
	}
	if b.t.predicate == nil {
		return Transition{}, fmt.Errorf("transition %s->%s: predicate is required", b.t.from, b.t.to)
	}
	if b.t.name == "" {
		b.t.name = b.t.from + "->" + b.t.to
	}
	return b.t, nil
}

// MustBuild is like Build but panics on a configuration error. Intended for
// statically known machine graphs.
func (b *TransitionBuilder) MustBuild() Transition {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
