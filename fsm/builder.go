package fsm

import (
	"errors"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/logging"
)

// MachineBuilder assembles a StateMachine fluently, collecting configuration
// errors and reporting them joined at Build time instead of forcing error
// checks after every call.
type MachineBuilder struct {
	machine *StateMachine
	errs    []error
}

// NewMachineBuilder begins building a machine with the given name.
func NewMachineBuilder(name string) *MachineBuilder {
	return &MachineBuilder{machine: NewStateMachine(name)}
}

// Logger sets the machine logger.
func (b *MachineBuilder) Logger(l logging.Logger) *MachineBuilder {
	if l != nil {
		b.machine.logger = l
	}
	return b
}

// State adds a state.
func (b *MachineBuilder) State(s State) *MachineBuilder {
	if err := b.machine.AddState(s); err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// States adds several states in order.
func (b *MachineBuilder) States(states ...State) *MachineBuilder {
	for _, s := range states {
		b.State(s)
	}
	return b
}

// Initial overrides the initial state.
func (b *MachineBuilder) Initial(name string) *MachineBuilder {
	if err := b.machine.SetInitialState(name); err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Transition adds a prebuilt transition.
func (b *MachineBuilder) Transition(t Transition) *MachineBuilder {
	if err := b.machine.AddTransition(t); err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// TransitionWhen adds a priority-0 transition gated by predicate.
func (b *MachineBuilder) TransitionWhen(from, to string, predicate core.Predicate) *MachineBuilder {
	return b.Transition(NewTransition(from, to, predicate))
}

// Listener registers a transition listener.
func (b *MachineBuilder) Listener(l Listener) *MachineBuilder {
	b.machine.AddListener(l)
	return b
}

// Build returns the machine or the joined configuration errors.
func (b *MachineBuilder) Build() (*StateMachine, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.machine, nil
}

// MustBuild is like Build but panics on configuration errors. Intended for
// statically known machine graphs.
func (b *MachineBuilder) MustBuild() *StateMachine {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
