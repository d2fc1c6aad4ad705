package fsm

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/logging"
)

// ErrAlreadyRunning is returned when starting a machine that is running.
var ErrAlreadyRunning = errors.New("state machine is already running")

// ErrNoInitialState is returned when starting a machine without states.
var ErrNoInitialState = errors.New("state machine has no initial state")

// Listener is notified synchronously after every committed transition. The
// from state is nil for the entry transition performed by Start. A panicking
// listener is caught and logged; it never blocks other listeners or the
// transition itself.
type Listener func(from, to State, ctx *core.ExecutionContext)

// StateMachine manages a set of named states and priority-ordered transitions
// between them. At most one state is current at a time and at most one
// transition fires per Update call.
//
// Configuration errors (duplicate states, transitions referencing unknown
// states, an unknown initial state) are rejected immediately at configuration
// time. Runtime faults in predicates and listeners degrade to "condition
// false" and a log line respectively; nothing in the machine panics past an
// Update call.
type StateMachine struct {
	name        string
	states      map[string]State
	order       []string
	transitions []Transition
	initial     string
	current     State
	running     bool
	listeners   []Listener
	logger      logging.Logger
}

// MachineOption customizes a StateMachine.
type MachineOption func(*StateMachine)

// WithMachineLogger sets the machine logger.
func WithMachineLogger(l logging.Logger) MachineOption {
	return func(m *StateMachine) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewStateMachine creates an empty machine with the given name.
func NewStateMachine(name string, optFns ...MachineOption) *StateMachine {
	m := &StateMachine{
		name:   name,
		states: make(map[string]State),
		logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(m)
	}
	return m
}

// Name returns the machine name.
func (m *StateMachine) Name() string { return m.name }

// AddState registers a state. The first state added becomes the initial
// state unless SetInitialState overrides it. Duplicate and empty names are
// rejected.
func (m *StateMachine) AddState(state State) error {
	if state == nil {
		return fmt.Errorf("fsm %q: state must not be nil", m.name)
	}
	if state.Name() == "" {
		return fmt.Errorf("fsm %q: state name must not be empty", m.name)
	}
	if _, exists := m.states[state.Name()]; exists {
		return fmt.Errorf("fsm %q: state %q already exists", m.name, state.Name())
	}
	m.states[state.Name()] = state
	m.order = append(m.order, state.Name())
	if m.initial == "" {
		m.initial = state.Name()
	}
	return nil
}

// SetInitialState selects the state entered by Start. The state must already
// be registered.
func (m *StateMachine) SetInitialState(name string) error {
	if _, ok := m.states[name]; !ok {
		return fmt.Errorf("fsm %q: initial state %q not found", m.name, name)
	}
	m.initial = name
	return nil
}

// AddTransition registers a transition. Both endpoint states must already be
// registered in this machine. Transitions are kept sorted by descending
// priority; the sort is stable so equal priorities preserve registration
// order, which is what guarantees at most one deterministic transition per
// update.
func (m *StateMachine) AddTransition(t Transition) error {
	if _, ok := m.states[t.From()]; !ok {
		return fmt.Errorf("fsm %q: transition %q: from state %q not found", m.name, t.Name(), t.From())
	}
	if _, ok := m.states[t.To()]; !ok {
		return fmt.Errorf("fsm %q: transition %q: to state %q not found", m.name, t.Name(), t.To())
	}
	m.transitions = append(m.transitions, t)
	sort.SliceStable(m.transitions, func(i, j int) bool {
		return m.transitions[i].Priority() > m.transitions[j].Priority()
	})
	return nil
}

// AddListener registers a transition listener.
func (m *StateMachine) AddListener(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// Start enters the initial state. Starting a running machine is an error;
// starting without a configured initial state is an error.
func (m *StateMachine) Start(ctx *core.ExecutionContext) error {
	if m.running {
		return fmt.Errorf("fsm %q: %w", m.name, ErrAlreadyRunning)
	}
	if m.initial == "" {
		return fmt.Errorf("fsm %q: %w", m.name, ErrNoInitialState)
	}
	m.running = true
	m.transitionTo(m.states[m.initial], ctx)
	m.logger.Debug("state machine started", "machine", m.name, "state", m.initial)
	return nil
}

// Stop exits the current state and clears it. Stopping an already stopped
// machine is a no-op. Stop uses the same OnExit path as a normal transition,
// so resources release symmetrically.
func (m *StateMachine) Stop(ctx *core.ExecutionContext) {
	if !m.running {
		return
	}
	if m.current != nil {
		m.current.OnExit(ctx)
	}
	m.running = false
	m.current = nil
	m.logger.Debug("state machine stopped", "machine", m.name)
}

// Update evaluates transitions from the current state in descending priority
// order. The first satisfied transition fires and the call returns without
// updating the just-exited state; when no transition fires the current state
// is updated. A stopped machine no-ops.
func (m *StateMachine) Update(ctx *core.ExecutionContext) {
	if !m.running || m.current == nil {
		return
	}

	for _, t := range m.transitions {
		if t.From() != m.current.Name() {
			continue
		}
		if t.ShouldFire(ctx) {
			m.transitionTo(m.states[t.To()], ctx)
			return
		}
	}

	m.current.OnUpdate(ctx)
}

// ForceTransition moves to the named state regardless of transitions. The
// target must be registered; forcing on a stopped machine is an error.
func (m *StateMachine) ForceTransition(name string, ctx *core.ExecutionContext) error {
	if !m.running {
		return fmt.Errorf("fsm %q: cannot force transition while stopped", m.name)
	}
	state, ok := m.states[name]
	if !ok {
		return fmt.Errorf("fsm %q: state %q not found", m.name, name)
	}
	m.transitionTo(state, ctx)
	return nil
}

func (m *StateMachine) transitionTo(newState State, ctx *core.ExecutionContext) {
	oldState := m.current

	if oldState != nil {
		oldState.OnExit(ctx)
	}
	m.current = newState
	newState.OnEnter(ctx)

	m.notify(oldState, newState, ctx)

	fromName := "<none>"
	if oldState != nil {
		fromName = oldState.Name()
	}
	m.logger.Debug("state transition", "machine", m.name, "from", fromName, "to", newState.Name())
}

func (m *StateMachine) notify(from, to State, ctx *core.ExecutionContext) {
	for _, l := range m.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("state change listener panicked", "machine", m.name, "panic", r)
				}
			}()
			l(from, to, ctx)
		}()
	}
}

// Running reports whether the machine has been started and not stopped.
func (m *StateMachine) Running() bool { return m.running }

// CurrentState returns the current state, or nil when stopped.
func (m *StateMachine) CurrentState() State { return m.current }

// CurrentStateName returns the current state name, or "" when stopped.
func (m *StateMachine) CurrentStateName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// TimeInCurrentState returns how long the current state has been active, or
// zero when stopped. Together with CurrentStateName and Running this is the
// read surface an external snapshot layer needs.
func (m *StateMachine) TimeInCurrentState(ctx *core.ExecutionContext) time.Duration {
	if m.current == nil {
		return 0
	}
	return m.current.TimeInState(ctx)
}

// State returns a registered state by name.
func (m *StateMachine) State(name string) (State, bool) {
	s, ok := m.states[name]
	return s, ok
}

// States returns all states in registration order.
func (m *StateMachine) States() []State {
	out := make([]State, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.states[name])
	}
	return out
}

// Transitions returns a copy of the transitions in evaluation order.
func (m *StateMachine) Transitions() []Transition {
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// String implements fmt.Stringer.
func (m *StateMachine) String() string {
	return fmt.Sprintf("StateMachine{%s, current=%s, states=%d, transitions=%d}",
		m.name, m.CurrentStateName(), len(m.states), len(m.transitions))
}
