package fsm

import (
	"fmt"
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// Snapshot captures the externally observable execution state of a machine:
// its current state name, running flag, accumulated time in state and the
// snapshots of nested machines owned by hierarchical states. It carries no
// state internals, so it can be serialized by an external persistence layer
// in whatever format that layer chooses and later re-attached to a freshly
// constructed state graph.
type Snapshot struct {
	Machine     string
	State       string
	Running     bool
	TimeInState time.Duration
	Taken       time.Time
	Children    map[string]Snapshot
}

// TakeSnapshot captures the current execution state of the machine,
// recursing into hierarchical states.
func TakeSnapshot(m *StateMachine, ctx *core.ExecutionContext) Snapshot {
	snap := Snapshot{
		Machine:     m.Name(),
		State:       m.CurrentStateName(),
		Running:     m.Running(),
		TimeInState: m.TimeInCurrentState(ctx),
		Taken:       ctx.Now(),
	}
	for _, state := range m.States() {
		h, ok := state.(*HierarchicalState)
		if !ok {
			continue
		}
		if snap.Children == nil {
			snap.Children = make(map[string]Snapshot)
		}
		snap.Children[state.Name()] = TakeSnapshot(h.Child(), ctx)
	}
	return snap
}

// RestoreSnapshot re-attaches a machine to the execution state recorded in
// snap. The machine must have the same name and contain the recorded state;
// entry callbacks run as on a normal transition, after which the enter
// timestamp is backdated to recreate the recorded time in state. A
// non-running snapshot stops the machine.
func RestoreSnapshot(m *StateMachine, snap Snapshot, ctx *core.ExecutionContext) error {
	if snap.Machine != m.Name() {
		return fmt.Errorf("fsm %q: snapshot belongs to machine %q", m.Name(), snap.Machine)
	}

	if !snap.Running {
		m.Stop(ctx)
		return nil
	}

	if _, ok := m.State(snap.State); !ok {
		return fmt.Errorf("fsm %q: cannot restore: state %q not found", m.Name(), snap.State)
	}

	if !m.Running() {
		if err := m.Start(ctx); err != nil {
			return err
		}
	}
	if m.CurrentStateName() != snap.State {
		if err := m.ForceTransition(snap.State, ctx); err != nil {
			return err
		}
	}

	if bd, ok := m.current.(interface{ backdateEnter(time.Time) }); ok {
		bd.backdateEnter(ctx.Now().Add(-snap.TimeInState))
	}

	for name, child := range snap.Children {
		state, ok := m.State(name)
		if !ok {
			return fmt.Errorf("fsm %q: cannot restore: hierarchical state %q not found", m.Name(), name)
		}
		h, ok := state.(*HierarchicalState)
		if !ok {
			return fmt.Errorf("fsm %q: cannot restore: state %q is not hierarchical", m.Name(), name)
		}
		if err := RestoreSnapshot(h.Child(), child, ctx); err != nil {
			return err
		}
	}

	return nil
}
