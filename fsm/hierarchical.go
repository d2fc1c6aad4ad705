package fsm

import (
	"github.com/hupe1980/behaviormesh/core"
)

// HierarchicalState is a state that owns a nested StateMachine. Entering the
// state starts the child machine (unless auto-start is disabled), updating
// the state ticks the child while it is running, and exiting stops it.
// Because Stop clears the child's current state, a later re-entry restarts
// the child from its configured initial state; there is no residual
// carry-over.
type HierarchicalState struct {
	BaseState
	child     *StateMachine
	autoStart bool
}

// HierarchicalOption customizes a HierarchicalState.
type HierarchicalOption func(*HierarchicalState)

// WithoutAutoStart leaves starting the child machine to the caller.
func WithoutAutoStart() HierarchicalOption {
	return func(h *HierarchicalState) { h.autoStart = false }
}

// NewHierarchicalState creates a state wrapping the given child machine.
func NewHierarchicalState(name string, child *StateMachine, optFns ...HierarchicalOption) *HierarchicalState {
	h := &HierarchicalState{
		BaseState: NewBaseState(name),
		child:     child,
		autoStart: true,
	}
	for _, fn := range optFns {
		fn(h)
	}
	return h
}

// Child returns the nested machine.
func (h *HierarchicalState) Child() *StateMachine { return h.child }

// OnEnter activates the state and starts the child machine.
func (h *HierarchicalState) OnEnter(ctx *core.ExecutionContext) {
	h.BaseState.OnEnter(ctx)
	if h.autoStart {
		if err := h.child.Start(ctx); err != nil {
			ctx.Logger.Error("failed to start child machine", "state", h.Name(), "machine", h.child.Name(), "error", err)
		}
	}
}

// OnUpdate ticks the child machine while it is running.
func (h *HierarchicalState) OnUpdate(ctx *core.ExecutionContext) {
	if h.child.Running() {
		h.child.Update(ctx)
	}
}

// OnExit stops the child machine and deactivates the state.
func (h *HierarchicalState) OnExit(ctx *core.ExecutionContext) {
	if h.child.Running() {
		h.child.Stop(ctx)
	}
	h.BaseState.OnExit(ctx)
}
