package fsm

import (
	"github.com/hupe1980/behaviormesh/core"
)

// BehaviorState bridges from the FSM to the behavior tree engine: a state
// that owns a core.Behavior and drives its OnStart/Execute/OnEnd across the
// state's own enter/update/exit. The behavior's terminal status is exposed
// for inspection (transitions usually watch it) but does not itself
// terminate the state; leaving remains the machine's decision.
type BehaviorState struct {
	BaseState
	behavior core.Behavior

	last      core.Status
	hasResult bool
	ended     bool
}

// NewBehaviorState creates a state driving the given behavior.
func NewBehaviorState(name string, behavior core.Behavior) *BehaviorState {
	return &BehaviorState{BaseState: NewBaseState(name), behavior: behavior}
}

// Behavior returns the wrapped behavior.
func (s *BehaviorState) Behavior() core.Behavior { return s.behavior }

// LastStatus returns the most recent behavior result and whether the
// behavior has executed at all since entry.
func (s *BehaviorState) LastStatus() (core.Status, bool) {
	return s.last, s.hasResult
}

// OnEnter activates the state and starts a fresh behavior run.
func (s *BehaviorState) OnEnter(ctx *core.ExecutionContext) {
	s.BaseState.OnEnter(ctx)
	s.behavior.OnStart(ctx)
	s.hasResult = false
	s.ended = false
}

// OnUpdate ticks the behavior. Once the behavior reaches a terminal status
// it is ended and no longer ticked; the status stays readable until exit.
func (s *BehaviorState) OnUpdate(ctx *core.ExecutionContext) {
	if s.ended {
		return
	}
	status := s.behavior.Execute(ctx)
	s.last = status
	s.hasResult = true
	if status.Terminal() {
		s.behavior.OnEnd(ctx, status)
		s.ended = true
	}
}

// OnExit aborts a still-running behavior through the normal OnEnd path and
// deactivates the state.
func (s *BehaviorState) OnExit(ctx *core.ExecutionContext) {
	if !s.ended {
		s.behavior.OnEnd(ctx, core.StatusFailure)
		s.ended = true
	}
	s.BaseState.OnExit(ctx)
}
