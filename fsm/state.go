package fsm

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// State is implemented by every state of a StateMachine. States own their
// enter/update/exit logic and track the time they have been active.
//
// Concrete states embed BaseState and override the callbacks they need,
// always delegating OnEnter/OnExit to the base so the active flag and enter
// timestamp stay correct.
type State interface {
	Name() string
	OnEnter(ctx *core.ExecutionContext)
	OnUpdate(ctx *core.ExecutionContext)
	OnExit(ctx *core.ExecutionContext)
	Active() bool
	EnterTime() time.Time
	TimeInState(ctx *core.ExecutionContext) time.Duration
}

// BaseState provides the shared name/active/enter-time bookkeeping. Embed it
// in concrete states; its OnUpdate is a no-op.
type BaseState struct {
	name      string
	active    bool
	enterTime time.Time
}

// NewBaseState constructs a BaseState with the given name.
func NewBaseState(name string) BaseState {
	return BaseState{name: name}
}

// Name returns the state name, unique within its machine.
func (s *BaseState) Name() string { return s.name }

// OnEnter marks the state active and stamps the enter time.
func (s *BaseState) OnEnter(ctx *core.ExecutionContext) {
	s.active = true
	s.enterTime = ctx.Now()
}

// OnUpdate does nothing; concrete states override it.
func (s *BaseState) OnUpdate(ctx *core.ExecutionContext) {}

// OnExit clears the active flag.
func (s *BaseState) OnExit(ctx *core.ExecutionContext) {
	s.active = false
}

// Active reports whether the state is currently entered.
func (s *BaseState) Active() bool { return s.active }

// EnterTime returns the timestamp of the most recent entry.
func (s *BaseState) EnterTime() time.Time { return s.enterTime }

// TimeInState returns how long the state has been active, or zero when it is
// not active.
func (s *BaseState) TimeInState(ctx *core.ExecutionContext) time.Duration {
	if !s.active {
		return 0
	}
	return ctx.Now().Sub(s.enterTime)
}

// backdateEnter rewinds the enter timestamp, used by snapshot restore to
// recreate time-in-state on a freshly built graph.
func (s *BaseState) backdateEnter(t time.Time) {
	s.enterTime = t
}

// FuncState wires plain functions into a State; only the hooks that are set
// are invoked. Useful for tests, examples and config-built machines.
type FuncState struct {
	BaseState
	Enter  func(ctx *core.ExecutionContext)
	Update func(ctx *core.ExecutionContext)
	Exit   func(ctx *core.ExecutionContext)
}

// NewFuncState creates a FuncState with an update hook; Enter/Exit can be
// assigned on the returned value.
func NewFuncState(name string, update func(ctx *core.ExecutionContext)) *FuncState {
	return &FuncState{BaseState: NewBaseState(name), Update: update}
}

// OnEnter runs the base bookkeeping then the Enter hook.
func (s *FuncState) OnEnter(ctx *core.ExecutionContext) {
	s.BaseState.OnEnter(ctx)
	if s.Enter != nil {
		s.Enter(ctx)
	}
}

// OnUpdate runs the Update hook.
func (s *FuncState) OnUpdate(ctx *core.ExecutionContext) {
	if s.Update != nil {
		s.Update(ctx)
	}
}

// OnExit runs the Exit hook then the base bookkeeping.
func (s *FuncState) OnExit(ctx *core.ExecutionContext) {
	if s.Exit != nil {
		s.Exit(ctx)
	}
	s.BaseState.OnExit(ctx)
}
