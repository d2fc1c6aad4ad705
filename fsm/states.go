package fsm

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// IdleState does nothing on update. Useful as a neutral resting state.
type IdleState struct {
	BaseState
}

// NewIdleState creates an idle state; an empty name defaults to "idle".
func NewIdleState(name string) *IdleState {
	if name == "" {
		name = "idle"
	}
	return &IdleState{BaseState: NewBaseState(name)}
}

// TimedState invokes a timeout hook once its duration in state has elapsed
// and optionally raises a blackboard flag, which transitions typically watch
// to move on. The hook keeps firing on every update past expiry, matching
// "the condition holds" semantics rather than an edge trigger.
type TimedState struct {
	BaseState
	duration  time.Duration
	flagKey   string
	onTimeout func(ctx *core.ExecutionContext)
}

// TimedStateOption customizes a TimedState.
type TimedStateOption func(*TimedState)

// WithTimeoutFlag sets a blackboard key that is set to true once the
// duration elapses.
func WithTimeoutFlag(key string) TimedStateOption {
	return func(s *TimedState) { s.flagKey = key }
}

// WithTimeoutFunc sets the hook invoked while the state is expired.
func WithTimeoutFunc(fn func(ctx *core.ExecutionContext)) TimedStateOption {
	return func(s *TimedState) { s.onTimeout = fn }
}

// NewTimedState creates a timed state.
func NewTimedState(name string, duration time.Duration, optFns ...TimedStateOption) *TimedState {
	s := &TimedState{BaseState: NewBaseState(name), duration: duration}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// Duration returns the configured duration.
func (s *TimedState) Duration() time.Duration { return s.duration }

// Expired reports whether the duration has elapsed.
func (s *TimedState) Expired(ctx *core.ExecutionContext) bool {
	return s.TimeInState(ctx) >= s.duration
}

// Remaining returns the time left before expiry, floored at zero.
func (s *TimedState) Remaining(ctx *core.ExecutionContext) time.Duration {
	if rem := s.duration - s.TimeInState(ctx); rem > 0 {
		return rem
	}
	return 0
}

// OnUpdate fires the timeout hook and flag once the state expires.
func (s *TimedState) OnUpdate(ctx *core.ExecutionContext) {
	if !s.Expired(ctx) {
		return
	}
	if s.onTimeout != nil {
		s.onTimeout(ctx)
	}
	if s.flagKey != "" {
		ctx.Blackboard.Set(s.flagKey, true)
	}
}
