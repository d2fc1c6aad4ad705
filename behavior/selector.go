package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// Selector executes its children left-to-right until one succeeds or keeps
// running; that child's status short-circuits the rest. Only when every
// child has failed in one pass does the selector fail. An empty selector
// fails.
type Selector struct {
	BaseNode
	current int
	started bool
}

// NewSelector creates a selector over the given children.
func NewSelector(children ...core.Behavior) *Selector {
	s := &Selector{}
	for _, c := range children {
		s.AddChild(c)
	}
	return s
}

// OnStart resets the selector to its first child.
func (s *Selector) OnStart(ctx *core.ExecutionContext) {
	s.current = 0
	s.started = false
}

// Execute advances the selector by one tick.
func (s *Selector) Execute(ctx *core.ExecutionContext) core.Status {
	for s.current < len(s.children) {
		child := s.children[s.current]
		if !s.started {
			child.OnStart(ctx)
			s.started = true
		}
		status := child.Execute(ctx)
		if status == core.StatusRunning {
			return core.StatusRunning
		}
		child.OnEnd(ctx, status)
		s.started = false
		if status == core.StatusSuccess {
			s.current = 0
			return core.StatusSuccess
		}
		s.current++
	}
	s.current = 0
	return core.StatusFailure
}

// OnEnd forwards the final status to a child that was started but not yet
// ended and resets progress.
func (s *Selector) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if s.started && s.current < len(s.children) {
		s.children[s.current].OnEnd(ctx, status)
	}
	s.started = false
	s.current = 0
}
