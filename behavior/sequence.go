package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// Sequence executes its children left-to-right. It remembers which child is
// currently running and resumes there on the next tick without re-executing
// children that already succeeded. The first child failure aborts the
// sequence immediately with StatusFailure; all children succeeding yields
// StatusSuccess. An empty sequence succeeds.
type Sequence struct {
	BaseNode
	current int
	started bool
}

// NewSequence creates a sequence over the given children.
func NewSequence(children ...core.Behavior) *Sequence {
	s := &Sequence{}
	for _, c := range children {
		s.AddChild(c)
	}
	return s
}

// OnStart resets the sequence to its first child.
func (s *Sequence) OnStart(ctx *core.ExecutionContext) {
	s.current = 0
	s.started = false
}

// Execute advances the sequence by one tick.
func (s *Sequence) Execute(ctx *core.ExecutionContext) core.Status {
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
		if status == core.StatusFailure {
			s.current = 0
			return core.StatusFailure
		}
		s.current++
	}
	s.current = 0
	return core.StatusSuccess
}

// OnEnd forwards the final status to a child that was started but not yet
// ended (branch aborted mid-run) and resets progress.
func (s *Sequence) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if s.started && s.current < len(s.children) {
		s.children[s.current].OnEnd(ctx, status)
	}
	s.started = false
	s.current = 0
}
