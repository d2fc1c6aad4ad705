package behavior

import (
	"math/rand"
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// RandomSelector picks one child uniformly at random when it is not already
// committed to one, then sticks with that child until it stops returning
// StatusRunning. The child's terminal status is the selector's status; the
// next run (or the next pick after a terminal status) re-rolls.
type RandomSelector struct {
	BaseNode
	rng       *rand.Rand
	current   int
	committed bool
}

// NewRandomSelector creates a random selector seeded from the wall clock.
func NewRandomSelector(children ...core.Behavior) *RandomSelector {
	return NewRandomSelectorSeeded(time.Now().UnixNano(), children...)
}

// NewRandomSelectorSeeded creates a random selector with a fixed seed for
// deterministic child selection.
func NewRandomSelectorSeeded(seed int64, children ...core.Behavior) *RandomSelector {
	s := &RandomSelector{rng: rand.New(rand.NewSource(seed))}
	for _, c := range children {
		s.AddChild(c)
	}
	return s
}

// OnStart drops any child commitment.
func (s *RandomSelector) OnStart(ctx *core.ExecutionContext) {
	s.committed = false
}

// Execute picks a child if needed and ticks it.
func (s *RandomSelector) Execute(ctx *core.ExecutionContext) core.Status {
	if len(s.children) == 0 {
		return core.StatusFailure
	}
	if !s.committed {
		s.current = s.rng.Intn(len(s.children))
		s.children[s.current].OnStart(ctx)
		s.committed = true
	}
	child := s.children[s.current]
	status := child.Execute(ctx)
	if status.Terminal() {
		child.OnEnd(ctx, status)
		s.committed = false
	}
	return status
}

// OnEnd forwards the final status to a still-committed child.
func (s *RandomSelector) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if s.committed && s.current < len(s.children) {
		s.children[s.current].OnEnd(ctx, status)
	}
	s.committed = false
}

// CurrentChild returns the committed child, or nil when not committed.
func (s *RandomSelector) CurrentChild() core.Behavior {
	if !s.committed || s.current >= len(s.children) {
		return nil
	}
	return s.children[s.current]
}
