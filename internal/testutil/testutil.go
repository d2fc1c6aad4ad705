// Package testutil provides scripted behaviors and a fake clock shared by
// the package tests.
package testutil

import (
	"sync"
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// ScriptedBehavior returns the statuses in Script one Execute call at a
// time; after the script is exhausted the last entry repeats. It counts
// lifecycle calls so tests can assert the node protocol.
type ScriptedBehavior struct {
	Script []core.Status

	Starts   int
	Executes int
	Ends     int
	LastEnd  core.Status
}

// Succeed returns a behavior that succeeds on every tick.
func Succeed() *ScriptedBehavior {
	return &ScriptedBehavior{Script: []core.Status{core.StatusSuccess}}
}

// Fail returns a behavior that fails on every tick.
func Fail() *ScriptedBehavior {
	return &ScriptedBehavior{Script: []core.Status{core.StatusFailure}}
}

// RunFor returns a behavior that runs for n ticks and then terminates with
// the given status.
func RunFor(n int, then core.Status) *ScriptedBehavior {
	script := make([]core.Status, 0, n+1)
	for i := 0; i < n; i++ {
		script = append(script, core.StatusRunning)
	}
	return &ScriptedBehavior{Script: append(script, then)}
}

func (s *ScriptedBehavior) OnStart(ctx *core.ExecutionContext) {
	s.Starts++
}

func (s *ScriptedBehavior) Execute(ctx *core.ExecutionContext) core.Status {
	idx := s.Executes
	s.Executes++
	if idx >= len(s.Script) {
		idx = len(s.Script) - 1
	}
	return s.Script[idx]
}

func (s *ScriptedBehavior) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	s.Ends++
	s.LastEnd = status
}

// Active reports whether the behavior has been started more often than
// ended.
func (s *ScriptedBehavior) Active() bool {
	return s.Starts > s.Ends
}

// PanicBehavior panics inside Execute. Used to exercise recovery paths.
type PanicBehavior struct{}

func (PanicBehavior) OnStart(ctx *core.ExecutionContext) {}

func (PanicBehavior) Execute(ctx *core.ExecutionContext) core.Status {
	panic("scripted panic")
}

func (PanicBehavior) OnEnd(ctx *core.ExecutionContext, status core.Status) {}

// FakeClock is a manually advanced time source. Safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock starts a fake clock at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time. Pass clock.Now as a core.Clock.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the fake time forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Ctx builds a plain execution context for tests.
func Ctx(agentID string, optFns ...core.ContextOption) *core.ExecutionContext {
	return core.NewExecutionContext(nil, agentID, core.NewBlackboard(), optFns...)
}
