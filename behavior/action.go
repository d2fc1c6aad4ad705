package behavior

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// Action adapts plain functions to the core.Behavior contract. Only Run is
// required; Start and End hooks are optional. This is the usual way external
// collaborators plug concrete work into a tree.
type Action struct {
	// Start is called once before the first Run of a run.
	Start func(ctx *core.ExecutionContext)
	// Run advances the action by one tick. A nil Run fails.
	Run func(ctx *core.ExecutionContext) core.Status
	// End is called once with the final status of a run.
	End func(ctx *core.ExecutionContext, status core.Status)
}

// NewAction creates an Action around a tick function.
func NewAction(run func(ctx *core.ExecutionContext) core.Status) *Action {
	return &Action{Run: run}
}

// OnStart invokes the optional Start hook.
func (a *Action) OnStart(ctx *core.ExecutionContext) {
	if a.Start != nil {
		a.Start(ctx)
	}
}

// Execute invokes Run.
func (a *Action) Execute(ctx *core.ExecutionContext) core.Status {
	if a.Run == nil {
		return core.StatusFailure
	}
	return a.Run(ctx)
}

// OnEnd invokes the optional End hook.
func (a *Action) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if a.End != nil {
		a.End(ctx, status)
	}
}

// Condition evaluates a predicate as a leaf: true yields SUCCESS, false (or
// a panicking predicate) yields FAILURE. Conditions never return RUNNING.
type Condition struct {
	Predicate core.Predicate
}

// NewCondition creates a Condition leaf.
func NewCondition(predicate core.Predicate) *Condition {
	return &Condition{Predicate: predicate}
}

// OnStart is a no-op.
func (c *Condition) OnStart(ctx *core.ExecutionContext) {}

// Execute evaluates the predicate.
func (c *Condition) Execute(ctx *core.ExecutionContext) core.Status {
	if c.Predicate.Eval(ctx) {
		return core.StatusSuccess
	}
	return core.StatusFailure
}

// OnEnd is a no-op.
func (c *Condition) OnEnd(ctx *core.ExecutionContext, status core.Status) {}

// Wait returns RUNNING until its duration has elapsed since the run started,
// then SUCCESS.
type Wait struct {
	duration time.Duration
	deadline time.Time
}

// NewWait creates a Wait leaf.
func NewWait(d time.Duration) *Wait {
	return &Wait{duration: d}
}

// OnStart arms the deadline.
func (w *Wait) OnStart(ctx *core.ExecutionContext) {
	w.deadline = ctx.Now().Add(w.duration)
}

// Execute reports whether the deadline has passed.
func (w *Wait) Execute(ctx *core.ExecutionContext) core.Status {
	if ctx.Now().Before(w.deadline) {
		return core.StatusRunning
	}
	return core.StatusSuccess
}

// OnEnd is a no-op.
func (w *Wait) OnEnd(ctx *core.ExecutionContext, status core.Status) {}
