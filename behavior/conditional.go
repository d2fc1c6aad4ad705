package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// Conditional gates its child behind a predicate. The predicate is checked
// when the child is not running: a false (or panicking) predicate fails the
// decorator without ever starting the child. Once the child is running the
// predicate is not re-evaluated; the child runs to completion.
type Conditional struct {
	child     core.Behavior
	predicate core.Predicate
	active    bool
}

// NewConditional wraps child behind predicate.
func NewConditional(predicate core.Predicate, child core.Behavior) *Conditional {
	return &Conditional{child: child, predicate: predicate}
}

// Child returns the wrapped behavior.
func (c *Conditional) Child() core.Behavior { return c.child }

// OnStart is a no-op; the child only starts once the predicate passes.
func (c *Conditional) OnStart(ctx *core.ExecutionContext) {}

// Execute checks the gate and ticks the child.
func (c *Conditional) Execute(ctx *core.ExecutionContext) core.Status {
	if !c.active {
		if !c.predicate.Eval(ctx) {
			return core.StatusFailure
		}
		c.child.OnStart(ctx)
		c.active = true
	}

	status := c.child.Execute(ctx)
	if status.Terminal() {
		c.child.OnEnd(ctx, status)
		c.active = false
	}
	return status
}

// OnEnd forwards the final status to a still-running child.
func (c *Conditional) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if c.active {
		c.child.OnEnd(ctx, status)
		c.active = false
	}
}
