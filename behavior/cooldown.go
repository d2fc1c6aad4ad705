package behavior

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// Cooldown skips its child with an immediate FAILURE while less than the
// configured duration has elapsed since the child last finished; outside the
// window the child executes normally and its finish timestamp is recorded.
// The finish timestamp deliberately survives across runs, that is the whole
// point of the decorator.
type Cooldown struct {
	child    core.Behavior
	cooldown time.Duration

	lastFinish  time.Time
	hasFinished bool
	active      bool
}

// NewCooldown wraps child in a cooldown decorator.
func NewCooldown(child core.Behavior, cooldown time.Duration) *Cooldown {
	return &Cooldown{child: child, cooldown: cooldown}
}

// Child returns the wrapped behavior.
func (c *Cooldown) Child() core.Behavior { return c.child }

// Ready reports whether the child would execute on the next tick.
func (c *Cooldown) Ready(ctx *core.ExecutionContext) bool {
	return !c.hasFinished || ctx.Now().Sub(c.lastFinish) >= c.cooldown
}

// OnStart is a no-op; the child is only started once the cooldown window
// allows it to run, so the child never sees OnStart for a skipped run.
func (c *Cooldown) OnStart(ctx *core.ExecutionContext) {}

// Execute skips or ticks the child depending on the cooldown window.
func (c *Cooldown) Execute(ctx *core.ExecutionContext) core.Status {
	if !c.active {
		if !c.Ready(ctx) {
			return core.StatusFailure
		}
		c.child.OnStart(ctx)
		c.active = true
	}

	status := c.child.Execute(ctx)
	if status.Terminal() {
		c.child.OnEnd(ctx, status)
		c.active = false
		c.lastFinish = ctx.Now()
		c.hasFinished = true
	}
	return status
}

// OnEnd forwards the final status to a still-running child; an aborted run
// counts as a finish for the cooldown window.
func (c *Cooldown) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if c.active {
		c.child.OnEnd(ctx, status)
		c.active = false
		c.lastFinish = ctx.Now()
		c.hasFinished = true
	}
}
