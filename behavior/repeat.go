package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// RepeatForever makes a Repeat decorator restart its child unconditionally.
const RepeatForever = -1

// Repeat runs its child count times, converting intermediate terminal
// statuses into RUNNING; the final iteration's status is the decorator's
// result. With RepeatForever the decorator never terminates on its own.
type Repeat struct {
	child core.Behavior
	count int

	done   int
	active bool
}

// NewRepeat wraps child in a repeat decorator. A count of RepeatForever (or
// any non-positive value) repeats without limit.
func NewRepeat(child core.Behavior, count int) *Repeat {
	if count <= 0 {
		count = RepeatForever
	}
	return &Repeat{child: child, count: count}
}

// Child returns the wrapped behavior.
func (r *Repeat) Child() core.Behavior { return r.child }

// Count returns the configured iteration count (RepeatForever if unlimited).
func (r *Repeat) Count() int { return r.count }

// OnStart resets the iteration counter and starts the child.
func (r *Repeat) OnStart(ctx *core.ExecutionContext) {
	r.done = 0
	r.child.OnStart(ctx)
	r.active = true
}

// Execute ticks the child, restarting it after every terminal status until
// the count is exhausted.
func (r *Repeat) Execute(ctx *core.ExecutionContext) core.Status {
	status := r.child.Execute(ctx)
	if status == core.StatusRunning {
		return core.StatusRunning
	}
	r.child.OnEnd(ctx, status)
	r.active = false

	r.done++
	if r.count != RepeatForever && r.done >= r.count {
		return status
	}

	r.child.OnStart(ctx)
	r.active = true
	return core.StatusRunning
}

// OnEnd forwards the final status to a still-running child and resets
// progress.
func (r *Repeat) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if r.active {
		r.child.OnEnd(ctx, status)
		r.active = false
	}
	r.done = 0
}
