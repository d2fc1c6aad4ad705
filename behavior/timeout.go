package behavior

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// Timeout fails its child if it does not complete within the configured
// duration. The deadline is armed on the first tick of a run; when it elapses
// while the child is still running the child is forcibly ended with
// StatusFailure and the decorator returns StatusFailure. Otherwise the
// child's status is passed through and the timer resets once the child
// finishes.
type Timeout struct {
	child   core.Behavior
	timeout time.Duration

	deadline time.Time
	armed    bool
	active   bool
}

// NewTimeout wraps child in a timeout decorator.
func NewTimeout(child core.Behavior, timeout time.Duration) *Timeout {
	return &Timeout{child: child, timeout: timeout}
}

// Child returns the wrapped behavior.
func (t *Timeout) Child() core.Behavior { return t.child }

// Duration returns the configured timeout.
func (t *Timeout) Duration() time.Duration { return t.timeout }

// OnStart disarms the timer and starts the child.
func (t *Timeout) OnStart(ctx *core.ExecutionContext) {
	t.armed = false
	t.child.OnStart(ctx)
	t.active = true
}

// Execute checks the deadline before delegating to the child.
func (t *Timeout) Execute(ctx *core.ExecutionContext) core.Status {
	if !t.armed {
		t.deadline = ctx.Now().Add(t.timeout)
		t.armed = true
	}

	if !ctx.Now().Before(t.deadline) {
		if t.active {
			t.child.OnEnd(ctx, core.StatusFailure)
			t.active = false
		}
		t.armed = false
		return core.StatusFailure
	}

	status := t.child.Execute(ctx)
	if status.Terminal() {
		t.child.OnEnd(ctx, status)
		t.active = false
		t.armed = false
	}
	return status
}

// OnEnd forwards the final status to a still-running child.
func (t *Timeout) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if t.active {
		t.child.OnEnd(ctx, status)
		t.active = false
	}
	t.armed = false
}
