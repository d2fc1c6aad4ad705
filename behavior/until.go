package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// UntilSuccess restarts its child on FAILURE, converting the failure into
// RUNNING, until the child succeeds. An optional attempt cap bounds the
// restarts; when the cap is exhausted without a success the decorator fails.
// Exhaustion-as-FAILURE is deliberate: it mirrors Retry's semantics of "kept
// failing until we stopped trying".
type UntilSuccess struct {
	child       core.Behavior
	maxAttempts int

	attempt int
	active  bool
}

// NewUntilSuccess wraps child; maxAttempts <= 0 means unlimited attempts.
func NewUntilSuccess(child core.Behavior, maxAttempts int) *UntilSuccess {
	return &UntilSuccess{child: child, maxAttempts: maxAttempts}
}

// Child returns the wrapped behavior.
func (u *UntilSuccess) Child() core.Behavior { return u.child }

// OnStart resets the attempt counter and starts the child.
func (u *UntilSuccess) OnStart(ctx *core.ExecutionContext) {
	u.attempt = 0
	u.child.OnStart(ctx)
	u.active = true
}

// Execute ticks the child, restarting it after every failure.
func (u *UntilSuccess) Execute(ctx *core.ExecutionContext) core.Status {
	status := u.child.Execute(ctx)
	if status == core.StatusRunning {
		return core.StatusRunning
	}
	u.child.OnEnd(ctx, status)
	u.active = false

	if status == core.StatusSuccess {
		return core.StatusSuccess
	}

	u.attempt++
	if u.maxAttempts > 0 && u.attempt >= u.maxAttempts {
		return core.StatusFailure
	}

	u.child.OnStart(ctx)
	u.active = true
	return core.StatusRunning
}

// OnEnd forwards the final status to a still-running child and resets
// progress.
func (u *UntilSuccess) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if u.active {
		u.child.OnEnd(ctx, status)
		u.active = false
	}
	u.attempt = 0
}

// UntilFailure restarts its child on SUCCESS, converting the success into
// RUNNING, and succeeds once the child fails. With an attempt cap, running
// out of attempts also yields SUCCESS as the "done trying" signal.
type UntilFailure struct {
	child       core.Behavior
	maxAttempts int

	attempt int
	active  bool
}

// NewUntilFailure wraps child; maxAttempts <= 0 means unlimited attempts.
func NewUntilFailure(child core.Behavior, maxAttempts int) *UntilFailure {
	return &UntilFailure{child: child, maxAttempts: maxAttempts}
}

// Child returns the wrapped behavior.
func (u *UntilFailure) Child() core.Behavior { return u.child }

// OnStart resets the attempt counter and starts the child.
func (u *UntilFailure) OnStart(ctx *core.ExecutionContext) {
	u.attempt = 0
	u.child.OnStart(ctx)
	u.active = true
}

// Execute ticks the child, restarting it after every success.
func (u *UntilFailure) Execute(ctx *core.ExecutionContext) core.Status {
	status := u.child.Execute(ctx)
	if status == core.StatusRunning {
		return core.StatusRunning
	}
	u.child.OnEnd(ctx, status)
	u.active = false

	if status == core.StatusFailure {
		return core.StatusSuccess
	}

	u.attempt++
	if u.maxAttempts > 0 && u.attempt >= u.maxAttempts {
		return core.StatusSuccess
	}

	u.child.OnStart(ctx)
	u.active = true
	return core.StatusRunning
}

// OnEnd forwards the final status to a still-running child and resets
// progress.
func (u *UntilFailure) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if u.active {
		u.child.OnEnd(ctx, status)
		u.active = false
	}
	u.attempt = 0
}
