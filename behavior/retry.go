package behavior

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// Retry restarts a failed child up to maxRetries times, optionally waiting a
// delay between attempts. With exponential backoff enabled the wait grows as
// delay * 2^(attempt-1). Once the retries are exhausted the decorator fails;
// exhaustion is an ordinary FAILURE result, not an error. A child success
// resets the attempt counter.
type Retry struct {
	child      core.Behavior
	maxRetries int
	delay      time.Duration
	backoff    bool

	attempt   int
	waiting   bool
	waitUntil time.Time
	active    bool
}

// RetryOption customizes a Retry decorator.
type RetryOption func(*Retry)

// WithRetryDelay waits d between attempts instead of restarting immediately.
func WithRetryDelay(d time.Duration) RetryOption {
	return func(r *Retry) { r.delay = d }
}

// WithExponentialBackoff doubles the retry delay after every failed attempt.
func WithExponentialBackoff() RetryOption {
	return func(r *Retry) { r.backoff = true }
}

// NewRetry wraps child in a retry decorator allowing maxRetries restarts
// after the initial attempt.
func NewRetry(child core.Behavior, maxRetries int, optFns ...RetryOption) *Retry {
	r := &Retry{child: child, maxRetries: maxRetries}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Child returns the wrapped behavior.
func (r *Retry) Child() core.Behavior { return r.child }

// MaxRetries returns the configured retry budget.
func (r *Retry) MaxRetries() int { return r.maxRetries }

// Attempt returns the number of retries consumed in the current run.
func (r *Retry) Attempt() int { return r.attempt }

func (r *Retry) currentDelay() time.Duration {
	if !r.backoff {
		return r.delay
	}
	d := r.delay
	for i := 1; i < r.attempt; i++ {
		d *= 2
	}
	return d
}

// OnStart resets the attempt counter and starts the child.
func (r *Retry) OnStart(ctx *core.ExecutionContext) {
	r.attempt = 0
	r.waiting = false
	r.child.OnStart(ctx)
	r.active = true
}

// Execute ticks the child, restarting it on failure while retries remain.
func (r *Retry) Execute(ctx *core.ExecutionContext) core.Status {
	if r.waiting {
		if ctx.Now().Before(r.waitUntil) {
			return core.StatusRunning
		}
		r.waiting = false
		r.child.OnStart(ctx)
		r.active = true
	}

	status := r.child.Execute(ctx)
	if status == core.StatusRunning {
		return core.StatusRunning
	}
	r.child.OnEnd(ctx, status)
	r.active = false

	if status == core.StatusSuccess {
		r.attempt = 0
		return core.StatusSuccess
	}

	if r.attempt < r.maxRetries {
		r.attempt++
		if r.delay > 0 {
			r.waitUntil = ctx.Now().Add(r.currentDelay())
			r.waiting = true
			return core.StatusRunning
		}
		r.child.OnStart(ctx)
		r.active = true
		return core.StatusRunning
	}

	return core.StatusFailure
}

// OnEnd forwards the final status to a still-running child and resets
// progress.
func (r *Retry) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if r.active {
		r.child.OnEnd(ctx, status)
		r.active = false
	}
	r.attempt = 0
	r.waiting = false
}
