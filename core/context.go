package core

import (
	"context"
	"time"

	"github.com/hupe1980/behaviormesh/logging"
)

// Clock supplies the current time to timing-sensitive nodes and states.
// Injecting a clock keeps decorators like Timeout and Cooldown deterministic
// under test; production code uses the system clock.
type Clock func() time.Time

// ExecutionContext is the transient handle bundling one agent's identity, its
// blackboard and ambient services for a single tick. The scheduler builds one
// per agent per tick and passes it into every behavior and state callback.
type ExecutionContext struct {
	// Context is the ambient cancellation context for the tick.
	Context context.Context
	// AgentID identifies the agent being ticked.
	AgentID string
	// Blackboard is the agent's private memory store.
	Blackboard *Blackboard
	// Logger receives engine diagnostics. Never nil.
	Logger logging.Logger

	clock Clock
}

// ContextOption customizes an ExecutionContext at construction.
type ContextOption func(*ExecutionContext)

// WithLogger overrides the context logger.
func WithLogger(l logging.Logger) ContextOption {
	return func(c *ExecutionContext) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithClock overrides the context time source.
func WithClock(clock Clock) ContextOption {
	return func(c *ExecutionContext) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewExecutionContext constructs an ExecutionContext. A nil blackboard is
// replaced by a fresh one so leaf code can rely on it being present.
func NewExecutionContext(ctx context.Context, agentID string, bb *Blackboard, optFns ...ContextOption) *ExecutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if bb == nil {
		bb = NewBlackboard()
	}
	ec := &ExecutionContext{
		Context:    ctx,
		AgentID:    agentID,
		Blackboard: bb,
		Logger:     logging.NoOpLogger{},
		clock:      time.Now,
	}
	for _, fn := range optFns {
		fn(ec)
	}
	return ec
}

// Now returns the current time according to the context clock.
func (c *ExecutionContext) Now() time.Time {
	if c.clock == nil {
		return time.Now()
	}
	return c.clock()
}

// Clock returns the context time source.
func (c *ExecutionContext) Clock() Clock {
	if c.clock == nil {
		return time.Now
	}
	return c.clock
}
