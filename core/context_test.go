package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecutionContext_Defaults(t *testing.T) {
	ec := NewExecutionContext(nil, "agent-1", nil)

	assert.NotNil(t, ec.Context)
	assert.NotNil(t, ec.Blackboard)
	assert.NotNil(t, ec.Logger)
	assert.Equal(t, "agent-1", ec.AgentID)
	assert.WithinDuration(t, time.Now(), ec.Now(), time.Second)
}

func TestExecutionContext_WithClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ec := NewExecutionContext(context.Background(), "agent-1", NewBlackboard(),
		WithClock(func() time.Time { return fixed }),
	)

	assert.Equal(t, fixed, ec.Now())
	assert.Equal(t, fixed, ec.Clock()())
}

func TestPredicate_Eval(t *testing.T) {
	ec := NewExecutionContext(nil, "agent-1", nil)

	truthy := Predicate(func(ctx *ExecutionContext) bool { return true })
	assert.True(t, truthy.Eval(ec))

	falsy := Predicate(func(ctx *ExecutionContext) bool { return false })
	assert.False(t, falsy.Eval(ec))
}

func TestPredicate_EvalNil(t *testing.T) {
	ec := NewExecutionContext(nil, "agent-1", nil)

	var p Predicate
	assert.False(t, p.Eval(ec))
}

func TestPredicate_EvalPanicIsFalse(t *testing.T) {
	ec := NewExecutionContext(nil, "agent-1", nil)

	panicky := Predicate(func(ctx *ExecutionContext) bool { panic("boom") })
	assert.NotPanics(t, func() {
		assert.False(t, panicky.Eval(ec))
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "SUCCESS", StatusSuccess.String())
	assert.Equal(t, "FAILURE", StatusFailure.String())
	assert.Equal(t, "RUNNING", StatusRunning.String())
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusFailure.Terminal())
	assert.False(t, StatusRunning.Terminal())
}
