package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/behaviormesh/internal/testutil"
)

func newChildMachine(t *testing.T, inner ...*recordingState) *StateMachine {
	t.Helper()
	m := NewStateMachine("child")
	for _, s := range inner {
		require.NoError(t, m.AddState(s))
	}
	return m
}

func TestHierarchicalState_LifecycleDrivesChild(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	inner := newRecordingState("inner")
	child := newChildMachine(t, inner)
	h := NewHierarchicalState("outer", child)

	h.OnEnter(ctx)
	assert.True(t, child.Running())
	assert.Equal(t, "inner", child.CurrentStateName())

	h.OnUpdate(ctx)
	assert.Equal(t, 1, inner.Updates)

	h.OnExit(ctx)
	assert.False(t, child.Running())
	assert.Equal(t, 1, inner.Exits)
	assert.False(t, h.Active())
}

func TestHierarchicalState_ReentryRestartsFromInitial(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	first := newRecordingState("first")
	second := newRecordingState("second")
	child := newChildMachine(t, first, second)
	require.NoError(t, child.AddTransition(NewTransition("first", "second", always)))

	h := NewHierarchicalState("outer", child)

	h.OnEnter(ctx)
	h.OnUpdate(ctx)
	require.Equal(t, "second", child.CurrentStateName())
	h.OnExit(ctx)

	// Re-entry starts over; no residual progress survives.
	h.OnEnter(ctx)
	assert.Equal(t, "first", child.CurrentStateName())
	assert.Equal(t, 2, first.Enters)
}

func TestHierarchicalState_WithoutAutoStart(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	child := newChildMachine(t, newRecordingState("inner"))
	h := NewHierarchicalState("outer", child, WithoutAutoStart())

	h.OnEnter(ctx)
	assert.False(t, child.Running())

	// Updating with a stopped child is a no-op rather than a fault.
	h.OnUpdate(ctx)

	require.NoError(t, child.Start(ctx))
	h.OnUpdate(ctx)
	assert.Equal(t, "inner", child.CurrentStateName())
}

func TestHierarchicalState_NestedInMachine(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	inner := newRecordingState("inner")
	child := newChildMachine(t, inner)

	outer := NewStateMachine("outer")
	require.NoError(t, outer.AddState(NewHierarchicalState("nested", child)))
	require.NoError(t, outer.AddState(newRecordingState("plain")))
	require.NoError(t, outer.AddTransition(NewTransition("nested", "plain", flag("leave"))))

	require.NoError(t, outer.Start(ctx))
	outer.Update(ctx)
	assert.Equal(t, 1, inner.Updates)

	ctx.Blackboard.Set("leave", true)
	outer.Update(ctx)
	assert.Equal(t, "plain", outer.CurrentStateName())
	assert.False(t, child.Running())
}
