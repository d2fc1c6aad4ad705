package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/internal/testutil"
)

func TestStateMachineNode_AlwaysRunning(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	inner := newRecordingState("inner")
	m := NewStateMachine("embedded")
	require.NoError(t, m.AddState(inner))

	node := NewStateMachineNode(m)
	node.OnStart(ctx)

	assert.Equal(t, core.StatusRunning, node.Execute(ctx))
	assert.True(t, m.Running())

	assert.Equal(t, core.StatusRunning, node.Execute(ctx))
	assert.Equal(t, 1, inner.Updates)
}

func TestStateMachineNode_StateKeyMirrorsCurrentState(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	m := NewStateMachine("embedded")
	require.NoError(t, m.AddState(newRecordingState("a")))
	require.NoError(t, m.AddState(newRecordingState("b")))
	require.NoError(t, m.AddTransition(NewTransition("a", "b", always)))

	node := NewStateMachineNode(m, WithStateKey("npc_state"))
	node.OnStart(ctx)

	node.Execute(ctx)
	assert.Equal(t, "a", core.ValueOr(ctx.Blackboard, "npc_state", ""))

	node.Execute(ctx)
	assert.Equal(t, "b", core.ValueOr(ctx.Blackboard, "npc_state", ""))
}

func TestStateMachineNode_OnEndStopsMachine(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	inner := newRecordingState("inner")
	m := NewStateMachine("embedded")
	require.NoError(t, m.AddState(inner))

	node := NewStateMachineNode(m)
	node.OnStart(ctx)
	node.Execute(ctx)

	node.OnEnd(ctx, core.StatusFailure)
	assert.False(t, m.Running())
	assert.Equal(t, 1, inner.Exits)

	// A fresh run restarts the machine.
	node.OnStart(ctx)
	assert.Equal(t, core.StatusRunning, node.Execute(ctx))
	assert.True(t, m.Running())
}

func TestStateMachineNode_StartFailureFails(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	node := NewStateMachineNode(NewStateMachine("empty"))
	node.OnStart(ctx)

	assert.Equal(t, core.StatusFailure, node.Execute(ctx))
}
