package behavior

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/internal/testutil"
)

func TestTree_ImplicitLifecycle(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	root := testutil.RunFor(1, core.StatusSuccess)
	tree := NewTree("test", root)

	_, ticked := tree.LastStatus()
	assert.False(t, ticked)

	assert.Equal(t, core.StatusRunning, tree.Tick(ctx))
	assert.True(t, tree.Running())
	assert.Equal(t, 1, root.Starts)

	assert.Equal(t, core.StatusSuccess, tree.Tick(ctx))
	assert.False(t, tree.Running())
	// No OnStart on the resume tick, OnEnd on the terminal one.
	assert.Equal(t, 1, root.Starts)
	assert.Equal(t, 1, root.Ends)

	status, ticked := tree.LastStatus()
	assert.True(t, ticked)
	assert.Equal(t, core.StatusSuccess, status)
}

func TestTree_RestartsAfterTerminal(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	root := testutil.Succeed()
	tree := NewTree("test", root)

	tree.Tick(ctx)
	tree.Tick(ctx)

	assert.Equal(t, 2, root.Starts)
	assert.Equal(t, 2, root.Ends)
}

func TestTree_Abort(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	root := testutil.RunFor(10, core.StatusSuccess)
	tree := NewTree("test", root)

	tree.Tick(ctx)
	tree.Abort(ctx)

	assert.False(t, tree.Running())
	assert.Equal(t, 1, root.Ends)
	assert.Equal(t, core.StatusFailure, root.LastEnd)

	// Aborting an idle tree is a no-op.
	tree.Abort(ctx)
	assert.Equal(t, 1, root.Ends)
}

func TestTree_NilRootFails(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	tree := NewTree("test", nil)
	assert.Equal(t, core.StatusFailure, tree.Tick(ctx))
}

func TestAction_Hooks(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	var calls []string
	a := &Action{
		Start: func(ctx *core.ExecutionContext) { calls = append(calls, "start") },
		Run: func(ctx *core.ExecutionContext) core.Status {
			calls = append(calls, "run")
			return core.StatusSuccess
		},
		End: func(ctx *core.ExecutionContext, status core.Status) {
			calls = append(calls, "end:"+status.String())
		},
	}

	a.OnStart(ctx)
	status := a.Execute(ctx)
	a.OnEnd(ctx, status)

	assert.Equal(t, []string{"start", "run", "end:SUCCESS"}, calls)
}

func TestAction_NilRunFails(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	a := &Action{}
	a.OnStart(ctx)
	assert.Equal(t, core.StatusFailure, a.Execute(ctx))
}

func TestCondition_NeverRunning(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	c := NewCondition(func(ctx *core.ExecutionContext) bool { return true })
	assert.Equal(t, core.StatusSuccess, c.Execute(ctx))

	c = NewCondition(func(ctx *core.ExecutionContext) bool { return false })
	assert.Equal(t, core.StatusFailure, c.Execute(ctx))

	c = NewCondition(nil)
	assert.Equal(t, core.StatusFailure, c.Execute(ctx))
}

func TestWait_ElapsesWithClock(t *testing.T) {
	clock := testutil.NewFakeClock()
	ctx := testutil.Ctx("agent-1", core.WithClock(clock.Now))

	w := NewWait(3 * time.Second)
	w.OnStart(ctx)

	assert.Equal(t, core.StatusRunning, w.Execute(ctx))
	clock.Advance(2 * time.Second)
	assert.Equal(t, core.StatusRunning, w.Execute(ctx))
	clock.Advance(time.Second)
	assert.Equal(t, core.StatusSuccess, w.Execute(ctx))
}
