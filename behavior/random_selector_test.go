package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/internal/testutil"
)

func TestRandomSelector_CommitsUntilDone(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	a := testutil.RunFor(2, core.StatusSuccess)
	b := testutil.RunFor(2, core.StatusSuccess)

	sel := NewRandomSelectorSeeded(1, a, b)
	sel.OnStart(ctx)

	assert.Equal(t, core.StatusRunning, sel.Execute(ctx))
	picked := sel.CurrentChild().(*testutil.ScriptedBehavior)

	assert.Equal(t, core.StatusRunning, sel.Execute(ctx))
	assert.Equal(t, core.StatusSuccess, sel.Execute(ctx))

	// Exactly one child ever ran.
	assert.Equal(t, 3, picked.Executes)
	assert.Equal(t, 1, a.Starts+b.Starts)
}

func TestRandomSelector_Deterministic(t *testing.T) {
	order := func(seed int64) []int {
		ctx := testutil.Ctx("agent-1")
		a := testutil.Succeed()
		b := testutil.Succeed()
		c := testutil.Succeed()
		sel := NewRandomSelectorSeeded(seed, a, b, c)
		sel.OnStart(ctx)

		counts := []int{0, 0, 0}
		for i := 0; i < 20; i++ {
			sel.Execute(ctx)
		}
		counts[0], counts[1], counts[2] = a.Executes, b.Executes, c.Executes
		return counts
	}

	assert.Equal(t, order(42), order(42))
}

func TestRandomSelector_Empty(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	sel := NewRandomSelectorSeeded(1)
	sel.OnStart(ctx)
	assert.Equal(t, core.StatusFailure, sel.Execute(ctx))
}

func TestRandomSelector_AbortForwardsToCommittedChild(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	a := testutil.RunFor(5, core.StatusSuccess)
	b := testutil.RunFor(5, core.StatusSuccess)

	sel := NewRandomSelectorSeeded(1, a, b)
	sel.OnStart(ctx)
	assert.Equal(t, core.StatusRunning, sel.Execute(ctx))

	sel.OnEnd(ctx, core.StatusFailure)
	assert.Equal(t, 1, a.Ends+b.Ends)
	assert.Nil(t, sel.CurrentChild())
}

func TestWeightedSelector_RejectsBadWeights(t *testing.T) {
	sel := NewWeightedSelectorSeeded(1)

	assert.Error(t, sel.Add(testutil.Succeed(), 0))
	assert.Error(t, sel.Add(testutil.Succeed(), -1))
	assert.Error(t, sel.Add(nil, 1))
	assert.NoError(t, sel.Add(testutil.Succeed(), 2))
}

func TestWeightedSelector_Probability(t *testing.T) {
	sel := NewWeightedSelectorSeeded(1)
	require.NoError(t, sel.Add(testutil.Succeed(), 2))
	require.NoError(t, sel.Add(testutil.Succeed(), 1))

	assert.Equal(t, 3.0, sel.TotalWeight())
	assert.InDelta(t, 2.0/3.0, sel.Probability(0), 1e-9)
	assert.InDelta(t, 1.0/3.0, sel.Probability(1), 1e-9)

	require.NoError(t, sel.SetWeight(1, 2))
	assert.InDelta(t, 0.5, sel.Probability(0), 1e-9)

	assert.Error(t, sel.SetWeight(5, 1))
	assert.Error(t, sel.SetWeight(0, 0))
}

func TestWeightedSelector_BiasFollowsWeights(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	heavy := testutil.Succeed()
	light := testutil.Succeed()

	sel := NewWeightedSelectorSeeded(7)
	require.NoError(t, sel.Add(heavy, 2))
	require.NoError(t, sel.Add(light, 1))
	sel.OnStart(ctx)

	const samples = 10000
	for i := 0; i < samples; i++ {
		sel.Execute(ctx)
	}

	ratio := float64(heavy.Executes) / float64(samples)
	assert.InDelta(t, 2.0/3.0, ratio, 0.03)
}

func TestWeightedSelector_Empty(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	sel := NewWeightedSelectorSeeded(1)
	sel.OnStart(ctx)
	assert.Equal(t, core.StatusFailure, sel.Execute(ctx))
}
