package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/internal/testutil"
)

func TestTransitionBuilder_Build(t *testing.T) {
	tr, err := From("a").To("b").When(always).Priority(7).Name("escape").Build()
	require.NoError(t, err)

	assert.Equal(t, "a", tr.From())
	assert.Equal(t, "b", tr.To())
	assert.Equal(t, 7, tr.Priority())
	assert.Equal(t, "escape", tr.Name())
}

func TestTransitionBuilder_DefaultName(t *testing.T) {
	tr, err := From("a").To("b").When(always).Build()
	require.NoError(t, err)
	assert.Equal(t, "a->b", tr.Name())
}

func TestTransitionBuilder_Validation(t *testing.T) {
	_, err := From("").To("b").When(always).Build()
	assert.Error(t, err)

	_, err = From("a").To("").When(always).Build()
	assert.Error(t, err)

	_, err = From("a").To("b").Build()
	assert.Error(t, err)

	assert.Panics(t, func() { From("a").To("b").MustBuild() })
}

func TestMachineBuilder_Build(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	var transitions []string
	m, err := NewMachineBuilder("guard").
		States(
			newRecordingState("patrol"),
			newRecordingState("combat"),
		).
		Initial("patrol").
		TransitionWhen("patrol", "combat", flag("enemy")).
		Transition(From("combat").To("patrol").When(flag("safe")).Priority(1).MustBuild()).
		Listener(func(from, to State, ctx *core.ExecutionContext) {
			transitions = append(transitions, to.Name())
		}).
		Build()
	require.NoError(t, err)

	require.NoError(t, m.Start(ctx))
	ctx.Blackboard.Set("enemy", true)
	m.Update(ctx)

	assert.Equal(t, "combat", m.CurrentStateName())
	assert.Equal(t, []string{"patrol", "combat"}, transitions)
}

func TestMachineBuilder_CollectsErrors(t *testing.T) {
	_, err := NewMachineBuilder("broken").
		State(newRecordingState("a")).
		State(newRecordingState("a")).
		Initial("missing").
		TransitionWhen("a", "nowhere", always).
		Build()

	require.Error(t, err)
	// All three configuration faults surface in one joined error.
	assert.Contains(t, err.Error(), "already exists")
	assert.Contains(t, err.Error(), `initial state "missing"`)
	assert.Contains(t, err.Error(), `"nowhere" not found`)
}

func TestMachineBuilder_MustBuildPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		NewMachineBuilder("broken").Initial("missing").MustBuild()
	})
}
