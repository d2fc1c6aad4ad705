package debug

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/behaviormesh/behavior"
	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/fsm"
	"github.com/hupe1980/behaviormesh/internal/testutil"
)

func TestDescribeTree(t *testing.T) {
	tree := behavior.NewTree("patrol", behavior.NewSelector(
		behavior.NewSequence(
			behavior.NewCondition(func(ctx *core.ExecutionContext) bool { return true }),
			behavior.NewInverter(behavior.NewWait(time.Second)),
		),
		behavior.NewAction(func(ctx *core.ExecutionContext) core.Status { return core.StatusSuccess }),
	))

	out := DescribeTree(tree)

	assert.Contains(t, out, `tree "patrol"`)
	assert.Contains(t, out, "Selector")
	assert.Contains(t, out, "Sequence")
	assert.Contains(t, out, "Condition")
	assert.Contains(t, out, "Inverter")
	assert.Contains(t, out, "Wait")
	assert.Contains(t, out, "Action")

	// Nesting shows up as deeper indentation.
	assert.Contains(t, out, "  Selector")
	assert.Contains(t, out, "    Sequence")
	assert.Contains(t, out, "      Condition")
}

func TestDescribeTree_StateMachineNode(t *testing.T) {
	m := fsm.NewMachineBuilder("brain").State(fsm.NewIdleState("idle")).MustBuild()
	tree := behavior.NewTree("npc", fsm.NewStateMachineNode(m))

	out := DescribeTree(tree)
	assert.Contains(t, out, "StateMachineNode(brain)")
}

func TestDescribeMachine(t *testing.T) {
	ctx := testutil.Ctx("agent-1")

	inner := fsm.NewMachineBuilder("route").
		States(fsm.NewIdleState("walk"), fsm.NewIdleState("pause")).
		MustBuild()

	m := fsm.NewMachineBuilder("guard").
		States(
			fsm.NewHierarchicalState("patrol", inner),
			fsm.NewIdleState("combat"),
		).
		Transition(fsm.From("patrol").To("combat").When(func(ctx *core.ExecutionContext) bool { return false }).Priority(3).MustBuild()).
		MustBuild()
	require.NoError(t, m.Start(ctx))

	out := DescribeMachine(m)

	assert.Contains(t, out, `machine "guard"`)
	assert.Contains(t, out, `machine "route"`)
	assert.Contains(t, out, "* patrol")
	assert.Contains(t, out, "  combat")
	assert.Contains(t, out, "patrol->combat (priority 3)")
}

func TestDumpBlackboard(t *testing.T) {
	bb := core.NewBlackboard()
	bb.Set("b", 2)
	bb.Set("a", "one")

	out := DumpBlackboard(bb)
	assert.Equal(t, "a = one\nb = 2\n", out)
}

func TestProfiler_RecordAndReport(t *testing.T) {
	p := NewProfiler()

	p.Record("npc-1", 2*time.Millisecond)
	p.Record("npc-1", 4*time.Millisecond)
	p.Record("npc-2", time.Millisecond)

	assert.Equal(t, uint64(2), p.Count("npc-1"))
	assert.Equal(t, 3*time.Millisecond, p.Average("npc-1"))
	assert.Equal(t, 4*time.Millisecond, p.Max("npc-1"))
	assert.Equal(t, uint64(0), p.Count("missing"))
	assert.Equal(t, time.Duration(0), p.Average("missing"))

	report := p.Report()
	assert.Contains(t, report, "npc-1: ticks=2")
	assert.Contains(t, report, "npc-2: ticks=1")
	// Sorted by agent ID.
	assert.Less(t, strings.Index(report, "npc-1"), strings.Index(report, "npc-2"))

	p.Reset()
	assert.Equal(t, uint64(0), p.Count("npc-1"))
}

func TestProfiler_Measure(t *testing.T) {
	p := NewProfiler()

	stop := p.Measure("npc-1")
	time.Sleep(time.Millisecond)
	stop()

	assert.Equal(t, uint64(1), p.Count("npc-1"))
	assert.Greater(t, p.Max("npc-1"), time.Duration(0))
}
