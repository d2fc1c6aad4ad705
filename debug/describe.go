package debug

import (
	"fmt"
	"strings"

	"github.com/hupe1980/behaviormesh/behavior"
	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/fsm"
)

// childHolder is satisfied by decorators exposing their wrapped node.
type childHolder interface {
	Child() core.Behavior
}

// childrenHolder is satisfied by composites exposing their ordered children.
type childrenHolder interface {
	Children() []core.Behavior
}

// DescribeTree renders the structure of a behavior tree as an indented
// outline, one node per line.
func DescribeTree(t *behavior.Tree) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tree %q\n", t.Name())
	describeNode(&sb, t.Root(), 1)
	return sb.String()
}

func describeNode(sb *strings.Builder, node core.Behavior, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s\n", indent, nodeLabel(node))

	switch n := node.(type) {
	case childrenHolder:
		for _, child := range n.Children() {
			describeNode(sb, child, depth+1)
		}
	case childHolder:
		describeNode(sb, n.Child(), depth+1)
	}
}

func nodeLabel(node core.Behavior) string {
	switch n := node.(type) {
	case *fsm.StateMachineNode:
		return fmt.Sprintf("StateMachineNode(%s)", n.Machine().Name())
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", n), "*behavior.")
	}
}

// DescribeMachine renders a state machine's states and transitions. Nested
// machines inside hierarchical states are expanded with deeper indentation.
func DescribeMachine(m *fsm.StateMachine) string {
	var sb strings.Builder
	describeMachine(&sb, m, 0)
	return sb.String()
}

func describeMachine(sb *strings.Builder, m *fsm.StateMachine, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%smachine %q\n", indent, m.Name())
	for _, state := range m.States() {
		marker := " "
		if current := m.CurrentState(); current != nil && current.Name() == state.Name() {
			marker = "*"
		}
		fmt.Fprintf(sb, "%s %s %s\n", indent, marker, state.Name())
		if hs, ok := state.(*fsm.HierarchicalState); ok {
			describeMachine(sb, hs.Child(), depth+2)
		}
	}
	for _, t := range m.Transitions() {
		fmt.Fprintf(sb, "%s   %s (priority %d)\n", indent, t.Name(), t.Priority())
	}
}

// DumpBlackboard renders all blackboard entries in key order.
func DumpBlackboard(b *core.Blackboard) string {
	var sb strings.Builder
	for _, key := range b.Keys() {
		value, _ := b.Get(key)
		fmt.Fprintf(&sb, "%s = %v\n", key, value)
	}
	return sb.String()
}
