package fsm

import (
	"github.com/hupe1980/behaviormesh/core"
)

// StateMachineNode bridges from the behavior tree to the FSM engine: a tree
// leaf that owns a StateMachine, starts it on first execution and delegates
// every tick to it. The node always returns RUNNING because the machine, not
// the tree, owns completion semantics in this composition; the tree hands
// control down and never gets it back unless the branch is aborted.
type StateMachineNode struct {
	machine  *StateMachine
	stateKey string
	started  bool
}

// StateMachineNodeOption customizes a StateMachineNode.
type StateMachineNodeOption func(*StateMachineNode)

// WithStateKey mirrors the machine's current state name into the blackboard
// under the given key on every tick.
func WithStateKey(key string) StateMachineNodeOption {
	return func(n *StateMachineNode) { n.stateKey = key }
}

// NewStateMachineNode creates a tree leaf around the given machine.
func NewStateMachineNode(machine *StateMachine, optFns ...StateMachineNodeOption) *StateMachineNode {
	n := &StateMachineNode{machine: machine}
	for _, fn := range optFns {
		fn(n)
	}
	return n
}

// Machine returns the embedded state machine.
func (n *StateMachineNode) Machine() *StateMachine { return n.machine }

// OnStart resets the first-tick flag.
func (n *StateMachineNode) OnStart(ctx *core.ExecutionContext) {
	n.started = false
}

// Execute starts the machine on the first tick, then updates it.
func (n *StateMachineNode) Execute(ctx *core.ExecutionContext) core.Status {
	if !n.started {
		if err := n.machine.Start(ctx); err != nil {
			ctx.Logger.Error("failed to start embedded machine", "machine", n.machine.Name(), "error", err)
			return core.StatusFailure
		}
		n.started = true
	}

	n.machine.Update(ctx)

	if n.stateKey != "" {
		if name := n.machine.CurrentStateName(); name != "" {
			ctx.Blackboard.Set(n.stateKey, name)
		}
	}

	return core.StatusRunning
}

// OnEnd stops the embedded machine; an aborted branch releases its machine
// through the same Stop path as everything else.
func (n *StateMachineNode) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if n.machine.Running() {
		n.machine.Stop(ctx)
	}
	n.started = false
}
