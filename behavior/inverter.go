package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// Inverter swaps its child's SUCCESS and FAILURE; RUNNING passes through
// unchanged.
type Inverter struct {
	child  core.Behavior
	active bool
}

// NewInverter wraps child in an inverter.
func NewInverter(child core.Behavior) *Inverter {
	return &Inverter{child: child}
}

// Child returns the wrapped behavior.
func (i *Inverter) Child() core.Behavior { return i.child }

// OnStart starts the child.
func (i *Inverter) OnStart(ctx *core.ExecutionContext) {
	i.child.OnStart(ctx)
	i.active = true
}

// Execute ticks the child and inverts its terminal status.
func (i *Inverter) Execute(ctx *core.ExecutionContext) core.Status {
	status := i.child.Execute(ctx)
	if status == core.StatusRunning {
		return core.StatusRunning
	}
	i.child.OnEnd(ctx, status)
	i.active = false
	if status == core.StatusSuccess {
		return core.StatusFailure
	}
	return core.StatusSuccess
}

// OnEnd forwards the final status to a still-running child.
func (i *Inverter) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if i.active {
		i.child.OnEnd(ctx, status)
		i.active = false
	}
}
