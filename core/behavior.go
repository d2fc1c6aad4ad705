package core

// Behavior defines the contract every node of the behavior tree implements:
// leaves, composites and decorators alike.
//
// Lifecycle per run:
//   - OnStart resets local progress and is called by the parent (or the
//     owning tree) before the first Execute of a run.
//   - Execute advances the behavior by one tick and may be called many ticks
//     in a row while it keeps returning StatusRunning.
//   - OnEnd is called exactly once per started run: with the behavior's own
//     terminal status once Execute stops returning StatusRunning, or with the
//     aborting parent's status when the branch is cut short. There is no
//     separate cancellation path.
//
// Parents forward OnStart/OnEnd only to the children they actually started,
// never to children that were not reached.
type Behavior interface {
	OnStart(ctx *ExecutionContext)
	Execute(ctx *ExecutionContext) Status
	OnEnd(ctx *ExecutionContext, status Status)
}

// Predicate is a side-effect-free condition evaluated against the execution
// context. Predicates gate transitions and conditional decorators.
type Predicate func(ctx *ExecutionContext) bool

// Eval evaluates the predicate, treating a nil predicate or a panic during
// evaluation as "condition not satisfied". A panic is logged through the
// context logger and never propagates past the predicate boundary.
func (p Predicate) Eval(ctx *ExecutionContext) (result bool) {
	if p == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			if ctx != nil && ctx.Logger != nil {
				ctx.Logger.Warn("predicate panicked, treating as false", "panic", r)
			}
			result = false
		}
	}()
	return p(ctx)
}
