package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// ParallelPolicy configures when a Parallel node succeeds or fails.
//
// MinSuccess is the number of succeeded children required for the node to
// succeed; zero means all children. MinFailure is the number of failed
// children that makes the node fail; zero means any single failure.
type ParallelPolicy struct {
	MinSuccess int
	MinFailure int
}

// RequireAll succeeds only when every child succeeds and fails on the first
// child failure. This is the default policy.
func RequireAll() ParallelPolicy { return ParallelPolicy{} }

// RequireOne succeeds on the first child success and fails only when every
// child fails.
func RequireOne(childCount int) ParallelPolicy {
	return ParallelPolicy{MinSuccess: 1, MinFailure: childCount}
}

// Parallel executes all of its children every tick, starting each child that
// is not already running. Children that finish keep their last status for
// threshold evaluation until the parallel node itself finishes, at which
// point all children reset. The overall result is decided by the
// ParallelPolicy thresholds; if every child finishes without meeting the
// success threshold the node fails.
type Parallel struct {
	BaseNode
	policy ParallelPolicy

	started  []bool
	finished []bool
	results  []core.Status
}

// NewParallel creates a parallel node with the given policy.
func NewParallel(policy ParallelPolicy, children ...core.Behavior) *Parallel {
	p := &Parallel{policy: policy}
	for _, c := range children {
		p.AddChild(c)
	}
	return p
}

// Policy returns the configured threshold policy.
func (p *Parallel) Policy() ParallelPolicy { return p.policy }

func (p *Parallel) minSuccess() int {
	if p.policy.MinSuccess <= 0 {
		return len(p.children)
	}
	return p.policy.MinSuccess
}

func (p *Parallel) minFailure() int {
	if p.policy.MinFailure <= 0 {
		return 1
	}
	return p.policy.MinFailure
}

// OnStart resets all per-child progress records.
func (p *Parallel) OnStart(ctx *core.ExecutionContext) {
	n := len(p.children)
	p.started = make([]bool, n)
	p.finished = make([]bool, n)
	p.results = make([]core.Status, n)
}

// Execute ticks every unfinished child and evaluates the thresholds.
func (p *Parallel) Execute(ctx *core.ExecutionContext) core.Status {
	if len(p.children) == 0 {
		return core.StatusSuccess
	}
	if p.started == nil {
		// Tolerate a missing OnStart from hand-driven callers.
		p.OnStart(ctx)
	}

	successes, failures, done := 0, 0, 0
	for i, child := range p.children {
		if p.finished[i] {
			done++
			switch p.results[i] {
			case core.StatusSuccess:
				successes++
			case core.StatusFailure:
				failures++
			}
			continue
		}
		if !p.started[i] {
			child.OnStart(ctx)
			p.started[i] = true
		}
		status := child.Execute(ctx)
		if status == core.StatusRunning {
			continue
		}
		child.OnEnd(ctx, status)
		p.finished[i] = true
		p.results[i] = status
		done++
		switch status {
		case core.StatusSuccess:
			successes++
		case core.StatusFailure:
			failures++
		}
	}

	if successes >= p.minSuccess() {
		return core.StatusSuccess
	}
	if failures >= p.minFailure() {
		return core.StatusFailure
	}
	if done == len(p.children) {
		return core.StatusFailure
	}
	return core.StatusRunning
}

// OnEnd forwards the final status to every child that is still running and
// resets all progress records.
func (p *Parallel) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	for i, child := range p.children {
		if i < len(p.started) && p.started[i] && !p.finished[i] {
			child.OnEnd(ctx, status)
		}
	}
	p.started = nil
	p.finished = nil
	p.results = nil
}
