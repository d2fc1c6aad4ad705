// Package behaviormesh provides a high-level façade over the decision engine
// packages (behavior trees, state machines, blackboards and the tick
// scheduler) enabling rapid construction of agent-driven simulations. Most
// applications interact with this package by:
//  1. Creating a BehaviorMesh via New() (optionally overriding the logger,
//     clock or scheduler tuning)
//  2. Registering agents, each carrying a behavior tree and/or a state machine
//  3. Driving ticks manually (Tick) or on an interval (Run)
//
// The façade delegates per-tick orchestration to scheduler.Scheduler while
// keeping setup and usage ergonomics concise. All defaults are safe for local
// development and testing; long-running simulations typically supply a
// structured logger and tune worker count and tick budget.
package behaviormesh

import (
	"context"
	"time"

	"github.com/hupe1980/behaviormesh/behavior"
	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/fsm"
	"github.com/hupe1980/behaviormesh/logging"
	"github.com/hupe1980/behaviormesh/scheduler"
)

// Options configures the BehaviorMesh instance.
type Options struct {
	// Logger receives engine diagnostics (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Clock is the time source used by timing decorators and timed states.
	// Defaults to the system clock; tests inject a fake.
	Clock core.Clock

	// Workers shards agent ticking across goroutines. Values below 2 keep
	// each pass sequential.
	Workers int

	// TickBudget caps agents ticked per pass; 0 means unlimited.
	TickBudget int

	// Profiler, when set, records per-agent tick durations.
	Profiler scheduler.Profiler
}

// BehaviorMesh is the high-level façade aggregating the tick scheduler and
// agent registry.
type BehaviorMesh struct {
	opts  Options
	sched *scheduler.Scheduler
}

// New creates a BehaviorMesh with optional overrides.
func New(optFns ...func(o *Options)) *BehaviorMesh {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Clock:  time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	sched := scheduler.New(func(o *scheduler.Options) {
		o.Logger = opts.Logger
		o.Clock = opts.Clock
		o.Workers = opts.Workers
		o.TickBudget = opts.TickBudget
		o.Profiler = opts.Profiler
	})

	return &BehaviorMesh{opts: opts, sched: sched}
}

// RegisterAgent adds an agent effective next tick and returns its ID.
func (m *BehaviorMesh) RegisterAgent(cfg scheduler.AgentConfig) string {
	return m.sched.Register(cfg)
}

// RegisterTree is a convenience wrapper for a tree-only agent.
func (m *BehaviorMesh) RegisterTree(id string, tree *behavior.Tree) string {
	return m.sched.Register(scheduler.AgentConfig{ID: id, Tree: tree})
}

// RegisterMachine is a convenience wrapper for a machine-only agent.
func (m *BehaviorMesh) RegisterMachine(id string, machine *fsm.StateMachine) string {
	return m.sched.Register(scheduler.AgentConfig{ID: id, Machine: machine})
}

// DeregisterAgent removes an agent effective next tick, cleaning up its
// machine, tree and blackboard.
func (m *BehaviorMesh) DeregisterAgent(id string) {
	m.sched.Deregister(id)
}

// PauseAgent suspends ticking for an agent without removing it.
func (m *BehaviorMesh) PauseAgent(id string) { m.sched.Pause(id) }

// ResumeAgent resumes a paused agent.
func (m *BehaviorMesh) ResumeAgent(id string) { m.sched.Resume(id) }

// Tick advances every eligible agent once.
func (m *BehaviorMesh) Tick(ctx context.Context) { m.sched.Tick(ctx) }

// Run ticks at the given interval until ctx is cancelled.
func (m *BehaviorMesh) Run(ctx context.Context, interval time.Duration) {
	m.sched.Run(ctx, interval)
}

// Blackboard returns the blackboard of a registered agent.
func (m *BehaviorMesh) Blackboard(id string) (*core.Blackboard, bool) {
	return m.sched.Blackboard(id)
}

// Scheduler exposes the underlying scheduler for advanced use.
func (m *BehaviorMesh) Scheduler() *scheduler.Scheduler { return m.sched }
