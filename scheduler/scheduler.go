// Package scheduler drives many independently ticked agents. It maintains a
// registry of agents, builds each agent's execution context once per tick and
// advances its behavior tree and/or state machine exactly once per pass.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/behaviormesh/behavior"
	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/fsm"
	"github.com/hupe1980/behaviormesh/logging"
)

// AgentConfig describes an agent being registered. At least one of Tree or
// Machine should be set; a nil Blackboard gets a fresh one and an empty ID is
// replaced by a generated UUID.
type AgentConfig struct {
	ID         string
	Tree       *behavior.Tree
	Machine    *fsm.StateMachine
	Blackboard *core.Blackboard
}

type agentEntry struct {
	id             string
	tree           *behavior.Tree
	machine        *fsm.StateMachine
	blackboard     *core.Blackboard
	paused         bool
	machineStarted bool
}

type opKind int

const (
	opRegister opKind = iota
	opDeregister
	opPause
	opResume
)

type pendingOp struct {
	kind  opKind
	id    string
	entry *agentEntry
}

// Profiler receives per-agent tick durations. The debug package provides an
// implementation; anything satisfying this interface can be plugged in.
type Profiler interface {
	Record(agentID string, d time.Duration)
}

// Options holds configuration overrides passed to New().
type Options struct {
	// Logger receives scheduler diagnostics.
	Logger logging.Logger
	// Clock is the time source handed to every execution context.
	Clock core.Clock
	// Workers shards agents across this many goroutines per tick. Values
	// below 2 keep the pass sequential. No two workers ever tick the same
	// agent: parallelism is between agents, never inside one.
	Workers int
	// TickBudget caps how many agents are ticked per pass; 0 means
	// unlimited. Agents beyond the budget are deferred to the next pass,
	// rotating fairly through the registry.
	TickBudget int
	// Profiler, when set, records per-agent tick durations.
	Profiler Profiler
}

// WithLogger sets the scheduler logger.
func WithLogger(logger logging.Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithClock sets the time source handed to execution contexts.
func WithClock(clock core.Clock) func(o *Options) {
	return func(o *Options) {
		o.Clock = clock
	}
}

// WithWorkers shards ticking across n goroutines.
func WithWorkers(n int) func(o *Options) {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithTickBudget caps agents ticked per pass.
func WithTickBudget(n int) func(o *Options) {
	return func(o *Options) {
		o.TickBudget = n
	}
}

// WithProfiler records per-agent tick durations.
func WithProfiler(p Profiler) func(o *Options) {
	return func(o *Options) {
		o.Profiler = p
	}
}

// Scheduler iterates the registry of registered agents once per Tick call.
// Registration, deregistration, pause and resume are queued and applied at
// the start of the next pass so the live iteration is never mutated.
// Public methods are safe for concurrent use.
type Scheduler struct {
	mu      sync.Mutex
	agents  map[string]*agentEntry
	order   []string
	pending []pendingOp
	cursor  int
	ticks   uint64

	logger     logging.Logger
	clock      core.Clock
	workers    int
	tickBudget int
	profiler   Profiler
}

// New constructs a Scheduler with optional overrides.
func New(optFns ...func(o *Options)) *Scheduler {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Clock:  time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scheduler{
		agents:     make(map[string]*agentEntry),
		logger:     opts.Logger,
		clock:      opts.Clock,
		workers:    opts.Workers,
		tickBudget: opts.TickBudget,
		profiler:   opts.Profiler,
	}
}

// Register queues an agent for inclusion starting with the next tick and
// returns its (possibly generated) ID.
func (s *Scheduler) Register(cfg AgentConfig) string {
	entry := &agentEntry{
		id:         cfg.ID,
		tree:       cfg.Tree,
		machine:    cfg.Machine,
		blackboard: cfg.Blackboard,
	}
	if entry.id == "" {
		entry.id = uuid.NewString()
	}
	if entry.blackboard == nil {
		entry.blackboard = core.NewBlackboard()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, pendingOp{kind: opRegister, id: entry.id, entry: entry})
	return entry.id
}

// Deregister queues removal of an agent, effective before the next tick's
// pass. The agent's machine is stopped, its tree aborted and its blackboard
// cleared through the same cleanup paths used by normal completion.
func (s *Scheduler) Deregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, pendingOp{kind: opDeregister, id: id})
}

// Pause queues marking an agent ineligible; it stays registered.
func (s *Scheduler) Pause(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, pendingOp{kind: opPause, id: id})
}

// Resume queues marking a paused agent eligible again.
func (s *Scheduler) Resume(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, pendingOp{kind: opResume, id: id})
}

// Len returns the number of registered agents (pending ops not applied yet).
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}

// Agents returns the registered agent IDs in registration order.
func (s *Scheduler) Agents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Blackboard returns the blackboard of a registered agent.
func (s *Scheduler) Blackboard(id string) (*core.Blackboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.agents[id]
	if !ok {
		return nil, false
	}
	return entry.blackboard, true
}

// Ticks returns the number of completed passes.
func (s *Scheduler) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// applyPendingLocked applies queued registry mutations; the caller holds mu.
// Deregistered entries are returned instead of torn down in place: teardown
// runs user callbacks (state OnExit, tree OnEnd) and must not execute under
// the registry mutex.
func (s *Scheduler) applyPendingLocked() []*agentEntry {
	var removed []*agentEntry
	for _, op := range s.pending {
		switch op.kind {
		case opRegister:
			if _, exists := s.agents[op.id]; exists {
				s.logger.Warn("agent already registered", "agent_id", op.id)
				continue
			}
			s.agents[op.id] = op.entry
			s.order = append(s.order, op.id)
			s.logger.Debug("agent registered", "agent_id", op.id)
		case opDeregister:
			entry, exists := s.agents[op.id]
			if !exists {
				continue
			}
			removed = append(removed, entry)
			delete(s.agents, op.id)
			for i, id := range s.order {
				if id == op.id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
			s.logger.Debug("agent deregistered", "agent_id", op.id)
		case opPause:
			if entry, exists := s.agents[op.id]; exists {
				entry.paused = true
			}
		case opResume:
			if entry, exists := s.agents[op.id]; exists {
				entry.paused = false
			}
		}
	}
	s.pending = s.pending[:0]
	return removed
}

// teardown runs an agent's cleanup after it has been removed from the
// registry. It must be called without mu held: Stop and Abort invoke user
// code that may call back into the scheduler, and a panic there is contained
// the same way tickAgent contains one.
func (s *Scheduler) teardown(ctx context.Context, entry *agentEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent teardown panicked", "agent_id", entry.id, "panic", r)
		}
	}()

	ec := s.contextFor(ctx, entry)
	if entry.machine != nil && entry.machine.Running() {
		entry.machine.Stop(ec)
	}
	if entry.tree != nil {
		entry.tree.Abort(ec)
	}
	entry.blackboard.Clear()
}

func (s *Scheduler) contextFor(ctx context.Context, entry *agentEntry) *core.ExecutionContext {
	return core.NewExecutionContext(ctx, entry.id, entry.blackboard,
		core.WithClock(s.clock),
		core.WithLogger(s.logger),
	)
}

// Tick performs one pass over all eligible agents. Each agent is ticked
// exactly once: its tree (if any) is executed and its machine (if any) is
// started on the agent's first pass and updated. A panic escaping an agent's
// leaf code is caught and logged so one misbehaving agent cannot stall the
// rest of the pass.
func (s *Scheduler) Tick(ctx context.Context) {
	s.mu.Lock()
	removed := s.applyPendingLocked()

	eligible := make([]*agentEntry, 0, len(s.order))
	for _, id := range s.order {
		entry := s.agents[id]
		if entry != nil && !entry.paused {
			eligible = append(eligible, entry)
		}
	}

	if s.tickBudget > 0 && len(eligible) > s.tickBudget {
		rotated := make([]*agentEntry, 0, s.tickBudget)
		n := len(eligible)
		for i := 0; i < s.tickBudget; i++ {
			rotated = append(rotated, eligible[(s.cursor+i)%n])
		}
		s.cursor = (s.cursor + s.tickBudget) % n
		eligible = rotated
	} else {
		s.cursor = 0
	}

	workers := s.workers
	s.ticks++
	s.mu.Unlock()

	for _, entry := range removed {
		s.teardown(ctx, entry)
	}

	if workers < 2 || len(eligible) < 2 {
		for _, entry := range eligible {
			s.tickAgent(ctx, entry)
		}
		return
	}

	if workers > len(eligible) {
		workers = len(eligible)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			// Strided sharding: each worker owns a disjoint subset, so no
			// agent is ever ticked by two goroutines.
			for i := w; i < len(eligible); i += workers {
				s.tickAgent(ctx, eligible[i])
			}
		}(w)
	}
	wg.Wait()
}

func (s *Scheduler) tickAgent(ctx context.Context, entry *agentEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent tick panicked", "agent_id", entry.id, "panic", r)
		}
	}()

	start := time.Now()
	ec := s.contextFor(ctx, entry)

	if entry.tree != nil {
		entry.tree.Tick(ec)
	}
	if entry.machine != nil {
		if !entry.machineStarted {
			if err := entry.machine.Start(ec); err != nil {
				s.logger.Error("failed to start agent machine", "agent_id", entry.id, "error", err)
			}
			entry.machineStarted = true
		}
		entry.machine.Update(ec)
	}

	if s.profiler != nil {
		s.profiler.Record(entry.id, time.Since(start))
	}
}

// Run ticks at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("scheduler running", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "ticks", s.Ticks())
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}
