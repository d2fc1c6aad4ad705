package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type agentStats struct {
	count uint64
	total time.Duration
	max   time.Duration
}

// Profiler accumulates per-agent tick durations. It implements the
// scheduler's Profiler interface and is safe for concurrent use, since
// worker goroutines record in parallel.
type Profiler struct {
	mu    sync.Mutex
	stats map[string]*agentStats
}

// NewProfiler returns an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{stats: make(map[string]*agentStats)}
}

// Record adds one tick measurement for an agent.
func (p *Profiler) Record(agentID string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.stats[agentID]
	if !ok {
		st = &agentStats{}
		p.stats[agentID] = st
	}
	st.count++
	st.total += d
	if d > st.max {
		st.max = d
	}
}

// Measure returns a stop function that records the elapsed time for an
// agent when invoked. Intended for deferred use around a unit of work.
func (p *Profiler) Measure(agentID string) func() {
	start := time.Now()
	return func() {
		p.Record(agentID, time.Since(start))
	}
}

// Count returns how many measurements an agent has.
func (p *Profiler) Count(agentID string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st, ok := p.stats[agentID]; ok {
		return st.count
	}
	return 0
}

// Average returns the mean tick duration for an agent, 0 if unmeasured.
func (p *Profiler) Average(agentID string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.stats[agentID]
	if !ok || st.count == 0 {
		return 0
	}
	return st.total / time.Duration(st.count)
}

// Max returns the worst tick duration for an agent.
func (p *Profiler) Max(agentID string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st, ok := p.stats[agentID]; ok {
		return st.max
	}
	return 0
}

// Reset discards all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = make(map[string]*agentStats)
}

// Report renders one line per agent, sorted by agent ID.
func (p *Profiler) Report() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.stats))
	for id := range p.stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	for _, id := range ids {
		st := p.stats[id]
		avg := time.Duration(0)
		if st.count > 0 {
			avg = st.total / time.Duration(st.count)
		}
		fmt.Fprintf(&sb, "%s: ticks=%d avg=%s max=%s total=%s\n", id, st.count, avg, st.max, st.total)
	}
	return sb.String()
}
