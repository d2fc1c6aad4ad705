package core

import (
	"sort"
	"sync"
	"time"
)

// Blackboard is the per-agent key/value memory store consulted by behaviors,
// states and external collaborators. Keys are unique within one blackboard
// and absence is distinguished from an explicitly stored nil. It is safe for
// concurrent access, but the engine's single-writer-per-tick discipline means
// all mutation for one agent normally happens on the goroutine that owns that
// agent's tick.
//
// A blackboard is exclusively owned by one agent's context and never shared
// across agents.
type Blackboard struct {
	mu      sync.RWMutex
	values  map[string]any
	updated time.Time
}

// NewBlackboard constructs an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{values: make(map[string]any)}
}

// Get returns the raw value and existence flag for a key.
func (b *Blackboard) Get(key string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok
}

// Set stores a key/value pair, updating the modification timestamp.
func (b *Blackboard) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	b.updated = time.Now()
}

// Has reports whether a key is present.
func (b *Blackboard) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.values[key]
	return ok
}

// Remove deletes a key. Removing an absent key is a no-op.
func (b *Blackboard) Remove(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	b.updated = time.Now()
}

// Len returns the number of stored keys.
func (b *Blackboard) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.values)
}

// Keys returns all keys in sorted order.
func (b *Blackboard) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes all keys. Called when an agent is detached from the engine.
func (b *Blackboard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values = make(map[string]any)
	b.updated = time.Now()
}

// Updated returns the time of the last mutation (zero before any write).
func (b *Blackboard) Updated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updated
}

// Snapshot returns a shallow defensive copy of the stored values.
func (b *Blackboard) Snapshot() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Value returns the value stored under key asserted to T. A missing key or a
// value of a different stored type both report false.
func Value[T any](b *Blackboard, key string) (T, bool) {
	var zero T
	raw, ok := b.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// ValueOr returns the typed value for key, or fallback when the key is absent
// or holds a different type. Readers must supply their own fallback; the
// blackboard never invents defaults.
func ValueOr[T any](b *Blackboard, key string, fallback T) T {
	if v, ok := Value[T](b, key); ok {
		return v
	}
	return fallback
}
