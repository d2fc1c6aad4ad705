package behavior

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/behaviormesh/core"
)

// WeightedSelector behaves like RandomSelector but biases child selection by
// weight: a child is picked with probability weight/totalWeight and then runs
// until it stops returning StatusRunning. Weights must be strictly positive;
// AddChild without an explicit weight defaults to 1.0.
type WeightedSelector struct {
	rng       *rand.Rand
	children  []core.Behavior
	weights   []float64
	total     float64
	current   int
	committed bool
}

// NewWeightedSelector creates a weighted selector seeded from the wall clock.
func NewWeightedSelector() *WeightedSelector {
	return NewWeightedSelectorSeeded(time.Now().UnixNano())
}

// NewWeightedSelectorSeeded creates a weighted selector with a fixed seed for
// deterministic child selection.
func NewWeightedSelectorSeeded(seed int64) *WeightedSelector {
	return &WeightedSelector{rng: rand.New(rand.NewSource(seed))}
}

// Add appends a child with the given weight. The weight must be strictly
// positive; anything else is a configuration error.
func (s *WeightedSelector) Add(child core.Behavior, weight float64) error {
	if child == nil {
		return fmt.Errorf("weighted selector: child must not be nil")
	}
	if weight <= 0 {
		return fmt.Errorf("weighted selector: weight must be greater than 0, got %v", weight)
	}
	s.children = append(s.children, child)
	s.weights = append(s.weights, weight)
	s.total += weight
	return nil
}

// AddChild appends a child with the default weight of 1.0.
func (s *WeightedSelector) AddChild(child core.Behavior) {
	_ = s.Add(child, 1.0)
}

// Children returns a shallow copy of the child behaviors.
func (s *WeightedSelector) Children() []core.Behavior {
	out := make([]core.Behavior, len(s.children))
	copy(out, s.children)
	return out
}

// Weight returns the weight of the child at index i.
func (s *WeightedSelector) Weight(i int) (float64, error) {
	if i < 0 || i >= len(s.weights) {
		return 0, fmt.Errorf("weighted selector: child index %d out of range", i)
	}
	return s.weights[i], nil
}

// SetWeight replaces the weight of the child at index i.
func (s *WeightedSelector) SetWeight(i int, weight float64) error {
	if i < 0 || i >= len(s.weights) {
		return fmt.Errorf("weighted selector: child index %d out of range", i)
	}
	if weight <= 0 {
		return fmt.Errorf("weighted selector: weight must be greater than 0, got %v", weight)
	}
	s.total += weight - s.weights[i]
	s.weights[i] = weight
	return nil
}

// TotalWeight returns the sum of all child weights.
func (s *WeightedSelector) TotalWeight() float64 { return s.total }

// Probability returns the selection probability of the child at index i.
func (s *WeightedSelector) Probability(i int) float64 {
	if i < 0 || i >= len(s.weights) || s.total == 0 {
		return 0
	}
	return s.weights[i] / s.total
}

func (s *WeightedSelector) pick() int {
	value := s.rng.Float64() * s.total
	cumulative := 0.0
	for i, w := range s.weights {
		cumulative += w
		if value <= cumulative {
			return i
		}
	}
	return len(s.children) - 1
}

// OnStart drops any child commitment.
func (s *WeightedSelector) OnStart(ctx *core.ExecutionContext) {
	s.committed = false
}

// Execute picks a weighted child if needed and ticks it.
func (s *WeightedSelector) Execute(ctx *core.ExecutionContext) core.Status {
	if len(s.children) == 0 {
		return core.StatusFailure
	}
	if !s.committed {
		s.current = s.pick()
		s.children[s.current].OnStart(ctx)
		s.committed = true
	}
	child := s.children[s.current]
	status := child.Execute(ctx)
	if status.Terminal() {
		child.OnEnd(ctx, status)
		s.committed = false
	}
	return status
}

// OnEnd forwards the final status to a still-committed child.
func (s *WeightedSelector) OnEnd(ctx *core.ExecutionContext, status core.Status) {
	if s.committed && s.current < len(s.children) {
		s.children[s.current].OnEnd(ctx, status)
	}
	s.committed = false
}
