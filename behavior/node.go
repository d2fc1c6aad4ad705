package behavior

import (
	"github.com/hupe1980/behaviormesh/core"
)

// BaseNode bundles shared child management for composite nodes. Embed it in a
// concrete composite and supply OnStart/Execute/OnEnd to satisfy
// core.Behavior.
type BaseNode struct {
	children []core.Behavior
}

// AddChild appends a child behavior.
func (b *BaseNode) AddChild(child core.Behavior) {
	if child != nil {
		b.children = append(b.children, child)
	}
}

// Children returns a shallow copy of the child behaviors for safe iteration.
func (b *BaseNode) Children() []core.Behavior {
	out := make([]core.Behavior, len(b.children))
	copy(out, b.children)
	return out
}

// Len returns the number of children.
func (b *BaseNode) Len() int { return len(b.children) }
