package behavior

import (
	"time"

	"github.com/hupe1980/behaviormesh/core"
	"github.com/hupe1980/behaviormesh/logging"
)

// Tree owns exactly one root behavior and drives it across ticks. It records
// the most recent status and whether the root returned RUNNING on the
// previous tick; the root's OnStart is only invoked when the tree is not
// already running. One tree instance is owned by exactly one agent.
type Tree struct {
	name       string
	root       core.Behavior
	logger     logging.Logger
	lastStatus core.Status
	running    bool
	ticked     bool
}

// TreeOption customizes a Tree.
type TreeOption func(*Tree)

// WithTreeLogger sets the tree logger.
func WithTreeLogger(l logging.Logger) TreeOption {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTree creates a tree around a root behavior.
func NewTree(name string, root core.Behavior, optFns ...TreeOption) *Tree {
	t := &Tree{name: name, root: root, logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(t)
	}
	return t
}

// Name returns the tree name.
func (t *Tree) Name() string { return t.name }

// Root returns the root behavior.
func (t *Tree) Root() core.Behavior { return t.root }

// Running reports whether the root returned RUNNING on the previous tick.
func (t *Tree) Running() bool { return t.running }

// LastStatus returns the most recent tick result and whether the tree has
// been ticked at all.
func (t *Tree) LastStatus() (core.Status, bool) {
	return t.lastStatus, t.ticked
}

// Tick drives the root by one step. The root's OnStart runs implicitly when
// the tree was not already running, and its OnEnd runs as soon as a terminal
// status is reached.
func (t *Tree) Tick(ctx *core.ExecutionContext) core.Status {
	if t.root == nil {
		return core.StatusFailure
	}

	start := time.Now()
	if !t.running {
		t.root.OnStart(ctx)
	}

	status := t.root.Execute(ctx)
	if status.Terminal() {
		t.root.OnEnd(ctx, status)
	}

	t.running = status == core.StatusRunning
	t.lastStatus = status
	t.ticked = true

	if status.Terminal() {
		t.logger.Debug("tree run completed", "tree", t.name, "status", status.String(), "duration", time.Since(start))
	}
	return status
}

// Abort ends a running tree early through the same OnEnd cleanup path used by
// normal completion. Aborting an idle tree is a no-op.
func (t *Tree) Abort(ctx *core.ExecutionContext) {
	if !t.running || t.root == nil {
		return
	}
	t.root.OnEnd(ctx, core.StatusFailure)
	t.running = false
	t.lastStatus = core.StatusFailure
	t.logger.Debug("tree aborted", "tree", t.name)
}
