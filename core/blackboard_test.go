package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlackboard_SetGet(t *testing.T) {
	bb := NewBlackboard()

	bb.Set("target", "enemy-1")
	v, ok := bb.Get("target")
	assert.True(t, ok)
	assert.Equal(t, "enemy-1", v)

	_, ok = bb.Get("missing")
	assert.False(t, ok)
}

func TestBlackboard_Remove(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("key", 1)

	bb.Remove("key")
	_, ok := bb.Get("key")
	assert.False(t, ok)
	assert.False(t, bb.Has("key"))

	// Removing an absent key is a no-op.
	bb.Remove("key")
	assert.Equal(t, 0, bb.Len())
}

func TestBlackboard_Overwrite(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("hp", 10)
	bb.Set("hp", 5)

	v, _ := bb.Get("hp")
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, bb.Len())
}

func TestBlackboard_KeysSorted(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("b", 2)
	bb.Set("a", 1)
	bb.Set("c", 3)

	assert.Equal(t, []string{"a", "b", "c"}, bb.Keys())
}

func TestBlackboard_Clear(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("a", 1)
	bb.Set("b", 2)

	bb.Clear()
	assert.Equal(t, 0, bb.Len())
	assert.False(t, bb.Has("a"))
}

func TestBlackboard_TypedValue(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("count", 42)

	count, ok := Value[int](bb, "count")
	assert.True(t, ok)
	assert.Equal(t, 42, count)

	// Wrong type behaves like an absent key.
	_, ok = Value[string](bb, "count")
	assert.False(t, ok)

	_, ok = Value[int](bb, "missing")
	assert.False(t, ok)
}

func TestBlackboard_ValueOr(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("speed", 2.5)

	assert.Equal(t, 2.5, ValueOr(bb, "speed", 1.0))
	assert.Equal(t, 1.0, ValueOr(bb, "missing", 1.0))
	// Type mismatch falls back too.
	assert.Equal(t, "walk", ValueOr(bb, "speed", "walk"))
}

func TestBlackboard_SnapshotIsCopy(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("a", 1)

	snap := bb.Snapshot()
	snap["a"] = 99
	snap["b"] = 2

	v, _ := bb.Get("a")
	assert.Equal(t, 1, v)
	assert.False(t, bb.Has("b"))
}
