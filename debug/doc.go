// Package debug provides inspection helpers for development and tests: a
// tree structure printer, blackboard dumps and a lightweight per-agent tick
// profiler. Nothing here is required at runtime.
package debug
