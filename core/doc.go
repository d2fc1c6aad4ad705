// Package core defines the shared vocabulary of the BehaviorMesh decision
// engines: the tri-state Status, the Behavior and Predicate contracts, the
// per-agent Blackboard and the ExecutionContext handle passed into every
// behavior and state callback.
//
// The behavior tree engine lives in package behavior and the hierarchical
// state machine engine in package fsm; both consume only the types defined
// here, which is what lets them compose without depending on each other's
// internals.
package core
