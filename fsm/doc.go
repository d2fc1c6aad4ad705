// Package fsm implements the hierarchical finite state machine engine:
// states with enter/update/exit lifecycles, priority-ordered predicate
// transitions, the StateMachine that evaluates at most one transition per
// update, hierarchical states owning nested machines, and the bridge types
// that let state machines and behavior trees drive each other
// (StateMachineNode, BehaviorState).
package fsm
