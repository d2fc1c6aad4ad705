// Package behavior implements the behavior tree engine: the Tree wrapper,
// composite nodes (Sequence, Selector, Parallel, RandomSelector,
// WeightedSelector), decorator nodes (Inverter, Retry, Timeout, Cooldown,
// Repeat, UntilSuccess, UntilFailure, Conditional) and function-backed leaves
// (Action, Condition, Wait).
//
// Every node is polymorphic over core.Behavior. Node instances are stateful:
// composites and decorators hold mutable progress fields (current child
// index, attempt counts, deadlines) that are only meaningful between a
// matching OnStart/OnEnd pair; OnStart resets them. Because of this, one node
// instance belongs to exactly one tree and one agent.
package behavior
