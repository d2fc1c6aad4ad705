// Package config loads state machine and behavior tree definitions from YAML
// documents. Declarative specs reference predicates, behaviors and states by
// name; a Registry maps those names to Go constructors so the topology lives
// in data while the logic stays in code.
package config
