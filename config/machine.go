package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/behaviormesh/fsm"
)

// MachineSpec is the YAML shape of a state machine definition.
type MachineSpec struct {
	Name        string           `yaml:"name"`
	Initial     string           `yaml:"initial,omitempty"`
	States      []StateSpec      `yaml:"states"`
	Transitions []TransitionSpec `yaml:"transitions,omitempty"`
}

// StateSpec declares one state. Type selects a registered state factory;
// an empty type yields a plain idle state. A non-empty Machine makes the
// state hierarchical, wrapping the nested machine.
type StateSpec struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type,omitempty"`
	Params  map[string]any `yaml:"params,omitempty"`
	Machine *MachineSpec   `yaml:"machine,omitempty"`
}

// TransitionSpec declares one transition. When names a registered predicate.
type TransitionSpec struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	When     string `yaml:"when"`
	Priority int    `yaml:"priority,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

// ParseMachine decodes a YAML document into a MachineSpec.
func ParseMachine(data []byte) (*MachineSpec, error) {
	var spec MachineSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("config: parse machine: %w", err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("config: machine spec missing name")
	}
	if len(spec.States) == 0 {
		return nil, fmt.Errorf("config: machine %q declares no states", spec.Name)
	}
	return &spec, nil
}

// BuildMachine assembles a state machine from a spec, resolving state types
// and transition predicates against the registry.
func (r *Registry) BuildMachine(spec *MachineSpec) (*fsm.StateMachine, error) {
	mb := fsm.NewMachineBuilder(spec.Name)

	for _, ss := range spec.States {
		state, err := r.buildState(ss)
		if err != nil {
			return nil, err
		}
		mb.State(state)
	}

	if spec.Initial != "" {
		mb.Initial(spec.Initial)
	}

	for _, ts := range spec.Transitions {
		pred, err := r.predicate(ts.When)
		if err != nil {
			return nil, fmt.Errorf("config: machine %q: %w", spec.Name, err)
		}
		tb := fsm.From(ts.From).To(ts.To).When(pred).Priority(ts.Priority)
		if ts.Name != "" {
			tb = tb.Name(ts.Name)
		}
		t, err := tb.Build()
		if err != nil {
			return nil, fmt.Errorf("config: machine %q: %w", spec.Name, err)
		}
		mb.Transition(t)
	}

	machine, err := mb.Build()
	if err != nil {
		return nil, fmt.Errorf("config: machine %q: %w", spec.Name, err)
	}
	return machine, nil
}

func (r *Registry) buildState(ss StateSpec) (fsm.State, error) {
	if ss.Name == "" {
		return nil, fmt.Errorf("config: state spec missing name")
	}

	if ss.Machine != nil {
		child, err := r.BuildMachine(ss.Machine)
		if err != nil {
			return nil, err
		}
		return fsm.NewHierarchicalState(ss.Name, child), nil
	}

	switch ss.Type {
	case "":
		return fsm.NewIdleState(ss.Name), nil
	case "timed":
		d, err := paramDuration(ss.Params, "duration")
		if err != nil {
			return nil, fmt.Errorf("config: state %q: %w", ss.Name, err)
		}
		var opts []fsm.TimedStateOption
		if flag, ok := ss.Params["flag"].(string); ok && flag != "" {
			opts = append(opts, fsm.WithTimeoutFlag(flag))
		}
		return fsm.NewTimedState(ss.Name, d, opts...), nil
	default:
		factory, err := r.state(ss.Type)
		if err != nil {
			return nil, fmt.Errorf("config: state %q: %w", ss.Name, err)
		}
		return factory(ss.Name, ss.Params)
	}
}

func paramDuration(params map[string]any, key string) (time.Duration, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing param %q", key)
	}
	switch v := raw.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("param %q: %w", key, err)
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	default:
		return 0, fmt.Errorf("param %q: unsupported type %T", key, raw)
	}
}
