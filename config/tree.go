package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/behaviormesh/behavior"
	"github.com/hupe1980/behaviormesh/core"
)

// TreeSpec is the YAML shape of a behavior tree definition.
type TreeSpec struct {
	Name string   `yaml:"name"`
	Root NodeSpec `yaml:"root"`
}

// NodeSpec declares one node of the tree. Kind selects the node type;
// composites use Children, decorators use Child, leaves resolve Ref against
// the registry.
type NodeSpec struct {
	Kind     string         `yaml:"kind"`
	Ref      string         `yaml:"ref,omitempty"`
	Params   map[string]any `yaml:"params,omitempty"`
	Child    *NodeSpec      `yaml:"child,omitempty"`
	Children []NodeSpec     `yaml:"children,omitempty"`
	Weight   float64        `yaml:"weight,omitempty"`
	When     string         `yaml:"when,omitempty"`
}

// ParseTree decodes a YAML document into a TreeSpec.
func ParseTree(data []byte) (*TreeSpec, error) {
	var spec TreeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("config: parse tree: %w", err)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("config: tree spec missing name")
	}
	if spec.Root.Kind == "" {
		return nil, fmt.Errorf("config: tree %q missing root node", spec.Name)
	}
	return &spec, nil
}

// BuildTree assembles a behavior tree from a spec.
func (r *Registry) BuildTree(spec *TreeSpec, optFns ...behavior.TreeOption) (*behavior.Tree, error) {
	root, err := r.buildNode(spec.Root)
	if err != nil {
		return nil, fmt.Errorf("config: tree %q: %w", spec.Name, err)
	}
	return behavior.NewTree(spec.Name, root, optFns...), nil
}

func (r *Registry) buildNode(ns NodeSpec) (core.Behavior, error) {
	switch ns.Kind {
	case "sequence":
		children, err := r.buildChildren(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewSequence(children...), nil

	case "selector":
		children, err := r.buildChildren(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewSelector(children...), nil

	case "parallel":
		children, err := r.buildChildren(ns)
		if err != nil {
			return nil, err
		}
		policy := behavior.ParallelPolicy{
			MinSuccess: paramInt(ns.Params, "min_success", 0),
			MinFailure: paramInt(ns.Params, "min_failure", 0),
		}
		return behavior.NewParallel(policy, children...), nil

	case "random":
		children, err := r.buildChildren(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewRandomSelector(children...), nil

	case "weighted":
		ws := behavior.NewWeightedSelector()
		for _, cs := range ns.Children {
			child, err := r.buildNode(cs)
			if err != nil {
				return nil, err
			}
			weight := cs.Weight
			if weight == 0 {
				weight = 1
			}
			if err := ws.Add(child, weight); err != nil {
				return nil, err
			}
		}
		return ws, nil

	case "inverter":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewInverter(child), nil

	case "retry":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		var opts []behavior.RetryOption
		if raw, ok := ns.Params["delay"]; ok {
			d, err := asDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("retry: %w", err)
			}
			opts = append(opts, behavior.WithRetryDelay(d))
		}
		if b, ok := ns.Params["backoff"].(bool); ok && b {
			opts = append(opts, behavior.WithExponentialBackoff())
		}
		return behavior.NewRetry(child, paramInt(ns.Params, "max_retries", 1), opts...), nil

	case "timeout":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		d, err := paramDuration(ns.Params, "duration")
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		return behavior.NewTimeout(child, d), nil

	case "cooldown":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		d, err := paramDuration(ns.Params, "duration")
		if err != nil {
			return nil, fmt.Errorf("cooldown: %w", err)
		}
		return behavior.NewCooldown(child, d), nil

	case "repeat":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewRepeat(child, paramInt(ns.Params, "count", behavior.RepeatForever)), nil

	case "until_success":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewUntilSuccess(child, paramInt(ns.Params, "max_attempts", 0)), nil

	case "until_failure":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		return behavior.NewUntilFailure(child, paramInt(ns.Params, "max_attempts", 0)), nil

	case "conditional":
		child, err := r.buildChild(ns)
		if err != nil {
			return nil, err
		}
		pred, err := r.predicate(ns.When)
		if err != nil {
			return nil, err
		}
		return behavior.NewConditional(pred, child), nil

	case "condition":
		pred, err := r.predicate(ns.Ref)
		if err != nil {
			return nil, err
		}
		return behavior.NewCondition(pred), nil

	case "wait":
		d, err := paramDuration(ns.Params, "duration")
		if err != nil {
			return nil, fmt.Errorf("wait: %w", err)
		}
		return behavior.NewWait(d), nil

	case "action":
		factory, err := r.behavior(ns.Ref)
		if err != nil {
			return nil, err
		}
		return factory(ns.Params)

	default:
		return nil, fmt.Errorf("config: unknown node kind %q", ns.Kind)
	}
}

func (r *Registry) buildChild(ns NodeSpec) (core.Behavior, error) {
	if ns.Child == nil {
		return nil, fmt.Errorf("config: %s node requires a child", ns.Kind)
	}
	return r.buildNode(*ns.Child)
}

func (r *Registry) buildChildren(ns NodeSpec) ([]core.Behavior, error) {
	if len(ns.Children) == 0 {
		return nil, fmt.Errorf("config: %s node requires children", ns.Kind)
	}
	children := make([]core.Behavior, 0, len(ns.Children))
	for _, cs := range ns.Children {
		child, err := r.buildNode(cs)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func paramInt(params map[string]any, key string, fallback int) int {
	if raw, ok := params[key]; ok {
		switch v := raw.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return fallback
}

func asDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		return time.ParseDuration(v)
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	default:
		return 0, fmt.Errorf("unsupported duration type %T", raw)
	}
}
