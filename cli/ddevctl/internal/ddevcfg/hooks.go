package ddevcfg

import (
	"gopkg.in/yaml.v3"
)

// HookStep is one entry of a DDEV hook list; exactly one field is set.
type HookStep struct {
	Exec     string `yaml:"exec,omitempty"`
	ExecHost string `yaml:"exec-host,omitempty"`
}

// HookEvent groups steps under a DDEV lifecycle event such as post-start.
type HookEvent struct {
	Name  string
	Steps []HookStep
}

// DefaultHooks are the hooks every Drupal Env project runs. self is the
// command that invokes ddevctl on the host.
func DefaultHooks(self string) []HookEvent {
	cleanup := HookStep{ExecHost: self + " common:remove-settings-php-changes"}
	return []HookEvent{
		{Name: "post-config", Steps: []HookStep{cleanup}},
		{Name: "post-start", Steps: []HookStep{
			{Exec: "env COMPOSER_DEV=1 ./orch/build.sh;"},
			{Exec: "./orch/build_node.sh;"},
			cleanup,
		}},
	}
}

func hooksNode(events []HookEvent) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, ev := range events {
		var steps yaml.Node
		if err := steps.Encode(ev.Steps); err != nil {
			return nil, err
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ev.Name}, &steps)
	}
	return m, nil
}

// EnsureHooks adds a hooks block to config.yaml unless one already exists.
// It reports whether the file changed.
func (f Files) EnsureHooks(events []HookEvent) (bool, error) {
	if !f.Exists() {
		return false, ErrNotConfigured
	}
	doc, err := f.LoadShared()
	if err != nil {
		return false, err
	}
	if doc.Has("hooks") {
		return false, nil
	}
	n, err := hooksNode(events)
	if err != nil {
		return false, err
	}
	if err := doc.Set("hooks", n); err != nil {
		return false, err
	}
	if err := f.SaveShared(doc); err != nil {
		return false, err
	}
	return true, nil
}
