package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the per-checkout settings file; it is not meant to be committed.
const ProjectFile = ".drupal-env.local.yml"

const (
	KeyOriginalInstallDirectory = "flags.ddev.originalInstallDirectory"
	KeyDefaultLocalEnvironment  = "flags.common.defaultLocalEnvironment"
)

// ProjectConfig is a nested YAML map addressed with dotted keys.
type ProjectConfig struct {
	path   string
	values map[string]any
}

func LoadProject(root string) (*ProjectConfig, error) {
	p := &ProjectConfig{path: filepath.Join(root, ProjectFile), values: map[string]any{}}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.path, err)
	}
	if p.values == nil {
		p.values = map[string]any{}
	}
	return p, nil
}

func (p *ProjectConfig) Path() string { return p.path }

// GetString returns the scalar at key, or def when missing or not a scalar.
func (p *ProjectConfig) GetString(key, def string) string {
	var cur any = p.values
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		if cur, ok = m[part]; !ok {
			return def
		}
	}
	switch v := cur.(type) {
	case string:
		return v
	case nil, map[string]any, []any:
		return def
	default:
		return fmt.Sprint(v)
	}
}

// Set stores value at key, creating intermediate maps and replacing any
// scalar that is in the way.
func (p *ProjectConfig) Set(key string, value any) {
	parts := strings.Split(key, ".")
	m := p.values
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func (p *ProjectConfig) Save() error {
	data, err := yaml.Marshal(p.values)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
