package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDdevBin = "ddev"
	DefaultSelf    = "ddevctl"
)

// HostConfig holds per-developer tool settings.
type HostConfig struct {
	DdevBin  string            `yaml:"ddev_bin"`
	LogLevel string            `yaml:"log_level"`
	Self     string            `yaml:"self_command"`
	Env      map[string]string `yaml:"env"`
}

// ReadHostConfig loads $DDEVCTL_CONFIG or <user config dir>/ddevctl/config.yaml.
// A missing file is not an error. The returned string is the config directory.
func ReadHostConfig() (HostConfig, string, error) {
	var cfg HostConfig
	cfg.Env = map[string]string{}
	path := strings.TrimSpace(os.Getenv("DDEVCTL_CONFIG"))
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "ddevctl", "config.yaml")
		} else if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "ddevctl", "config.yaml")
		}
	}
	if strings.TrimSpace(path) == "" {
		return cfg, "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, filepath.Dir(path), nil
		}
		return cfg, filepath.Dir(path), err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, filepath.Dir(path), err
	}
	if cfg.Env == nil {
		cfg.Env = map[string]string{}
	}
	return cfg, filepath.Dir(path), nil
}

// Resolve applies environment overrides and defaults on top of the file.
func Resolve(cfg HostConfig) HostConfig {
	if v := strings.TrimSpace(os.Getenv("DDEVCTL_DDEV_BIN")); v != "" {
		cfg.DdevBin = v
	}
	if v := strings.TrimSpace(os.Getenv("DDEVCTL_SELF")); v != "" {
		cfg.Self = v
	}
	if v := strings.TrimSpace(os.Getenv("DDEVCTL_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if os.Getenv("DDEVCTL_DEBUG") == "1" {
		cfg.LogLevel = "debug"
	}
	if strings.TrimSpace(cfg.DdevBin) == "" {
		cfg.DdevBin = DefaultDdevBin
	}
	if strings.TrimSpace(cfg.Self) == "" {
		cfg.Self = DefaultSelf
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// ApplyEnv exports cfg.Env without overriding variables already set.
func ApplyEnv(cfg HostConfig) {
	for k, v := range cfg.Env {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		_ = os.Setenv(k, v)
	}
}
