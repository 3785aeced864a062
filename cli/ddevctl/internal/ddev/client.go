package ddev

import (
	"context"
	"strings"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/runner"
)

// DotenvFile is the env file DDEV loads into the web container.
const DotenvFile = ".ddev/.env"

// Client wraps the ddev binary.
type Client struct {
	Bin    string
	Runner runner.Runner
}

// Binary is the ddev executable, "ddev" unless configured otherwise.
func (c *Client) Binary() string {
	if strings.TrimSpace(c.Bin) == "" {
		return "ddev"
	}
	return c.Bin
}

// Run executes `ddev args...` with the terminal attached.
func (c *Client) Run(ctx context.Context, args ...string) error {
	return c.Runner.Run(ctx, c.Binary(), args...)
}

// Output executes `ddev args...` quietly.
func (c *Client) Output(ctx context.Context, args ...string) (string, error) {
	return c.Runner.Output(ctx, c.Binary(), args...)
}

// Config runs the interactive `ddev config`, or a non-interactive one when
// flags are given.
func (c *Client) Config(ctx context.Context, flags ...string) error {
	return c.Run(ctx, append([]string{"config"}, flags...)...)
}

// ConfigSet changes one config.yaml key through `ddev config`, which
// validates the value. Keys use config.yaml spelling (php_version).
func (c *Client) ConfigSet(ctx context.Context, key, value string) error {
	return c.Config(ctx, "--"+FlagName(key)+"="+value)
}

// FlagName converts a config.yaml key to its `ddev config` flag spelling.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func (c *Client) Start(ctx context.Context) error   { return c.Run(ctx, "start") }
func (c *Client) Restart(ctx context.Context) error { return c.Run(ctx, "restart") }

// Delete removes the project's containers and database.
func (c *Client) Delete(ctx context.Context, omitSnapshot, yes bool) error {
	args := []string{"delete"}
	if omitSnapshot {
		args = append(args, "--omit-snapshot")
	}
	if yes {
		args = append(args, "-y")
	}
	return c.Run(ctx, args...)
}

func (c *Client) Xdebug(ctx context.Context, on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	return c.Run(ctx, "xdebug", state)
}

// InstalledAddons returns the raw `ddev addon list --installed` output.
func (c *Client) InstalledAddons(ctx context.Context) (string, error) {
	return c.Output(ctx, "addon", "list", "--installed")
}

func (c *Client) AddonGet(ctx context.Context, repo string) error {
	return c.Run(ctx, "addon", "get", repo)
}

func (c *Client) AddonRemove(ctx context.Context, repo string) error {
	return c.Run(ctx, "addon", "remove", repo)
}

// DotenvSet writes key=value to .ddev/.env. Keys use the flag spelling
// (drush-allow-xdebug); DDEV stores them upper-snake-cased.
func (c *Client) DotenvSet(ctx context.Context, key, value string) error {
	return c.Run(ctx, "dotenv", "set", DotenvFile, "--"+key+"="+value)
}

// EffectiveConfig returns every config key merged from all config.*.yaml files.
func (c *Client) EffectiveConfig(ctx context.Context) (map[string]string, error) {
	out, err := c.Output(ctx, "debug", "e")
	if err != nil {
		return nil, err
	}
	return ParseEffectiveConfig(out), nil
}

// Version returns the first line of `ddev --version`.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.Output(ctx, "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line), nil
}

// ParseEffectiveConfig parses `ddev debug e` output. The first line lists the
// files that were loaded; every following line is "key: value". Struct values
// print as "{mariadb 10.11}" and are normalised to "mariadb:10.11", the form
// `ddev config` accepts.
func ParseEffectiveConfig(out string) map[string]string {
	values := map[string]string{}
	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, "{") {
			value = strings.NewReplacer("{", "", "}", "", " ", ":").Replace(value)
		}
		if _, seen := values[key]; !seen {
			values[key] = value
		}
	}
	return values
}
