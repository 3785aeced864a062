package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/config"
)

// Shortcut is a script in the project root that forwards to a tool in the
// default local environment.
type Shortcut struct {
	Name        string
	DefaultPath string
	Tool        string
	Description string
}

var Shortcuts = []Shortcut{
	{Name: "drush", DefaultPath: "./drush.sh", Tool: "drush", Description: "Run Drush in the default local environment."},
	{Name: "composer", DefaultPath: "./composer.sh", Tool: "composer", Description: "Run Composer in the default local environment."},
}

func (s Shortcut) configKey() string { return "shortcuts." + s.Name }

// Script renders the shortcut. Inside the web container it calls the tool
// directly, on the host it goes through the ddev binary bin.
func (s Shortcut) Script(bin string) string {
	return fmt.Sprintf(`#!/usr/bin/env bash
# %s
if [ "${IS_DDEV_PROJECT:-}" = "true" ]; then
  exec %s "$@"
fi
exec %s %s "$@"
`, s.Description, s.Tool, bin, s.Tool)
}

func shortcutsHelp(ctx *cmdregistry.Context) error {
	p, err := config.LoadProject(ctx.Root)
	if err != nil {
		return err
	}
	env := p.GetString(config.KeyDefaultLocalEnvironment, ctx.Env.Name())
	ctx.IO.Section("Common shortcuts")
	ctx.IO.Writeln(fmt.Sprintf("Shortcuts forward to the default local environment (%s) so the same command works on the host and inside the container.", env))
	rows := make([][]string, 0, len(Shortcuts))
	for _, s := range Shortcuts {
		path := p.GetString(s.configKey(), s.DefaultPath)
		present := "No"
		if _, err := os.Stat(resolve(ctx.Root, path)); err == nil {
			present = "Yes"
		}
		rows = append(rows, []string{s.Name, path, present, s.Description})
	}
	ctx.IO.Table([]string{"Shortcut", "Path", "Exists", "Description"}, rows)

	if !ctx.IO.Confirm("Would you like to reset the shortcut scripts or change their paths?", false) {
		return nil
	}
	for _, s := range Shortcuts {
		path := ctx.IO.Ask(fmt.Sprintf("Where should the %s shortcut be written?", s.Name), p.GetString(s.configKey(), s.DefaultPath))
		if err := WriteShortcut(ctx.Root, path, ctx.DDEV.Binary(), s); err != nil {
			return err
		}
		p.Set(s.configKey(), path)
		ctx.IO.Say(fmt.Sprintf("Wrote %s.", path))
	}
	return p.Save()
}

// WriteShortcut writes s to path, relative to root unless absolute.
func WriteShortcut(root, path, bin string, s Shortcut) error {
	target := resolve(root, path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(target, []byte(s.Script(bin)), 0o755); err != nil {
		return err
	}
	// WriteFile keeps the old mode of an existing file.
	return os.Chmod(target, 0o755)
}

func resolve(root, path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}
