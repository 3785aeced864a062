// Package workflow holds the steps several commands share: the restart
// prompt, Drush and Composer calls routed through the current environment,
// and the interactive editor for config.yaml values.
package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/config"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/settingsphp"
)

// ErrDrupalNotInstalled is returned when Drush cannot bootstrap the site.
var ErrDrupalNotInstalled = errors.New("drupal is not installed yet, please run ddev:init first")

const (
	notSet        = "<not set>"
	notOverridden = "<not overridden>"
	noEffective   = "<no effective value>"
)

// RebuildRequired offers a `ddev restart` when required is set. The default
// answer is no.
func RebuildRequired(c *cmdregistry.Context, required bool, reason string) error {
	if !required {
		return nil
	}
	msg := "A DDEV restart is required, please confirm to do so."
	if reason != "" {
		msg = fmt.Sprintf("A DDEV restart is required because %s, please confirm to do so.", reason)
	}
	if !c.IO.Confirm(msg, false) {
		return nil
	}
	return c.DDEV.Restart(c.Ctx)
}

func Drush(c *cmdregistry.Context, args ...string) error {
	name, rest := command(c, c.Env.DrushCommand(), args)
	return c.Runner.Run(c.Ctx, name, rest...)
}

// DrushOutput runs Drush quietly; it executes even in dry-run.
func DrushOutput(c *cmdregistry.Context, args ...string) (string, error) {
	name, rest := command(c, c.Env.DrushCommand(), args)
	return c.Runner.Output(c.Ctx, name, rest...)
}

func Composer(c *cmdregistry.Context, args ...string) error {
	name, rest := command(c, c.Env.ComposerCommand(), args)
	return c.Runner.Run(c.Ctx, name, rest...)
}

// command appends args to prefix and swaps in the configured ddev binary.
func command(c *cmdregistry.Context, prefix, args []string) (string, []string) {
	name := prefix[0]
	if name == "ddev" && c.DDEV != nil {
		name = c.DDEV.Binary()
	}
	rest := append(append([]string{}, prefix[1:]...), args...)
	return name, rest
}

// RequireDrupalInstalled checks that Drush reports a successful bootstrap.
func RequireDrupalInstalled(c *cmdregistry.Context) error {
	out, err := DrushOutput(c, "status", "--field=bootstrap")
	if err != nil {
		log.WithError(err).Debug("drush status failed")
		return ErrDrupalNotInstalled
	}
	if !strings.Contains(out, "Successful") {
		return ErrDrupalNotInstalled
	}
	return nil
}

// Docroot is config.yaml's docroot, "web" when unset.
func Docroot(c *cmdregistry.Context) string {
	doc, err := c.Files.LoadShared()
	if err != nil {
		return "web"
	}
	if v, ok := doc.Value("docroot"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return "web"
}

// RemoveSettingsPhpChanges strips the include `ddev config` adds to
// settings.php.
func RemoveSettingsPhpChanges(c *cmdregistry.Context) error {
	path := settingsphp.Path(c.Root, Docroot(c))
	changed, err := settingsphp.RemoveDdevInclude(path)
	if err != nil {
		return fmt.Errorf("settings.php: %w", err)
	}
	if changed {
		c.IO.Say("Removed the DDEV generated include from " + relTo(c.Root, path) + ".")
	}
	return nil
}

// EnsureOriginalInstallDirectory records the directory name of the first
// checkout so duplicates of duplicates are still named after it.
func EnsureOriginalInstallDirectory(c *cmdregistry.Context) (string, error) {
	p, err := config.LoadProject(c.Root)
	if err != nil {
		return "", err
	}
	if v := p.GetString(config.KeyOriginalInstallDirectory, ""); v != "" {
		return v, nil
	}
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	name := filepath.Base(abs)
	p.Set(config.KeyOriginalInstallDirectory, name)
	if err := p.Save(); err != nil {
		return "", err
	}
	return name, nil
}

// SetDefaultLocalEnvironment stores which local environment the shortcut
// scripts should use.
func SetDefaultLocalEnvironment(c *cmdregistry.Context, name string) error {
	p, err := config.LoadProject(c.Root)
	if err != nil {
		return err
	}
	p.Set(config.KeyDefaultLocalEnvironment, name)
	return p.Save()
}

// AskConfigValue shows the shared, local and effective value of a
// config.yaml key and lets the operator change the shared one through
// `ddev config`, which validates it.
func AskConfigValue(c *cmdregistry.Context, key, description string) error {
	if err := c.Files.RequireInit(); err != nil {
		return err
	}
	shared, err := c.Files.LoadShared()
	if err != nil {
		return err
	}
	local, err := c.Files.LoadLocal()
	if err != nil {
		return err
	}
	current, _ := shared.Value(key)
	effective := noEffective
	if values, err := c.DDEV.EffectiveConfig(c.Ctx); err != nil {
		log.WithError(err).Warn("could not read effective DDEV config")
	} else if v := values[key]; v != "" {
		effective = v
	}
	localValue, _ := local.Value(key)

	c.IO.Section(fmt.Sprintf("Current configuration value for key '%s'.", key))
	c.IO.Note("Passing an invalid value will let you see the options that are available, then you can try again right away.")
	c.IO.Table(
		[]string{"Shared (config.yaml)", "Local (Personal Override)", "Effective Value"},
		[][]string{{orDefault(current, notSet), orDefault(localValue, notOverridden), effective}},
	)

	question := fmt.Sprintf("What value would you like to set for your %s?", description)
	if key == "database" {
		question += ` If the database already exists, you may get an error about not being able to switch. If you do, type "delete"`
	}
	for {
		answer := c.IO.Ask(question, current)
		if key == "database" && answer == "delete" {
			if err := c.DDEV.Delete(c.Ctx, true, false); err != nil {
				c.IO.Error(err.Error())
			}
			continue
		}
		if answer == current {
			c.IO.Yell("No change made.")
			return nil
		}
		err := c.DDEV.ConfigSet(c.Ctx, key, answer)
		if err == nil {
			return nil
		}
		if !c.IO.Interactive() {
			return err
		}
		c.IO.Error(err.Error())
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

// FileExists reports whether rel exists under the project root.
func FileExists(c *cmdregistry.Context, rel string) bool {
	_, err := os.Stat(filepath.Join(c.Root, filepath.FromSlash(rel)))
	return err == nil
}
