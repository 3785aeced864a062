// Package initcmd implements ddev:init, which starts a configured project
// for the first time on a developer's machine and installs Drupal.
package initcmd

import (
	"errors"
	"fmt"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/reqs"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/console"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/runner"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

// ErrRequirementsMissing stops ddev:init when ddev:reqs finds missing software.
var ErrRequirementsMissing = errors.New("unable to find all requirements, please re-run this command after installing")

const completionDocs = "https://apple.github.io/swift-argument-parser/documentation/argumentparser/installingcompletionscripts/"

var xdebugChoices = []console.Choice{
	{Key: "always", Label: "Whenever the environment starts"},
	{Key: "once", Label: "Until the next restart"},
	{Key: "no", Label: "Not right now"},
}

// Register adds ddev:init to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "ddev:init",
		Summary: "Start DDEV for the first time and install Drupal.",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if !reqs.Check(ctx) {
		return ErrRequirementsMissing
	}
	// Several local environments may be installed; the shortcuts use this one.
	if err := workflow.SetDefaultLocalEnvironment(ctx, ctx.Env.Name()); err != nil {
		return err
	}
	ctx.IO.Info(fmt.Sprintf("Common shortcuts such as ./drush.sh and ./composer.sh now run against %s. Their paths can be reset later with `%s common:shortcuts-help`.", ctx.Env.Name(), ctx.Self))
	if _, err := workflow.EnsureOriginalInstallDirectory(ctx); err != nil {
		return err
	}
	if err := ctx.DDEV.Delete(ctx.Ctx, true, true); err != nil {
		return err
	}
	if err := ctx.DDEV.Start(ctx.Ctx); err != nil {
		return err
	}
	if err := ctx.Call("si"); err != nil {
		return err
	}
	offerCompletion(ctx)

	ctx.IO.Success("Your environment has been started and Drupal site installed! Please use the one time login link to login.")
	ctx.IO.Info("You have access to a couple very useful commands, `ddev phpmyadmin` and `ddev mailpit` for database and email access.")
	ctx.IO.Info("How do I interact with my environment? Just like a normal DDEV site (https://ddev.readthedocs.io).")
	ctx.IO.Info(fmt.Sprintf(`What's different? "%[1]s si" will install a Drupal site from configuration. "%[1]s su" will update an already installed site, like a normal production deployment without destroying the database.`, ctx.Self))
	ctx.IO.Info(`Helper commands live under the "common", "xdebug", and "ddev" namespaces. Those in "common-admin" and "ddev-admin" change files that are committed and therefore affect all developers.`)
	if ctx.IO.Confirm("Would you like to reset or learn more about shortcuts or reset their paths?", false) {
		if err := ctx.Call("common:shortcuts-help"); err != nil {
			return err
		}
	}
	if err := offerXdebug(ctx); err != nil {
		return err
	}
	ctx.IO.Writeln("Run ddev launch to visit the environment or ./drush.sh uli to get a login link.")
	return nil
}

// offerCompletion prints ddev's completion scripts. A failure here does not
// stop the init.
func offerCompletion(ctx *cmdregistry.Context) {
	if !ctx.IO.Confirm("Would you like to add completion for ddev commands to your shell?", true) {
		return
	}
	runner.BestEffort(ctx.Ctx, ctx.Runner, ctx.DDEV.Binary(), "completion")
	shell := ctx.IO.Ask("What shell do you use from the above options? Hit enter to just skip this step.", "")
	if shell == "" {
		return
	}
	runner.BestEffort(ctx.Ctx, ctx.Runner, ctx.DDEV.Binary(), "completion", shell)
	ctx.IO.EnterToContinue("Please copy the above completion scripts and follow this documentation to install them " + completionDocs)
}

func offerXdebug(ctx *cmdregistry.Context) error {
	switch ctx.IO.Choice("Would you like to enable Xdebug?", xdebugChoices, "no") {
	case "always":
		if err := ctx.Call("ddev:xdebug-toggle-on-by-default"); err != nil {
			return err
		}
	case "once":
		runner.BestEffort(ctx.Ctx, ctx.Runner, ctx.DDEV.Binary(), "xdebug", "on")
	default:
		return nil
	}
	if ctx.IO.Confirm("When Xdebug is on, would you like to debug Drush commands as well?", true) {
		return ctx.Call("ddev:xdebug-toggle-drush")
	}
	return nil
}
