// Package xdebug toggles Xdebug for the local DDEV environment.
package xdebug

import (
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

const drushAllowKey = "drush-allow-xdebug"

// Register adds the xdebug commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "ddev:xdebug-toggle-on-by-default",
		Summary: "Toggle whether Xdebug is on whenever DDEV starts.",
		Handler: toggleOnByDefault,
	})
	r.Register(cmdregistry.Command{
		Name:    "ddev:xdebug-toggle-drush",
		Summary: "Toggle Xdebug connections for Drush commands.",
		Handler: toggleDrush,
	})
}

// toggleOnByDefault flips xdebug_enabled in the personal config.local.yaml.
func toggleOnByDefault(ctx *cmdregistry.Context) error {
	if err := ctx.Files.RequireInit(); err != nil {
		return err
	}
	local, err := ctx.Files.LoadLocal()
	if err != nil {
		return err
	}
	enable := !local.Bool("xdebug_enabled")
	if enable {
		ctx.IO.Yell("Enabling Xdebug by default.")
	} else {
		ctx.IO.Yell("Xdebug is enabled by default, disabling now.")
	}
	if err := ctx.DDEV.Xdebug(ctx.Ctx, enable); err != nil {
		return err
	}
	if err := local.Set("xdebug_enabled", enable); err != nil {
		return err
	}
	return ctx.Files.SaveLocal(local)
}

// toggleDrush sets DRUSH_ALLOW_XDEBUG in .ddev/.env. Xdebug itself has to be
// on for Drush to connect, so it is switched on first.
func toggleDrush(ctx *cmdregistry.Context) error {
	if err := ctx.Files.RequireInit(); err != nil {
		return err
	}
	ctx.IO.Writeln("Ensuring xdebug is enabled...")
	if err := ctx.DDEV.Xdebug(ctx.Ctx, true); err != nil {
		return err
	}
	current, err := ctx.Dotenv.Get(drushAllowKey)
	if err != nil {
		return err
	}
	if current != "1" {
		ctx.IO.Warning("This will cause warning messages to flood your console if your IDE is not listening for Xdebug connections. Instead, you can run drush with the --xdebug option to trigger Xdebug to connect on a per command basis.")
		if !ctx.IO.Confirm("Do you want to continue?", true) {
			return nil
		}
		if err := ctx.Dotenv.Set(ctx.Ctx, drushAllowKey, "1"); err != nil {
			return err
		}
	} else {
		if err := ctx.Dotenv.Set(ctx.Ctx, drushAllowKey, "0"); err != nil {
			return err
		}
		ctx.IO.Writeln("You can still run drush with the --xdebug option to trigger Xdebug to connect on a per command basis.")
	}
	return workflow.RebuildRequired(ctx, true, "")
}
