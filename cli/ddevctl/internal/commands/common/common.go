package common

import (
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

// SyncCoreExtension marks a site whose configuration has been exported.
const SyncCoreExtension = "config/sync/core.extension.yml"

// Register adds the common commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "common:remove-settings-php-changes",
		Summary: "Remove the include DDEV adds to settings.php.",
		Handler: removeSettingsPhpChanges,
	})
	r.Register(cmdregistry.Command{
		Name:    "common:shortcuts-help",
		Summary: "Explain the shortcut scripts and optionally rewrite them.",
		Handler: shortcutsHelp,
	})
	r.Register(cmdregistry.Command{
		Name:    "common-admin:post-local-started",
		Summary: "Actions to take once a local environment is running.",
		Handler: postLocalStarted,
	})
	r.Register(cmdregistry.Command{
		Name:    "si",
		Summary: "Install Drupal from configuration, or the standard profile.",
		Handler: siteInstall,
	})
	r.Register(cmdregistry.Command{
		Name:    "su",
		Summary: "Update an installed site like a production deployment.",
		Handler: siteUpdate,
	})
}

func removeSettingsPhpChanges(ctx *cmdregistry.Context) error {
	return workflow.RemoveSettingsPhpChanges(ctx)
}

func postLocalStarted(ctx *cmdregistry.Context) error {
	if err := workflow.RemoveSettingsPhpChanges(ctx); err != nil {
		return err
	}
	ctx.IO.Say("Use the one time login link below to log in.")
	return workflow.Drush(ctx, "user:login")
}

func siteInstall(ctx *cmdregistry.Context) error {
	args := []string{"site:install", "standard", "-y"}
	if workflow.FileExists(ctx, SyncCoreExtension) {
		ctx.IO.Say("Installing Drupal from existing configuration.")
		args = []string{"site:install", "--existing-config", "-y"}
	} else {
		ctx.IO.Say("No exported configuration found, installing the standard profile.")
	}
	if err := workflow.Drush(ctx, args...); err != nil {
		return err
	}
	if err := workflow.RemoveSettingsPhpChanges(ctx); err != nil {
		return err
	}
	return workflow.Drush(ctx, "user:login")
}

func siteUpdate(ctx *cmdregistry.Context) error {
	if err := workflow.RequireDrupalInstalled(ctx); err != nil {
		return err
	}
	return workflow.Drush(ctx, "deploy", "-y")
}
