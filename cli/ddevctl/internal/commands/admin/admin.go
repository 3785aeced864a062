package admin

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddevcfg"
)

// Register adds the ddev-admin commands to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "ddev-admin:init",
		Summary: "Configure DDEV for this project and start it for the first time.",
		Handler: initProject,
	})
	r.Register(cmdregistry.Command{
		Name:    "ddev-admin:config",
		Summary: "Run the interactive ddev config and add the Drupal Env hooks.",
		Handler: configure,
	})
	r.Register(cmdregistry.Command{
		Name:    "ddev-admin:set-required-shared-services",
		Summary: "Change the web server, database, PHP and NodeJS versions.",
		Handler: setRequiredSharedServices,
	})
	r.Register(cmdregistry.Command{
		Name:    "ddev-admin:set-optional-shared-services",
		Summary: "Add or remove cache and search servers.",
		Handler: setOptionalSharedServices,
	})
	r.Register(cmdregistry.Command{
		Name:    "ddev-admin:solr-config",
		Summary: "Copy the Solr config from Drupal to the Solr server config directory.",
		Handler: solrConfig,
	})
}

type step struct {
	intro    string
	command  string
	required bool
}

func initProject(ctx *cmdregistry.Context) error {
	if ctx.Files.Exists() && !ctx.IO.Confirm(fmt.Sprintf("DDEV is already set up, are you sure you want to update your %s file?", ddevcfg.SharedFile), false) {
		ctx.IO.Say("Cancelled.")
		return nil
	}
	later := func(command string) string {
		return fmt.Sprintf(" This can be run by itself later via `%s %s`.", ctx.Self, command)
	}
	steps := []step{
		{intro: "Running through the interactive configuration of DDEV." + later("ddev-admin:config"), command: "ddev-admin:config", required: true},
		{intro: "Setting required shared services." + later("ddev-admin:set-required-shared-services"), command: "ddev-admin:set-required-shared-services"},
		{intro: "DDEV will now start up and install Drupal so that the scripts can work on your current install.", command: "ddev:init", required: true},
		{intro: "Setting optional shared services." + later("ddev-admin:set-optional-shared-services"), command: "ddev-admin:set-optional-shared-services"},
		{intro: "Taking action after a local has been installed." + later("common-admin:post-local-started"), command: "common-admin:post-local-started"},
	}
	for _, s := range steps {
		ctx.IO.EnterToContinue(s.intro)
		if err := ctx.Call(s.command); err != nil {
			if s.required {
				return fmt.Errorf("%s: %w", s.command, err)
			}
			log.WithError(err).WithField("command", s.command).Warn("step failed, continuing")
			ctx.IO.Error(err.Error())
		}
	}
	return nil
}

// configure runs `ddev config` until it succeeds, then makes sure the
// project hooks and the Drupal Env marker variable are in place.
func configure(ctx *cmdregistry.Context) error {
	for {
		err := ctx.DDEV.Config(ctx.Ctx)
		if err == nil {
			break
		}
		if !ctx.IO.Interactive() {
			return err
		}
		ctx.IO.Error(err.Error())
		if !ctx.IO.Confirm("ddev config did not finish, would you like to try again?", true) {
			return err
		}
	}
	changed, err := ctx.Files.EnsureHooks(ddevcfg.DefaultHooks(ctx.Self))
	switch {
	case errors.Is(err, ddevcfg.ErrNotConfigured) && ctx.DryRun:
		log.Info("dry run: config.yaml not written, skipping hooks")
	case err != nil:
		return err
	case changed:
		ctx.IO.Say(ddevcfg.SharedSavedNotice)
	}
	ctx.IO.Writeln("Let DDEV know this is a Drupal Env local environment.")
	return ctx.Dotenv.Set(ctx.Ctx, "drupal-env-local", "1")
}
