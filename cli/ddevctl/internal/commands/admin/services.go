package admin

import (
	"fmt"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/addons"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/console"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

func setRequiredSharedServices(ctx *cmdregistry.Context) error {
	if err := ctx.Files.RequireInit(); err != nil {
		return err
	}
	ctx.IO.Warning("Drupal requirements for Web Servers: https://www.drupal.org/docs/getting-started/system-requirements/web-server-requirements")
	if err := workflow.AskConfigValue(ctx, "webserver_type", "Web Server"); err != nil {
		return err
	}
	ctx.IO.Warning("Drupal requirements for Databases: https://www.drupal.org/docs/getting-started/system-requirements/database-server-requirements")
	if err := workflow.AskConfigValue(ctx, "database", "Database Server"); err != nil {
		return err
	}
	ctx.IO.Warning("Drupal requirements for PHP: https://www.drupal.org/docs/getting-started/system-requirements/php-requirements")
	if err := workflow.AskConfigValue(ctx, "php_version", "PHP Version"); err != nil {
		return err
	}
	ctx.IO.EnterToContinue(`If you need to take action during the build process, please edit the "./orch/build.sh" file. By default, this file will install composer dependencies.`)
	if err := workflow.AskConfigValue(ctx, "nodejs_version", "NodeJS Version"); err != nil {
		return err
	}
	ctx.IO.EnterToContinue(`If you need to take action during the build process, please edit the "./orch/build_node.sh" file. By default, this file will install deps with npm and run "gulp" on all custom themes that have a package.json.`)
	return nil
}

func setOptionalSharedServices(ctx *cmdregistry.Context) error {
	if err := ctx.Files.RequireInit(); err != nil {
		return err
	}
	if err := workflow.RequireDrupalInstalled(ctx); err != nil {
		return err
	}
	for _, g := range []addons.Group{addons.CacheServers, addons.SearchServers} {
		if err := toggleGroup(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

// toggleGroup lets the operator install or remove services of g until they
// choose to skip.
func toggleGroup(ctx *cmdregistry.Context, g addons.Group) error {
	for {
		list, err := ctx.DDEV.InstalledAddons(ctx.Ctx)
		if err != nil {
			return err
		}
		installed := map[string]bool{}
		choices := make([]console.Choice, 0, len(g.Services)+1)
		for _, s := range g.Services {
			installed[s.ID] = addons.Installed(list, s.ID)
			label := s.ID + " (not installed)"
			if installed[s.ID] {
				label = s.ID + " (INSTALLED, choose to uninstall)"
			}
			choices = append(choices, console.Choice{Key: s.ID, Label: label})
		}
		choices = append(choices, console.Choice{Key: "skip", Label: "Do Nothing"})

		id := ctx.IO.Choice(fmt.Sprintf("Optionally choose a %s.", g.Description), choices, "skip")
		svc, ok := g.Find(id)
		if !ok {
			return nil
		}
		enable := !installed[id]
		if err := applyDrupalSide(ctx, svc, enable); err != nil {
			return err
		}
		flag := "0"
		if enable {
			flag = "1"
		}
		if err := ctx.Dotenv.Set(ctx.Ctx, addons.EnvKey(svc.ID), flag); err != nil {
			return err
		}
		if enable {
			err = ctx.DDEV.AddonGet(ctx.Ctx, addons.Repo(svc.ID))
		} else {
			err = ctx.DDEV.AddonRemove(ctx.Ctx, addons.Repo(svc.ID))
		}
		if err != nil {
			return err
		}
		if err := workflow.RemoveSettingsPhpChanges(ctx); err != nil {
			return err
		}
		if err := workflow.RebuildRequired(ctx, true, fmt.Sprintf("the %s plugin has changed", svc.ID)); err != nil {
			return err
		}
	}
}

// applyDrupalSide adds or removes the Composer package and module that
// integrate svc with the site. Modules are uninstalled before their code is
// removed.
func applyDrupalSide(ctx *cmdregistry.Context, svc addons.Service, enable bool) error {
	if enable {
		if err := workflow.Composer(ctx, "require", svc.Composer); err != nil {
			return err
		}
		return workflow.Drush(ctx, "pm:install", "-y", svc.Module)
	}
	if err := workflow.Drush(ctx, "pm:uninstall", "-y", svc.Module); err != nil {
		return err
	}
	return workflow.Composer(ctx, "remove", svc.Composer)
}
