// Package duplicate implements ddev:duplicate-project, which copies the
// checkout to a sibling directory so it can run as a second environment.
package duplicate

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddevcfg"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ide"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/paths"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

// Register adds ddev:duplicate-project to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "ddev:duplicate-project",
		Summary: "Copy this project to a sibling directory as a separate environment.",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if err := ctx.Files.RequireInit(); err != nil {
		return err
	}
	shared, err := ctx.Files.LoadShared()
	if err != nil {
		return err
	}
	ctx.IO.Note("Duplicating your project will copy the current root directory to a sibling directory so that they are separate environments.")
	original, err := workflow.EnsureOriginalInstallDirectory(ctx)
	if err != nil {
		return err
	}
	answer := ctx.IO.Ask(fmt.Sprintf("Which directory do you want to put your project in? Note that it will be prefixed with '%s-'", original), "testing")
	suffix := paths.DuplicateSuffix(answer, original)
	if suffix == "" {
		ctx.IO.Yell("You have to enter a value that is not your current project directory.")
		return nil
	}
	source, err := filepath.EvalSymlinks(ctx.Root)
	if err != nil {
		return err
	}
	if source, err = filepath.Abs(source); err != nil {
		return err
	}
	target, err := paths.SiblingDir(source, paths.DuplicateDir(original, suffix))
	if err != nil {
		return err
	}
	if _, err := os.Stat(target); err == nil {
		ctx.IO.Yell(fmt.Sprintf("The target directory %s already exists, unable to create duplicate project.", target))
		return nil
	}
	ctx.IO.Say(fmt.Sprintf("Your new duplicate project will be copied from %s to %s", source, target))
	if !ctx.IO.Confirm("Are you sure you want to continue?", true) {
		ctx.IO.Say("Cancelled")
		return nil
	}
	ctx.IO.Say("This can take a while, please don't close this process...")
	// cp -a keeps symlinks, permissions and timestamps intact.
	if err := ctx.Runner.Run(ctx.Ctx, "cp", "-a", source, target); err != nil {
		return fmt.Errorf("copy project: %w", err)
	}
	if ctx.DryRun {
		return nil
	}
	if st, err := os.Stat(target); err != nil || !st.IsDir() {
		ctx.IO.Yell("There was an error copying the folder structure.")
		return fmt.Errorf("copy project: %s was not created", target)
	}
	ctx.IO.Say("Your local environment has been created")

	if err := ide.RenameProject(target, filepath.Base(source), filepath.Base(target)); err != nil {
		log.WithError(err).Warn("could not update IDE project files")
	}

	// Each DDEV project needs its own name or the copies share containers.
	name := shared.Name() + "-" + suffix
	files := ddevcfg.Files{Root: target}
	local, err := files.LoadLocal()
	if err != nil {
		return err
	}
	if err := local.Set("name", name); err != nil {
		return err
	}
	if err := files.SaveLocal(local); err != nil {
		return err
	}
	ctx.IO.Say(fmt.Sprintf("Finished creating your new environment. Please change to the directory ../%s first. It is ready to be started.", filepath.Base(target)))
	return nil
}
