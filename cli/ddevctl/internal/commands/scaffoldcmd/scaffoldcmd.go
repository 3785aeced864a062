// Package scaffoldcmd implements drupal-env-ddev:scaffold.
package scaffoldcmd

import (
	"fmt"
	"path/filepath"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/scaffold"
)

// Register adds the scaffold command to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "drupal-env-ddev:scaffold",
		Summary: "Write the DDEV scaffolding files into the project.",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	// Existing .ddev files would be merged with ours rather than replaced.
	backup, err := scaffold.PreScaffold(ctx.Root, ctx.IO)
	if err != nil {
		return err
	}
	if backup != "" {
		ctx.IO.Say(fmt.Sprintf("Moved the previous DDEV configuration to %s for comparison.", filepath.Base(backup)))
	}
	written, err := scaffold.Write(ctx.Root)
	if err != nil {
		return err
	}
	for _, f := range written {
		ctx.IO.Say("Scaffolded " + f)
	}
	ctx.IO.Success(fmt.Sprintf("Scaffolding complete. Run `%s ddev-admin:init` to configure DDEV for this project.", ctx.Self))
	return nil
}
