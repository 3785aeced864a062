package admin

import (
	"errors"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/solr"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

func solrConfig(ctx *cmdregistry.Context) error {
	if err := ctx.Files.RequireInit(); err != nil {
		return err
	}
	if err := workflow.RequireDrupalInstalled(ctx); err != nil {
		return err
	}
	// Drush runs from the docroot, so the archive lands there.
	if err := workflow.Drush(ctx, "search-api-solr:get-server-config", "default_solr_server", solr.ConfigZip); err != nil {
		return err
	}
	if ctx.DryRun {
		log.Info("dry run: skipping Solr config extraction")
		return nil
	}
	archive := filepath.Join(ctx.Root, workflow.Docroot(ctx), solr.ConfigZip)
	staging := filepath.Join(ctx.Root, solr.StagingDir)
	n, err := solr.Extract(archive, staging)
	if err != nil {
		return err
	}
	if err := os.Remove(archive); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	log.WithField("files", n).Debug("extracted solr config")
	ctx.IO.Note("Latest solr config downloaded and extracted.")

	if err := solr.Install(staging, filepath.Join(ctx.Root, filepath.FromSlash(solr.TargetDir))); err != nil {
		return err
	}
	ctx.IO.Note("Latest solr config moved to the solr server config directory.")
	return workflow.RebuildRequired(ctx, true, `the Solr configuration is now in place, you can commit the files in ".ddev/solr/conf"`)
}
