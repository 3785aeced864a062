// Package reqs implements ddev:reqs, the host software check run before a
// local environment is started.
package reqs

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
)

const (
	ddevInstallURL   = "https://ddev.readthedocs.io/en/stable/users/install/ddev-installation/"
	dockerInstallURL = "https://ddev.readthedocs.io/en/stable/users/install/docker-installation/"
)

// ErrMissingSoftware is returned by ddev:reqs when a requirement is absent.
var ErrMissingSoftware = errors.New("required software is missing")

// Register adds ddev:reqs to the registry.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Command{
		Name:    "ddev:reqs",
		Summary: "Display the software required to use DDEV.",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if !Check(ctx) {
		return ErrMissingSoftware
	}
	return nil
}

// Check prints the requirements table and reports whether everything needed
// is installed.
func Check(ctx *cmdregistry.Context) bool {
	version, err := ctx.DDEV.Version(ctx.Ctx)
	installed := err == nil && version != ""
	if err != nil {
		log.WithError(err).Debug("ddev --version failed")
	}
	status := "Yes"
	if !installed {
		status = "No"
		version = "-"
	}
	ctx.IO.Section("Required software")
	ctx.IO.Table(
		[]string{"Software", "Installed", "Version", "Installation"},
		[][]string{{"DDEV", status, version, ddevInstallURL}},
	)
	if !installed {
		ctx.IO.Error("Please install the missing software above. DDEV also needs Docker, see " + dockerInstallURL)
		return false
	}
	ctx.IO.Success("All required software is installed.")
	return true
}
