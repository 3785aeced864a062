package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/config"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/testutil"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/workflow"
)

func TestSiteInstallStandard(t *testing.T) {
	env := testutil.NewContext(t)
	require.NoError(t, siteInstall(env.Context))
	assert.Equal(t, []string{"ddev drush site:install standard -y", "ddev drush user:login"}, env.Fake.Calls)
}

func TestSiteInstallExistingConfig(t *testing.T) {
	env := testutil.NewContext(t)
	env.WriteFile(t, SyncCoreExtension, "module: {}\n")
	require.NoError(t, siteInstall(env.Context))
	assert.True(t, env.Fake.Ran("ddev drush site:install --existing-config -y"))
}

func TestSiteInstallStopsOnFailure(t *testing.T) {
	env := testutil.NewContext(t)
	env.Fake.Fail("ddev drush site:install standard -y", 1)
	assert.Error(t, siteInstall(env.Context))
	assert.False(t, env.Fake.Ran("ddev drush user:login"))
}

func TestSiteUpdate(t *testing.T) {
	env := testutil.NewContext(t)
	assert.ErrorIs(t, siteUpdate(env.Context), workflow.ErrDrupalNotInstalled)

	env.Fake.Outputs["ddev drush status --field=bootstrap"] = "Successful"
	require.NoError(t, siteUpdate(env.Context))
	assert.True(t, env.Fake.Ran("ddev drush deploy -y"))
}

func TestPostLocalStarted(t *testing.T) {
	env := testutil.NewContext(t)
	require.NoError(t, postLocalStarted(env.Context))
	assert.Equal(t, []string{"ddev drush user:login"}, env.Fake.Calls)
}

func TestShortcutsHelpListsOnly(t *testing.T) {
	env := testutil.NewContext(t)
	require.NoError(t, shortcutsHelp(env.Context))
	out := env.Out.String()
	assert.Contains(t, out, "./drush.sh")
	assert.Contains(t, out, "./composer.sh")
	assert.NoFileExists(t, filepath.Join(env.Root, "drush.sh"))
}

func TestShortcutsHelpRewritesScripts(t *testing.T) {
	env := testutil.NewContext(t, "yes", "bin/drush", "")
	require.NoError(t, shortcutsHelp(env.Context))

	script := env.ReadFile(t, "bin/drush")
	assert.Contains(t, script, `exec ddev drush "$@"`)
	st, err := os.Stat(filepath.Join(env.Root, "bin", "drush"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), st.Mode().Perm())
	assert.FileExists(t, filepath.Join(env.Root, "composer.sh"))

	p, err := config.LoadProject(env.Root)
	require.NoError(t, err)
	assert.Equal(t, "bin/drush", p.GetString("shortcuts.drush", ""))
	assert.Equal(t, "./composer.sh", p.GetString("shortcuts.composer", ""))
}

func TestShortcutScriptUsesConfiguredBinary(t *testing.T) {
	env := testutil.NewContext(t, "yes", "", "")
	env.DDEV.Bin = "/opt/ddev/bin/ddev"
	require.NoError(t, shortcutsHelp(env.Context))

	script := env.ReadFile(t, "drush.sh")
	assert.Contains(t, script, `exec /opt/ddev/bin/ddev drush "$@"`)
	assert.Contains(t, script, `exec drush "$@"`)
}
