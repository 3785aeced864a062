package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/config"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/testutil"
)

func TestRebuildRequired(t *testing.T) {
	env := testutil.NewContext(t, "yes")
	require.NoError(t, RebuildRequired(env.Context, true, "the redis plugin has changed"))
	assert.True(t, env.Fake.Ran("ddev restart"))
	assert.Contains(t, env.Out.String(), "A DDEV restart is required because the redis plugin has changed, please confirm to do so.")

	declined := testutil.NewContext(t)
	require.NoError(t, RebuildRequired(declined.Context, true, ""))
	assert.False(t, declined.Fake.Ran("ddev restart"))
	assert.Contains(t, declined.Out.String(), "A DDEV restart is required, please confirm to do so.")

	skipped := testutil.NewContext(t, "yes")
	require.NoError(t, RebuildRequired(skipped.Context, false, "x"))
	assert.Empty(t, skipped.Fake.Calls)
}

func TestRequireDrupalInstalled(t *testing.T) {
	env := testutil.NewContext(t)
	assert.ErrorIs(t, RequireDrupalInstalled(env.Context), ErrDrupalNotInstalled)

	env.Fake.Outputs["ddev drush status --field=bootstrap"] = "Successful\n"
	assert.NoError(t, RequireDrupalInstalled(env.Context))

	env.Fake.Fail("ddev drush status --field=bootstrap", 1)
	assert.ErrorIs(t, RequireDrupalInstalled(env.Context), ErrDrupalNotInstalled)
}

func TestDrushAndComposerInsideContainer(t *testing.T) {
	env := testutil.NewContext(t)
	env.Env.Inside = true
	require.NoError(t, Drush(env.Context, "cr"))
	require.NoError(t, Composer(env.Context, "require", "drupal/redis"))
	assert.Equal(t, []string{"drush cr", "composer require drupal/redis"}, env.Fake.Calls)
}

func TestRemoveSettingsPhpChangesUsesDocroot(t *testing.T) {
	env := testutil.NewContext(t)
	env.WriteFile(t, ".ddev/config.yaml", "name: site\ndocroot: docroot\n")
	block := "\n// Automatically generated include for settings managed by ddev.\n" +
		"$ddev_settings = __DIR__ . '/settings.ddev.php';\n" +
		"if (getenv('IS_DDEV_PROJECT') == 'true' && is_readable($ddev_settings)) {\n" +
		"  require $ddev_settings;\n" +
		"}\n"
	env.WriteFile(t, "docroot/sites/default/settings.php", "<?php\n"+block)

	require.NoError(t, RemoveSettingsPhpChanges(env.Context))
	assert.Equal(t, "<?php\n", env.ReadFile(t, "docroot/sites/default/settings.php"))
	assert.Contains(t, env.Out.String(), "Removed the DDEV generated include")
}

func TestEnsureOriginalInstallDirectory(t *testing.T) {
	env := testutil.NewContext(t)
	real, err := filepath.EvalSymlinks(env.Root)
	require.NoError(t, err)

	name, err := EnsureOriginalInstallDirectory(env.Context)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(real), name)

	p, err := config.LoadProject(env.Root)
	require.NoError(t, err)
	p.Set(config.KeyOriginalInstallDirectory, "first-checkout")
	require.NoError(t, p.Save())
	name, err = EnsureOriginalInstallDirectory(env.Context)
	require.NoError(t, err)
	assert.Equal(t, "first-checkout", name)
}

func TestSetDefaultLocalEnvironment(t *testing.T) {
	env := testutil.NewContext(t)
	require.NoError(t, SetDefaultLocalEnvironment(env.Context, "ddev"))
	p, err := config.LoadProject(env.Root)
	require.NoError(t, err)
	assert.Equal(t, "ddev", p.GetString(config.KeyDefaultLocalEnvironment, ""))
}

func TestAskConfigValueChangesSharedValue(t *testing.T) {
	env := testutil.NewContext(t, "8.3")
	env.WriteFile(t, ".ddev/config.yaml", "name: site\nphp_version: \"8.1\"\n")
	env.WriteFile(t, ".ddev/config.local.yaml", "php_version: \"8.2\"\n")
	env.Fake.Outputs["ddev debug e"] = "Loaded files\nphp_version: 8.2\n"

	require.NoError(t, AskConfigValue(env.Context, "php_version", "PHP Version"))
	assert.True(t, env.Fake.Ran("ddev config --php-version=8.3"))
	out := env.Out.String()
	assert.Contains(t, out, "Current configuration value for key 'php_version'.")
	assert.Contains(t, out, "Local (Personal Override)")
	assert.Contains(t, out, "8.1")
	assert.Contains(t, out, "8.2")
}

func TestAskConfigValueUnchanged(t *testing.T) {
	env := testutil.NewContext(t)
	env.Initialized(t, "site")

	require.NoError(t, AskConfigValue(env.Context, "webserver_type", "Web Server"))
	out := env.Out.String()
	assert.Contains(t, out, "No change made.")
	assert.Contains(t, out, notSet)
	assert.Contains(t, out, notOverridden)
	assert.Contains(t, out, noEffective)
	assert.False(t, env.Fake.Ran("ddev config --webserver-type="))
}

func TestAskConfigValueDatabaseDelete(t *testing.T) {
	env := testutil.NewContext(t, "delete", "mariadb:10.11")
	env.Initialized(t, "site")

	require.NoError(t, AskConfigValue(env.Context, "database", "Database Server"))
	assert.Equal(t, 1, env.Fake.Count("ddev delete --omit-snapshot"))
	assert.True(t, env.Fake.Ran("ddev config --database=mariadb:10.11"))
}

func TestAskConfigValueRetriesAfterRejectedValue(t *testing.T) {
	env := testutil.NewContext(t, "9.9", "8.3")
	env.Initialized(t, "site")
	env.Fake.Fail("ddev config --php-version=9.9", 1)

	require.NoError(t, AskConfigValue(env.Context, "php_version", "PHP Version"))
	assert.True(t, env.Fake.Ran("ddev config --php-version=9.9"))
	assert.True(t, env.Fake.Ran("ddev config --php-version=8.3"))
}

func TestAskConfigValueRequiresInit(t *testing.T) {
	env := testutil.NewContext(t)
	assert.Error(t, AskConfigValue(env.Context, "php_version", "PHP Version"))
}

func TestFileExists(t *testing.T) {
	env := testutil.NewContext(t)
	assert.False(t, FileExists(env.Context, "drush.sh"))
	require.NoError(t, os.WriteFile(filepath.Join(env.Root, "drush.sh"), nil, 0o755))
	assert.True(t, FileExists(env.Context, "drush.sh"))
}

func TestDrushUsesConfiguredBinary(t *testing.T) {
	env := testutil.NewContext(t)
	env.DDEV.Bin = "/opt/ddev"
	require.NoError(t, Drush(env.Context, "cr"))
	assert.Equal(t, []string{"/opt/ddev drush cr"}, env.Fake.Calls)
}
