package duplicate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/config"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddevcfg"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/testutil"
)

// project places the context root at <tmp>/mysite so the sibling lands in a
// directory owned by the test.
func project(t *testing.T, answers ...string) *testutil.Env {
	t.Helper()
	env := testutil.NewContext(t, answers...)
	root := filepath.Join(env.Root, "mysite")
	require.NoError(t, os.Mkdir(root, 0o755))
	env.Root = root
	env.Files = ddevcfg.Files{Root: root}
	env.Initialized(t, "mysite")
	return env
}

func TestDuplicateCopiesAndRenames(t *testing.T) {
	env := project(t, "mysite-review", "yes")
	source, err := filepath.EvalSymlinks(env.Root)
	require.NoError(t, err)
	target := filepath.Join(filepath.Dir(source), "mysite-review")
	env.Fake.OnRun["cp -a "+source+" "+target] = func() {
		require.NoError(t, os.MkdirAll(filepath.Join(target, ".ddev"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(target, ".idea"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, ".idea", "mysite.iml"), nil, 0o644))
	}

	require.NoError(t, handle(env.Context))
	assert.True(t, env.Fake.Ran("cp -a "+source+" "+target))
	assert.FileExists(t, filepath.Join(target, ".idea", "mysite-review.iml"))

	local, err := os.ReadFile(filepath.Join(target, filepath.FromSlash(ddevcfg.LocalFile)))
	require.NoError(t, err)
	assert.Contains(t, string(local), "name: mysite-review")

	p, err := config.LoadProject(env.Root)
	require.NoError(t, err)
	assert.Equal(t, "mysite", p.GetString(config.KeyOriginalInstallDirectory, ""))
}

func TestDuplicateRejectsEmptySuffix(t *testing.T) {
	env := project(t, "mysite")
	require.NoError(t, handle(env.Context))
	assert.Contains(t, env.Out.String(), "You have to enter a value that is not your current project directory.")
	assert.Empty(t, env.Fake.Calls)
}

func TestDuplicateExistingTarget(t *testing.T) {
	env := project(t, "testing")
	require.NoError(t, os.Mkdir(filepath.Join(filepath.Dir(env.Root), "mysite-testing"), 0o755))
	require.NoError(t, handle(env.Context))
	assert.Contains(t, env.Out.String(), "already exists")
	assert.Empty(t, env.Fake.Calls)
}

func TestDuplicateCancelled(t *testing.T) {
	env := project(t, "qa", "no")
	require.NoError(t, handle(env.Context))
	assert.Contains(t, env.Out.String(), "Cancelled")
	assert.Empty(t, env.Fake.Calls)
}

func TestDuplicateCopyFailure(t *testing.T) {
	env := project(t, "qa", "yes")
	source, err := filepath.EvalSymlinks(env.Root)
	require.NoError(t, err)
	env.Fake.Fail("cp -a "+source+" "+filepath.Join(filepath.Dir(source), "mysite-qa"), 1)
	assert.Error(t, handle(env.Context))
}
