package ddevcfg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeShared(t *testing.T, root, body string) Files {
	t.Helper()
	f := Files{Root: root}
	require.NoError(t, os.MkdirAll(filepath.Join(root, Dir), 0o755))
	require.NoError(t, os.WriteFile(f.SharedPath(), []byte(body), 0o644))
	return f
}

func TestParseEmptyAndNull(t *testing.T) {
	for _, in := range []string{"", "~\n", "null\n"} {
		d, err := Parse([]byte(in))
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, d.Keys())
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)
}

func TestValueFlattening(t *testing.T) {
	d, err := Parse([]byte(`name: site
php_version: "8.3"
xdebug_enabled: true
database:
  type: mariadb
  version: "10.11"
additional_hostnames:
  - one
  - two
empty:
`))
	require.NoError(t, err)

	v, ok := d.Value("php_version")
	assert.True(t, ok)
	assert.Equal(t, "8.3", v)

	v, _ = d.Value("database")
	assert.Equal(t, "mariadb:10.11", v)

	v, _ = d.Value("additional_hostnames")
	assert.Equal(t, "one:two", v)

	_, ok = d.Value("empty")
	assert.False(t, ok)
	assert.True(t, d.Has("empty"))

	_, ok = d.Value("missing")
	assert.False(t, ok)

	assert.True(t, d.Bool("xdebug_enabled"))
	assert.False(t, d.Bool("name"))
	assert.Equal(t, "site", d.Name())
}

func TestSetKeepsOrderAndComments(t *testing.T) {
	d, err := Parse([]byte("# project\nname: site # the name\ntype: drupal10\n"))
	require.NoError(t, err)
	require.NoError(t, d.Set("name", "site-testing"))
	require.NoError(t, d.Set("xdebug_enabled", false))
	out, err := d.Bytes()
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "# project")
	assert.Contains(t, s, "name: site-testing # the name")
	assert.Equal(t, []string{"name", "type", "xdebug_enabled"}, d.Keys())
	assert.True(t, strings.Index(s, "type:") < strings.Index(s, "xdebug_enabled: false"))
}

func TestEmptyDocumentEncodesEmpty(t *testing.T) {
	out, err := NewDocument().Bytes()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRequireInit(t *testing.T) {
	root := t.TempDir()
	f := Files{Root: root}
	assert.ErrorIs(t, f.RequireInit(), ErrNotConfigured)
	assert.False(t, f.IsInit())

	writeShared(t, root, "type: drupal10\n")
	assert.ErrorIs(t, f.RequireInit(), ErrNoProjectName)

	writeShared(t, root, "name: site\n")
	assert.NoError(t, f.RequireInit())
	assert.True(t, f.IsInit())
}

func TestLoadLocalCreatesFile(t *testing.T) {
	root := t.TempDir()
	f := Files{Root: root}
	d, err := f.LoadLocal()
	require.NoError(t, err)
	assert.Empty(t, d.Keys())
	_, err = os.Stat(f.LocalPath())
	assert.NoError(t, err)

	require.NoError(t, d.Set("xdebug_enabled", true))
	require.NoError(t, f.SaveLocal(d))
	d, err = f.LoadLocal()
	require.NoError(t, err)
	assert.True(t, d.Bool("xdebug_enabled"))
}

func TestLoadSharedMissingIsEmpty(t *testing.T) {
	d, err := Files{Root: t.TempDir()}.LoadShared()
	require.NoError(t, err)
	assert.Empty(t, d.Keys())
}

func TestEnsureHooksAppendsOnce(t *testing.T) {
	root := t.TempDir()
	f := writeShared(t, root, "name: site\ntype: drupal10\n# trailing note\nwebimage_extra_packages: []\n")

	added, err := f.EnsureHooks(DefaultHooks("ddevctl"))
	require.NoError(t, err)
	assert.True(t, added)

	data, err := os.ReadFile(f.SharedPath())
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "# trailing note")
	assert.Greater(t, strings.Index(s, "hooks:"), strings.Index(s, "webimage_extra_packages"))

	var parsed struct {
		Name  string                `yaml:"name"`
		Hooks map[string][]HookStep `yaml:"hooks"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "site", parsed.Name)
	assert.Equal(t, []HookStep{{ExecHost: "ddevctl common:remove-settings-php-changes"}}, parsed.Hooks["post-config"])
	assert.Equal(t, []HookStep{
		{Exec: "env COMPOSER_DEV=1 ./orch/build.sh;"},
		{Exec: "./orch/build_node.sh;"},
		{ExecHost: "ddevctl common:remove-settings-php-changes"},
	}, parsed.Hooks["post-start"])

	added, err = f.EnsureHooks(DefaultHooks("ddevctl"))
	require.NoError(t, err)
	assert.False(t, added)
	again, err := os.ReadFile(f.SharedPath())
	require.NoError(t, err)
	assert.Equal(t, s, string(again))
}

func TestEnsureHooksLeavesExistingHooks(t *testing.T) {
	body := "name: site\nhooks:\n  post-start:\n    - exec: drush cr\n"
	f := writeShared(t, t.TempDir(), body)
	added, err := f.EnsureHooks(DefaultHooks("ddevctl"))
	require.NoError(t, err)
	assert.False(t, added)
	data, err := os.ReadFile(f.SharedPath())
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestEnsureHooksWithoutConfig(t *testing.T) {
	_, err := Files{Root: t.TempDir()}.EnsureHooks(DefaultHooks("ddevctl"))
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestBytesUsesDdevIndentation(t *testing.T) {
	d, err := Parse([]byte("name: site\ndatabase:\n    type: mariadb\n    version: \"10.11\"\n"))
	require.NoError(t, err)
	require.NoError(t, d.Set("name", "site-testing"))
	out, err := d.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "name: site-testing\ndatabase:\n    type: mariadb\n    version: \"10.11\"\n", string(out))
}
