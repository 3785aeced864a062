package dotenv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddev"
)

type recorder struct{ calls []string }

func (r *recorder) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	return nil
}

func (r *recorder) Output(context.Context, string, ...string) (string, error) { return "", nil }

func TestKey(t *testing.T) {
	assert.Equal(t, "DRUSH_ALLOW_XDEBUG", Key("drush-allow-xdebug"))
	assert.Equal(t, "DDEV_PLUGIN_INSTALLED_DRUPAL_SOLR", Key("ddev-plugin-installed-drupal-solr"))
}

func TestGetMissingFile(t *testing.T) {
	v, err := Store{Root: t.TempDir()}.Get("drush-allow-xdebug")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestGetReadsDdevEnvFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".ddev"), 0o755))
	body := "# managed by ddev\nDRUSH_ALLOW_XDEBUG=\"1\"\nDRUPAL_ENV_LOCAL='1'\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".ddev", ".env"), []byte(body), 0o644))

	s := Store{Root: root}
	v, err := s.Get("drush-allow-xdebug")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = s.Get("ddev-plugin-installed-redis")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestSetGoesThroughDdev(t *testing.T) {
	r := &recorder{}
	s := Store{Root: t.TempDir(), Client: &ddev.Client{Runner: r}}
	require.NoError(t, s.Set(context.Background(), "drupal-env-local", "1"))
	assert.Equal(t, []string{"ddev dotenv set .ddev/.env --drupal-env-local=1"}, r.calls)
}
