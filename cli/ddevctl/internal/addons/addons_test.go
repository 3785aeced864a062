package addons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	assert.Equal(t, "ddev/ddev-drupal-solr", Repo("drupal-solr"))
	assert.Equal(t, "ddev-plugin-installed-drupal-solr", EnvKey("drupal-solr"))
	assert.Equal(t, "ddev-plugin-installed-some-thing", EnvKey("some_thing"))
}

func TestInstalled(t *testing.T) {
	out := "┌──────────────┬─────────┐\n│ ADD-ON       │ VERSION │\n│ ddev/ddev-redis │ v1.2.0 │\n"
	assert.True(t, Installed(out, "redis"))
	assert.False(t, Installed(out, "memcached"))
	assert.False(t, Installed("", "redis"))
}

func TestGroupFind(t *testing.T) {
	s, ok := SearchServers.Find("elasticsearch")
	assert.True(t, ok)
	assert.Equal(t, "elasticsearch_connector", s.Module)
	_, ok = CacheServers.Find("skip")
	assert.False(t, ok)
}
