// Package addons lists the optional DDEV services a Drupal Env project can
// switch on, together with the Drupal pieces each one needs.
package addons

import "strings"

// Service is a DDEV add-on plus the Composer package and Drupal module
// that integrate it with the site.
type Service struct {
	ID       string
	Composer string
	Module   string
}

// Group is a set of mutually optional services offered in one prompt.
type Group struct {
	Description string
	Services    []Service
}

var (
	CacheServers = Group{
		Description: "cache server",
		Services: []Service{
			{ID: "memcached", Composer: "drupal/memcache", Module: "memcache"},
			{ID: "redis", Composer: "drupal/redis", Module: "redis"},
		},
	}
	SearchServers = Group{
		Description: "search server",
		Services: []Service{
			{ID: "drupal-solr", Composer: "drupal/search_api_solr", Module: "search_api_solr"},
			{ID: "elasticsearch", Composer: "drupal/elasticsearch_connector", Module: "elasticsearch_connector"},
		},
	}
)

// Repo is the add-on repository passed to `ddev addon get`.
func Repo(id string) string { return "ddev/ddev-" + id }

// EnvKey is the .ddev/.env key settings.php checks to know the add-on is on.
func EnvKey(id string) string {
	return "ddev-plugin-installed-" + strings.ReplaceAll(id, "_", "-")
}

// Installed reports whether `ddev addon list --installed` output mentions id.
func Installed(listOutput, id string) bool {
	return strings.Contains(listOutput, Repo(id))
}

// Find returns the service with id.
func (g Group) Find(id string) (Service, bool) {
	for _, s := range g.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
