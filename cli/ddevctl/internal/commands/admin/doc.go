// Package admin implements the ddev-admin commands. They change files that
// are committed (.ddev/config.yaml, add-ons, Solr configuration) and so
// affect every developer on the project.
package admin
