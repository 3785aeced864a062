// Package cmdregistry maps command names such as "ddev:init" to handlers
// that share one Context. Each command group lives in its own package under
// internal/commands and registers itself here, so main.go only builds the
// Context and dispatches.
package cmdregistry
