// Package runner centralizes how command handlers execute DDEV, Composer,
// Drush and other host binaries.
//
// Handlers depend on the Runner interface so tests can substitute a
// recording fake. Host is the production implementation; it honours the
// global --dry-run flag by printing mutating commands instead of running them.
package runner
