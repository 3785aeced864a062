// Package common implements the commands that are not specific to DDEV but
// need a running local environment: settings.php cleanup, the shortcut
// scripts, post-start actions, and the si/su site build commands.
package common
