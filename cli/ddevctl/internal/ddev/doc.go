// Package ddev drives the ddev CLI. It never reimplements DDEV behaviour;
// every method maps to one ddev invocation through a runner.Runner.
package ddev
