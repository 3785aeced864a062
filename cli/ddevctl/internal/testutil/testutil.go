// Package testutil provides a recording Runner and a handler Context over a
// throwaway project so command packages can be tested without DDEV installed.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/console"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddev"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/runner"
)

// FakeRunner records every command line instead of executing it. Outputs,
// queued failures and hooks are keyed by the full command line, for example
// "ddev addon list --installed".
type FakeRunner struct {
	mu       sync.Mutex
	Calls    []string
	Outputs  map[string]string
	OnRun    map[string]func()
	failures map[string][]int
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Outputs:  map[string]string{},
		OnRun:    map[string]func(){},
		failures: map[string][]int{},
	}
}

// Fail queues exit codes for line; each call consumes one, then it succeeds.
func (f *FakeRunner) Fail(line string, codes ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[line] = append(f.failures[line], codes...)
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) error {
	_, err := f.call(name, args)
	return err
}

func (f *FakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	return f.call(name, args)
}

func (f *FakeRunner) call(name string, args []string) (string, error) {
	line := runner.CommandLine(name, args...)
	f.mu.Lock()
	f.Calls = append(f.Calls, line)
	hook := f.OnRun[line]
	out := f.Outputs[line]
	var code int
	if q := f.failures[line]; len(q) > 0 {
		code, f.failures[line] = q[0], q[1:]
	}
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if code != 0 {
		return "", &runner.ExitError{Name: name, Args: args, Code: code}
	}
	return out, nil
}

// Ran reports whether line was executed at least once.
func (f *FakeRunner) Ran(line string) bool {
	return f.Count(line) > 0
}

// Count returns how many times line was executed.
func (f *FakeRunner) Count(line string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == line {
			n++
		}
	}
	return n
}

// Env is a handler Context over a temporary project root.
type Env struct {
	*cmdregistry.Context
	Fake *FakeRunner
	Out  *bytes.Buffer
}

// NewContext returns a Context rooted in a temp dir whose console answers
// prompts from answers in order and falls back to defaults afterwards.
// Commands run as if on the host, outside the web container.
func NewContext(t *testing.T, answers ...string) *Env {
	t.Helper()
	root := t.TempDir()
	fake := NewFakeRunner()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(answers, "\n"))
	if len(answers) > 0 {
		in = strings.NewReader(strings.Join(answers, "\n") + "\n")
	}
	t.Setenv("NO_COLOR", "1")
	io := console.New(in, &out, true)
	ctx := cmdregistry.NewContext(context.Background(), root, io, fake, "ddev", "ddevctl")
	ctx.Env = ddev.Environment{}
	return &Env{Context: ctx, Fake: fake, Out: &out}
}

// WriteFile creates rel under the project root.
func (e *Env) WriteFile(t *testing.T, rel, body string) string {
	t.Helper()
	path := filepath.Join(e.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the contents of rel under the project root.
func (e *Env) ReadFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.Root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Initialized writes a config.yaml naming the project.
func (e *Env) Initialized(t *testing.T, name string) {
	t.Helper()
	e.WriteFile(t, ".ddev/config.yaml", "name: "+name+"\ntype: drupal10\ndocroot: web\n")
}
