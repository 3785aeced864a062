package cmdregistry

import (
	"context"
	"fmt"
	"sort"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/console"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddev"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/ddevcfg"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/dotenv"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/runner"
)

// Context carries the handles every command handler needs.
type Context struct {
	Ctx    context.Context
	DryRun bool
	Root   string
	Args   []string
	IO     *console.IO
	Runner runner.Runner
	DDEV   *ddev.Client
	Env    ddev.Environment
	Files  ddevcfg.Files
	Dotenv dotenv.Store
	// Self is how DDEV hooks and shortcut scripts call back into this tool.
	Self string

	registry *Registry
}

// NewContext wires the DDEV client, config files and env store for root.
func NewContext(ctx context.Context, root string, io *console.IO, r runner.Runner, ddevBin, self string) *Context {
	client := &ddev.Client{Bin: ddevBin, Runner: r}
	return &Context{
		Ctx:    ctx,
		Root:   root,
		IO:     io,
		Runner: r,
		DDEV:   client,
		Env:    ddev.DetectEnvironment(),
		Files:  ddevcfg.Files{Root: root},
		Dotenv: dotenv.Store{Root: root, Client: client},
		Self:   self,
	}
}

// Call runs another registered command with the same Context.
func (c *Context) Call(name string) error {
	if c.registry == nil {
		return fmt.Errorf("command %s: no registry bound", name)
	}
	cmd, ok := c.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown command %s", name)
	}
	return cmd.Handler(c)
}

// Handler executes a command given the shared context.
type Handler func(*Context) error

// Command is a named handler plus the one-line help shown by the dispatcher.
type Command struct {
	Name    string
	Summary string
	Handler Handler
}

// Registry maps command names to handlers.
type Registry struct {
	commands map[string]Command
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. It panics if the name already exists.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
}

// Lookup returns the command and whether it exists.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []Command {
	out := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Bind lets handlers running under ctx reach other commands via Call.
func (r *Registry) Bind(ctx *Context) *Context {
	ctx.registry = r
	return ctx
}
