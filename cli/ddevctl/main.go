package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/cmdregistry"
	admincmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/admin"
	commoncmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/common"
	duplicatecmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/duplicate"
	initcmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/initcmd"
	reqscmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/reqs"
	scaffoldcmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/scaffoldcmd"
	xdebugcmd "github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/commands/xdebug"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/config"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/console"
	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/runner"
)

type options struct {
	root          string
	dryRun        bool
	noInteraction bool
	verbose       bool
}

// usageError marks bad flags or commands; they exit 2 instead of 1.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

type app struct {
	reg  *cmdregistry.Registry
	opts options
	host config.HostConfig
	// Swapped in tests.
	newIO     func(interactive bool) *console.IO
	newRunner func(dryRun bool) runner.Runner
}

func newRegistry() *cmdregistry.Registry {
	r := cmdregistry.New()
	admincmd.Register(r)
	commoncmd.Register(r)
	duplicatecmd.Register(r)
	initcmd.Register(r)
	reqscmd.Register(r)
	scaffoldcmd.Register(r)
	xdebugcmd.Register(r)
	return r
}

func newApp() *app {
	return &app{
		reg:   newRegistry(),
		newIO: console.Stdio,
		newRunner: func(dryRun bool) runner.Runner {
			return runner.Host{DryRun: dryRun, Out: os.Stderr}
		},
	}
}

func bindGlobalFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVar(&o.root, "root", "", "project root (default: current directory)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "print external commands instead of running them")
	fs.BoolVarP(&o.noInteraction, "no-interaction", "n", false, "answer every question with its default")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ddevctl",
		Short: "Drupal Env tasks for DDEV local environments",
		Long: `ddevctl configures and runs a Drupal project on DDEV: project setup for
maintainers (ddev-admin:*), first start and helpers for developers (ddev:*),
and the shared site build commands (si, su, common:*).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.setup() },
	}
	bindGlobalFlags(root.PersistentFlags(), &a.opts)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	for _, c := range a.reg.All() {
		c := c
		root.AddCommand(&cobra.Command{
			Use:   c.Name,
			Short: c.Summary,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), c, args)
			},
		})
	}
	return root
}

func (a *app) setup() error {
	cfg, dir, err := config.ReadHostConfig()
	if err != nil {
		log.Warnf("ignoring host config in %s: %v", dir, err)
	}
	a.host = config.Resolve(cfg)
	config.ApplyEnv(a.host)
	setupLogging(a.host.LogLevel, a.opts.verbose)
	return nil
}

func setupLogging(level string, verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if verbose {
		level = "debug"
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warnf("invalid log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func projectRoot(flag string) (string, error) {
	root := strings.TrimSpace(flag)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root: %w", err)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", abs)
	}
	return abs, nil
}

func (a *app) run(ctx context.Context, c cmdregistry.Command, args []string) error {
	root, err := projectRoot(a.opts.root)
	if err != nil {
		return err
	}
	io := a.newIO(!a.opts.noInteraction)
	defer io.Close()
	hctx := cmdregistry.NewContext(ctx, root, io, a.newRunner(a.opts.dryRun), a.host.DdevBin, a.host.Self)
	hctx.DryRun = a.opts.dryRun
	hctx.Args = args
	a.reg.Bind(hctx)
	log.WithFields(log.Fields{"command": c.Name, "root": root, "dry_run": a.opts.dryRun}).Debug("dispatch")
	return c.Handler(hctx)
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return 2
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newApp().rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(exitCode(err))
	}
}
