package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mattsqd/drupal-env-ddev/cli/ddevctl/internal/execx"
)

// Runner executes external tools on behalf of command handlers.
type Runner interface {
	// Run executes name with the terminal attached. A non-zero exit is
	// reported as *ExitError.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes name quietly and returns its stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Name string
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", CommandLine(e.Name, e.Args...), e.Code)
}

// CommandLine renders name and args the way dry-run output prints them.
func CommandLine(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// Host runs commands on the host. When DryRun is set, Run only prints the
// command line to Out; Output still executes because callers rely on it for
// read-only queries such as `ddev addon list`.
type Host struct {
	DryRun bool
	Out    io.Writer
}

func (h Host) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

func (h Host) Run(ctx context.Context, name string, args ...string) error {
	if h.DryRun {
		fmt.Fprintln(h.out(), "+ "+CommandLine(name, args...))
		return nil
	}
	res := execx.RunCtx(ctx, name, args...)
	return resultErr(name, args, res)
}

func (h Host) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, res := execx.Capture(ctx, name, args...)
	return out, resultErr(name, args, res)
}

func resultErr(name string, args []string, res execx.Result) error {
	if res.OK() {
		return nil
	}
	var ee *exec.ExitError
	if res.Err != nil && !errors.As(res.Err, &ee) && res.Code != 124 {
		// The process never started, e.g. the binary is not installed.
		return fmt.Errorf("%s: %w", CommandLine(name, args...), res.Err)
	}
	return &ExitError{Name: name, Args: args, Code: res.Code}
}

// BestEffort executes a command and ignores non-zero exits.
func BestEffort(ctx context.Context, r Runner, name string, args ...string) {
	if err := r.Run(ctx, name, args...); err != nil {
		log.WithError(err).WithField("cmd", name).Warn("best-effort command failed")
	}
}
