package execx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Result struct {
	Code int
	Err  error
}

// OK reports whether the process exited zero.
func (r Result) OK() bool { return r.Code == 0 && r.Err == nil }

// RunCtx runs name with the caller's stdio attached so prompts from the
// child (ddev config, ddev delete) reach the operator.
func RunCtx(ctx context.Context, name string, args ...string) Result {
	trace(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	return Result{Code: exitCode(ctx, err), Err: err}
}

// Capture runs a command and returns stdout as string and exit code.
func Capture(ctx context.Context, name string, args ...string) (string, Result) {
	trace(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	return string(out), Result{Code: exitCode(ctx, err), Err: err}
}

func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 124
	}
	return 1
}

func trace(name string, args []string) {
	log.WithField("cmd", name).Debugf("+ %s", strings.Join(append([]string{name}, args...), " "))
}
