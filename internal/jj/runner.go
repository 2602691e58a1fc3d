package jj

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
)

// Logger receives a line for every jj invocation.
// *tui.Splog satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
}

// RunnerOptions configure a CommandRunner
type RunnerOptions struct {
	// Binary is the jj executable, "jj" when empty.
	Binary string
	// WorkingDir is the workspace the commands run in; the process cwd when empty.
	WorkingDir string
	// Timeout bounds each invocation. Zero means no timeout.
	Timeout time.Duration
	Logger  Logger
}

// CommandRunner handles execution of jj commands
type CommandRunner struct {
	binary     string
	workingDir string
	timeout    time.Duration
	logger     Logger
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(opts RunnerOptions) *CommandRunner {
	binary := opts.Binary
	if binary == "" {
		binary = "jj"
	}
	return &CommandRunner{
		binary:     binary,
		workingDir: opts.WorkingDir,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

// Query executes a read-only jj command and returns its raw stdout.
func (r *CommandRunner) Query(ctx context.Context, args ...string) (string, error) {
	if r.logger != nil {
		r.logger.Debug("jj %s", FormatArgs(args))
	}
	return r.run(ctx, args...)
}

// Exec executes a state-changing jj command and returns its raw stdout.
// The command line is echoed so the operator can follow every mutation.
func (r *CommandRunner) Exec(ctx context.Context, args ...string) (string, error) {
	if r.logger != nil {
		r.logger.Info("💻 Executing: jj %s", FormatArgs(args))
	}
	return r.run(ctx, args...)
}

func (r *CommandRunner) run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if r.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		return "", jjerrors.NewJJCommandError(r.binary, args, stdout.String(), stderr.String(), err)
	}
	return stdout.String(), nil
}

// FormatArgs renders arguments as a shell-pasteable command line
func FormatArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'|&()~*$\\") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
			continue
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
