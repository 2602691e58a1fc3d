package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"jjdiverge.dev/jjdiverge/internal/config"
	"jjdiverge.dev/jjdiverge/internal/demo"
	"jjdiverge.dev/jjdiverge/internal/jj"
	"jjdiverge.dev/jjdiverge/internal/resolver"
	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Context provides access to the repository and output for a run
type Context struct {
	Repo     resolver.Repository
	Splog    *tui.Splog
	Prompter resolver.Prompter
	Settings config.Settings
	RepoRoot string
	RunID    string
	// Color enables highlighted diffs and coloured jj output.
	Color bool
}

// Options select where a context reads answers and writes output
type Options struct {
	// RepoRoot is the workspace jj runs in; the current directory when empty.
	RepoRoot string
	Stdin    io.Reader
	Stdout   io.Writer
}

// GetContext builds the context for a run from JJDIVERGE_* settings.
// In demo mode the repository is simulated in memory.
func GetContext(opts Options) (*Context, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	terminal := stdin == io.Reader(os.Stdin) && stdout == io.Writer(os.Stdout)

	runID := uuid.NewString()
	splog, err := tui.NewSplogWithConfig(tui.SplogConfig{
		Writer:        stdout,
		Debug:         settings.Debug,
		LogFile:       settings.LogFile,
		LogMaxSize:    settings.LogMaxSize,
		LogMaxBackups: settings.LogMaxBackups,
		LogMaxAge:     settings.LogMaxAge,
		RunID:         runID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	splog.Debug("run %s started", runID)

	ctx := &Context{
		Splog:    splog,
		Settings: settings,
		RepoRoot: opts.RepoRoot,
		RunID:    runID,
		Color:    terminal && tui.IsColorOutput(),
	}

	if terminal {
		ctx.Prompter = resolver.NewTerminalPrompter(tui.NewTerminalPrompts())
	} else {
		ctx.Prompter = resolver.NewTerminalPrompter(tui.NewLinePrompts(stdin, stdout))
	}

	if settings.Demo {
		splog.Tip("Demo mode: changes are simulated in memory")
		ctx.Repo = demo.NewSampleRepo().WithDelay(settings.DemoDelay)
		return ctx, nil
	}

	runner := jj.NewCommandRunner(jj.RunnerOptions{
		Binary:     settings.JJBinary,
		WorkingDir: opts.RepoRoot,
		Timeout:    settings.CommandTimeout,
		Logger:     splog,
	})
	ctx.Repo = jj.NewRepo(runner, ctx.Color)
	return ctx, nil
}

// Close releases the log file, if any
func (c *Context) Close() error {
	return c.Splog.Close()
}
