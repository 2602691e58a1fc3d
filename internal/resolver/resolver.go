package resolver

import (
	"context"

	"jjdiverge.dev/jjdiverge/internal/config"
	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Options configures a Resolver
type Options struct {
	Repo     Repository
	Prompter Prompter
	Splog    *tui.Splog
	Mode     config.Mode
	// Color enables diff highlighting.
	Color bool
}

// Resolver drives the detect, analyze and resolve loop until no divergent
// change is left or the operator quits.
type Resolver struct {
	mode     config.Mode
	splog    *tui.Splog
	prompter Prompter
	selector *Selector
	analyzer *Analyzer
	engine   *Engine
	reporter *Reporter
}

// New creates a Resolver
func New(opts Options) *Resolver {
	reporter := NewReporter(opts.Splog, opts.Color)
	return &Resolver{
		mode:     opts.Mode,
		splog:    opts.Splog,
		prompter: opts.Prompter,
		selector: NewSelector(opts.Repo, opts.Prompter, reporter, opts.Splog),
		analyzer: NewAnalyzer(opts.Repo),
		engine:   NewEngine(opts.Repo, opts.Prompter, reporter, opts.Splog),
		reporter: reporter,
	}
}

// Run repeats passes until one of them is Done
func (r *Resolver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		transition, err := r.Pass(ctx)
		if err != nil {
			return err
		}
		if transition == Done {
			return nil
		}
	}
}

// Pass detects divergence once and works on the selected pair until an action
// restarts detection. It returns Done when nothing is left to resolve.
func (r *Resolver) Pass(ctx context.Context) (Transition, error) {
	r.splog.Info("🔍 Checking for divergent commits...")

	pair, err := r.selector.Select(ctx, r.mode)
	if err != nil {
		return Done, err
	}
	if pair == nil {
		return Done, nil
	}

	assessment, err := r.analyzer.Analyze(ctx, *pair, r.mode)
	if err != nil {
		return Done, err
	}
	r.reporter.Assessment(assessment)

	if r.mode.Auto && assessment.InterdiffEmpty {
		action, ok := Decide(assessment)
		switch {
		case ok && action == SquashLeftIntoRight:
			r.splog.Info("🤖 Auto mode: Interdiff is empty and no issues detected, automatically squashing left into right...")
		case ok:
			r.splog.Info("🤖 Auto mode: Interdiff is empty but conflict markers detected, automatically abandoning left commit...")
		default:
			r.splog.Info("🤖 Auto mode: Interdiff is empty but merge commits detected - switching to manual mode")
			r.splog.Info("🛡️  Please review the warnings above and choose an action manually")
		}

		if ok {
			transition, err := r.engine.Apply(ctx, *pair, action, r.mode.Unattended())
			if err != nil {
				return Done, err
			}
			if transition != Restart {
				return Done, jjerrors.NewUnattendedLogicError(action.Key(), transition.String())
			}
			return Restart, nil
		}
	}

	for {
		r.splog.Newline()
		action, err := r.prompter.ChooseAction(AllActions())
		if err != nil {
			return Done, err
		}
		transition, err := r.engine.Apply(ctx, *pair, action, r.mode)
		if err != nil {
			return Done, err
		}
		if transition != Continue {
			return transition, nil
		}
	}
}
