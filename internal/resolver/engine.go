package resolver

import (
	"context"
	"errors"
	"fmt"

	"jjdiverge.dev/jjdiverge/internal/config"
	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/jj"
	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Engine applies menu actions to a pair
type Engine struct {
	repo     Repository
	prompter Prompter
	reporter *Reporter
	splog    *tui.Splog
}

// NewEngine creates an Engine
func NewEngine(repo Repository, prompter Prompter, reporter *Reporter, splog *tui.Splog) *Engine {
	return &Engine{repo: repo, prompter: prompter, reporter: reporter, splog: splog}
}

// Decide picks an action without asking, for auto mode when the interdiff is
// empty. Merge commits are never resolved unattended.
func Decide(a Assessment) (Action, bool) {
	switch {
	case !a.HasIssues():
		return SquashLeftIntoRight, true
	case a.HasConflicts() && !a.HasMergeCommits():
		return AbandonLeft, true
	default:
		return 0, false
	}
}

// Apply runs one action. Mutating actions return Restart once anything may
// have changed; informational ones return Continue.
func (e *Engine) Apply(ctx context.Context, pair Pair, action Action, mode config.Mode) (Transition, error) {
	left, right := pair.Left.CommitID, pair.Right.CommitID

	switch action {
	case AbandonLeft, AbandonRight, SquashLeftIntoRight, SquashRightIntoLeft:
		return e.mutate(ctx, planFor(action, left, right), mode)

	case PrintStack:
		out, err := e.repo.Stack(ctx)
		if err != nil {
			return Continue, err
		}
		e.reporter.Output(out)
		return Continue, nil

	case Refresh:
		e.splog.Newline()
		e.splog.Info("🔄 Refreshing state...")
		return Restart, nil

	case ShowInterdiff:
		out, err := e.repo.Interdiff(ctx, left, right, mode.Interactive().Auto)
		if err != nil {
			return Continue, err
		}
		e.reporter.Diff("🔄 Interdiff:", out)
		return Continue, nil

	case ShowDiffLeft, ShowDiffRight:
		rev := left
		if action == ShowDiffRight {
			rev = right
		}
		out, err := e.repo.Diff(ctx, rev)
		if err != nil {
			return Continue, err
		}
		e.reporter.Diff(fmt.Sprintf("📝 Diff of commit %s:", tui.ColorCommitID(string(rev))), out)
		return Continue, nil

	default:
		return Continue, fmt.Errorf("unhandled action: %s", action)
	}
}

// mutationPlan describes a mutating action as rebase-then-act.
// Descendants of source move onto dest, then source is abandoned or squashed into dest.
type mutationPlan struct {
	source  jj.CommitID
	dest    jj.CommitID
	squash  bool
	confirm string
}

func planFor(action Action, left, right jj.CommitID) mutationPlan {
	switch action {
	case AbandonLeft:
		return mutationPlan{source: left, dest: right,
			confirm: fmt.Sprintf("Abandon left commit (%s)?", left)}
	case AbandonRight:
		return mutationPlan{source: right, dest: left,
			confirm: fmt.Sprintf("Abandon right commit (%s)?", right)}
	case SquashLeftIntoRight:
		return mutationPlan{source: left, dest: right, squash: true,
			confirm: fmt.Sprintf("Squash left commit (%s) into right (%s)?", left, right)}
	default:
		return mutationPlan{source: right, dest: left, squash: true,
			confirm: fmt.Sprintf("Squash right commit (%s) into left (%s)?", right, left)}
	}
}

func (e *Engine) mutate(ctx context.Context, plan mutationPlan, mode config.Mode) (Transition, error) {
	gate := NewGate(mode, e.prompter, e.splog)

	ok, err := gate.ConfirmAction(plan.confirm)
	if err != nil {
		return Continue, err
	}
	if !ok {
		e.splog.Info("Cancelled.")
		return Continue, nil
	}

	current, err := e.repo.CurrentOperation(ctx)
	if err != nil {
		return Continue, err
	}
	e.reporter.Section("Current operation:", current)

	applied := false

	out, skipped, err := gate.Run(fmt.Sprintf("Rebase commit sequence %s onto %s", plan.source, plan.dest), func() (string, error) {
		return e.repo.Rebase(ctx, plan.source, plan.dest)
	})
	switch {
	case errors.Is(err, jjerrors.ErrEmptyRevisionSet):
		e.splog.Info("ℹ️  No commits to rebase (empty revision set) - continuing...")
	case err != nil:
		return e.abort(fmt.Sprintf("rebase %s+ onto %s", plan.source, plan.dest), err, applied)
	default:
		applied = !skipped
		e.reporter.Output(out)
	}

	description := fmt.Sprintf("Abandon commit %s", plan.source)
	terminal := func() (string, error) { return e.repo.Abandon(ctx, plan.source) }
	if plan.squash {
		description = fmt.Sprintf("Squash commit %s into %s", plan.source, plan.dest)
		terminal = func() (string, error) { return e.repo.Squash(ctx, plan.source, plan.dest) }
	}
	out, _, err = gate.Run(description, terminal)
	if err != nil {
		return e.abort(description, err, applied)
	}
	e.reporter.Output(out)

	stack, err := e.repo.Stack(ctx)
	if err != nil {
		return Restart, err
	}
	e.splog.Newline()
	e.reporter.Section("Updated stack:", stack)

	e.splog.Newline()
	e.splog.Info("🔄 Restarting from beginning due to state changes...")
	return Restart, nil
}

// abort ends a mutating action early. A cancel returns to the menu, unless an
// earlier step already changed the repository, in which case the pass restarts.
func (e *Engine) abort(step string, err error, applied bool) (Transition, error) {
	if errors.Is(err, jjerrors.ErrUserCancelled) {
		e.splog.Info("Action cancelled.")
		if applied {
			e.splog.Info("🔄 Restarting from beginning due to state changes...")
			return Restart, nil
		}
		return Continue, nil
	}
	return Continue, jjerrors.NewMutationError(step, err)
}
