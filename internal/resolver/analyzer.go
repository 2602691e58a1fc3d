package resolver

import (
	"context"
	"strings"

	"jjdiverge.dev/jjdiverge/internal/config"
	"jjdiverge.dev/jjdiverge/internal/jj"
)

// Analyzer gathers the facts needed to decide between the two sides of a pair.
// It never mutates the repository.
type Analyzer struct {
	repo Querier
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(repo Querier) *Analyzer {
	return &Analyzer{repo: repo}
}

// Analyze fetches descriptions, conflict flags, merge flags and the interdiff,
// in that order. In auto mode the interdiff uses jj's :git tool.
func (a *Analyzer) Analyze(ctx context.Context, pair Pair, mode config.Mode) (Assessment, error) {
	left, right := pair.Left.CommitID, pair.Right.CommitID
	result := Assessment{Pair: pair}

	var err error
	if result.LeftDescription, err = a.repo.Description(ctx, left); err != nil {
		return Assessment{}, err
	}
	if result.RightDescription, err = a.repo.Description(ctx, right); err != nil {
		return Assessment{}, err
	}

	if result.LeftHasConflicts, err = a.repo.HasConflicts(ctx, left); err != nil {
		return Assessment{}, err
	}
	if result.RightHasConflicts, err = a.repo.HasConflicts(ctx, right); err != nil {
		return Assessment{}, err
	}

	if result.LeftIsMerge, err = a.isMerge(ctx, left); err != nil {
		return Assessment{}, err
	}
	if result.RightIsMerge, err = a.isMerge(ctx, right); err != nil {
		return Assessment{}, err
	}

	if result.Interdiff, err = a.repo.Interdiff(ctx, left, right, mode.Auto); err != nil {
		return Assessment{}, err
	}
	result.InterdiffEmpty = strings.TrimSpace(result.Interdiff) == ""

	return result, nil
}

func (a *Analyzer) isMerge(ctx context.Context, rev jj.CommitID) (bool, error) {
	parents, err := a.repo.ParentCount(ctx, rev)
	if err != nil {
		return false, err
	}
	return parents > 1, nil
}
