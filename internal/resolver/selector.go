package resolver

import (
	"context"
	"fmt"
	"strings"

	"jjdiverge.dev/jjdiverge/internal/config"
	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/jj"
	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Selector finds divergent changes and narrows them down to one pair
type Selector struct {
	repo     Querier
	prompter Prompter
	reporter *Reporter
	splog    *tui.Splog
}

// NewSelector creates a Selector
func NewSelector(repo Querier, prompter Prompter, reporter *Reporter, splog *tui.Splog) *Selector {
	return &Selector{repo: repo, prompter: prompter, reporter: reporter, splog: splog}
}

// Select returns the pair to resolve next, or nil when there is nothing left
// to do or the operator quit the disambiguation prompt.
func (s *Selector) Select(ctx context.Context, mode config.Mode) (*Pair, error) {
	ids, err := s.repo.ListDivergentChangeIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		s.splog.Info("✅ No divergent commits found.")
		return nil, nil
	}
	s.splog.Info("Found %d divergent change IDs: %s", len(ids), joinChangeIDs(ids))

	infos, err := s.repo.ResolveChangeIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if len(infos) > 2 {
		s.splog.Newline()
		s.splog.Warn("More than 2 commits found for divergent change IDs.")
		s.splog.Info("You must choose a specific change ID to work on.")

		chosen, ok, err := s.choose(ctx, uniqueChangeIDs(infos), mode)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.splog.Info("No change ID selected. Exiting.")
			return nil, nil
		}

		s.splog.Newline()
		s.splog.Info("🎯 Working with change ID: %s", tui.ColorChangeID(string(chosen)))
		infos, err = s.repo.ResolveChangeIDs(ctx, []jj.ChangeID{chosen})
		if err != nil {
			return nil, err
		}
		if len(infos) < 2 {
			return nil, jjerrors.NewStaleSelectionError([]string{string(chosen)}, len(infos))
		}
	} else if len(infos) < 2 {
		strs := make([]string, len(ids))
		for i, id := range ids {
			strs[i] = string(id)
		}
		return nil, jjerrors.NewStaleSelectionError(strs, len(infos))
	}

	return &Pair{Left: infos[0], Right: infos[1]}, nil
}

func (s *Selector) choose(ctx context.Context, ids []jj.ChangeID, mode config.Mode) (jj.ChangeID, bool, error) {
	candidates := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		candidate := Candidate{ChangeID: id}
		rev, found, err := s.repo.FirstRevision(ctx, id)
		if err != nil {
			return "", false, err
		}
		if found {
			description, err := s.repo.Description(ctx, rev)
			if err != nil {
				return "", false, err
			}
			candidate.CommitID = rev
			candidate.Description = description
		}
		candidates = append(candidates, candidate)
	}

	s.reporter.Candidates(candidates)

	if mode.Auto {
		s.splog.Newline()
		s.splog.Info("🤖 Auto mode: Automatically choosing option 1 (first change ID)")
		return candidates[0].ChangeID, true, nil
	}

	idx, ok, err := s.prompter.ChooseCandidate(candidates)
	if err != nil || !ok {
		return "", false, err
	}
	if idx < 0 || idx >= len(candidates) {
		return "", false, fmt.Errorf("candidate %d out of range", idx+1)
	}
	return candidates[idx].ChangeID, true, nil
}

// uniqueChangeIDs returns the change ids of infos in first-seen order
func uniqueChangeIDs(infos []jj.CommitInfo) []jj.ChangeID {
	seen := make(map[jj.ChangeID]bool, len(infos))
	var ids []jj.ChangeID
	for _, info := range infos {
		if seen[info.ChangeID] {
			continue
		}
		seen[info.ChangeID] = true
		ids = append(ids, info.ChangeID)
	}
	return ids
}

func joinChangeIDs(ids []jj.ChangeID) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return strings.Join(strs, ", ")
}
