package jj

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
)

// emptyRevisionSetMarker is what jj prints when a revset selects nothing
const emptyRevisionSetMarker = "Empty revision set"

// Rebase moves the descendants of root onto dest.
// A selection with nothing to move is reported as ErrEmptyRevisionSet.
func (r *Repo) Rebase(ctx context.Context, root, dest CommitID) (string, error) {
	out, err := r.runner.Exec(ctx, "rebase", "-s", string(root)+"+", "-d", string(dest))
	if err != nil {
		var cmdErr *jjerrors.JJCommandError
		if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, emptyRevisionSetMarker) {
			return "", fmt.Errorf("rebase %s+ onto %s: %w", root, dest, jjerrors.ErrEmptyRevisionSet)
		}
		return "", err
	}
	return out, nil
}

// Abandon abandons a commit
func (r *Repo) Abandon(ctx context.Context, rev CommitID) (string, error) {
	return r.runner.Exec(ctx, "abandon", "-r", string(rev))
}

// Squash moves the changes of from into into, keeping into's description
func (r *Repo) Squash(ctx context.Context, from, into CommitID) (string, error) {
	return r.runner.Exec(ctx, "squash", "-u", "--from", string(from), "--into", string(into))
}
