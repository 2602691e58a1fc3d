package jj

import (
	"context"
	"fmt"
	"strings"
)

// ListDivergentChangeIDs returns every change id carried by more than one
// visible commit, in sorted order.
func (r *Repo) ListDivergentChangeIDs(ctx context.Context) ([]ChangeID, error) {
	out, err := r.runner.Query(ctx, "log", "-T", `change_id ++ "\n"`, "--no-graph", "--color=never")
	if err != nil {
		return nil, fmt.Errorf("failed to list change ids: %w", err)
	}
	return DuplicateChangeIDs(splitLines(out)), nil
}

// ResolveChangeIDs returns the commits of the given changes, excluding commits
// that descend from another commit of the same set.
func (r *Repo) ResolveChangeIDs(ctx context.Context, ids []ChangeID) ([]CommitInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := ChangeIDRevset(ids)
	revset := fmt.Sprintf("(%s) ~ descendants((%s)+)", q, q)
	out, err := r.runner.Query(ctx, "log", "-r", revset,
		"-T", `change_id ++ " " ++ commit_id ++ "\n"`, "--no-graph", "--color=never")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve change ids: %w", err)
	}
	return ParseCommitInfos(out)
}

// FirstRevision returns the first commit jj lists for a change
func (r *Repo) FirstRevision(ctx context.Context, id ChangeID) (CommitID, bool, error) {
	out, err := r.runner.Query(ctx, "log", "-r", ChangeIDRevset([]ChangeID{id}),
		"-T", `commit_id ++ "\n"`, "--no-graph", "--color=never")
	if err != nil {
		return "", false, fmt.Errorf("failed to get commits for change ID %s: %w", id, err)
	}
	lines := splitLines(out)
	if len(lines) == 0 {
		return "", false, nil
	}
	return CommitID(lines[0]), true, nil
}

// Description returns the trimmed description of a commit
func (r *Repo) Description(ctx context.Context, rev CommitID) (string, error) {
	out, err := r.runner.Query(ctx, "log", "-r", string(rev), "-T", "description", "--no-graph", "--color=never")
	if err != nil {
		return "", fmt.Errorf("failed to get description for commit %s: %w", rev, err)
	}
	return strings.TrimSpace(out), nil
}

// HasConflicts reports whether jj's conflicts() revset matches the commit
func (r *Repo) HasConflicts(ctx context.Context, rev CommitID) (bool, error) {
	out, err := r.runner.Query(ctx, "log", "-r", fmt.Sprintf("%s & conflicts()", rev),
		"-T", `commit_id ++ "\n"`, "--no-graph", "--color=never")
	if err != nil {
		return false, fmt.Errorf("failed to check commit %s for conflicts: %w", rev, err)
	}
	return strings.TrimSpace(out) != "", nil
}

// ParentCount returns the number of parents of a commit
func (r *Repo) ParentCount(ctx context.Context, rev CommitID) (int, error) {
	out, err := r.runner.Query(ctx, "log", "-r", string(rev)+"-",
		"-T", `commit_id ++ "\n"`, "--no-graph", "--color=never")
	if err != nil {
		return 0, fmt.Errorf("failed to get parents of commit %s: %w", rev, err)
	}
	return len(splitLines(out)), nil
}

// Interdiff returns the difference between the changes introduced by two commits.
// With external set the output uses jj's builtin :git format.
func (r *Repo) Interdiff(ctx context.Context, from, to CommitID, external bool) (string, error) {
	args := []string{"interdiff", "--from", string(from), "--to", string(to), "--color=never"}
	if external {
		args = append(args, "--tool=:git")
	}
	out, err := r.runner.Query(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to compute interdiff %s..%s: %w", from, to, err)
	}
	return out, nil
}

// Diff returns the changes introduced by a single commit
func (r *Repo) Diff(ctx context.Context, rev CommitID) (string, error) {
	out, err := r.runner.Query(ctx, "diff", "-r", string(rev), "--color=never")
	if err != nil {
		return "", fmt.Errorf("failed to diff commit %s: %w", rev, err)
	}
	return out, nil
}

// Stack returns jj's default log graph
func (r *Repo) Stack(ctx context.Context) (string, error) {
	out, err := r.runner.Query(ctx, "log", r.colorFlag())
	if err != nil {
		return "", fmt.Errorf("failed to print stack: %w", err)
	}
	return out, nil
}

// CurrentOperation returns the most recent entry of the operation log.
// It is printed before every mutation so the operator can `jj op restore` it.
func (r *Repo) CurrentOperation(ctx context.Context) (string, error) {
	out, err := r.runner.Query(ctx, "op", "log", "-n", "1", r.colorFlag())
	if err != nil {
		return "", fmt.Errorf("failed to show current operation: %w", err)
	}
	return out, nil
}
