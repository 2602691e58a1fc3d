package resolver

import (
	"context"

	"jjdiverge.dev/jjdiverge/internal/jj"
)

// Querier reads repository state. Implementations must not mutate history.
type Querier interface {
	ListDivergentChangeIDs(ctx context.Context) ([]jj.ChangeID, error)
	ResolveChangeIDs(ctx context.Context, ids []jj.ChangeID) ([]jj.CommitInfo, error)
	FirstRevision(ctx context.Context, id jj.ChangeID) (jj.CommitID, bool, error)
	Description(ctx context.Context, rev jj.CommitID) (string, error)
	HasConflicts(ctx context.Context, rev jj.CommitID) (bool, error)
	ParentCount(ctx context.Context, rev jj.CommitID) (int, error)
	Interdiff(ctx context.Context, from, to jj.CommitID, external bool) (string, error)
	Diff(ctx context.Context, rev jj.CommitID) (string, error)
	Stack(ctx context.Context) (string, error)
	CurrentOperation(ctx context.Context) (string, error)
}

// Mutator changes repository history
type Mutator interface {
	// Rebase moves the descendants of root onto dest. It returns an error
	// wrapping errors.ErrEmptyRevisionSet when root has no descendants.
	Rebase(ctx context.Context, root, dest jj.CommitID) (string, error)
	Abandon(ctx context.Context, rev jj.CommitID) (string, error)
	Squash(ctx context.Context, from, into jj.CommitID) (string, error)
}

// Repository is everything the resolver needs from a workspace
type Repository interface {
	Querier
	Mutator
}

var _ Repository = (*jj.Repo)(nil)
