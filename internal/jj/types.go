package jj

// ChangeID is a jj change identifier. Divergent changes have two or more
// visible commits carrying the same ChangeID.
type ChangeID string

// CommitID identifies one concrete commit.
type CommitID string

// CommitInfo pairs a change with one of its commits.
type CommitInfo struct {
	ChangeID ChangeID
	CommitID CommitID
}
