// Package jj provides low-level Jujutsu operations.
//
// It wraps jj command execution and provides a Go-friendly interface for:
//   - Divergence queries (divergent change ids, revisions per change)
//   - Revision metadata (description, conflicts, parents)
//   - Diffs and interdiffs between revisions
//   - History mutations (rebase, abandon, squash)
//
// This package should be the only place where jj commands are executed.
package jj
