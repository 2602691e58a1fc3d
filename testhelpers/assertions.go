// Package testhelpers provides testing utilities for jjdiverge, including a
// scripted prompter and assertions over the in-memory repository.
package testhelpers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/demo"
	"jjdiverge.dev/jjdiverge/internal/jj"
)

// ExpectDivergent asserts the divergent change ids of repo, in sorted order
func ExpectDivergent(t *testing.T, repo *demo.Repo, expected ...string) {
	t.Helper()

	ids, err := repo.ListDivergentChangeIDs(context.Background())
	require.NoError(t, err, "Failed to list divergent changes")

	actual := make([]string, len(ids))
	for i, id := range ids {
		actual[i] = string(id)
	}
	if len(expected) == 0 {
		require.Empty(t, actual, "Expected no divergent changes")
		return
	}
	require.Equal(t, expected, actual, "Divergent changes do not match")
}

// ExpectOperations asserts the mutations applied to repo. Each expected entry
// is matched as a prefix so tests need not spell out generated commit ids.
func ExpectOperations(t *testing.T, repo *demo.Repo, expected ...string) {
	t.Helper()

	ops := repo.Operations()
	require.Len(t, ops, len(expected), "Operations do not match: %v", ops)
	for i, prefix := range expected {
		require.True(t, strings.HasPrefix(ops[i], prefix), "operation %d: expected prefix %q, got %q", i, prefix, ops[i])
	}
}

// ExpectVisible asserts how many visible commits carry changeID
func ExpectVisible(t *testing.T, repo *demo.Repo, changeID jj.ChangeID, count int) {
	t.Helper()

	n := 0
	for _, c := range repo.Visible() {
		if c.ChangeID == changeID {
			n++
		}
	}
	require.Equal(t, count, n, "Visible commits of %s do not match", changeID)
}

// ExpectInOrder asserts that each snippet occurs in output after the previous one
func ExpectInOrder(t *testing.T, output string, snippets ...string) {
	t.Helper()

	rest := output
	for _, s := range snippets {
		i := strings.Index(rest, s)
		require.GreaterOrEqual(t, i, 0, "expected %q in order in output:\n%s", s, output)
		rest = rest[i+len(s):]
	}
}
