// Package resolver drives the divergence-resolution loop.
//
// A pass detects divergent changes (Selector), gathers what is needed to
// decide between the two revisions (Analyzer), and applies one action
// (Engine). Mutating actions end the pass with Restart so the next pass
// re-derives everything from the repository; informational actions return
// Continue and the menu is shown again for the same pair.
//
// The repository is reached only through the Querier and Mutator interfaces,
// implemented by jj.Repo for real workspaces and demo.Repo in memory.
package resolver
