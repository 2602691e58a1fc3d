// Package scenario provides a high-level test scenario that combines an
// in-memory repository, a scripted prompter and a resolver to provide a terse
// API for loop tests.
package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/config"
	"jjdiverge.dev/jjdiverge/internal/demo"
	"jjdiverge.dev/jjdiverge/internal/jj"
	"jjdiverge.dev/jjdiverge/internal/resolver"
	"jjdiverge.dev/jjdiverge/internal/tui"
	"jjdiverge.dev/jjdiverge/testhelpers"
)

// Scenario represents one resolver run against an in-memory repository
type Scenario struct {
	T        *testing.T
	Repo     *demo.Repo
	Prompter *testhelpers.ScriptedPrompter
	Mode     config.Mode
	Output   *bytes.Buffer
	Err      error

	trunk jj.CommitID
}

// NewScenario creates a Scenario with a single trunk commit.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T) *Scenario {
	t.Helper()

	// Force non-interactive mode for tests
	t.Setenv("JJDIVERGE_TEST_NO_INTERACTIVE", "1")

	repo := demo.NewRepo()
	trunk := repo.Add(demo.Commit{ChangeID: "trunktrk", Description: "trunk"})
	return &Scenario{
		T:        t,
		Repo:     repo,
		Prompter: testhelpers.NewScriptedPrompter(),
		Output:   &bytes.Buffer{},
		trunk:    trunk,
	}
}

// Trunk returns the id of the trunk commit
func (s *Scenario) Trunk() jj.CommitID {
	return s.trunk
}

// Safe enables safe mode
func (s *Scenario) Safe() *Scenario {
	s.Mode.Safe = true
	return s
}

// Auto enables auto mode
func (s *Scenario) Auto() *Scenario {
	s.Mode.Auto = true
	return s
}

// Answers queues operator answers
func (s *Scenario) Answers(answers ...string) *Scenario {
	s.Prompter.Push(answers...)
	return s
}

// WithCommit adds a commit on top of trunk unless parents are given
func (s *Scenario) WithCommit(c demo.Commit) jj.CommitID {
	if len(c.Parents) == 0 {
		c.Parents = []jj.CommitID{s.trunk}
	}
	return s.Repo.Add(c)
}

// WithDivergentPair adds two revisions of changeID on top of trunk and
// returns them in left, right order.
func (s *Scenario) WithDivergentPair(changeID jj.ChangeID, older, newer demo.Commit) (left, right jj.CommitID) {
	older.ChangeID = changeID
	newer.ChangeID = changeID
	right = s.WithCommit(older)
	left = s.WithCommit(newer)
	return left, right
}

// WithIdenticalPair adds two revisions of changeID with the same content
func (s *Scenario) WithIdenticalPair(changeID jj.ChangeID, files map[string]string) (left, right jj.CommitID) {
	return s.WithDivergentPair(changeID,
		demo.Commit{Description: "change " + string(changeID), Files: files},
		demo.Commit{Description: "change " + string(changeID), Files: files},
	)
}

// Resolver builds a resolver over the scenario's repository
func (s *Scenario) Resolver() *resolver.Resolver {
	return resolver.New(resolver.Options{
		Repo:     s.Repo,
		Prompter: s.Prompter,
		Splog:    tui.NewSplogWithWriter(s.Output, false),
		Mode:     s.Mode,
	})
}

// Run runs the resolver to completion and records its error
func (s *Scenario) Run() *Scenario {
	s.T.Helper()
	s.Err = s.Resolver().Run(context.Background())
	return s
}

// ExpectSuccess asserts the run ended without error and used every answer
func (s *Scenario) ExpectSuccess() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Err, "output:\n%s", s.Output.String())
	require.Empty(s.T, s.Prompter.Remaining(), "unused answers")
	return s
}

// ExpectError asserts the run failed with target somewhere in the chain
func (s *Scenario) ExpectError(target error) *Scenario {
	s.T.Helper()
	require.ErrorIs(s.T, s.Err, target, "output:\n%s", s.Output.String())
	return s
}

// ExpectOutput asserts the snippets occur in the output in order
func (s *Scenario) ExpectOutput(snippets ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectInOrder(s.T, s.Output.String(), snippets...)
	return s
}

// ExpectNoOutput asserts the snippet never occurs in the output
func (s *Scenario) ExpectNoOutput(snippet string) *Scenario {
	s.T.Helper()
	require.NotContains(s.T, s.Output.String(), snippet)
	return s
}

// ExpectDivergent asserts the divergent change ids after the run
func (s *Scenario) ExpectDivergent(expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectDivergent(s.T, s.Repo, expected...)
	return s
}

// ExpectOperations asserts the mutations applied during the run
func (s *Scenario) ExpectOperations(expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectOperations(s.T, s.Repo, expected...)
	return s
}
