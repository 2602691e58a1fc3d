package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/cli"
	"jjdiverge.dev/jjdiverge/testhelpers"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3", "abc123", "2026-01-01")
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	require.NoError(t, cmd.Execute())
	return stdout.String(), stderr.String()
}

func TestRootHelp(t *testing.T) {
	t.Setenv("JJDIVERGE_DEMO", "1")

	stdout, _ := runRoot(t, "", "--help")
	assert.Contains(t, stdout, "--safe")
	assert.Contains(t, stdout, "--auto")
	assert.Contains(t, stdout, "AL/AR")
	assert.NotContains(t, stdout, "Checking for divergent commits")
}

func TestRootVersion(t *testing.T) {
	stdout, _ := runRoot(t, "", "--version")
	assert.Contains(t, stdout, "1.2.3 (commit abc123, built 2026-01-01)")
}

func TestRootRejectsArguments(t *testing.T) {
	cmd := cli.NewRootCmd("dev", "none", "unknown")
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}

func TestRootResolvesDemoRepository(t *testing.T) {
	t.Setenv("JJDIVERGE_DEMO", "1")

	stdout, stderr := runRoot(t, "2\nSL\nAR\n")
	assert.Empty(t, stderr)
	testhelpers.ExpectInOrder(t, stdout,
		"🔍 Checking for divergent commits...",
		"More than 2 commits found",
		"🎯 Working with change ID: kxqpzlmw",
		"What would you like to do?",
		"Updated stack:",
		"🔄 Restarting from beginning due to state changes...",
		"Found 1 divergent change IDs: wlsmrkto",
		"✅ No divergent commits found.",
	)
}

func TestRootSafeAndAutoBanners(t *testing.T) {
	t.Setenv("JJDIVERGE_DEMO", "1")

	stdout, stderr := runRoot(t, "q\n", "--safe", "--auto")
	testhelpers.ExpectInOrder(t, stdout,
		"🔒 Safe mode enabled - will ask for confirmation before each jj command",
		"🤖 Auto mode enabled - will use git tool for interdiff and auto-squash if empty",
		"🤖 Auto mode: Automatically choosing option 1 (first change ID)",
	)
	// The first candidate's revisions differ, so the menu is shown and the
	// piped input ends on an invalid choice.
	assert.Contains(t, stderr, "❌ Error:")
}
