package runtime_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/demo"
	"jjdiverge.dev/jjdiverge/internal/jj"
	"jjdiverge.dev/jjdiverge/internal/runtime"
)

func TestGetContextDemoMode(t *testing.T) {
	t.Setenv("JJDIVERGE_DEMO", "1")

	var out bytes.Buffer
	ctx, err := runtime.GetContext(runtime.Options{Stdin: strings.NewReader(""), Stdout: &out})
	require.NoError(t, err)
	defer ctx.Close()

	_, ok := ctx.Repo.(*demo.Repo)
	assert.True(t, ok, "expected the in-memory repository")
	assert.False(t, ctx.Color)
	assert.NotNil(t, ctx.Prompter)
	assert.Contains(t, out.String(), "Demo mode")

	_, err = uuid.Parse(ctx.RunID)
	require.NoError(t, err)
}

func TestGetContextRealRepo(t *testing.T) {
	t.Setenv("JJDIVERGE_JJ_BINARY", "/opt/jj/bin/jj")

	ctx, err := runtime.GetContext(runtime.Options{RepoRoot: t.TempDir(), Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	defer ctx.Close()

	_, ok := ctx.Repo.(*jj.Repo)
	assert.True(t, ok, "expected the jj repository")
	assert.Equal(t, "/opt/jj/bin/jj", ctx.Settings.JJBinary)
}

func TestGetContextFileLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "jjdiverge.log")
	t.Setenv("JJDIVERGE_DEMO", "true")
	t.Setenv("JJDIVERGE_LOG_FILE", logFile)

	var out bytes.Buffer
	ctx, err := runtime.GetContext(runtime.Options{Stdin: strings.NewReader(""), Stdout: &out})
	require.NoError(t, err)
	ctx.Splog.Info("hello from the test")
	require.NoError(t, ctx.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Contains(t, string(data), "run="+ctx.RunID)
	assert.NotContains(t, out.String(), "started", "debug lines stay off the console")
}

func TestGetContextInvalidSettings(t *testing.T) {
	t.Setenv("JJDIVERGE_COMMAND_TIMEOUT", "-5s")

	_, err := runtime.GetContext(runtime.Options{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestGetContextDemoDelay(t *testing.T) {
	t.Setenv("JJDIVERGE_DEMO", "1")
	t.Setenv("JJDIVERGE_DEMO_DELAY", "40ms")

	ctx, err := runtime.GetContext(runtime.Options{Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}})
	require.NoError(t, err)
	defer ctx.Close()
	assert.Equal(t, 40*time.Millisecond, ctx.Settings.DemoDelay)

	start := time.Now()
	ids, err := ctx.Repo.ListDivergentChangeIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
