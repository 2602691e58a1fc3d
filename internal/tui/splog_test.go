package tui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/tui"
)

func TestSplogConsole(t *testing.T) {
	var buf bytes.Buffer
	splog := tui.NewSplogWithWriter(&buf, false)

	splog.Info("Found %d divergent change IDs", 2)
	splog.Warn("Squashing these commits may not be recommended")
	splog.Error("boom")
	splog.Debug("hidden")
	splog.Page("raw output")

	require.Equal(t, "Found 2 divergent change IDs\n"+
		"⚠️  Squashing these commits may not be recommended\n"+
		"❌ boom\n"+
		"raw output\n", buf.String())
}

func TestSplogDebugMode(t *testing.T) {
	var buf bytes.Buffer
	splog := tui.NewSplogWithWriter(&buf, true)
	splog.Debug("jj %s", "log")
	require.Equal(t, "jj log\n", buf.String())
}

func TestSplogPercentWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	splog := tui.NewSplogWithWriter(&buf, false)
	splog.Info("100% done")
	require.Equal(t, "100% done\n", buf.String())
}

func TestSplogFile(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "jjdiverge.log")

	splog, err := tui.NewSplogWithConfig(tui.SplogConfig{
		Writer:        &buf,
		LogFile:       logFile,
		LogMaxSize:    1,
		LogMaxBackups: 1,
		LogMaxAge:     1,
		RunID:         "run-42",
	})
	require.NoError(t, err)

	splog.Debug("only in the file")
	splog.Info("everywhere")
	require.NoError(t, splog.Close())

	require.Equal(t, "everywhere\n", buf.String())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "only in the file")
	require.Contains(t, string(data), "everywhere")
	require.Contains(t, string(data), "run=run-42")
}
