package resolver_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/config"
	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/resolver"
	"jjdiverge.dev/jjdiverge/internal/tui"
	"jjdiverge.dev/jjdiverge/testhelpers"
)

func TestGate(t *testing.T) {
	ran := 0
	op := func() (string, error) {
		ran++
		return "done", nil
	}

	t.Run("lets everything through outside safe mode", func(t *testing.T) {
		ran = 0
		prompter := testhelpers.NewScriptedPrompter()
		gate := resolver.NewGate(config.Mode{}, prompter, tui.NewSplogWithWriter(&bytes.Buffer{}, false))

		ok, err := gate.ConfirmAction("Abandon?")
		require.NoError(t, err)
		assert.True(t, ok)

		out, skipped, err := gate.Run("Abandon commit abc", op)
		require.NoError(t, err)
		assert.False(t, skipped)
		assert.Equal(t, "done", out)
		assert.Equal(t, 1, ran)
		assert.Empty(t, prompter.Asked())
	})

	t.Run("skip is a no-op", func(t *testing.T) {
		ran = 0
		var buf bytes.Buffer
		prompter := testhelpers.NewScriptedPrompter("s")
		gate := resolver.NewGate(config.Mode{Safe: true}, prompter, tui.NewSplogWithWriter(&buf, false))

		_, skipped, err := gate.Run("Abandon commit abc", op)
		require.NoError(t, err)
		assert.True(t, skipped)
		assert.Zero(t, ran)
		assert.Contains(t, buf.String(), "Command skipped")
		assert.Equal(t, []string{"Abandon commit abc"}, prompter.Asked())
	})

	t.Run("cancel aborts with ErrUserCancelled", func(t *testing.T) {
		ran = 0
		prompter := testhelpers.NewScriptedPrompter("n")
		gate := resolver.NewGate(config.Mode{Safe: true}, prompter, tui.NewSplogWithWriter(&bytes.Buffer{}, false))

		_, _, err := gate.Run("Abandon commit abc", op)
		require.ErrorIs(t, err, jjerrors.ErrUserCancelled)
		assert.Zero(t, ran)
	})

	t.Run("proceed runs the operation", func(t *testing.T) {
		ran = 0
		prompter := testhelpers.NewScriptedPrompter("y")
		gate := resolver.NewGate(config.Mode{Safe: true}, prompter, tui.NewSplogWithWriter(&bytes.Buffer{}, false))

		verdict, err := gate.Check("Abandon commit abc")
		require.NoError(t, err)
		assert.Equal(t, resolver.Proceed, verdict)
	})

	t.Run("action confirmation treats skip as decline", func(t *testing.T) {
		prompter := testhelpers.NewScriptedPrompter("s")
		gate := resolver.NewGate(config.Mode{Safe: true}, prompter, tui.NewSplogWithWriter(&bytes.Buffer{}, false))

		ok, err := gate.ConfirmAction("Abandon left commit (abc)?")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
