package resolver

import (
	"fmt"

	"jjdiverge.dev/jjdiverge/internal/config"
	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Gate asks for confirmation before operations in safe mode and lets
// everything through otherwise.
type Gate struct {
	mode     config.Mode
	prompter Prompter
	splog    *tui.Splog
}

// NewGate creates a Gate for one action
func NewGate(mode config.Mode, prompter Prompter, splog *tui.Splog) *Gate {
	return &Gate{mode: mode, prompter: prompter, splog: splog}
}

// Check returns the operator's verdict for one underlying operation
func (g *Gate) Check(description string) (Verdict, error) {
	if !g.mode.Safe {
		return Proceed, nil
	}
	return g.prompter.Confirm(description)
}

// ConfirmAction asks once for a whole mutating action
func (g *Gate) ConfirmAction(message string) (bool, error) {
	if !g.mode.Safe {
		return true, nil
	}
	return g.prompter.ConfirmAction(message)
}

// Run executes op unless the operator skips or cancels it.
// A cancel is reported as errors.ErrUserCancelled.
func (g *Gate) Run(description string, op func() (string, error)) (out string, skipped bool, err error) {
	verdict, err := g.Check(description)
	if err != nil {
		return "", false, err
	}
	switch verdict {
	case Skip:
		g.splog.Info("⏭️  Command skipped")
		return "", true, nil
	case Cancel:
		return "", false, fmt.Errorf("%s: %w", description, jjerrors.ErrUserCancelled)
	}
	out, err = op()
	return out, false, err
}
