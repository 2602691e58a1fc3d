package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Prompter asks the operator for decisions
type Prompter interface {
	// Confirm asks y/N/s before one underlying operation.
	Confirm(message string) (Verdict, error)
	// ConfirmAction asks y/N before a whole mutating action.
	ConfirmAction(message string) (bool, error)
	// ChooseCandidate returns the index of the chosen candidate, or false to quit.
	ChooseCandidate(candidates []Candidate) (int, bool, error)
	// ChooseAction blocks until the operator picks a menu entry.
	ChooseAction(actions []Action) (Action, error)
}

// TerminalPrompter implements Prompter on top of tui prompts
type TerminalPrompter struct {
	prompts *tui.Prompts
}

// NewTerminalPrompter creates a TerminalPrompter
func NewTerminalPrompter(prompts *tui.Prompts) *TerminalPrompter {
	return &TerminalPrompter{prompts: prompts}
}

// Confirm implements Prompter
func (p *TerminalPrompter) Confirm(message string) (Verdict, error) {
	answer, err := p.prompts.Input(message+" (y/N/s):", nil)
	if err != nil {
		return Cancel, err
	}
	return ParseVerdict(answer), nil
}

// ConfirmAction implements Prompter
func (p *TerminalPrompter) ConfirmAction(message string) (bool, error) {
	answer, err := p.prompts.Input(message+" (y/N):", nil)
	if err != nil {
		return false, err
	}
	return ParseVerdict(answer) == Proceed, nil
}

// ChooseCandidate implements Prompter
func (p *TerminalPrompter) ChooseCandidate(candidates []Candidate) (int, bool, error) {
	n := len(candidates)
	answer, err := p.prompts.Input(fmt.Sprintf("Choose option (1-%d) or 'q' to quit:", n), func(s string) error {
		_, _, err := ParseCandidateChoice(s, n)
		return err
	})
	if err != nil {
		return 0, false, err
	}
	return ParseCandidateChoice(answer, n)
}

// ParseCandidateChoice parses a 1-based option number or "q"
func ParseCandidateChoice(answer string, n int) (int, bool, error) {
	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, "q") {
		return 0, false, nil
	}
	choice, err := strconv.Atoi(answer)
	if err != nil || choice < 1 || choice > n {
		return 0, false, fmt.Errorf("%w: %q", tui.ErrInvalidChoice, answer)
	}
	return choice - 1, true, nil
}

// ChooseAction implements Prompter
func (p *TerminalPrompter) ChooseAction(actions []Action) (Action, error) {
	options := make([]tui.SelectOption, len(actions))
	for i, a := range actions {
		options[i] = tui.SelectOption{Label: a.Key() + ". " + a.Label(), Value: a.Key()}
	}
	value, err := p.prompts.Select("What would you like to do?", options, 0)
	if err != nil {
		return 0, err
	}
	return ParseAction(value)
}
