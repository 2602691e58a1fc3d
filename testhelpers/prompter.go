package testhelpers

import (
	"errors"
	"fmt"
	"sync"

	"jjdiverge.dev/jjdiverge/internal/resolver"
)

// ErrScriptExhausted is returned when a prompt is shown after every scripted
// answer was used.
var ErrScriptExhausted = errors.New("scripted prompter: no answers left")

// ScriptedPrompter answers prompts from a fixed list, parsing each answer the
// way the terminal prompter parses typed input.
type ScriptedPrompter struct {
	mu      sync.Mutex
	answers []string
	asked   []string
}

// NewScriptedPrompter creates a prompter that replays answers in order
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// Push appends answers to the script
func (p *ScriptedPrompter) Push(answers ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = append(p.answers, answers...)
}

// Asked returns every prompt shown so far
func (p *ScriptedPrompter) Asked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.asked...)
}

// Remaining returns the answers not consumed yet
func (p *ScriptedPrompter) Remaining() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.answers...)
}

func (p *ScriptedPrompter) next(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("%w (prompt: %q)", ErrScriptExhausted, prompt)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Confirm implements resolver.Prompter
func (p *ScriptedPrompter) Confirm(message string) (resolver.Verdict, error) {
	answer, err := p.next(message)
	if err != nil {
		return resolver.Cancel, err
	}
	return resolver.ParseVerdict(answer), nil
}

// ConfirmAction implements resolver.Prompter
func (p *ScriptedPrompter) ConfirmAction(message string) (bool, error) {
	answer, err := p.next(message)
	if err != nil {
		return false, err
	}
	return resolver.ParseVerdict(answer) == resolver.Proceed, nil
}

// ChooseCandidate implements resolver.Prompter
func (p *ScriptedPrompter) ChooseCandidate(candidates []resolver.Candidate) (int, bool, error) {
	answer, err := p.next(fmt.Sprintf("Choose option (1-%d) or 'q' to quit:", len(candidates)))
	if err != nil {
		return 0, false, err
	}
	return resolver.ParseCandidateChoice(answer, len(candidates))
}

// ChooseAction implements resolver.Prompter
func (p *ScriptedPrompter) ChooseAction(_ []resolver.Action) (resolver.Action, error) {
	answer, err := p.next("What would you like to do?")
	if err != nil {
		return 0, err
	}
	return resolver.ParseAction(answer)
}

var _ resolver.Prompter = (*ScriptedPrompter)(nil)
