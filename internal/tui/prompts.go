package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via JJDIVERGE_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (JJDIVERGE_TEST_NO_INTERACTIVE is set)")

// ErrPromptCanceled is returned when the operator interrupts a prompt
var ErrPromptCanceled = errors.New("canceled")

// ErrInvalidChoice is wrapped by validators rejecting an answer that is not
// one of the offered choices
var ErrInvalidChoice = errors.New("invalid choice")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("JJDIVERGE_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// SelectOption represents an option in a selection prompt
type SelectOption struct {
	Label string // What to show
	Value string // Value to return
}

// Prompts asks the operator questions. On a terminal it uses survey and
// bubbletea; otherwise it reads answers line by line so input can be piped.
type Prompts struct {
	in      io.Reader
	out     io.Writer
	tty     bool
	guarded bool
	lines   *bufio.Reader
}

// NewTerminalPrompts creates prompts bound to the process stdin/stdout
func NewTerminalPrompts() *Prompts {
	return &Prompts{
		in:      os.Stdin,
		out:     os.Stdout,
		tty:     IsTTY(),
		guarded: true,
		lines:   bufio.NewReader(os.Stdin),
	}
}

// NewLinePrompts creates line-oriented prompts over arbitrary streams
func NewLinePrompts(in io.Reader, out io.Writer) *Prompts {
	return &Prompts{in: in, out: out, lines: bufio.NewReader(in)}
}

// Input asks for a free-form answer. validate may reject an answer, in which
// case the question is asked again.
func (p *Prompts) Input(message string, validate func(string) error) (string, error) {
	if p.guarded {
		if err := checkInteractiveAllowed(); err != nil {
			return "", err
		}
	}
	if p.tty {
		return surveyInput(message, validate)
	}

	for {
		_, _ = fmt.Fprint(p.out, message+" ")
		line, err := p.lines.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		answer := strings.TrimSpace(line)
		if validate != nil {
			if verr := validate(answer); verr != nil {
				_, _ = fmt.Fprintln(p.out, rejection(verr))
				if err != nil {
					return "", verr
				}
				continue
			}
		}
		return answer, nil
	}
}

// rejection is the line shown to the operator when validate refuses an answer
func rejection(err error) string {
	if errors.Is(err, ErrInvalidChoice) {
		return "Invalid choice."
	}
	return "Invalid answer: " + err.Error()
}

func surveyInput(message string, validate func(string) error) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(strings.TrimSpace(s))
		}))
	}
	if err := survey.AskOne(&survey.Input{Message: message}, &answer, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrPromptCanceled
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Select asks the operator to pick one option and returns its Value
func (p *Prompts) Select(title string, options []SelectOption, defaultIndex int) (string, error) {
	if p.guarded {
		if err := checkInteractiveAllowed(); err != nil {
			return "", err
		}
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}
	if p.tty {
		return runSelect(title, options, defaultIndex)
	}

	_, _ = fmt.Fprintln(p.out, title)
	for _, opt := range options {
		_, _ = fmt.Fprintln(p.out, opt.Label)
	}
	answer, err := p.Input("Choose an option:", func(s string) error {
		if _, ok := matchOption(options, s); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidChoice, s)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	value, _ := matchOption(options, answer)
	return value, nil
}

func matchOption(options []SelectOption, answer string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt.Value, answer) {
			return opt.Value, true
		}
	}
	return "", false
}

type selectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var selectKeys = selectKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "shift+tab")),
	Down:   key.NewBinding(key.WithKeys("down", "tab")),
	Choose: key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

// SelectModel is a selection prompt model with arrow key navigation
type SelectModel struct {
	Options  []SelectOption
	Cursor   int
	Selected string
	Done     bool
	Err      error
	Title    string
}

// Init initializes the bubbletea model
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles message updates for the bubbletea model
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, selectKeys.Choose):
		if m.Cursor >= 0 && m.Cursor < len(m.Options) {
			m.Selected = m.Options[m.Cursor].Value
			m.Done = true
			return m, tea.Quit
		}
	case key.Matches(keyMsg, selectKeys.Quit):
		m.Err = ErrPromptCanceled
		m.Done = true
		return m, tea.Quit
	case key.Matches(keyMsg, selectKeys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		} else {
			m.Cursor = len(m.Options) - 1
		}
	case key.Matches(keyMsg, selectKeys.Down):
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		} else {
			m.Cursor = 0
		}
	}
	return m, nil
}

// View renders the TUI
func (m SelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		if i == m.Cursor {
			b.WriteString(fmt.Sprintf("  → %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(opt.Label)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", opt.Label))
		}
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("\n(↑/↓ to select, Enter to confirm, Ctrl+C to cancel)"))

	return lipgloss.NewStyle().Margin(1, 0).Render(b.String())
}

func runSelect(title string, options []SelectOption, defaultIndex int) (string, error) {
	cursor := defaultIndex
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}

	m := SelectModel{
		Options: options,
		Cursor:  cursor,
		Title:   title,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(SelectModel); ok {
		if finalModel.Err != nil {
			return "", finalModel.Err
		}
		return finalModel.Selected, nil
	}

	return "", fmt.Errorf("unexpected model type")
}
