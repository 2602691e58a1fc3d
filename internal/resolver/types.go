package resolver

import (
	"fmt"
	"strings"

	"jjdiverge.dev/jjdiverge/internal/jj"
)

// Pair is the two revisions of a divergent change being compared
type Pair struct {
	Left  jj.CommitInfo
	Right jj.CommitInfo
}

// Assessment is everything the operator or the heuristic needs to choose an
// action for a pair. It is stale as soon as the repository is mutated.
type Assessment struct {
	Pair Pair

	LeftDescription   string
	RightDescription  string
	LeftHasConflicts  bool
	RightHasConflicts bool
	LeftIsMerge       bool
	RightIsMerge      bool
	Interdiff         string
	InterdiffEmpty    bool
}

// HasConflicts reports whether either side has conflicts
func (a Assessment) HasConflicts() bool {
	return a.LeftHasConflicts || a.RightHasConflicts
}

// HasMergeCommits reports whether either side has more than one parent
func (a Assessment) HasMergeCommits() bool {
	return a.LeftIsMerge || a.RightIsMerge
}

// HasIssues reports whether squashing the pair may lose information
func (a Assessment) HasIssues() bool {
	return a.HasConflicts() || a.HasMergeCommits()
}

// Action is one entry of the resolution menu
type Action int

// Menu actions. The first four mutate the repository.
const (
	AbandonLeft Action = iota
	AbandonRight
	SquashLeftIntoRight
	SquashRightIntoLeft
	PrintStack
	Refresh
	ShowInterdiff
	ShowDiffLeft
	ShowDiffRight
)

var actionKeys = [...]string{"AL", "AR", "SL", "SR", "P", "R", "I", "DL", "DR"}

var actionLabels = [...]string{
	"Abandon left",
	"Abandon right",
	"Squash left into right",
	"Squash right into left",
	"Print stack",
	"Refresh (restart from beginning)",
	"Show interdiff",
	"Show diff of left commit",
	"Show diff of right commit",
}

// AllActions returns every action in menu order
func AllActions() []Action {
	actions := make([]Action, len(actionKeys))
	for i := range actionKeys {
		actions[i] = Action(i)
	}
	return actions
}

func (a Action) valid() bool {
	return a >= 0 && int(a) < len(actionKeys)
}

// Key is the menu shortcut for the action
func (a Action) Key() string {
	if !a.valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionKeys[a]
}

// Label describes the action in the menu
func (a Action) Label() string {
	if !a.valid() {
		return a.Key()
	}
	return actionLabels[a]
}

func (a Action) String() string {
	return a.Key()
}

// Mutating reports whether the action changes the repository
func (a Action) Mutating() bool {
	return a >= AbandonLeft && a <= SquashRightIntoLeft
}

// ParseAction maps a menu key, in any case, to its action
func ParseAction(key string) (Action, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for i, k := range actionKeys {
		if k == key {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("invalid action: %s", key)
}

// Transition is the outcome of applying an action
type Transition int

const (
	// Continue shows the menu again for the same pair.
	Continue Transition = iota
	// Restart re-runs divergence detection from scratch.
	Restart
	// Done ends the loop.
	Done
)

func (t Transition) String() string {
	switch t {
	case Continue:
		return "continue"
	case Restart:
		return "restart"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Transition(%d)", int(t))
	}
}

// Verdict is the operator's answer to a safe-mode confirmation
type Verdict int

const (
	// Proceed runs the operation.
	Proceed Verdict = iota
	// Cancel aborts the whole action.
	Cancel
	// Skip treats this one operation as a no-op and carries on.
	Skip
)

func (v Verdict) String() string {
	switch v {
	case Proceed:
		return "proceed"
	case Cancel:
		return "cancel"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// ParseVerdict maps a y/N/s answer to a verdict. Anything unrecognised cancels.
func ParseVerdict(answer string) Verdict {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return Proceed
	case "s", "skip":
		return Skip
	default:
		return Cancel
	}
}

// Candidate is one divergent change offered for disambiguation
type Candidate struct {
	ChangeID jj.ChangeID
	// CommitID is the first revision of the change, empty when none was found.
	CommitID    jj.CommitID
	Description string
}
