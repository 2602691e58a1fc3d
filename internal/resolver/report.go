package resolver

import (
	"strings"

	"jjdiverge.dev/jjdiverge/internal/tui"
)

// Reporter renders resolver state for the operator
type Reporter struct {
	splog *tui.Splog
	color bool
}

// NewReporter creates a Reporter. color enables diff highlighting.
func NewReporter(splog *tui.Splog, color bool) *Reporter {
	return &Reporter{splog: splog, color: color}
}

// Candidates lists the changes offered for disambiguation
func (r *Reporter) Candidates(candidates []Candidate) {
	r.splog.Newline()
	r.splog.Info("📋 Multiple change IDs found. Please choose which one to work on:")
	for i, c := range candidates {
		if c.CommitID == "" {
			r.splog.Info("%d. %s - [Failed to get commit info]", i+1, tui.ColorChangeID(string(c.ChangeID)))
			continue
		}
		r.splog.Info("%d. %s - %s", i+1, tui.ColorCommitID(string(c.CommitID)), tui.ColorDescription(firstLine(c.Description)))
	}
}

// Assessment prints the comparison, the issue warnings and the interdiff
func (r *Reporter) Assessment(a Assessment) {
	left, right := a.Pair.Left, a.Pair.Right

	r.splog.Newline()
	r.splog.Info("📊 Commit comparison:")
	r.splog.Info("Left:  %s %s", tui.ColorChangeID(string(left.ChangeID)), tui.ColorCommitID(string(left.CommitID)))
	r.splog.Info("Right: %s %s", tui.ColorChangeID(string(right.ChangeID)), tui.ColorCommitID(string(right.CommitID)))

	r.splog.Newline()
	r.splog.Info("📝 Commit descriptions:")
	r.splog.Info("Left:  %s", tui.ColorDescription(a.LeftDescription))
	r.splog.Info("Right: %s", tui.ColorDescription(a.RightDescription))

	if a.HasIssues() {
		r.splog.Newline()
		r.splog.Info(tui.ColorRed("🚨 WARNING: Issues detected with one or more commits"))
		r.splog.Info(tui.ColorRed("🚨 Squashing these commits may not be recommended"))
		if a.LeftHasConflicts {
			r.splog.Info("   - Left commit (%s) has conflict markers", left.CommitID)
		}
		if a.RightHasConflicts {
			r.splog.Info("   - Right commit (%s) has conflict markers", right.CommitID)
		}
		if a.LeftIsMerge {
			r.splog.Info("   - Left commit (%s) is a merge commit", left.CommitID)
		}
		if a.RightIsMerge {
			r.splog.Info("   - Right commit (%s) is a merge commit", right.CommitID)
		}
		if a.HasConflicts() {
			r.splog.Info(tui.ColorYellow("🚨 Commits with conflict markers indicate unresolved merge conflicts"))
		}
		if a.HasMergeCommits() {
			r.splog.Info(tui.ColorYellow("🚨 Merge commits may contain important merge resolution history"))
		}
	}

	r.Diff("🔄 Interdiff:", a.Interdiff)
}

// Diff prints a titled diff, noting when it is empty
func (r *Reporter) Diff(title, diff string) {
	r.splog.Newline()
	r.splog.Info(title)
	if strings.TrimSpace(diff) == "" {
		r.splog.Info(tui.ColorDim("(empty)"))
		return
	}
	r.splog.Page(tui.HighlightDiff(diff, r.color))
}

// Output prints command output when there is any
func (r *Reporter) Output(out string) {
	if strings.TrimSpace(out) != "" {
		r.splog.Page(out)
	}
}

// Section prints a heading followed by command output
func (r *Reporter) Section(title, out string) {
	r.splog.Info(tui.ColorHeading(title))
	r.splog.Page(out)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
