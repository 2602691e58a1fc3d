package jj

import (
	"fmt"
	"sort"
	"strings"
)

// Repo answers divergence queries and applies mutations against one jj workspace.
type Repo struct {
	runner *CommandRunner
	color  bool
}

// NewRepo creates a Repo. When color is set, log-style output meant for the
// operator (stack, operation log) keeps jj's colouring.
func NewRepo(runner *CommandRunner, color bool) *Repo {
	return &Repo{runner: runner, color: color}
}

func (r *Repo) colorFlag() string {
	if r.color {
		return "--color=always"
	}
	return "--color=never"
}

// splitLines returns the trimmed, non-empty lines of out
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// DuplicateChangeIDs returns, in sorted order, every id that occurs more than once.
func DuplicateChangeIDs(ids []string) []ChangeID {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var dups []ChangeID
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			continue
		}
		if len(dups) > 0 && string(dups[len(dups)-1]) == sorted[i] {
			continue
		}
		dups = append(dups, ChangeID(sorted[i]))
	}
	return dups
}

// ChangeIDRevset builds a revset that unions the given change ids
func ChangeIDRevset(ids []ChangeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("change_id(%q)", string(id))
	}
	return strings.Join(parts, " | ")
}

// ParseCommitInfos parses "change_id commit_id" lines
func ParseCommitInfos(out string) ([]CommitInfo, error) {
	var infos []CommitInfo
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("unexpected jj log line %q", line)
		}
		infos = append(infos, CommitInfo{ChangeID: ChangeID(fields[0]), CommitID: CommitID(fields[1])})
	}
	return infos, nil
}
