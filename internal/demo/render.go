package demo

import (
	"fmt"
	"sort"
	"strings"

	"jjdiverge.dev/jjdiverge/internal/jj"
)

// renderInterdiff renders the difference between two file sets. The git
// flavour mirrors jj's :git tool, the other its built-in color-words style.
func renderInterdiff(from, to map[string]string, git bool) string {
	paths := make(map[string]bool)
	for p := range from {
		paths[p] = true
	}
	for p := range to {
		paths[p] = true
	}
	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	var b strings.Builder
	for _, path := range sorted {
		before, hadBefore := from[path]
		after, hasAfter := to[path]
		if hadBefore == hasAfter && before == after {
			continue
		}
		if git {
			fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
			fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
			for _, line := range lines(before) {
				fmt.Fprintf(&b, "-%s\n", line)
			}
			for _, line := range lines(after) {
				fmt.Fprintf(&b, "+%s\n", line)
			}
			continue
		}
		fmt.Fprintf(&b, "Modified regular file %s:\n", path)
		for i, line := range lines(before) {
			fmt.Fprintf(&b, "%4d     : %s\n", i+1, line)
		}
		for i, line := range lines(after) {
			fmt.Fprintf(&b, "     %4d: %s\n", i+1, line)
		}
	}
	return b.String()
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// renderLog renders commits the way jj log does, flagging divergent ones
func renderLog(commits []*Commit, counts map[jj.ChangeID]int) string {
	var b strings.Builder
	for _, c := range commits {
		change := string(c.ChangeID)
		if counts[c.ChangeID] > 1 {
			change += "??"
		}
		marker := "○"
		if c.Conflicted {
			marker = "×"
		}
		description := strings.SplitN(c.Description, "\n", 2)[0]
		if description == "" {
			description = "(no description set)"
		}
		fmt.Fprintf(&b, "%s  %s %s\n│  %s\n", marker, change, c.CommitID, description)
	}
	b.WriteString("◆  zzzzzzzz root() 00000000\n")
	return b.String()
}
