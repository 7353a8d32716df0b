package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/umbrellio/gbot/internal/digest"
)

// RenderCandidateTree renders the eligible requests grouped by review
// progress. Example output:
//
//	Waiting for review
//	├─ ● !12 Add JWT auth (backend) by @alice, 3h ago
//	╰─ ● !14 Refresh tokens (backend) by @bob, 2d ago
//	Under review
//	╰─ ◐ !9 Rate limits (gateway) by @carol, 5m ago
func RenderCandidateTree(candidates []digest.Candidate, now time.Time) string {
	t := tree.New()

	for _, bucket := range digest.Buckets {
		status := GetStatus(bucket)
		node := tree.Root(status.Render())

		count := 0
		for _, c := range candidates {
			if c.Bucket != bucket {
				continue
			}
			node.Child(formatCandidateForTree(c, status, now))
			count++
		}
		if count > 0 {
			t.Child(node)
		}
	}

	t.Enumerator(roundedEnumerator()).
		EnumeratorStyle(DimStyle).
		Indenter(treeIndenter())

	return t.String()
}

func formatCandidateForTree(c digest.Candidate, status Status, now time.Time) string {
	r := c.Request
	return fmt.Sprintf("%s !%d %s %s by @%s, %s",
		status.RenderCompact(),
		r.IID,
		Truncate(r.Title, Display.MaxTitleLength),
		Muted("("+r.Project.Name+")"),
		r.Author.Username,
		Dim(FormatAge(now.Sub(r.UpdatedAt))+" ago"))
}

func roundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

func treeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "   "
		}
		return "│  "
	}
}
