package dirbuild

import (
	"fmt"
	"slices"
	"strings"

	"github.com/simulacralabs/llmd/graph"
	"github.com/simulacralabs/llmd/issue"
)

const noMilestone = "No milestone"

// Roadmap renders the issues page of the book: issues grouped by milestone,
// epics with their children, the rest in a table, then overall progress.
// now is an RFC3339 timestamp; only its date is shown.
func Roadmap(set issue.Set, now string) string {
	date, _, _ := strings.Cut(now, "T")
	b := &strings.Builder{}
	fmt.Fprintf(b, "# Roadmap\n\nGenerated from .llmd/issues/ on %s\n\n", date)

	if ready := graph.ReadyTasks(set, true); len(ready) != 0 {
		b.WriteString("## Ready to start\n\n")
		for _, iss := range ready {
			fmt.Fprintf(b, "- [#%d %s](%s) `%s`\n", iss.ID, iss.Title, iss.Filename(), iss.Priority)
		}
		b.WriteString("\n")
	}

	byMilestone := map[string][]*issue.Issue{}
	for _, iss := range set.Sorted() {
		m := noMilestone
		if iss.Milestone != nil {
			m = *iss.Milestone
		}
		byMilestone[m] = append(byMilestone[m], iss)
	}
	milestones := make([]string, 0, len(byMilestone))
	for m := range byMilestone {
		if m != noMilestone {
			milestones = append(milestones, m)
		}
	}
	slices.Sort(milestones)
	if _, ok := byMilestone[noMilestone]; ok {
		milestones = append(milestones, noMilestone)
	}

	for _, m := range milestones {
		fmt.Fprintf(b, "## %s\n\n", m)
		var epics, rest []*issue.Issue
		for _, iss := range byMilestone[m] {
			if iss.IsContainer() {
				epics = append(epics, iss)
			} else {
				rest = append(rest, iss)
			}
		}
		if len(epics) != 0 {
			b.WriteString("### Epics\n\n")
			for _, e := range epics {
				fmt.Fprintf(b, "- **[#%d %s](%s)** `epic`%s\n", e.ID, e.Title, e.Filename(), epicMeta(e))
				for _, cid := range e.EpicChildren {
					c, ok := set.Lookup(cid)
					if !ok {
						continue
					}
					fmt.Fprintf(b, "  - [#%d %s](%s) `%s` · %s · %s\n",
						c.ID, c.Title, c.Filename(), c.Type, c.Status, orDash(c.Assignee))
				}
			}
			b.WriteString("\n")
		}
		if len(rest) != 0 {
			b.WriteString("### Issues\n\n")
			b.WriteString("| # | Title | Type | Status | Priority | Assignee |\n")
			b.WriteString("|---|-------|------|--------|----------|----------|\n")
			for _, iss := range rest {
				fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s |\n",
					iss.ID, strings.ReplaceAll(iss.Title, "|", `\|`), iss.Type, iss.Status, iss.Priority, orDash(iss.Assignee))
			}
			b.WriteString("\n")
		}
	}

	closed := 0
	for _, iss := range set {
		if iss.IsClosed() {
			closed++
		}
	}
	pct := 0
	if len(set) > 0 {
		pct = closed * 100 / len(set)
	}
	filled := pct / 10
	fmt.Fprintf(b, "## Progress\n\n%d/%d closed (%d%%)\n\n%s%s\n",
		closed, len(set), pct, strings.Repeat("█", filled), strings.Repeat("░", 10-filled))
	return b.String()
}

func epicMeta(e *issue.Issue) string {
	var parts []string
	if e.Points != nil {
		parts = append(parts, fmt.Sprintf("%dpts", *e.Points))
	}
	if e.Due != nil {
		parts = append(parts, *e.Due)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " · ")
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
