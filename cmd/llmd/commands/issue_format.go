package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"
	"github.com/simulacralabs/llmd/graph"
	"github.com/simulacralabs/llmd/issue"
)

func orNone(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// writeIssueLine prints the one-line form used by list.
func writeIssueLine(w io.Writer, st style, iss *issue.Issue) {
	fmt.Fprintf(w, "%s %s [%s] %s · %s · %s",
		st.id(iss.ID), iss.Title, iss.Type, st.status(iss.Status),
		st.priority(iss.Priority), orNone(iss.Assignee))
	if len(iss.Labels) > 0 {
		fmt.Fprintf(w, " · %s", strings.Join(iss.LabelNames(), ", "))
	}
	fmt.Fprintln(w)
}

// writeIssueLong adds the scheduling fields and relative times under the
// one-line form.
func writeIssueLong(w io.Writer, st style, iss *issue.Issue, now time.Time) {
	writeIssueLine(w, st, iss)
	var parts []string
	if iss.Milestone != nil {
		parts = append(parts, "milestone "+*iss.Milestone)
	}
	if iss.Parent != nil {
		parts = append(parts, fmt.Sprintf("epic #%d", *iss.Parent))
	}
	if len(iss.Dependencies) > 0 {
		parts = append(parts, "depends on "+idList(iss.Dependencies))
	}
	if iss.Points != nil {
		parts = append(parts, fmt.Sprintf("%d points", *iss.Points))
	}
	if iss.Due != nil {
		parts = append(parts, "due "+*iss.Due)
	}
	parts = append(parts, "created "+relTime(iss.CreatedAt, now), "updated "+relTime(iss.UpdatedAt, now))
	fmt.Fprintf(w, "    %s\n", st.faint(strings.Join(parts, ", ")))
}

// writeReadyLine prints the one-line form used by ready.
func writeReadyLine(w io.Writer, st style, iss *issue.Issue) {
	fmt.Fprintf(w, "%s %s [%s] · %s · %s\n",
		st.id(iss.ID), iss.Title, iss.Type, st.priority(iss.Priority), orNone(iss.Assignee))
}

func writeBlockedLine(w io.Writer, st style, b graph.BlockedIssue) {
	fmt.Fprintf(w, "%s %s [%s] %s · blocked by %s\n",
		st.id(b.Issue.ID), b.Issue.Title, b.Issue.Type, st.status(b.Issue.Status), idList(b.BlockedBy))
}

// writeTree prints an epic hierarchy, two spaces of indent per level.
func writeTree(w io.Writer, st style, set issue.Set, nodes []graph.TreeNode) {
	for _, n := range nodes {
		indent := strings.Repeat("  ", n.Depth)
		iss, ok := set.Lookup(n.ID)
		if n.Missing || !ok {
			fmt.Fprintf(w, "%s%s %s\n", indent, st.id(n.ID), st.faint("(not found)"))
			continue
		}
		fmt.Fprintf(w, "%s%s %s [%s] %s", indent, st.id(iss.ID), iss.Title, iss.Type, st.status(iss.Status))
		if iss.Assignee != nil {
			fmt.Fprintf(w, " · %s", *iss.Assignee)
		}
		fmt.Fprintln(w)
	}
}

func idList(ids []issue.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

// relTime renders an RFC 3339 timestamp relative to now, or as given when
// it does not parse.
func relTime(ts string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// headers strips bodies for machine readable listings.
func headers(isss []*issue.Issue) []*issue.Issue {
	res := make([]*issue.Issue, len(isss))
	for i, iss := range isss {
		c := *iss
		c.Body = ""
		res[i] = &c
	}
	return res
}

func writeJSON(w io.Writer, v any) error {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", d)
	return err
}

func writeYAML(w io.Writer, v any) error {
	d, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
