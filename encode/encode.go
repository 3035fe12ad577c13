package encode

import (
	"io"
	"strconv"
	"strings"

	"github.com/simulacralabs/llmd/issue"
)

type EncState struct {
	body  bool
	err   error
	w     io.Writer
	Color func(ColorAttr, string) string
}

// Encode writes iss in file form. Keys always appear in the same order;
// assignee and parent are written as null when absent, labels and
// dependencies as [] when empty, and the remaining optional fields only when
// set.
func Encode(iss *issue.Issue, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{body: true, w: w}
	for _, opt := range opts {
		opt(es)
	}
	if es.Color == nil {
		es.Color = func(_ ColorAttr, s string) string { return s }
	}
	es.marker()
	es.field("id", es.Color(NumberColor, strconv.Itoa(int(iss.ID))))
	es.field("title", es.quoted(iss.Title))
	es.field("slug", es.quoted(iss.Slug))
	es.field("type", es.Color(WordColor, iss.Type))
	es.field("status", es.Color(WordColor, iss.Status))
	es.field("priority", es.Color(WordColor, iss.Priority))
	if len(iss.Labels) == 0 {
		es.field("labels", es.Color(SepColor, "[]"))
	} else {
		es.field("labels", "")
		for i := range iss.Labels {
			l := &iss.Labels[i]
			es.write("  " + es.Color(SepColor, "-") + " ")
			es.field("name", es.quoted(l.Name))
			if l.Color != nil {
				es.write("    ")
				es.field("color", es.quoted(*l.Color))
			}
		}
	}
	es.optString("assignee", iss.Assignee, true)
	es.optString("milestone", iss.Milestone, false)
	if iss.Parent != nil {
		es.field("parent", es.Color(NumberColor, strconv.Itoa(int(*iss.Parent))))
	} else {
		es.field("parent", es.Color(NullColor, "null"))
	}
	es.field("dependencies", es.ids(iss.Dependencies))
	if len(iss.EpicChildren) != 0 {
		es.field("epic_children", es.ids(iss.EpicChildren))
	}
	if iss.Points != nil {
		es.field("points", es.Color(NumberColor, strconv.Itoa(*iss.Points)))
	}
	es.optString("due", iss.Due, false)
	es.field("created_at", es.quoted(iss.CreatedAt))
	es.field("updated_at", es.quoted(iss.UpdatedAt))
	es.marker()
	if es.body {
		es.write("\n")
		es.write(iss.Body)
		if iss.Body != "" && !strings.HasSuffix(iss.Body, "\n") {
			es.write("\n")
		}
	}
	return es.err
}

func (es *EncState) write(s string) {
	if es.err != nil {
		return
	}
	_, es.err = io.WriteString(es.w, s)
}

func (es *EncState) marker() {
	es.write(es.Color(MarkerColor, "---") + "\n")
}

func (es *EncState) field(key, val string) {
	line := es.Color(KeyColor, key) + es.Color(SepColor, ":")
	if val != "" {
		line += " " + val
	}
	es.write(line + "\n")
}

func (es *EncState) optString(key string, v *string, null bool) {
	switch {
	case v != nil:
		es.field(key, es.quoted(*v))
	case null:
		es.field(key, es.Color(NullColor, "null"))
	}
}

func (es *EncState) quoted(s string) string {
	return es.Color(StringColor, `"`+Escape(s)+`"`)
}

func (es *EncState) ids(ids []issue.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = es.Color(NumberColor, strconv.Itoa(int(id)))
	}
	return es.Color(SepColor, "[") + strings.Join(parts, es.Color(SepColor, ", ")) + es.Color(SepColor, "]")
}

// Escape prepares s for a double-quoted scalar. Frontmatter scalars are
// single-line, so line breaks become spaces.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
