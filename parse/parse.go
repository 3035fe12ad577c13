// Package parse reads issue files: a "---" delimited frontmatter block
// followed by a markdown body.
//
// The frontmatter grammar is deliberately narrow. It is not YAML; it is the
// subset llmd itself writes plus what people commonly type by hand:
//
//	key: value                 scalar, quotes optional
//	labels: [a, b]             flow list of names
//	labels:                    block list of objects
//	  - name: "bug"
//	    color: "red"
//	dependencies: [1, 2]       flow list of integers
//
// Unknown keys are ignored and malformed list entries are skipped unless
// Strict is given.
package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/simulacralabs/llmd/debug"
	"github.com/simulacralabs/llmd/issue"
)

const marker = "---"

// Parse decodes an issue file.
func Parse(d []byte, opts ...ParseOption) (*issue.Issue, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	fm, body, err := Split(string(d))
	if err != nil {
		return nil, err
	}
	fields, err := scanFields(fm, pOpts)
	if err != nil {
		return nil, err
	}
	iss := fields.issue(pOpts)
	iss.Body = TrimBlankLines(body)
	return iss, nil
}

// Split separates the frontmatter lines from the body text. The first line
// must be the opening marker.
func Split(content string) ([]string, string, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSuffix(lines[0], "\r") != marker {
		return nil, "", ErrNoFrontmatter
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSuffix(lines[i], "\r") == marker {
			return lines[1:i], strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return nil, "", ErrUnterminated
}

// TrimBlankLines drops leading and trailing lines that contain only
// whitespace.
func TrimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

type scanState int

const (
	stateNone scanState = iota
	stateScalar
	stateLabels
)

type fields struct {
	scalars  map[string]string
	labels   []issue.Label
	deps     []issue.ID
	children []issue.ID
}

func scanFields(lines []string, opts *parseOpts) (*fields, error) {
	f := &fields{scalars: map[string]string{}}
	state := stateNone
	key := ""
	for n, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isKeyStart(line) {
			k, v, ok := strings.Cut(line, ":")
			if !ok {
				if opts.strict {
					return nil, fmt.Errorf("%w: line %d: expected key: value", ErrParse, n+2)
				}
				state = stateNone
				continue
			}
			key = strings.TrimSpace(k)
			v = strings.TrimSpace(v)
			switch key {
			case "labels":
				state = stateNone
				if v == "" {
					state = stateLabels
					continue
				}
				names, err := flowList(v, opts)
				if err != nil {
					return nil, fmt.Errorf("line %d: labels: %w", n+2, err)
				}
				for _, name := range names {
					if name = unquote(name); name != "" {
						f.labels = append(f.labels, issue.Label{Name: name})
					}
				}
			case "dependencies", "epic_children":
				state = stateNone
				ids, err := idList(v, opts)
				if err != nil {
					return nil, fmt.Errorf("line %d: %s: %w", n+2, key, err)
				}
				if key == "dependencies" {
					f.deps = ids
				} else {
					f.children = ids
				}
			default:
				f.scalars[key] = v
				state = stateScalar
			}
			continue
		}
		switch state {
		case stateLabels:
			if err := f.labelLine(trimmed, n, opts); err != nil {
				return nil, err
			}
		case stateScalar:
			if strings.HasPrefix(trimmed, "- ") || !unicode.IsSpace(rune(line[0])) {
				state = stateNone
				continue
			}
			// folded continuation of a multi-line scalar
			if cur := f.scalars[key]; cur != "" {
				f.scalars[key] = cur + " " + trimmed
			}
		default:
			if opts.strict {
				return nil, fmt.Errorf("%w: line %d: unexpected %q", ErrParse, n+2, trimmed)
			}
			if debug.Parse() {
				debug.Logf("parse: skipping line %d %q\n", n+2, trimmed)
			}
		}
	}
	return f, nil
}

func (f *fields) labelLine(trimmed string, n int, opts *parseOpts) error {
	if item, ok := strings.CutPrefix(trimmed, "-"); ok {
		k, v, ok := strings.Cut(item, ":")
		if !ok || strings.TrimSpace(k) != "name" {
			if opts.strict {
				return fmt.Errorf("%w: line %d: label entry without name", ErrParse, n+2)
			}
			return nil
		}
		if name := unquote(v); name != "" {
			f.labels = append(f.labels, issue.Label{Name: name})
		}
		return nil
	}
	k, v, ok := strings.Cut(trimmed, ":")
	if ok && strings.TrimSpace(k) == "color" && len(f.labels) > 0 {
		last := &f.labels[len(f.labels)-1]
		if last.Color == nil {
			last.Color = issue.Ptr(unquote(v))
		}
		return nil
	}
	if opts.strict {
		return fmt.Errorf("%w: line %d: unexpected %q in labels", ErrParse, n+2, trimmed)
	}
	return nil
}

func isKeyStart(line string) bool {
	if line == "" {
		return false
	}
	r := rune(line[0])
	return unicode.IsLetter(r) || r == '_'
}

// flowList splits "[a, b]" into its raw entries. A value that is not a
// bracketed list yields nothing.
func flowList(v string, opts *parseOpts) ([]string, error) {
	inner, ok := strings.CutPrefix(v, "[")
	if ok {
		inner, ok = strings.CutSuffix(inner, "]")
	}
	if !ok {
		if opts.strict {
			return nil, fmt.Errorf("%w: expected [...] list, got %q", ErrParse, v)
		}
		return nil, nil
	}
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func idList(v string, opts *parseOpts) ([]issue.ID, error) {
	parts, err := flowList(v, opts)
	if err != nil {
		return nil, err
	}
	var ids []issue.ID
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			if opts.strict {
				return nil, fmt.Errorf("%w: bad id %q", ErrParse, p)
			}
			continue
		}
		ids = append(ids, issue.ID(n))
	}
	return ids, nil
}

// unquote strips surrounding quotes. Double-quoted values have \\ and \"
// unescaped, matching what encode writes.
func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return unescape(v[1 : len(v)-1])
	}
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return v[1 : len(v)-1]
	}
	return strings.Trim(v, `"'`)
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func absent(v string) bool {
	return v == "" || v == "null" || v == "~"
}

func (f *fields) str(key string) (string, bool) {
	v, ok := f.scalars[key]
	if !ok {
		return "", false
	}
	v = unquote(v)
	if absent(strings.TrimSpace(f.scalars[key])) {
		return "", false
	}
	return v, true
}

func (f *fields) strOr(key, def string) string {
	if v, ok := f.str(key); ok && v != "" {
		return v
	}
	return def
}

func (f *fields) optStr(key string) *string {
	if v, ok := f.str(key); ok && v != "" {
		return &v
	}
	return nil
}

func (f *fields) optInt(key string) *int {
	v, ok := f.str(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &n
}

func (f *fields) issue(opts *parseOpts) *issue.Issue {
	iss := &issue.Issue{
		Labels:       f.labels,
		Dependencies: f.deps,
		EpicChildren: f.children,
	}
	switch {
	case opts.id != nil:
		iss.ID = *opts.id
	default:
		if n := f.optInt("id"); n != nil {
			iss.ID = issue.ID(*n)
		}
	}
	iss.Title = f.strOr("title", "Untitled")
	iss.Slug = f.strOr("slug", issue.Slugify(iss.Title))
	iss.Type = f.strOr("type", issue.TypeTask)
	iss.Status = f.strOr("status", issue.StatusOpen)
	iss.Priority = f.strOr("priority", issue.PriorityMedium)
	iss.Assignee = f.optStr("assignee")
	iss.Milestone = f.optStr("milestone")
	iss.Due = f.optStr("due")
	if p := f.optInt("parent"); p != nil {
		iss.Parent = issue.Ptr(issue.ID(*p))
	}
	iss.Points = f.optInt("points")
	iss.CreatedAt, _ = f.str("created_at")
	iss.UpdatedAt = f.strOr("updated_at", iss.CreatedAt)
	return iss
}
