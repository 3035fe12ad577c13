// Package issue defines the issue record stored as a markdown file with
// frontmatter, and the small vocabulary shared by the codec, the store and
// the dependency graph.
package issue

import (
	"slices"
	"time"
)

// ID identifies an issue within a store.
type ID int

// Well-known field values. Type, status and priority are free-form; these are
// the values the tool itself gives meaning to.
const (
	TypeTask = "task"
	TypeEpic = "epic"

	StatusOpen   = "open"
	StatusClosed = "closed"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Label is a named tag with an optional display color.
type Label struct {
	Name  string  `json:"name" yaml:"name"`
	Color *string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Comment is one record of an issue's Comments block.
type Comment struct {
	Author string `json:"author" yaml:"author"`
	Date   string `json:"date" yaml:"date"`
	Body   string `json:"body" yaml:"body"`
}

// Issue is a single tracked item. Parent, Dependencies and EpicChildren are
// weak references: they hold ids only and may name issues that do not exist.
type Issue struct {
	ID           ID      `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	Slug         string  `json:"slug" yaml:"slug"`
	Type         string  `json:"type" yaml:"type"`
	Status       string  `json:"status" yaml:"status"`
	Priority     string  `json:"priority" yaml:"priority"`
	Labels       []Label `json:"labels" yaml:"labels"`
	Assignee     *string `json:"assignee" yaml:"assignee"`
	Milestone    *string `json:"milestone" yaml:"milestone"`
	Parent       *ID     `json:"parent" yaml:"parent"`
	Dependencies []ID    `json:"dependencies" yaml:"dependencies"`
	EpicChildren []ID    `json:"epic_children" yaml:"epic_children"`
	Points       *int    `json:"points" yaml:"points"`
	Due          *string `json:"due" yaml:"due"`
	CreatedAt    string  `json:"created_at" yaml:"created_at"`
	UpdatedAt    string  `json:"updated_at" yaml:"updated_at"`
	Body         string  `json:"body,omitempty" yaml:"body,omitempty"`
}

// New returns an open task with the given id and title, stamped with the
// current time.
func New(id ID, title string) *Issue {
	now := Now()
	return &Issue{
		ID:        id,
		Title:     title,
		Slug:      Slugify(title),
		Type:      TypeTask,
		Status:    StatusOpen,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// timeNow is replaced in tests.
var timeNow = time.Now

// Now returns the current UTC time as an RFC3339 string.
func Now() string {
	return timeNow().UTC().Format(time.RFC3339)
}

// Touch refreshes UpdatedAt. Every mutation must call it.
func (iss *Issue) Touch() {
	iss.UpdatedAt = Now()
}

// IsClosed reports whether the issue's status is closed.
func (iss *Issue) IsClosed() bool {
	return iss.Status == StatusClosed
}

// IsContainer reports whether the issue is an epic.
func (iss *Issue) IsContainer() bool {
	return iss.Type == TypeEpic
}

// HasLabel reports whether a label with the given name is present.
func (iss *Issue) HasLabel(name string) bool {
	return slices.ContainsFunc(iss.Labels, func(l Label) bool { return l.Name == name })
}

// AddLabel appends a label unless one with the same name exists. It reports
// whether the label was added.
func (iss *Issue) AddLabel(l Label) bool {
	if iss.HasLabel(l.Name) {
		return false
	}
	iss.Labels = append(iss.Labels, l)
	return true
}

// LabelNames returns the label names in order.
func (iss *Issue) LabelNames() []string {
	names := make([]string, len(iss.Labels))
	for i := range iss.Labels {
		names[i] = iss.Labels[i].Name
	}
	return names
}

// AddDependency records a dependency on id, keeping the list sorted and
// free of duplicates. It reports whether the list changed.
func (iss *Issue) AddDependency(id ID) bool {
	if slices.Contains(iss.Dependencies, id) {
		return false
	}
	iss.Dependencies = append(iss.Dependencies, id)
	slices.Sort(iss.Dependencies)
	return true
}

// AddChild records id as an epic child, keeping the list sorted and free of
// duplicates. It reports whether the list changed.
func (iss *Issue) AddChild(id ID) bool {
	if slices.Contains(iss.EpicChildren, id) {
		return false
	}
	iss.EpicChildren = append(iss.EpicChildren, id)
	slices.Sort(iss.EpicChildren)
	return true
}

// PriorityRank orders priorities for scheduling: high 0, low 2, anything
// else 1.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Set is the in-memory view of a store, keyed by id. Lookups through a Set
// are how weak references are resolved.
type Set map[ID]*Issue

// Lookup resolves a reference.
func (s Set) Lookup(id ID) (*Issue, bool) {
	iss, ok := s[id]
	return iss, ok
}

// Sorted returns the issues ordered by id.
func (s Set) Sorted() []*Issue {
	res := make([]*Issue, 0, len(s))
	for _, iss := range s {
		res = append(res, iss)
	}
	slices.SortFunc(res, func(a, b *Issue) int { return int(a.ID) - int(b.ID) })
	return res
}

// IDs returns the ids in ascending order.
func (s Set) IDs() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Ptr returns a pointer to v, for optional fields.
func Ptr[T any](v T) *T {
	return &v
}
