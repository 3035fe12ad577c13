package issue

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fix login crash", "fix-login-crash"},
		{"Fix: the login (crash)", "fix-the-login-crash"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"keep_under-score", "keep_under-score"},
		{"a - b", "a---b"},
		{"Ünïcode Tïtle", "ünïcode-tïtle"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(7, "do-it"); got != "007-do-it.md" {
		t.Errorf("Filename(7) = %q", got)
	}
	if got := Filename(1234, "big"); got != "1234-big.md" {
		t.Errorf("Filename(1234) = %q", got)
	}
}

func TestNew(t *testing.T) {
	old := timeNow
	timeNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { timeNow = old })

	iss := New(3, "Write the docs")
	want := &Issue{
		ID:        3,
		Title:     "Write the docs",
		Slug:      "write-the-docs",
		Type:      TypeTask,
		Status:    StatusOpen,
		Priority:  PriorityMedium,
		CreatedAt: "2026-01-02T03:04:05Z",
		UpdatedAt: "2026-01-02T03:04:05Z",
	}
	if diff := cmp.Diff(want, iss); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}

	timeNow = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	iss.Touch()
	if iss.UpdatedAt != "2026-02-01T00:00:00Z" || iss.CreatedAt != "2026-01-02T03:04:05Z" {
		t.Errorf("Touch() created=%s updated=%s", iss.CreatedAt, iss.UpdatedAt)
	}
}

func TestLabels(t *testing.T) {
	iss := &Issue{}
	if !iss.AddLabel(Label{Name: "bug"}) {
		t.Fatal("AddLabel(bug) = false")
	}
	if iss.AddLabel(Label{Name: "bug", Color: Ptr("red")}) {
		t.Error("duplicate label name was added")
	}
	iss.AddLabel(Label{Name: "ui", Color: Ptr("blue")})
	if diff := cmp.Diff([]string{"bug", "ui"}, iss.LabelNames()); diff != "" {
		t.Errorf("LabelNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDependencyAndChild(t *testing.T) {
	iss := &Issue{}
	iss.AddDependency(5)
	iss.AddDependency(2)
	if iss.AddDependency(5) {
		t.Error("duplicate dependency added")
	}
	iss.AddChild(9)
	iss.AddChild(4)
	if diff := cmp.Diff([]ID{2, 5}, iss.Dependencies); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{4, 9}, iss.EpicChildren); diff != "" {
		t.Errorf("EpicChildren mismatch (-want +got):\n%s", diff)
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityRank("high") != 0 || PriorityRank("medium") != 1 || PriorityRank("low") != 2 {
		t.Error("known priorities ranked wrong")
	}
	if PriorityRank("urgent") != 1 {
		t.Error("unknown priority should rank as medium")
	}
}

func TestSet(t *testing.T) {
	s := Set{3: {ID: 3}, 1: {ID: 1}, 2: {ID: 2}}
	if diff := cmp.Diff([]ID{1, 2, 3}, s.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
	sorted := s.Sorted()
	if sorted[0].ID != 1 || sorted[2].ID != 3 {
		t.Errorf("Sorted() order wrong: %v", sorted)
	}
	if _, ok := s.Lookup(4); ok {
		t.Error("Lookup(4) found a missing issue")
	}
}
