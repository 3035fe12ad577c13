package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/parse"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Init(filepath.Join(t.TempDir(), "issues"), nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writeRaw(t *testing.T, s *Storage, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.Root(), name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenNotInitialized(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), nil)
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("got %v, want ErrNotInitialized", err)
	}
}

func TestInitKeepsCounter(t *testing.T) {
	s := newTestStorage(t)
	if err := s.WriteCounter(9); err != nil {
		t.Fatal(err)
	}
	s2, err := Init(s.Root(), nil)
	if err != nil {
		t.Fatal(err)
	}
	n, err := s2.ReadCounter()
	if err != nil {
		t.Fatal(err)
	}
	if n != 9 {
		t.Errorf("counter reset to %d", n)
	}
}

func TestCounter(t *testing.T) {
	s := newTestStorage(t)
	d, err := os.ReadFile(filepath.Join(s.Root(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "{\n  \"next_id\": 1\n}\n" {
		t.Errorf("config.json = %q", d)
	}
	for want := issue.ID(1); want <= 3; want++ {
		got, err := s.NextID()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("NextID() = %d, want %d", got, want)
		}
	}
	if err := os.Remove(filepath.Join(s.Root(), "config.json")); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.ReadCounter(); n != 1 {
		t.Errorf("missing counter read as %d, want 1", n)
	}
}

func TestCreateGetUpdate(t *testing.T) {
	s := newTestStorage(t)
	a := issue.New(0, "First task")
	if err := s.Create(a); err != nil {
		t.Fatal(err)
	}
	b := issue.New(0, "Second task")
	if err := s.Create(b); err != nil {
		t.Fatal(err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d", a.ID, b.ID)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "002-second-task.md")); err != nil {
		t.Fatal(err)
	}
	for _, ref := range []string{"2", "002", "second-task", "002-second-task", "task"} {
		got, err := s.Get(ref)
		if err != nil {
			t.Errorf("Get(%q): %v", ref, err)
			continue
		}
		// "task" is a suffix of both; filename order picks the first
		want := b.ID
		if ref == "task" {
			want = a.ID
		}
		if got.ID != want {
			t.Errorf("Get(%q) = %d, want %d", ref, got.ID, want)
		}
	}
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) = %v, want ErrNotFound", err)
	}

	got, err := s.Update("1", func(iss *issue.Issue) error {
		iss.Status = issue.StatusClosed
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	reread, err := s.Get("1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, reread); diff != "" {
		t.Errorf("Update not persisted (-want +got):\n%s", diff)
	}
	wantErr := errors.New("boom")
	if _, err := s.Update("1", func(*issue.Issue) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("Update error = %v", err)
	}
}

func TestLoadAll(t *testing.T) {
	s := newTestStorage(t)
	writeRaw(t, s, "001-a.md", "---\ntitle: A\n---\n")
	writeRaw(t, s, "002-b.md", "not frontmatter")
	writeRaw(t, s, "03-short.md", "---\ntitle: short\n---\n")
	writeRaw(t, s, "notes.md", "---\ntitle: notes\n---\n")
	writeRaw(t, s, "004-d.md", "---\nid: 99\ntitle: D\n---\n")
	set, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]issue.ID{1, 4}, set.IDs()); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if set[4].Title != "D" {
		t.Errorf("filename id not authoritative: %+v", set[4])
	}
	if _, err := s.Get("2"); err == nil {
		t.Error("Get of an unparsable file should fail")
	}
}

func TestDuplicates(t *testing.T) {
	s := newTestStorage(t)
	iss := issue.New(0, "Old name")
	if err := s.Create(iss); err != nil {
		t.Fatal(err)
	}
	iss.Title = "New name"
	iss.Slug = issue.Slugify(iss.Title)
	if err := s.Write(iss); err != nil {
		t.Fatal(err)
	}
	dups, err := s.Duplicates()
	if err != nil {
		t.Fatal(err)
	}
	want := map[issue.ID][]string{1: {"001-new-name.md", "001-old-name.md"}}
	if diff := cmp.Diff(want, dups); diff != "" {
		t.Errorf("Duplicates (-want +got):\n%s", diff)
	}
	set, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if set[1].Title != "New name" {
		t.Errorf("LoadAll picked %q", set[1].Title)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		id   issue.ID
	}{
		{"001-x.md", true, 1},
		{"1234-big.md", true, 1234},
		{"01-x.md", false, 0},
		{"abc-x.md", false, 0},
		{"001-x.txt", false, 0},
		{"001.md", false, 0},
	}
	for _, tt := range tests {
		f, ok := parseFilename(tt.name)
		if ok != tt.ok || f.id != tt.id {
			t.Errorf("parseFilename(%q) = %v, %v", tt.name, f.id, ok)
		}
	}
}

func TestVerify(t *testing.T) {
	s := newTestStorage(t)
	writeRaw(t, s, "001-ok.md", "---\ntitle: ok\ndependencies: [2]\n---\n")
	writeRaw(t, s, "002-bad.md", "---\ntitle: bad\ndependencies: [2, x]\n---\n")
	writeRaw(t, s, "003-none.md", "no frontmatter\n")
	got, err := s.Verify()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, fe := range got {
		names = append(names, fe.Name)
	}
	if diff := cmp.Diff([]string{"002-bad.md", "003-none.md"}, names); diff != "" {
		t.Errorf("Verify (-want +got):\n%s", diff)
	}
	if !errors.Is(got[1], parse.ErrNoFrontmatter) {
		t.Errorf("got %v, want ErrNoFrontmatter", got[1])
	}
	set, err := s.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]issue.ID{1, 2}, set.IDs()); diff != "" {
		t.Errorf("lenient LoadAll (-want +got):\n%s", diff)
	}
}
