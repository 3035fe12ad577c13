package dirbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/storage"
)

func testSet() issue.Set {
	v1 := "v1"
	return issue.Set{
		1: {ID: 1, Title: "Epic", Slug: "epic", Type: issue.TypeEpic, Status: issue.StatusOpen, Priority: "high",
			Milestone: &v1, EpicChildren: []issue.ID{2, 9}, Points: issue.Ptr(8)},
		2: {ID: 2, Title: "Child", Slug: "child", Type: issue.TypeTask, Status: issue.StatusClosed, Priority: "medium",
			Milestone: &v1, Assignee: issue.Ptr("ann")},
		3: {ID: 3, Title: "Loose | end", Slug: "loose-end", Type: issue.TypeTask, Status: issue.StatusOpen, Priority: "low",
			Dependencies: []issue.ID{2}},
	}
}

func TestRoadmap(t *testing.T) {
	got := Roadmap(testSet(), "2026-03-04T05:06:07Z")
	for _, want := range []string{
		"# Roadmap\n\nGenerated from .llmd/issues/ on 2026-03-04\n",
		"## Ready to start\n\n- [#3 Loose | end](003-loose-end.md) `low`\n",
		"## v1\n\n### Epics\n\n- **[#1 Epic](001-epic.md)** `epic` 8pts\n  - [#2 Child](002-child.md) `task` · closed · ann\n",
		"## No milestone\n\n### Issues\n",
		"| 3 | Loose \\| end | task | open | low | - |\n",
		"1/3 closed (33%)\n\n███░░░░░░░\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("roadmap missing %q\n%s", want, got)
		}
	}
	if strings.Index(got, "## v1") > strings.Index(got, "## No milestone") {
		t.Error("issues without a milestone should come last")
	}
}

func TestRoadmapEmpty(t *testing.T) {
	got := Roadmap(issue.Set{}, "2026-01-01T00:00:00Z")
	if !strings.Contains(got, "0/0 closed (0%)") {
		t.Errorf("got %s", got)
	}
}

func TestGenerate(t *testing.T) {
	llmd := filepath.Join(t.TempDir(), "proj", ".llmd")
	for name, content := range map[string]string{
		"catme.md":           "# proj\n",
		"api.md":             "# API\n",
		"imported/CLAUDE.md": "# Claude\n",
		"book/old.md":        "stale output\n",
	} {
		p := filepath.Join(llmd, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	st, err := storage.Init(filepath.Join(llmd, "issues"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Create(issue.New(0, "First")); err != nil {
		t.Fatal(err)
	}

	book, err := Generate(llmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	summary, err := os.ReadFile(filepath.Join(book.Src, "SUMMARY.md"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# Summary\n\n" +
		"- [Overview](catme.md)\n" +
		"- [api](api.md)\n" +
		"\n## imported\n\n- [CLAUDE](imported/CLAUDE.md)\n" +
		"\n## issues\n\n- [Roadmap](issues/roadmap.md)\n- [001-first](issues/001-first.md)\n"
	if string(summary) != want {
		t.Errorf("SUMMARY.md = %q\nwant %q", summary, want)
	}
	for _, f := range []string{"catme.md", "api.md", "imported/CLAUDE.md", "issues/roadmap.md", "issues/001-first.md"} {
		if _, err := os.Stat(filepath.Join(book.Src, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(book.Src, "book", "old.md")); err == nil {
		t.Error("generated output was copied into the book")
	}
	toml, err := os.ReadFile(filepath.Join(book.Root, "book.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(toml), `title = "proj - llmd"`) {
		t.Errorf("book.toml = %s", toml)
	}
}

func TestEnsureGeneratorMissing(t *testing.T) {
	old := Generator
	Generator = "llmd-no-such-generator"
	t.Cleanup(func() { Generator = old })
	if err := EnsureGenerator(context.Background()); !errors.Is(err, ErrGeneratorMissing) {
		t.Errorf("got %v, want ErrGeneratorMissing", err)
	}
}
