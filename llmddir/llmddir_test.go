package llmddir

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mkfiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("# "+n+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	llmd := filepath.Join(root, Dir)
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(llmd, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	got, err := Find(deep)
	if err != nil {
		t.Fatal(err)
	}
	if got != llmd {
		t.Errorf("Find = %s, want %s", got, llmd)
	}
}

func TestFindNotFound(t *testing.T) {
	// only the error kind is checked: a .llmd above the temp dir is possible
	dir := t.TempDir()
	if _, err := Find(dir); err != nil && !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestTopicFiles(t *testing.T) {
	llmd := t.TempDir()
	mkfiles(t, llmd,
		"catme.md", "api.md", "guides/testing.md", "notes.txt",
		"imported/CLAUDE.md", "issues/001-a.md", ".mdbook/SUMMARY.md", "book/index.md",
	)
	all, err := ListAllFiles(llmd)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 7 {
		t.Errorf("ListAllFiles = %v", all)
	}
	got, err := TopicFiles(llmd)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"api.md", "guides/testing.md"}, got); diff != "" {
		t.Errorf("TopicFiles (-want +got):\n%s", diff)
	}
}

func TestLoadEnv(t *testing.T) {
	llmd := t.TempDir()
	if err := LoadEnv(llmd); err != nil {
		t.Fatalf("missing .env: %v", err)
	}
	if err := os.WriteFile(EnvPath(llmd), []byte("LLMD_TEST_A=from-file\nLLMD_TEST_B=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LLMD_TEST_A", "preset")
	t.Setenv("LLMD_TEST_B", "")
	os.Unsetenv("LLMD_TEST_B")
	if err := LoadEnv(llmd); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("LLMD_TEST_A"); got != "preset" {
		t.Errorf("existing variable overridden: %q", got)
	}
	if got := os.Getenv("LLMD_TEST_B"); got != "from-file" {
		t.Errorf("LLMD_TEST_B = %q", got)
	}
}

func TestCatmeTemplate(t *testing.T) {
	got := CatmeTemplate("proj", []ImportedFile{{Name: "CLAUDE.md", Description: "Claude config"}})
	for _, want := range []string{
		"# proj\n",
		"## Project Summary\n",
		"## Technology Stack\n",
		"## Build & Test\n",
		"- [imported/CLAUDE.md](imported/CLAUDE.md): Claude config\n",
		"## Context Map\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("template missing %q", want)
		}
	}
	if strings.Contains(CatmeTemplate("", nil), "Imported Agent Config Files") {
		t.Error("empty import list rendered")
	}
}
