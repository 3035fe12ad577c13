package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{
		"CLAUDE.md", "AGENTS.md", ".cursorrules", ".github/copilot-instructions.md",
		".cursor/rules/b.mdc", ".cursor/rules/a.md", ".cursor/rules/skip.txt",
		".claude/rules/style.md", ".github/instructions/go.instructions.md",
		".github/instructions/other.md", "README.md",
	} {
		p := filepath.Join(root, filepath.FromSlash(n))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for _, f := range Discover(root) {
		got = append(got, FlattenName(f.Path, root))
	}
	want := []string{
		"AGENTS.md", "CLAUDE.md", "cursorrules", "github-copilot-instructions.md",
		"cursor-rules-a.md", "cursor-rules-b.mdc", "claude-rules-style.md",
		"github-instructions-go.instructions.md",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover (-want +got):\n%s", diff)
	}
}

func TestDiscoverEmpty(t *testing.T) {
	if got := Discover(t.TempDir()); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}
