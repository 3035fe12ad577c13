// Package discovery finds the agent instruction files other tools keep in a
// project tree, so init can import them.
package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// File is a discovered agent file.
type File struct {
	Path   string // absolute
	Format string // human description of the file's origin
}

type fixedPath struct {
	rel, format string
}

var fixedPaths = []fixedPath{
	{"AGENTS.md", "cross-tool agent instructions"},
	{"AGENTS.override.md", "OpenAI Codex overrides"},
	{"CLAUDE.md", "Claude Code configuration"},
	{"GEMINI.md", "Google Gemini configuration"},
	{"AGENT.md", "Google Gemini (alternate name)"},
	{"JULES.md", "Google Jules configuration"},
	{"CONVENTIONS.md", "general conventions"},
	{"SPEC.md", "project specification"},
	{"PRD.md", "product requirements document"},
	{"Plan.md", "agent execution plan"},
	{".cursorrules", "Cursor rules (legacy)"},
	{".windsurfrules", "Windsurf rules"},
	{".clinerules", "Cline rules"},
	{".builderrules", "Builder.io rules"},
	{".github/copilot-instructions.md", "GitHub Copilot instructions"},
	{"llms.txt", "LLM-optimised documentation index"},
	{"llms-full.txt", "complete LLM documentation"},
}

type ruleDir struct {
	rel    string
	match  func(name string) bool
	format string
}

var ruleDirs = []ruleDir{
	{".cursor/rules", hasExt(".md", ".mdc"), "Cursor scoped rule"},
	{".claude/rules", hasExt(".md"), "Claude Code scoped rule"},
	{".github/instructions", func(n string) bool { return strings.HasSuffix(n, ".instructions.md") }, "Copilot path-specific instructions"},
}

func hasExt(exts ...string) func(string) bool {
	return func(name string) bool {
		ext := filepath.Ext(name)
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
}

// Discover returns the known agent files under root: fixed paths first, in
// a fixed order, then the contents of rule directories by name.
func Discover(root string) []File {
	var res []File
	for _, fp := range fixedPaths {
		p := filepath.Join(root, filepath.FromSlash(fp.rel))
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			res = append(res, File{Path: p, Format: fp.rel + ": " + fp.format})
		}
	}
	for _, rd := range ruleDirs {
		dir := filepath.Join(root, filepath.FromSlash(rd.rel))
		ents, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ent := range ents {
			if ent.IsDir() || !rd.match(ent.Name()) {
				continue
			}
			res = append(res, File{
				Path:   filepath.Join(dir, ent.Name()),
				Format: rd.rel + "/: " + rd.format,
			})
		}
	}
	return res
}

// FlattenName turns a path under root into a single file name for
// imported/: components lose their leading dots and are joined by '-'.
//
//	.github/copilot-instructions.md -> github-copilot-instructions.md
func FlattenName(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	var parts []string
	for _, c := range strings.Split(filepath.ToSlash(rel), "/") {
		if c = strings.TrimLeft(c, "."); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "-")
}
