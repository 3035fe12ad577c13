package compose

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/simulacralabs/llmd/markdown"
)

// Overview sections of catme.md, in the order they are quoted.
const (
	SummaryHeading = "Project Summary"
	StackHeading   = "Technology Stack"
	BuildHeading   = "Build"
)

const overviewFallbackLines = 40

// OverviewExcerpt quotes the summary, stack and build sections of an
// overview document when all three are present, the summary alone when it
// is not, and otherwise the first 40 lines.
func OverviewExcerpt(text string) string {
	summary, okSummary := markdown.ExtractSection(text, SummaryHeading)
	stack, okStack := markdown.ExtractSection(text, StackHeading)
	build, okBuild := markdown.ExtractSection(text, BuildHeading)
	switch {
	case okSummary && okStack && okBuild:
		return summary + "\n\n" + stack + "\n\n" + build + "\n"
	case okSummary:
		return summary + "\n"
	}
	lines := markdown.Lines(text)
	if len(lines) > overviewFallbackLines {
		lines = lines[:overviewFallbackLines]
	}
	return strings.Join(lines, "\n") + "\n"
}

// Document is what Assemble renders.
type Document struct {
	Task     string
	Overview string   // already excerpted
	Topics   []string // documents included whole, by label
	Sections []Entry
}

// Assemble renders doc, reading topic documents and sections from fsys.
// Topics and sections whose document is missing are left out.
func Assemble(fsys fs.FS, doc *Document) (string, error) {
	b := &strings.Builder{}
	b.WriteString("# Task Context\n\n")
	if doc.Task != "" {
		b.WriteString("## Task\n\n")
		writeBlock(b, doc.Task)
	}
	b.WriteString("## Project Overview\n\n")
	b.WriteString(doc.Overview)
	b.WriteString("\n")

	for _, topic := range doc.Topics {
		d, err := fs.ReadFile(fsys, topic+".md")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", err
		}
		b.WriteString("## " + topic + "\n\n")
		writeBlock(b, string(d))
	}

	if len(doc.Sections) == 0 {
		return b.String(), nil
	}
	b.WriteString("## Relevant Sections\n\n")
	cache := map[string]string{}
	current := ""
	for _, e := range doc.Sections {
		if e.File != current {
			b.WriteString("### " + DocLabel(e.File) + "\n\n")
			current = e.File
		}
		text, ok := cache[e.File]
		if !ok {
			d, err := fs.ReadFile(fsys, e.File)
			if err != nil {
				continue
			}
			text = string(d)
			cache[e.File] = text
		}
		if sec, ok := markdown.ExtractSection(text, e.Heading); ok {
			writeBlock(b, sec)
		}
	}
	return b.String(), nil
}

// writeBlock writes s with a guaranteed line ending, then a blank line.
func writeBlock(b *strings.Builder, s string) {
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
