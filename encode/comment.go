package encode

import (
	"fmt"
	"strings"

	"github.com/simulacralabs/llmd/issue"
)

const (
	commentsHeading = "## Comments"
	fence           = "```"
)

// FormatComment renders c as one record of a Comments block.
func FormatComment(c issue.Comment) string {
	return fmt.Sprintf("- author: \"%s\"\n  date: \"%s\"\n  body: \"%s\"\n",
		Escape(c.Author), Escape(c.Date), Escape(c.Body))
}

// AppendComment adds c to the Comments block of body and returns the new
// body. The block is created at the end of body when missing. An existing
// block gets the record directly ahead of its closing fence, so records stay
// in the order they were added.
func AppendComment(body string, c issue.Comment) string {
	entry := FormatComment(c)
	lines := strings.Split(body, "\n")
	h := indexLine(lines, 0, func(l string) bool { return strings.TrimSpace(l) == commentsHeading })
	if h < 0 {
		b := strings.TrimRight(body, "\n")
		if b != "" {
			b += "\n\n"
		}
		return b + commentsHeading + "\n\n" + fence + "yaml\n" + entry + fence + "\n"
	}
	isFence := func(l string) bool { return strings.HasPrefix(strings.TrimSpace(l), fence) }
	open := indexLine(lines, h+1, isFence)
	if open < 0 {
		return strings.TrimRight(body, "\n") + "\n\n" + fence + "yaml\n" + entry + fence + "\n"
	}
	end := indexLine(lines, open+1, isFence)
	if end < 0 {
		return strings.TrimRight(body, "\n") + "\n" + entry + fence + "\n"
	}
	return strings.Join(lines[:end], "\n") + "\n" + entry + strings.Join(lines[end:], "\n")
}

func indexLine(lines []string, from int, f func(string) bool) int {
	for i := from; i < len(lines); i++ {
		if f(lines[i]) {
			return i
		}
	}
	return -1
}
