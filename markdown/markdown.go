// Package markdown provides the line-oriented heading model used across
// llmd: listing ATX headings and cutting out the section under a heading.
package markdown

import (
	"fmt"
	"strconv"
	"strings"
)

// Heading is an ATX heading found in a document.
type Heading struct {
	Depth int
	Text  string
}

// HeadingDepth returns the heading level of line (1 for "#", 2 for "##", ...)
// or 0 when the line is not a heading. A run of '#' must be followed by a
// space to count.
func HeadingDepth(line string) int {
	trimmed := strings.TrimLeft(line, "#")
	depth := len(line) - len(trimmed)
	if depth > 0 && strings.HasPrefix(trimmed, " ") {
		return depth
	}
	return 0
}

func headingText(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// Lines splits text into lines the way the rest of the package sees them: a
// trailing newline does not produce an empty last line and "\r\n" endings are
// accepted.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ListHeadings returns every heading in text in document order.
func ListHeadings(text string) []Heading {
	var res []Heading
	for _, line := range Lines(text) {
		if depth := HeadingDepth(line); depth > 0 {
			res = append(res, Heading{Depth: depth, Text: headingText(line)})
		}
	}
	return res
}

// ExtractSection returns the section under the first heading whose text
// contains needle (case-insensitive). The section runs from the heading line
// up to, but not including, the next heading of the same or higher level.
// Later headings that also match are ignored.
func ExtractSection(text, needle string) (string, bool) {
	needle = strings.ToLower(needle)
	lines := Lines(text)
	start := -1
	target := 0
	for i, line := range lines {
		depth := HeadingDepth(line)
		if depth == 0 {
			continue
		}
		if start < 0 {
			if strings.Contains(strings.ToLower(headingText(line)), needle) {
				start = i
				target = depth
			}
			continue
		}
		if depth <= target {
			return strings.Join(lines[start:i], "\n"), true
		}
	}
	if start < 0 {
		return "", false
	}
	return strings.Join(lines[start:], "\n"), true
}

// Window returns lines start..end (1-indexed, inclusive), clamped to the text.
func Window(text string, start, end int) string {
	lines := Lines(text)
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}

// EstimateTokens approximates a token count at one token per four bytes.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// ParseLineRange parses "START:END" with 1 <= START <= END.
func ParseLineRange(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("line range must be in the form START:END, e.g. 10:50")
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start line number %q", a)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end line number %q", b)
	}
	if start < 1 {
		return 0, 0, fmt.Errorf("line numbers are 1-indexed; start must be >= 1")
	}
	if start > end {
		return 0, 0, fmt.Errorf("start line must be <= end line")
	}
	return start, end, nil
}
