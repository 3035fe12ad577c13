package commands

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// hit is a line kept by grepContext.
type hit struct {
	n     int // 0-based line index
	match bool
}

// grepContext returns the lines matching re together with n lines of
// context either side, in order and without repeats.
func grepContext(lines []string, re *regexp.Regexp, n int) []hit {
	keep := make([]int, len(lines)) // 0 none, 1 context, 2 match
	for i, l := range lines {
		if !re.MatchString(l) {
			continue
		}
		keep[i] = 2
		for j := max(0, i-n); j <= min(len(lines)-1, i+n); j++ {
			if keep[j] == 0 {
				keep[j] = 1
			}
		}
	}
	var res []hit
	for i, k := range keep {
		if k != 0 {
			res = append(res, hit{n: i, match: k == 2})
		}
	}
	return res
}

// grepLines filters content to matching lines with two lines of context,
// marking gaps with "...".
func grepLines(content string, re *regexp.Regexp) string {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	b := &strings.Builder{}
	prev := -1
	for _, h := range grepContext(lines, re, 2) {
		if prev >= 0 && h.n > prev+1 {
			b.WriteString("...\n")
		}
		b.WriteString(lines[h.n])
		b.WriteByte('\n')
		prev = h.n
	}
	return b.String()
}

// writeMatches prints the search hits for one file and returns the number
// of matching lines.
func writeMatches(w io.Writer, name, content string, re *regexp.Regexp, context int) int {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	hits := grepContext(lines, re, context)
	if len(hits) == 0 {
		return 0
	}
	fmt.Fprintf(w, "\n%s:\n", name)
	prev, count := -1, 0
	for _, h := range hits {
		if prev >= 0 && h.n > prev+1 {
			fmt.Fprintln(w, "  ...")
		}
		marker := " "
		if h.match {
			marker = ">"
			count++
		}
		fmt.Fprintf(w, "  %s %4d: %s\n", marker, h.n+1, lines[h.n])
		prev = h.n
	}
	return count
}
