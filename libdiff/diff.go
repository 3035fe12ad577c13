// Package libdiff computes line diffs between two versions of a file, for
// previewing an update before it is written.
package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a diff.
type Line struct {
	Op   Op
	Text string // without the line ending
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			res = append(res, Line{Op: op, Text: l})
		}
	}
	return res
}

// Changed reports whether the diff has any insertion or deletion.
func Changed(lines []Line) bool {
	for i := range lines {
		if lines[i].Op != Equal {
			return true
		}
	}
	return false
}

var prefixes = [...]string{Equal: "  ", Insert: "+ ", Delete: "- "}

// Write prints lines with "+ ", "- " or "  " prefixes. With colorize,
// insertions are green and deletions red.
func Write(w io.Writer, lines []Line, colorize bool) error {
	add := fmt.Sprint
	del := fmt.Sprint
	if colorize {
		add = color.New(color.FgGreen).Sprint
		del = color.New(color.FgRed).Sprint
	}
	for _, l := range lines {
		s := prefixes[l.Op] + l.Text
		switch l.Op {
		case Insert:
			s = add(s)
		case Delete:
			s = del(s)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
