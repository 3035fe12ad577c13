// Package compose builds task-context documents out of a knowledge base:
// a numbered index of the sections available, selection of sections by
// keyword, by position or by issue label, and assembly of the result.
//
// Documents are read through an fs.FS rooted at the knowledge-base
// directory; names are slash-separated paths relative to it.
package compose

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/simulacralabs/llmd/markdown"
)

var ErrRange = errors.New("section number out of range")

// Entry is one selectable section.
type Entry struct {
	Label   string // "<doc label> > <heading>"
	File    string
	Heading string
}

// DocLabel is the name a document goes by in labels and sub-headings: its
// path without the .md extension.
func DocLabel(file string) string {
	return strings.TrimSuffix(file, ".md")
}

// BuildIndex lists the depth 2 and 3 headings of files, in file order then
// document order. Files that cannot be read are skipped.
func BuildIndex(fsys fs.FS, files []string) []Entry {
	var res []Entry
	for _, file := range files {
		d, err := fs.ReadFile(fsys, file)
		if err != nil {
			continue
		}
		label := DocLabel(file)
		for _, h := range markdown.ListHeadings(string(d)) {
			if h.Depth != 2 && h.Depth != 3 {
				continue
			}
			res = append(res, Entry{
				Label:   label + " > " + h.Text,
				File:    file,
				Heading: h.Text,
			})
		}
	}
	return res
}

// WriteIndex prints index one entry per line as "[n] label", numbered from 1.
func WriteIndex(w io.Writer, index []Entry) error {
	for i := range index {
		if _, err := fmt.Fprintf(w, "[%d] %s\n", i+1, index[i].Label); err != nil {
			return err
		}
	}
	return nil
}

// ParsePositions reads section numbers separated by commas or newlines. A
// blank line ends the list.
func ParsePositions(text string) ([]int, error) {
	var res []int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("bad section number %q", part)
			}
			res = append(res, n)
		}
	}
	return res, nil
}

// SelectPositions picks entries by one-based position, in the order given.
// Repeated positions are ignored.
func SelectPositions(index []Entry, positions []int) ([]Entry, error) {
	seen := map[int]bool{}
	var res []Entry
	for _, p := range positions {
		if p < 1 || p > len(index) {
			return nil, fmt.Errorf("%w: %d is not in 1–%d", ErrRange, p, len(index))
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		res = append(res, index[p-1])
	}
	return res, nil
}
