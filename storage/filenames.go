package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/simulacralabs/llmd/issue"
)

type issueFile struct {
	name string
	id   issue.ID
	slug string
}

// parseFilename accepts "<digits>-<slug>.md" with at least three digits.
func parseFilename(name string) (issueFile, bool) {
	stem, ok := strings.CutSuffix(name, ".md")
	if !ok {
		return issueFile{}, false
	}
	digits, slug, ok := strings.Cut(stem, "-")
	if !ok || len(digits) < 3 {
		return issueFile{}, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || strings.ContainsAny(digits, "+-") {
		return issueFile{}, false
	}
	return issueFile{name: name, id: issue.ID(n), slug: slug}, true
}

// files lists the issue files in filename order.
func (s *Storage) files() ([]issueFile, error) {
	ents, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("could not read issues directory: %w", err)
	}
	res := make([]issueFile, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		if f, ok := parseFilename(ent.Name()); ok {
			res = append(res, f)
		}
	}
	return res, nil
}

// resolve finds the first file matching idOrSlug. A number matches the
// zero-padded id prefix; anything else, or a number with no such file,
// matches a file whose stem ends in "-<x>" or equals x.
func (s *Storage) resolve(idOrSlug string) (issueFile, error) {
	files, err := s.files()
	if err != nil {
		return issueFile{}, err
	}
	if n, err := strconv.Atoi(idOrSlug); err == nil {
		prefix := fmt.Sprintf("%03d-", n)
		for _, f := range files {
			if strings.HasPrefix(f.name, prefix) {
				return f, nil
			}
		}
	}
	for _, f := range files {
		stem := strings.TrimSuffix(f.name, ".md")
		if strings.HasSuffix(stem, "-"+idOrSlug) || stem == idOrSlug {
			return f, nil
		}
	}
	return issueFile{}, fmt.Errorf("%q: %w", idOrSlug, ErrNotFound)
}

// Duplicates reports ids carried by more than one file, with the file
// names in filename order. A retitled issue whose old file was left behind
// shows up here.
func (s *Storage) Duplicates() (map[issue.ID][]string, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	byID := map[issue.ID][]string{}
	for _, f := range files {
		byID[f.id] = append(byID[f.id], f.name)
	}
	for id, names := range byID {
		if len(names) < 2 {
			delete(byID, id)
		}
	}
	return byID, nil
}
