// Package llmddir locates a project's .llmd knowledge-base directory and
// names the well-known files inside it.
package llmddir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	Dir      = ".llmd"
	Catme    = "catme.md"
	Imported = "imported"
	Issues   = "issues"
	Topics   = "topics.yaml"
	Env      = ".env"
	BookSrc  = ".mdbook"
	BookOut  = "book"
)

var ErrNotFound = errors.New("no .llmd/ directory found (run `llmd init` in your project root)")

// Find walks up from start to the first directory containing .llmd and
// returns the path of the .llmd directory.
func Find(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		cand := filepath.Join(cur, Dir)
		if fi, err := os.Stat(cand); err == nil && fi.IsDir() {
			return cand, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("searching from %s: %w", start, ErrNotFound)
		}
		cur = parent
	}
}

func CatmePath(llmd string) string    { return filepath.Join(llmd, Catme) }
func ImportedPath(llmd string) string { return filepath.Join(llmd, Imported) }
func IssuesPath(llmd string) string   { return filepath.Join(llmd, Issues) }
func TopicsPath(llmd string) string   { return filepath.Join(llmd, Topics) }
func EnvPath(llmd string) string      { return filepath.Join(llmd, Env) }

// LoadEnv loads llmd/.env into the process environment if it exists.
// Variables already set are not overridden.
func LoadEnv(llmd string) error {
	p := EnvPath(llmd)
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("loading %s: %w", p, err)
	}
	return nil
}

// ListAllFiles returns every .md file under llmd as a slash-separated path
// relative to llmd, in lexical walk order.
func ListAllFiles(llmd string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(llmd, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(llmd, p)
		if err != nil {
			return err
		}
		res = append(res, filepath.ToSlash(rel))
		return nil
	})
	return res, err
}

// TopicFiles is ListAllFiles without the overview, imported agent files,
// issues and generated book sources.
func TopicFiles(llmd string) ([]string, error) {
	all, err := ListAllFiles(llmd)
	if err != nil {
		return nil, err
	}
	res := all[:0]
	for _, f := range all {
		if !IsReserved(f) {
			res = append(res, f)
		}
	}
	return res, nil
}

// IsReserved reports whether the relative path rel is one of the files llmd
// manages itself rather than a topic document.
func IsReserved(rel string) bool {
	if rel == Catme {
		return true
	}
	top, _, _ := strings.Cut(rel, "/")
	switch top {
	case Imported, Issues, BookSrc, BookOut:
		return true
	}
	return false
}
