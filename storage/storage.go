// Package storage keeps issues as one markdown file each in a flat
// directory, next to a config.json holding the id counter.
//
// There is no locking. A single writer is assumed; two concurrent creates
// can mint the same id.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/simulacralabs/llmd/debug"
	"github.com/simulacralabs/llmd/encode"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/parse"
)

var (
	ErrNotFound       = errors.New("issue not found")
	ErrNotInitialized = errors.New("issue store not initialized (run `llmd issue init`)")
)

// Storage provides filesystem-based storage for issues.
type Storage struct {
	root   string       // the issues directory
	logger *slog.Logger // skipped files and writes are logged at debug level
}

// Open opens an existing store rooted at root.
// If logger is nil, slog.Default() will be used.
func Open(root string, logger *slog.Logger) (*Storage, error) {
	fi, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotInitialized)
		}
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, ErrNotInitialized)
	}
	return newStorage(root, logger), nil
}

// Init creates the store directory and its counter file if they do not exist
// and opens the store. An existing counter is left alone.
func Init(root string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	s := newStorage(root, logger)
	if _, err := os.Stat(s.counterPath()); errors.Is(err, fs.ErrNotExist) {
		if err := s.WriteCounter(1); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newStorage(root string, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{root: root, logger: logger}
}

// Root returns the root directory path.
func (s *Storage) Root() string {
	return s.root
}

// Path returns the file path iss is written to.
func (s *Storage) Path(iss *issue.Issue) string {
	return filepath.Join(s.root, iss.Filename())
}

// LoadAll reads every issue file. Files that do not parse are skipped; when
// two files carry the same id the first in filename order wins.
func (s *Storage) LoadAll() (issue.Set, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	set := issue.Set{}
	for _, f := range files {
		if _, dup := set[f.id]; dup {
			continue
		}
		iss, err := s.read(f)
		if err != nil {
			s.logger.Debug("skipping issue file", "file", f.name, "error", err)
			if debug.Store() {
				debug.Logf("skip %s: %v\n", f.name, err)
			}
			continue
		}
		set[f.id] = iss
	}
	return set, nil
}

// Get resolves idOrSlug and reads the record. Unlike LoadAll, a file that
// does not parse is an error.
func (s *Storage) Get(idOrSlug string) (*issue.Issue, error) {
	f, err := s.resolve(idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.read(f)
}

// Resolve returns the path of the file idOrSlug names.
func (s *Storage) Resolve(idOrSlug string) (string, error) {
	f, err := s.resolve(idOrSlug)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, f.name), nil
}

// Write serializes iss to its file. When the slug has changed since the
// record was last written, the file under the old name is left in place.
func (s *Storage) Write(iss *issue.Issue) error {
	p := s.Path(iss)
	if err := os.WriteFile(p, encode.MarshalIssue(iss), 0644); err != nil {
		return fmt.Errorf("could not write issue %d: %w", iss.ID, err)
	}
	s.logger.Debug("wrote issue", "id", iss.ID, "file", filepath.Base(p))
	return nil
}

// Create mints the next id for iss and writes it. The counter is saved
// before the record.
func (s *Storage) Create(iss *issue.Issue) error {
	id, err := s.NextID()
	if err != nil {
		return err
	}
	iss.ID = id
	if iss.Slug == "" {
		iss.Slug = issue.Slugify(iss.Title)
	}
	return s.Write(iss)
}

// Update reads the record idOrSlug names, applies f and writes the result
// with a fresh updated_at.
func (s *Storage) Update(idOrSlug string, f func(*issue.Issue) error) (*issue.Issue, error) {
	iss, err := s.Get(idOrSlug)
	if err != nil {
		return nil, err
	}
	if err := f(iss); err != nil {
		return nil, err
	}
	iss.Touch()
	if err := s.Write(iss); err != nil {
		return nil, err
	}
	return iss, nil
}

func (s *Storage) read(f issueFile, opts ...parse.ParseOption) (*issue.Issue, error) {
	d, err := os.ReadFile(filepath.Join(s.root, f.name))
	if err != nil {
		return nil, err
	}
	iss, err := parse.Parse(d, append(opts, parse.WithID(f.id))...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return iss, nil
}
