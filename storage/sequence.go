package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/simulacralabs/llmd/issue"
)

const counterFile = "config.json"

// Config is the on-disk counter state.
type Config struct {
	NextID issue.ID `json:"next_id"`
}

func (s *Storage) counterPath() string {
	return filepath.Join(s.root, counterFile)
}

// ReadCounter returns the id the next created issue will get. A missing
// counter file means 1.
func (s *Storage) ReadCounter() (issue.ID, error) {
	d, err := os.ReadFile(s.counterPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 1, nil
		}
		return 0, err
	}
	cfg := &Config{}
	if err := json.Unmarshal(d, cfg); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", counterFile, err)
	}
	if cfg.NextID < 1 {
		return 1, nil
	}
	return cfg.NextID, nil
}

// WriteCounter saves next as the id the next created issue will get.
func (s *Storage) WriteCounter(next issue.ID) error {
	d, err := json.MarshalIndent(&Config{NextID: next}, "", "  ")
	if err != nil {
		return err
	}
	// Write to temp file first, then rename
	tmp := s.counterPath() + ".tmp"
	if err := os.WriteFile(tmp, append(d, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.counterPath())
}

// NextID reads the counter, saves it incremented by one, and returns the
// value read.
func (s *Storage) NextID() (issue.ID, error) {
	id, err := s.ReadCounter()
	if err != nil {
		return 0, err
	}
	if err := s.WriteCounter(id + 1); err != nil {
		return 0, err
	}
	return id, nil
}
