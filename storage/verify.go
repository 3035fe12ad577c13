package storage

import (
	"github.com/simulacralabs/llmd/parse"
)

// FileError is an issue file that failed to parse.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string { return e.Err.Error() }
func (e FileError) Unwrap() error { return e.Err }

// Verify parses every issue file strictly, so list entries LoadAll would
// quietly drop are reported too. Failures come back in filename order.
func (s *Storage) Verify() ([]FileError, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	var res []FileError
	for _, f := range files {
		if _, err := s.read(f, parse.Strict(true)); err != nil {
			res = append(res, FileError{Name: f.name, Err: err})
		}
	}
	return res, nil
}
