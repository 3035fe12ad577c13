// Package mergeop applies JSON patches to issue records. Both RFC 6902
// patch documents (a JSON array of operations) and RFC 7386 merge patches (a
// JSON object) are accepted; the record is patched in its JSON form, the
// same form `llmd issue show --json` prints.
package mergeop

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/simulacralabs/llmd/debug"
	"github.com/simulacralabs/llmd/issue"
)

var ErrPatch = errors.New("invalid patch")

type Kind int

const (
	OpsPatch Kind = iota
	MergePatch
)

// Patch is a decoded patch document.
type Patch struct {
	Kind Kind
	raw  []byte
	ops  jsonpatch.Patch
}

// Decode classifies and decodes a patch.
func Decode(d []byte) (*Patch, error) {
	d = bytes.TrimSpace(d)
	if len(d) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrPatch)
	}
	switch d[0] {
	case '[':
		ops, err := jsonpatch.DecodePatch(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPatch, err)
		}
		return &Patch{Kind: OpsPatch, raw: d, ops: ops}, nil
	case '{':
		if !json.Valid(d) {
			return nil, fmt.Errorf("%w: malformed merge patch", ErrPatch)
		}
		return &Patch{Kind: MergePatch, raw: d}, nil
	}
	return nil, fmt.Errorf("%w: expected a JSON array or object", ErrPatch)
}

// Apply returns a patched copy of iss. The id cannot be patched, and the
// result must still have a title.
func (p *Patch) Apply(iss *issue.Issue) (*issue.Issue, error) {
	doc, err := json.Marshal(iss)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch p.Kind {
	case OpsPatch:
		out, err = p.ops.Apply(doc)
	default:
		out, err = jsonpatch.MergePatch(doc, p.raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Store() {
		debug.Logf("patched issue %d:\n%s\n", iss.ID, out)
	}
	res := &issue.Issue{}
	if err := json.Unmarshal(out, res); err != nil {
		return nil, fmt.Errorf("%w: result is not an issue: %w", ErrPatch, err)
	}
	if res.ID != iss.ID {
		return nil, fmt.Errorf("%w: id cannot change (%d -> %d)", ErrPatch, iss.ID, res.ID)
	}
	if res.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrPatch)
	}
	if res.Slug == "" {
		res.Slug = issue.Slugify(res.Title)
	}
	return res, nil
}

// Apply decodes d and applies it to iss.
func Apply(iss *issue.Issue, d []byte) (*issue.Issue, error) {
	p, err := Decode(d)
	if err != nil {
		return nil, err
	}
	return p.Apply(iss)
}
