package parse

import "github.com/simulacralabs/llmd/issue"

type parseOpts struct {
	id     *issue.ID
	strict bool
}

type ParseOption func(*parseOpts)

// WithID makes id authoritative over any id field in the frontmatter. The
// store uses it with the id taken from the filename.
func WithID(id issue.ID) ParseOption {
	return func(o *parseOpts) { o.id = &id }
}

// Strict turns lines the lenient parser would drop (malformed list entries,
// stray lines) into errors. Used by the check command.
func Strict(v bool) ParseOption {
	return func(o *parseOpts) { o.strict = v }
}
