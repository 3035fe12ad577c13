package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse         = errors.New("parse error")
	ErrNoFrontmatter = fmt.Errorf("%w: missing frontmatter", ErrParse)
	ErrUnterminated  = fmt.Errorf("%w: no closing marker", ErrNoFrontmatter)
)
