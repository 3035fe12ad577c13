package issue

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify derives a filename-safe slug from a title: lower-cased, with every
// run of characters other than letters, digits, '-' and '_' collapsed into a
// single hyphen, and no leading or trailing hyphen from such runs.
//
//	"Fix: the login (crash)" -> "fix-the-login-crash"
func Slugify(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// Filename returns the store filename for an id and slug.
func Filename(id ID, slug string) string {
	return fmt.Sprintf("%03d-%s.md", id, slug)
}

// Filename returns the store filename for the issue.
func (iss *Issue) Filename() string {
	return Filename(iss.ID, iss.Slug)
}
