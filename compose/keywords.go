package compose

import (
	"strings"
	"unicode"

	"github.com/simulacralabs/llmd/debug"
)

// Keywords extracts the words of task worth matching on: lower-cased,
// stripped of leading and trailing punctuation, longer than three bytes,
// each kept once in order of first appearance.
func Keywords(task string) []string {
	seen := map[string]bool{}
	var res []string
	for _, w := range strings.Fields(task) {
		w = strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if len(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		res = append(res, w)
	}
	if debug.Compose() {
		debug.Logf("keywords: %v\n", res)
	}
	return res
}

// MatchKeywords returns the entries whose heading contains any keyword, in
// index order, each label once.
func MatchKeywords(index []Entry, keywords []string) []Entry {
	seen := map[string]bool{}
	var res []Entry
	for _, e := range index {
		h := strings.ToLower(e.Heading)
		hit := false
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				hit = true
				break
			}
		}
		if !hit || seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		res = append(res, e)
	}
	return res
}
