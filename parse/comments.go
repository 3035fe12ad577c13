package parse

import (
	"strings"

	"github.com/simulacralabs/llmd/issue"
)

// CommentsHeading introduces the comment block inside an issue body.
const CommentsHeading = "## Comments"

// Comments reads the records of the body's Comments block, oldest first.
// A body without the block has no comments.
func Comments(body string) []issue.Comment {
	lines := strings.Split(body, "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) != CommentsHeading {
		i++
	}
	for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
		i++
	}
	if i >= len(lines) {
		return nil
	}
	var (
		res []issue.Comment
		cur *issue.Comment
	)
	for _, line := range lines[i+1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			break
		}
		item, isNew := strings.CutPrefix(trimmed, "- ")
		if isNew {
			res = append(res, issue.Comment{})
			cur = &res[len(res)-1]
		}
		if cur == nil {
			continue
		}
		k, v, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "author":
			cur.Author = unquote(v)
		case "date":
			cur.Date = unquote(v)
		case "body":
			cur.Body = unquote(v)
		}
	}
	return res
}
