package graph

import "github.com/simulacralabs/llmd/issue"

// Reference is a reference from one issue to an id with no record.
type Reference struct {
	From  issue.ID
	Field string
	To    issue.ID
}

// Dangling lists the references in set that resolve to nothing, by source
// id.
func Dangling(set issue.Set) []Reference {
	var res []Reference
	for _, iss := range set.Sorted() {
		check := func(field string, ids ...issue.ID) {
			for _, id := range ids {
				if _, ok := set.Lookup(id); !ok {
					res = append(res, Reference{From: iss.ID, Field: field, To: id})
				}
			}
		}
		check("dependencies", iss.Dependencies...)
		check("epic_children", iss.EpicChildren...)
		if iss.Parent != nil {
			check("parent", *iss.Parent)
		}
	}
	return res
}
