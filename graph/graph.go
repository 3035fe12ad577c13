// Package graph answers questions about the references between issues:
// which are ready to work on, which are blocked, whether dependencies loop,
// and what an epic contains.
//
// All references are plain ids looked up in an issue.Set. An id with no
// record behind it is tolerated everywhere.
package graph

import (
	"slices"

	"github.com/simulacralabs/llmd/issue"
)

// ReadyTasks returns the open issues whose dependencies are all closed
// records, highest priority first, then by id. A dependency on an unknown id
// is never satisfied. Epics are left out when excludeContainers is set.
func ReadyTasks(set issue.Set, excludeContainers bool) []*issue.Issue {
	var res []*issue.Issue
	for _, iss := range set.Sorted() {
		if iss.IsClosed() || (excludeContainers && iss.IsContainer()) {
			continue
		}
		if len(unsatisfied(set, iss)) != 0 {
			continue
		}
		res = append(res, iss)
	}
	SortByPriority(res)
	return res
}

// SortByPriority orders issues by priority rank, then id.
func SortByPriority(isss []*issue.Issue) {
	slices.SortStableFunc(isss, func(a, b *issue.Issue) int {
		if d := issue.PriorityRank(a.Priority) - issue.PriorityRank(b.Priority); d != 0 {
			return d
		}
		return int(a.ID) - int(b.ID)
	})
}

func unsatisfied(set issue.Set, iss *issue.Issue) []issue.ID {
	var res []issue.ID
	for _, dep := range iss.Dependencies {
		d, ok := set.Lookup(dep)
		if !ok || !d.IsClosed() {
			res = append(res, dep)
		}
	}
	return res
}

// BlockedIssue is an open issue with the dependencies holding it back.
type BlockedIssue struct {
	Issue     *issue.Issue
	BlockedBy []issue.ID
}

// Blocked returns the open issues with at least one dependency that is not a
// closed record, by id.
func Blocked(set issue.Set) []BlockedIssue {
	var res []BlockedIssue
	for _, iss := range set.Sorted() {
		if iss.IsClosed() {
			continue
		}
		if by := unsatisfied(set, iss); len(by) != 0 {
			res = append(res, BlockedIssue{Issue: iss, BlockedBy: by})
		}
	}
	return res
}
