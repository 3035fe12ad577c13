package graph

import (
	"github.com/simulacralabs/llmd/debug"
	"github.com/simulacralabs/llmd/issue"
)

// edges are the outgoing references followed for cycle detection:
// dependencies, then the parent.
func edges(set issue.Set, id issue.ID) []issue.ID {
	iss, ok := set.Lookup(id)
	if !ok {
		return nil
	}
	res := append([]issue.ID(nil), iss.Dependencies...)
	if iss.Parent != nil {
		res = append(res, *iss.Parent)
	}
	return res
}

// HasCycle reports whether following dependencies and parents from some
// issue leads back to it.
func HasCycle(set issue.Set) bool {
	return FindCycle(set) != nil
}

// FindCycle returns one cycle as a path that starts and ends at the same id,
// or nil. Roots are tried in id order.
func FindCycle(set issue.Set) []issue.ID {
	visited := map[issue.ID]bool{}
	onStack := map[issue.ID]bool{}
	var stack []issue.ID

	var dfs func(id issue.ID) []issue.ID
	dfs = func(id issue.ID) []issue.ID {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)
		for _, next := range edges(set, id) {
			if onStack[next] {
				start := 0
				for i, s := range stack {
					if s == next {
						start = i
						break
					}
				}
				return append(append([]issue.ID(nil), stack[start:]...), next)
			}
			if visited[next] {
				continue
			}
			if c := dfs(next); c != nil {
				return c
			}
		}
		onStack[id] = false
		stack = stack[:len(stack)-1]
		return nil
	}

	for _, id := range set.IDs() {
		if visited[id] {
			continue
		}
		if c := dfs(id); c != nil {
			if debug.Graph() {
				debug.Logf("cycle: %v\n", c)
			}
			return c
		}
	}
	return nil
}
