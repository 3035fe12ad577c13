package graph

import "github.com/simulacralabs/llmd/issue"

// TreeNode is one line of an epic tree. Missing is set when no record
// carries the id.
type TreeNode struct {
	ID      issue.ID
	Depth   int
	Missing bool
}

// EpicTree walks epic_children breadth first from root, which comes first at
// depth 0. Each id appears once, at the depth it is first reached, so a
// child listed under two epics or a loop in the children does not repeat.
func EpicTree(set issue.Set, root issue.ID) []TreeNode {
	type item struct {
		id    issue.ID
		depth int
	}
	seen := map[issue.ID]bool{root: true}
	queue := []item{{root, 0}}
	var res []TreeNode
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		iss, ok := set.Lookup(cur.id)
		res = append(res, TreeNode{ID: cur.id, Depth: cur.depth, Missing: !ok})
		if !ok {
			continue
		}
		for _, child := range iss.EpicChildren {
			if seen[child] {
				continue
			}
			seen[child] = true
			queue = append(queue, item{child, cur.depth + 1})
		}
	}
	return res
}
