package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simulacralabs/llmd/issue"
)

type rec struct {
	id       issue.ID
	status   string
	typ      string
	priority string
	deps     []issue.ID
	children []issue.ID
	parent   *issue.ID
}

func mkSet(recs ...rec) issue.Set {
	set := issue.Set{}
	for _, r := range recs {
		iss := &issue.Issue{
			ID:           r.id,
			Status:       issue.StatusOpen,
			Type:         issue.TypeTask,
			Priority:     issue.PriorityMedium,
			Dependencies: r.deps,
			EpicChildren: r.children,
			Parent:       r.parent,
		}
		if r.status != "" {
			iss.Status = r.status
		}
		if r.typ != "" {
			iss.Type = r.typ
		}
		if r.priority != "" {
			iss.Priority = r.priority
		}
		set[r.id] = iss
	}
	return set
}

func ids(isss []*issue.Issue) []issue.ID {
	res := []issue.ID{}
	for _, iss := range isss {
		res = append(res, iss.ID)
	}
	return res
}

func TestReadyTasksUnknownDependency(t *testing.T) {
	set := mkSet(
		rec{id: 1, status: issue.StatusClosed},
		rec{id: 2, deps: []issue.ID{1}},
		rec{id: 3, deps: []issue.ID{1, 4}},
	)
	if diff := cmp.Diff([]issue.ID{2}, ids(ReadyTasks(set, true))); diff != "" {
		t.Errorf("ReadyTasks (-want +got):\n%s", diff)
	}
}

func TestReadyTasksOrdering(t *testing.T) {
	set := mkSet(
		rec{id: 1, priority: issue.PriorityLow},
		rec{id: 2, priority: "urgent"},
		rec{id: 3, priority: issue.PriorityHigh},
		rec{id: 4, priority: issue.PriorityMedium},
		rec{id: 5, priority: issue.PriorityHigh, typ: issue.TypeEpic},
		rec{id: 6, priority: issue.PriorityHigh, status: issue.StatusClosed},
		rec{id: 7, deps: []issue.ID{4}},
	)
	if diff := cmp.Diff([]issue.ID{3, 2, 4, 1}, ids(ReadyTasks(set, true))); diff != "" {
		t.Errorf("excluding epics (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]issue.ID{3, 5, 2, 4, 1}, ids(ReadyTasks(set, false))); diff != "" {
		t.Errorf("including epics (-want +got):\n%s", diff)
	}
}

func TestReadyTasksSelfDependency(t *testing.T) {
	set := mkSet(rec{id: 1, deps: []issue.ID{1}})
	if got := ReadyTasks(set, true); len(got) != 0 {
		t.Errorf("self-dependent open issue reported ready: %v", ids(got))
	}
}

func TestBlocked(t *testing.T) {
	set := mkSet(
		rec{id: 1, status: issue.StatusClosed},
		rec{id: 2, deps: []issue.ID{1, 3, 9}},
		rec{id: 3},
		rec{id: 4, status: issue.StatusClosed, deps: []issue.ID{3}},
	)
	got := Blocked(set)
	if len(got) != 1 || got[0].Issue.ID != 2 {
		t.Fatalf("Blocked = %+v", got)
	}
	if diff := cmp.Diff([]issue.ID{3, 9}, got[0].BlockedBy); diff != "" {
		t.Errorf("BlockedBy (-want +got):\n%s", diff)
	}
}

func TestFindCycle(t *testing.T) {
	one := issue.ID(1)
	tests := []struct {
		name string
		set  issue.Set
		want []issue.ID
	}{
		{"none", mkSet(rec{id: 1}, rec{id: 2, deps: []issue.ID{1}}), nil},
		{"diamond", mkSet(rec{id: 1, deps: []issue.ID{2, 3}}, rec{id: 2, deps: []issue.ID{4}}, rec{id: 3, deps: []issue.ID{4}}, rec{id: 4}), nil},
		{"self", mkSet(rec{id: 1, deps: []issue.ID{1}}), []issue.ID{1, 1}},
		{"deps", mkSet(rec{id: 1, deps: []issue.ID{2}}, rec{id: 2, deps: []issue.ID{3}}, rec{id: 3, deps: []issue.ID{1}}), []issue.ID{1, 2, 3, 1}},
		{"parent", mkSet(rec{id: 1, deps: []issue.ID{2}}, rec{id: 2, parent: &one}), []issue.ID{1, 2, 1}},
		{"dangling", mkSet(rec{id: 1, deps: []issue.ID{42}}), nil},
	}
	for _, tt := range tests {
		got := FindCycle(tt.set)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: FindCycle (-want +got):\n%s", tt.name, diff)
		}
		if HasCycle(tt.set) != (tt.want != nil) {
			t.Errorf("%s: HasCycle disagrees with FindCycle", tt.name)
		}
	}
}

func TestEpicTree(t *testing.T) {
	set := mkSet(
		rec{id: 1, typ: issue.TypeEpic, children: []issue.ID{2, 3}},
		rec{id: 2, typ: issue.TypeEpic, children: []issue.ID{4, 99}},
		rec{id: 3, children: []issue.ID{1}},
		rec{id: 4},
	)
	want := []TreeNode{
		{ID: 1, Depth: 0},
		{ID: 2, Depth: 1},
		{ID: 3, Depth: 1},
		{ID: 4, Depth: 2},
		{ID: 99, Depth: 2, Missing: true},
	}
	if diff := cmp.Diff(want, EpicTree(set, 1)); diff != "" {
		t.Errorf("EpicTree (-want +got):\n%s", diff)
	}
	got := EpicTree(set, 50)
	if diff := cmp.Diff([]TreeNode{{ID: 50, Missing: true}}, got); diff != "" {
		t.Errorf("EpicTree(missing root) (-want +got):\n%s", diff)
	}
}

func TestDangling(t *testing.T) {
	p := issue.ID(7)
	set := mkSet(
		rec{id: 1, deps: []issue.ID{2, 5}, children: []issue.ID{6}, parent: &p},
		rec{id: 2},
	)
	want := []Reference{
		{From: 1, Field: "dependencies", To: 5},
		{From: 1, Field: "epic_children", To: 6},
		{From: 1, Field: "parent", To: 7},
	}
	if diff := cmp.Diff(want, Dangling(set)); diff != "" {
		t.Errorf("Dangling (-want +got):\n%s", diff)
	}
}
