package eval

import (
	"testing"
	"time"

	"github.com/simulacralabs/llmd/issue"
)

func testSet() issue.Set {
	return issue.Set{
		1: {ID: 1, Title: "done", Status: issue.StatusClosed, Priority: "low"},
		2: {ID: 2, Title: "api work", Status: issue.StatusOpen, Priority: "high",
			Labels: []issue.Label{{Name: "api"}}, Dependencies: []issue.ID{1},
			Assignee: issue.Ptr("ann"), UpdatedAt: "2026-01-01T00:00:00Z"},
		3: {ID: 3, Title: "ui work", Status: issue.StatusOpen, Priority: "medium",
			Labels: []issue.Label{{Name: "ui"}, {Name: "bug"}}, Dependencies: []issue.ID{2},
			Parent: issue.Ptr(issue.ID(1)), UpdatedAt: "2026-03-01T00:00:00Z"},
	}
}

type filterTest struct {
	src  string
	want []issue.ID
}

func TestFilter(t *testing.T) {
	old := timeNow
	timeNow = func() time.Time { return time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = old })

	fts := []filterTest{
		{`status == "open"`, []issue.ID{2, 3}},
		{`priority == "high" || id == 1`, []issue.ID{1, 2}},
		{`haslabel("bug")`, []issue.ID{3}},
		{`"api" in labels`, []issue.ID{2}},
		{`blocked()`, []issue.ID{3}},
		{`!blocked() && status != "closed"`, []issue.ID{2}},
		{`dependson(2)`, []issue.ID{3}},
		{`parent == 1`, []issue.ID{3}},
		{`assignee == ""`, []issue.ID{1, 3}},
		{`updated_at != "" && daysago(updated_at) > 30`, []issue.ID{2}},
		{`title contains "work"`, []issue.ID{2, 3}},
	}
	set := testSet()
	for _, ft := range fts {
		f, err := Compile(ft.src)
		if err != nil {
			t.Errorf("%s: %v", ft.src, err)
			continue
		}
		got, err := f.Select(set.Sorted(), set)
		if err != nil {
			t.Errorf("%s: %v", ft.src, err)
			continue
		}
		var ids []issue.ID
		for _, iss := range got {
			ids = append(ids, iss.ID)
		}
		if len(ids) != len(ft.want) {
			t.Errorf("%s: got %v, want %v", ft.src, ids, ft.want)
			continue
		}
		for i := range ids {
			if ids[i] != ft.want[i] {
				t.Errorf("%s: got %v, want %v", ft.src, ids, ft.want)
				break
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`status ==`, `priority`, `nosuchvar == 1`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("%s: expected a compile error", src)
		}
	}
}
