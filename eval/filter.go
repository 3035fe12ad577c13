// Package eval compiles and runs the boolean filter expressions accepted by
// `llmd issue list --where`.
//
// An expression sees the fields of one issue as variables and may call a
// few helpers:
//
//	status == "open" && priority == "high"
//	haslabel("bug") && !blocked()
//	dependson(4) || parent == 2
//	daysago(updated_at) > 30
//
// The expression language is github.com/expr-lang/expr.
package eval

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/simulacralabs/llmd/issue"
)

// Filter is a compiled filter expression.
type Filter struct {
	src string
	prg *vm.Program
}

// Compile parses src. It must evaluate to a boolean.
func Compile(src string) (*Filter, error) {
	opts := append([]expr.Option{expr.Env(Env(&issue.Issue{}, nil)), expr.AsBool()}, exprOpts()...)
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match evaluates the filter against iss. set resolves references for
// helpers such as blocked().
func (f *Filter) Match(iss *issue.Issue, set issue.Set) (bool, error) {
	out, err := expr.Run(f.prg, Env(iss, set))
	if err != nil {
		return false, fmt.Errorf("filter %q on issue %d: %w", f.src, iss.ID, err)
	}
	return out.(bool), nil
}

// Select returns the issues of isss that match.
func (f *Filter) Select(isss []*issue.Issue, set issue.Set) ([]*issue.Issue, error) {
	var res []*issue.Issue
	for _, iss := range isss {
		ok, err := f.Match(iss, set)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, iss)
		}
	}
	return res, nil
}

// Env is the variable environment an expression sees for iss. Absent
// optional fields read as "" or 0.
func Env(iss *issue.Issue, set issue.Set) map[string]any {
	deps := ints(iss.Dependencies)
	return map[string]any{
		"id":            int(iss.ID),
		"title":         iss.Title,
		"slug":          iss.Slug,
		"type":          iss.Type,
		"status":        iss.Status,
		"priority":      iss.Priority,
		"labels":        iss.LabelNames(),
		"assignee":      deref(iss.Assignee),
		"milestone":     deref(iss.Milestone),
		"parent":        derefID(iss.Parent),
		"dependencies":  deps,
		"epic_children": ints(iss.EpicChildren),
		"points":        derefInt(iss.Points),
		"due":           deref(iss.Due),
		"created_at":    iss.CreatedAt,
		"updated_at":    iss.UpdatedAt,
		"body":          iss.Body,

		"haslabel":  func(name string) bool { return iss.HasLabel(name) },
		"dependson": func(id int) bool { return slices.Contains(deps, id) },
		"blocked": func() bool {
			for _, d := range iss.Dependencies {
				dep, ok := set.Lookup(d)
				if !ok || !dep.IsClosed() {
					return true
				}
			}
			return false
		},
	}
}

var timeNow = time.Now

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
		expr.Function("daysago", func(params ...any) (any, error) {
			ts := params[0].(string)
			if ts == "" {
				return 0, nil
			}
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, fmt.Errorf("daysago: %w", err)
			}
			return int(timeNow().Sub(t).Hours() / 24), nil
		},
			new(func(string) int)),
	}
}

func ints(ids []issue.ID) []int {
	res := make([]int, len(ids))
	for i, id := range ids {
		res[i] = int(id)
	}
	return res
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func derefID(id *issue.ID) int {
	if id == nil {
		return 0
	}
	return int(*id)
}
