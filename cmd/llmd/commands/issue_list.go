package commands

import (
	"fmt"
	"slices"
	"time"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/eval"
	"github.com/simulacralabs/llmd/graph"
	"github.com/simulacralabs/llmd/issue"
)

type listConfig struct {
	*cli.Command
	store     *issueStore
	Status    string `cli:"name=status aliases=s desc='only issues with this status'"`
	Type      string `cli:"name=type aliases=t desc='only issues of this type'"`
	Milestone string `cli:"name=milestone aliases=m desc='only issues in this milestone'"`
	Assignee  string `cli:"name=assignee aliases=a desc='only issues assigned to this handle'"`
	Epic      string `cli:"name=epic desc='only children of this epic'"`
	Label     string `cli:"name=label desc='only issues carrying this label'"`
	Where     string `cli:"name=where aliases=w desc='only issues for which this expression is true'"`
	Blocked   bool   `cli:"name=blocked desc='only open issues waiting on open or missing dependencies'"`
	JSON      bool   `cli:"name=json desc='print JSON'"`
	YAML      bool   `cli:"name=yaml desc='print YAML'"`
	Long      bool   `cli:"name=long aliases=L desc='include scheduling fields and relative times'"`
}

// IssueListCommand returns the issue list subcommand.
func IssueListCommand(store *issueStore) *cli.Command {
	cfg := &listConfig{store: store}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "list").
		WithSynopsis("list [filters] [--json|--yaml|--long] - List issues").
		WithDescription(`--where takes an expression over the issue fields (id, title, slug, type,
status, priority, labels, assignee, milestone, parent, dependencies,
epic_children, points, due, created_at, updated_at) with the functions
haslabel(name), dependson(id), blocked(), daysago(timestamp) and
getenv(name), for example:

  llmd issue list --where 'status == "open" && haslabel("ui")'
  llmd issue list --where 'assignee == getenv("USER") && daysago(updated_at) > 14'`).
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *listConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd issue list [filters]", cli.ErrUsage)
	}
	if cfg.JSON && cfg.YAML {
		return fmt.Errorf("%w: --json and --yaml are exclusive", cli.ErrUsage)
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	set, err := s.LoadAll()
	if err != nil {
		return err
	}
	isss, blockedBy, err := cfg.filter(set)
	if err != nil {
		return err
	}
	switch {
	case cfg.JSON:
		return writeJSON(cc.Out, headers(isss))
	case cfg.YAML:
		return writeYAML(cc.Out, headers(isss))
	}
	if len(isss) == 0 {
		note("No issues found")
		return nil
	}
	st := styleFor(cc.Out)
	now := time.Now()
	for _, iss := range isss {
		switch {
		case cfg.Blocked:
			writeBlockedLine(cc.Out, st, graph.BlockedIssue{Issue: iss, BlockedBy: blockedBy[iss.ID]})
		case cfg.Long:
			writeIssueLong(cc.Out, st, iss, now)
		default:
			writeIssueLine(cc.Out, st, iss)
		}
	}
	return nil
}

// filter applies the flags to set, returning the matches in id order and,
// with --blocked, what blocks each.
func (cfg *listConfig) filter(set issue.Set) ([]*issue.Issue, map[issue.ID][]issue.ID, error) {
	var where *eval.Filter
	if cfg.Where != "" {
		f, err := eval.Compile(cfg.Where)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		where = f
	}
	var epic *issue.Issue
	if cfg.Epic != "" {
		id, err := parseID(cfg.Epic)
		if err != nil {
			return nil, nil, err
		}
		epic = set[id]
		if epic == nil {
			epic = &issue.Issue{ID: id}
		}
	}
	var blockedBy map[issue.ID][]issue.ID
	if cfg.Blocked {
		blockedBy = map[issue.ID][]issue.ID{}
		for _, b := range graph.Blocked(set) {
			blockedBy[b.Issue.ID] = b.BlockedBy
		}
	}

	var res []*issue.Issue
	for _, iss := range set.Sorted() {
		switch {
		case cfg.Status != "" && iss.Status != cfg.Status,
			cfg.Type != "" && iss.Type != cfg.Type,
			cfg.Milestone != "" && !eq(iss.Milestone, cfg.Milestone),
			cfg.Assignee != "" && !eq(iss.Assignee, cfg.Assignee),
			cfg.Label != "" && !iss.HasLabel(cfg.Label),
			epic != nil && !inEpic(epic, iss):
			continue
		}
		if cfg.Blocked {
			if _, ok := blockedBy[iss.ID]; !ok {
				continue
			}
		}
		res = append(res, iss)
	}
	if where != nil {
		var err error
		if res, err = where.Select(res, set); err != nil {
			return nil, nil, err
		}
	}
	return res, blockedBy, nil
}

func eq(p *string, v string) bool {
	return p != nil && *p == v
}

// inEpic reports whether iss names epic as parent or epic lists iss as a
// child.
func inEpic(epic, iss *issue.Issue) bool {
	if iss.Parent != nil && *iss.Parent == epic.ID {
		return true
	}
	return slices.Contains(epic.EpicChildren, iss.ID)
}
