package commands

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/issue"
)

type newConfig struct {
	*cli.Command
	store     *issueStore
	Type      string `cli:"name=type aliases=t desc='issue type, e.g. task, epic or bug (default task)'"`
	Priority  string `cli:"name=priority aliases=p desc='high, medium or low (default medium)'"`
	Labels    string `cli:"name=labels aliases=l desc='comma separated labels, each optionally name:color'"`
	Assignee  string `cli:"name=assignee aliases=a desc='assignee handle'"`
	Parent    string `cli:"name=parent desc='parent epic id; the epic gains this issue as a child'"`
	Milestone string `cli:"name=milestone aliases=m desc='milestone name'"`
	Points    string `cli:"name=points desc='estimate in points'"`
	Due       string `cli:"name=due desc='due date, e.g. 2026-05-01'"`
	Dep       string `cli:"name=dep desc='comma separated ids this issue depends on'"`
}

// IssueNewCommand returns the issue new subcommand.
func IssueNewCommand(store *issueStore) *cli.Command {
	cfg := &newConfig{store: store}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "new").
		WithSynopsis("new <title> [flags] - Create an issue").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *newConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("%w: usage: llmd issue new <title>", cli.ErrUsage)
	}
	iss, err := cfg.build(title)
	if err != nil {
		return err
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	if err := s.Create(iss); err != nil {
		return err
	}
	if iss.Parent != nil {
		if err := linkChild(s, *iss.Parent, iss.ID); err != nil {
			return err
		}
	}
	note("Created issue #%d (%s)", iss.ID, iss.Slug)
	return nil
}

// build makes the record from the flags. The id is left for the store.
func (cfg *newConfig) build(title string) (*issue.Issue, error) {
	iss := issue.New(0, title)
	if cfg.Type != "" {
		iss.Type = cfg.Type
	}
	if cfg.Priority != "" {
		iss.Priority = cfg.Priority
	}
	for _, l := range parseLabels(cfg.Labels) {
		iss.AddLabel(l)
	}
	if cfg.Assignee != "" {
		iss.Assignee = issue.Ptr(cfg.Assignee)
	}
	if cfg.Milestone != "" {
		iss.Milestone = issue.Ptr(cfg.Milestone)
	}
	if cfg.Due != "" {
		iss.Due = issue.Ptr(cfg.Due)
	}
	if cfg.Parent != "" {
		id, err := parseID(cfg.Parent)
		if err != nil {
			return nil, err
		}
		iss.Parent = &id
	}
	if cfg.Points != "" {
		pts, err := parsePoints(cfg.Points)
		if err != nil {
			return nil, err
		}
		iss.Points = pts
	}
	deps, err := parseIDs(cfg.Dep)
	if err != nil {
		return nil, err
	}
	for _, d := range deps {
		iss.AddDependency(d)
	}
	return iss, nil
}
