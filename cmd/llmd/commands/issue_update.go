package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/encode"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/libdiff"
	"github.com/simulacralabs/llmd/mergeop"
)

type updateConfig struct {
	*cli.Command
	store     *issueStore
	Status    string `cli:"name=status aliases=s desc='new status, e.g. open, in-progress or closed'"`
	Priority  string `cli:"name=priority aliases=p desc='new priority'"`
	Assignee  string `cli:"name=assignee aliases=a desc='new assignee'"`
	Milestone string `cli:"name=milestone aliases=m desc='new milestone'"`
	Points    string `cli:"name=points desc='new estimate in points'"`
	Due       string `cli:"name=due desc='new due date'"`
	AddDep    string `cli:"name=add-dep desc='comma separated ids to depend on'"`
	AddLabel  string `cli:"name=add-label desc='comma separated labels to add, each optionally name:color'"`
	Parent    string `cli:"name=parent desc='new parent epic id; the epic gains this issue as a child'"`
	Comment   string `cli:"name=comment aliases=c desc='append a comment'"`
	Author    string `cli:"name=author desc='comment author (default $LLMD_AUTHOR, then $USER)'"`
	Patch     string `cli:"name=patch desc='JSON merge patch or JSON patch to apply, or @file'"`
	DryRun    bool   `cli:"name=dry-run aliases=n desc='print a diff of the change instead of writing it'"`
}

// IssueUpdateCommand returns the issue update subcommand.
func IssueUpdateCommand(store *issueStore) *cli.Command {
	cfg := &updateConfig{store: store}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "update").
		WithSynopsis("update <id|slug> [flags] - Change an issue").
		WithDescription(`--patch is applied first, then the field flags, then --comment. A patch
sees the record as "llmd issue show --json" prints it:

  llmd issue update 3 --patch '{"milestone": "v2", "points": 5}'
  llmd issue update 3 --patch '[{"op": "add", "path": "/dependencies/-", "value": 7}]'`).
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *updateConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: llmd issue update <id|slug> [flags]", cli.ErrUsage)
	}
	if cfg.empty() {
		return fmt.Errorf("%w: nothing to update", cli.ErrUsage)
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	if cfg.DryRun {
		iss, err := s.Get(args[0])
		if err != nil {
			return err
		}
		before := string(encode.MarshalIssue(iss))
		if err := cfg.apply(iss); err != nil {
			return err
		}
		iss.Touch()
		lines := libdiff.Lines(before, string(encode.MarshalIssue(iss)))
		return libdiff.Write(cc.Out, lines, styleFor(cc.Out).on)
	}
	var oldParent *issue.ID
	iss, err := s.Update(args[0], func(iss *issue.Issue) error {
		if iss.Parent != nil {
			p := *iss.Parent
			oldParent = &p
		}
		return cfg.apply(iss)
	})
	if err != nil {
		return err
	}
	if iss.Parent != nil && (oldParent == nil || *oldParent != *iss.Parent) {
		if err := linkChild(s, *iss.Parent, iss.ID); err != nil {
			return err
		}
	}
	note("Updated issue #%d", iss.ID)
	return nil
}

func (cfg *updateConfig) empty() bool {
	for _, v := range []string{cfg.Status, cfg.Priority, cfg.Assignee, cfg.Milestone, cfg.Points,
		cfg.Due, cfg.AddDep, cfg.AddLabel, cfg.Parent, cfg.Comment, cfg.Patch} {
		if v != "" {
			return false
		}
	}
	return true
}

// apply makes the requested changes to iss in place.
func (cfg *updateConfig) apply(iss *issue.Issue) error {
	if cfg.Patch != "" {
		d, err := patchData(cfg.Patch)
		if err != nil {
			return err
		}
		patched, err := mergeop.Apply(iss, d)
		if err != nil {
			return err
		}
		*iss = *patched
	}
	if cfg.Status != "" {
		iss.Status = cfg.Status
	}
	if cfg.Priority != "" {
		iss.Priority = cfg.Priority
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
	if cfg.Points != "" {
		pts, err := parsePoints(cfg.Points)
		if err != nil {
			return err
		}
		iss.Points = pts
	}
	if cfg.Parent != "" {
		id, err := parseID(cfg.Parent)
		if err != nil {
			return err
		}
		iss.Parent = &id
	}
	deps, err := parseIDs(cfg.AddDep)
	if err != nil {
		return err
	}
	for _, d := range deps {
		iss.AddDependency(d)
	}
	for _, l := range parseLabels(cfg.AddLabel) {
		iss.AddLabel(l)
	}
	if cfg.Comment != "" {
		iss.Body = encode.AppendComment(iss.Body, issue.Comment{
			Author: author(cfg.Author),
			Date:   issue.Now(),
			Body:   cfg.Comment,
		})
	}
	return nil
}

// patchData reads "@file" arguments; anything else is the patch itself.
func patchData(v string) ([]byte, error) {
	name, ok := strings.CutPrefix(v, "@")
	if !ok {
		return []byte(v), nil
	}
	d, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("cannot read patch: %w", err)
	}
	return d, nil
}
