package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/graph"
	"github.com/simulacralabs/llmd/issue"
)

type readyConfig struct {
	*cli.Command
	store     *issueStore
	Type      string `cli:"name=type aliases=t desc='only issues of this type'"`
	Milestone string `cli:"name=milestone aliases=m desc='only issues in this milestone'"`
	Assignee  string `cli:"name=assignee aliases=a desc='only issues assigned to this handle'"`
	JSON      bool   `cli:"name=json desc='print JSON'"`
}

// IssueReadyCommand returns the issue ready subcommand.
func IssueReadyCommand(store *issueStore) *cli.Command {
	cfg := &readyConfig{store: store}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "ready").
		WithSynopsis("ready [filters] [--json] - Open issues whose dependencies are all closed").
		WithDescription("Epics are left out. Issues are ordered by priority, then id.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *readyConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd issue ready [filters]", cli.ErrUsage)
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	set, err := s.LoadAll()
	if err != nil {
		return err
	}
	ready := cfg.filter(graph.ReadyTasks(set, true))
	if cfg.JSON {
		return writeJSON(cc.Out, headers(ready))
	}
	st := styleFor(cc.Out)
	for _, iss := range ready {
		writeReadyLine(cc.Out, st, iss)
	}
	return nil
}

func (cfg *readyConfig) filter(isss []*issue.Issue) []*issue.Issue {
	res := isss[:0:0]
	for _, iss := range isss {
		switch {
		case cfg.Type != "" && iss.Type != cfg.Type,
			cfg.Milestone != "" && !eq(iss.Milestone, cfg.Milestone),
			cfg.Assignee != "" && !eq(iss.Assignee, cfg.Assignee):
			continue
		}
		res = append(res, iss)
	}
	return res
}
