package commands

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/graph"
)

type treeConfig struct {
	*cli.Command
	store *issueStore
}

// IssueTreeCommand returns the issue tree subcommand.
func IssueTreeCommand(store *issueStore) *cli.Command {
	cfg := &treeConfig{store: store}
	return cli.NewCommandAt(&cfg.Command, "tree").
		WithSynopsis("tree <id|slug> - Print an epic hierarchy").
		WithRun(cfg.run)
}

func (cfg *treeConfig) run(cc *cli.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: llmd issue tree <id|slug>", cli.ErrUsage)
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	root, err := s.Get(args[0])
	if err != nil {
		return err
	}
	set, err := s.LoadAll()
	if err != nil {
		return err
	}
	// the root parsed on its own, so keep it even if LoadAll chose another file
	set[root.ID] = root
	writeTree(cc.Out, styleFor(cc.Out), set, graph.EpicTree(set, root.ID))
	return nil
}
