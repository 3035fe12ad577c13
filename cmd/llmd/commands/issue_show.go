package commands

import (
	"fmt"
	"time"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/encode"
)

type showConfig struct {
	*cli.Command
	store *issueStore
	JSON  bool `cli:"name=json desc='print JSON'"`
}

// IssueShowCommand returns the issue show subcommand.
func IssueShowCommand(store *issueStore) *cli.Command {
	cfg := &showConfig{store: store}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "show").
		WithSynopsis("show <id|slug> [--json] - Show one issue").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *showConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: llmd issue show <id|slug>", cli.ErrUsage)
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	iss, err := s.Get(args[0])
	if err != nil {
		return err
	}
	if cfg.JSON {
		return writeJSON(cc.Out, iss)
	}
	st := styleFor(cc.Out)
	if err := encode.Encode(iss, cc.Out, st.encodeOpts()...); err != nil {
		return err
	}
	if st.on {
		now := time.Now()
		fmt.Fprintln(cc.Out, st.faint(fmt.Sprintf("(created %s, updated %s)",
			relTime(iss.CreatedAt, now), relTime(iss.UpdatedAt, now))))
	}
	return nil
}
