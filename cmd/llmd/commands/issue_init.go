package commands

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/llmddir"
	"github.com/simulacralabs/llmd/storage"
)

type issueInitConfig struct {
	*cli.Command
}

// IssueInitCommand returns the issue init subcommand.
func IssueInitCommand() *cli.Command {
	cfg := &issueInitConfig{}
	return cli.NewCommandAt(&cfg.Command, "init").
		WithSynopsis("init - Create .llmd/issues/ and config.json").
		WithRun(cfg.run)
}

func (cfg *issueInitConfig) run(cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd issue init", cli.ErrUsage)
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	dir := llmddir.IssuesPath(llmd)
	if _, err := os.Stat(dir); err == nil {
		s, err := storage.Open(dir, newLogger())
		if err != nil {
			return err
		}
		next, err := s.ReadCounter()
		if err != nil {
			return err
		}
		note(".llmd/issues/ already exists (next_id: %d).", next)
		return nil
	}
	if _, err := storage.Init(dir, newLogger()); err != nil {
		return fmt.Errorf("failed to create .llmd/issues/: %w", err)
	}
	note("Initialised .llmd/issues/ at %s", dir)
	return nil
}
