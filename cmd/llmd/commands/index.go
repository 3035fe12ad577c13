package commands

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/compose"
	"github.com/simulacralabs/llmd/llmddir"
)

type indexConfig struct {
	*cli.Command
}

// IndexCommand returns the index command.
func IndexCommand() *cli.Command {
	cfg := &indexConfig{}
	return cli.NewCommandAt(&cfg.Command, "index").
		WithSynopsis("index - Print the numbered section index for compose --sections").
		WithRun(cfg.run)
}

func (cfg *indexConfig) run(cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd index", cli.ErrUsage)
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	index, err := sectionIndex(llmd)
	if err != nil {
		return err
	}
	if len(index) == 0 {
		note("No sections found in .llmd/. Add topic files first.")
		return nil
	}
	return compose.WriteIndex(cc.Out, index)
}

func sectionIndex(llmd string) ([]compose.Entry, error) {
	files, err := llmddir.TopicFiles(llmd)
	if err != nil {
		return nil, err
	}
	return compose.BuildIndex(os.DirFS(llmd), files), nil
}
