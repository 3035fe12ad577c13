package commands

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/llmddir"
)

type searchConfig struct {
	*cli.Command
	Context int    `cli:"name=context aliases=c desc='context lines before and after each match (default 2)'"`
	Dir     string `cli:"name=dir aliases=d desc='search only this subdirectory of .llmd/, e.g. imported'"`
}

// SearchCommand returns the search command.
func SearchCommand() *cli.Command {
	cfg := &searchConfig{Context: 2}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "search").
		WithSynopsis("search <pattern> [--context n] [--dir sub] - Search all .llmd/ files").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *searchConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: llmd search <pattern>", cli.ErrUsage)
	}
	if cfg.Context < 0 {
		return fmt.Errorf("%w: --context must not be negative", cli.ErrUsage)
	}
	re, err := regexp.Compile(args[0])
	if err != nil {
		return fmt.Errorf("invalid search pattern %q: %w", args[0], err)
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	root := llmd
	if cfg.Dir != "" {
		root = filepath.Join(llmd, filepath.FromSlash(cfg.Dir))
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return fmt.Errorf("search directory does not exist: %s", root)
	}
	files, err := llmddir.ListAllFiles(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		note("No .md files found in %s", root)
		return nil
	}
	total := 0
	for _, f := range files {
		d, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(f)))
		if err != nil {
			continue
		}
		name := f
		if cfg.Dir != "" {
			name = path.Join(filepath.ToSlash(cfg.Dir), f)
		}
		total += writeMatches(cc.Out, name, string(d), re, cfg.Context)
	}
	if total == 0 {
		note("No matches found for %q", args[0])
	} else {
		note("\n%d match(es) found.", total)
	}
	return nil
}
