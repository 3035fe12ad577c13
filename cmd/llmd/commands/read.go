package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/llmddir"
	"github.com/simulacralabs/llmd/markdown"
)

type readConfig struct {
	*cli.Command
	Section string `cli:"name=section aliases=s desc='only the section under this heading (case-insensitive substring)'"`
	Grep    string `cli:"name=grep aliases=g desc='only lines matching this regex, with 2 lines of context'"`
	Lines   string `cli:"name=lines aliases=l desc='only lines START:END (1-indexed, inclusive)'"`
	Tokens  bool   `cli:"name=tokens aliases=T desc='print an estimated token count to stderr first'"`
}

// ReadCommand returns the read command.
func ReadCommand() *cli.Command {
	cfg := &readConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "read").
		WithSynopsis("read <file> [--section s] [--lines a:b] [--grep re] [--tokens] - Read from .llmd/").
		WithDescription(`<file> is resolved inside .llmd/, then with ".md" appended, then under
imported/. "catme" names catme.md.`).
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *readConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: llmd read <file>", cli.ErrUsage)
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	p, err := resolveDoc(llmd, args[0])
	if err != nil {
		return err
	}
	d, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", p, err)
	}
	out := string(d)
	if cfg.Section != "" {
		sec, ok := markdown.ExtractSection(out, cfg.Section)
		if !ok {
			return fmt.Errorf("section %q not found in %s", cfg.Section, p)
		}
		out = sec
	}
	if cfg.Lines != "" {
		start, end, err := markdown.ParseLineRange(cfg.Lines)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		out = markdown.Window(out, start, end)
	}
	if cfg.Grep != "" {
		re, err := regexp.Compile(cfg.Grep)
		if err != nil {
			return fmt.Errorf("invalid regex pattern %q: %w", cfg.Grep, err)
		}
		out = grepLines(out, re)
	}
	if cfg.Tokens {
		note("~%d tokens", markdown.EstimateTokens(out))
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = fmt.Fprint(cc.Out, out)
	return err
}

// resolveDoc maps a user supplied name to a file inside llmd.
func resolveDoc(llmd, name string) (string, error) {
	if name == "catme" {
		name = llmddir.Catme
	}
	name = filepath.FromSlash(name)
	for _, p := range []string{
		filepath.Join(llmd, name),
		filepath.Join(llmd, name+".md"),
		filepath.Join(llmddir.ImportedPath(llmd), name),
	} {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("file %q not found in .llmd/. Run `llmd search %s` to find it, or `llmd read catme` to browse available docs", name, name)
}
