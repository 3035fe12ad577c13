package commands

import (
	"fmt"
	"io"
	"regexp"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/parse"
)

type mentionsConfig struct {
	*cli.Command
	store *issueStore
}

// IssueMentionsCommand returns the issue mentions subcommand.
func IssueMentionsCommand(store *issueStore) *cli.Command {
	cfg := &mentionsConfig{store: store}
	return cli.NewCommandAt(&cfg.Command, "mentions").
		WithSynopsis("mentions [handle] - Comments mentioning @handle, or any @mention").
		WithRun(cfg.run)
}

func (cfg *mentionsConfig) run(cc *cli.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: usage: llmd issue mentions [handle]", cli.ErrUsage)
	}
	handle := ""
	if len(args) == 1 {
		handle = args[0]
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	set, err := s.LoadAll()
	if err != nil {
		return err
	}
	writeMentions(cc.Out, styleFor(cc.Out), set, mentionPattern(handle))
	return nil
}

// mentionPattern matches "@handle", or any "@word" when handle is empty.
func mentionPattern(handle string) *regexp.Regexp {
	if handle == "" {
		return regexp.MustCompile(`@\w+`)
	}
	return regexp.MustCompile(`@` + regexp.QuoteMeta(handle) + `\b`)
}

// writeMentions prints every comment whose body matches re, issues in id
// order and comments in file order.
func writeMentions(w io.Writer, st style, set issue.Set, re *regexp.Regexp) int {
	n := 0
	for _, iss := range set.Sorted() {
		for _, c := range parse.Comments(iss.Body) {
			if !re.MatchString(c.Body) {
				continue
			}
			fmt.Fprintf(w, "%s %s · %s (%s): %s\n", st.id(iss.ID), iss.Slug, c.Author, c.Date, c.Body)
			n++
		}
	}
	return n
}
