package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/compose"
	"github.com/simulacralabs/llmd/debug"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/llmddir"
	"github.com/simulacralabs/llmd/parse"
	"github.com/simulacralabs/llmd/storage"
)

type composeConfig struct {
	*cli.Command
	Include     string `cli:"name=include aliases=I desc='topic files to include whole, comma separated, without .md'"`
	From        string `cli:"name=from aliases=f desc='read the task description from this file'"`
	Output      string `cli:"name=output aliases=o desc='write the document to this file instead of stdout'"`
	Sections    string `cli:"name=sections desc='section numbers from llmd index, comma separated'"`
	Interactive bool   `cli:"name=interactive aliases=i desc='print the section index and read section numbers from stdin'"`
	Issue       string `cli:"name=issue desc='compose for this issue id or slug; its labels select topics from topics.yaml'"`
}

// ComposeCommand returns the compose command.
func ComposeCommand() *cli.Command {
	cfg := &composeConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "compose").
		WithSynopsis("compose [task] [flags] - Compose a task-context document").
		WithDescription(`By default the task description is keyword-matched against the H2/H3
headings of every topic file. --sections and --interactive pick sections
by their number in "llmd index" instead. Pass "-" as the task to read it
from stdin.`).
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *composeConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: usage: llmd compose [task]", cli.ErrUsage)
	}
	if cfg.Interactive && cfg.Sections != "" {
		return fmt.Errorf("%w: --interactive and --sections are exclusive", cli.ErrUsage)
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	fsys := os.DirFS(llmd)
	catme, err := os.ReadFile(llmddir.CatmePath(llmd))
	if err != nil {
		return fmt.Errorf("cannot read catme.md, run `llmd init` first: %w", err)
	}
	index, err := sectionIndex(llmd)
	if err != nil {
		return err
	}

	task, err := cfg.task(cc, args)
	if err != nil {
		return err
	}
	topics := splitList(cfg.Include)
	if cfg.Issue != "" {
		s, err := storage.Open(llmddir.IssuesPath(llmd), newLogger())
		if err != nil {
			return err
		}
		iss, err := s.Get(cfg.Issue)
		if err != nil {
			return err
		}
		m, err := compose.LoadTopicMap(fsys, llmddir.Topics)
		if err != nil {
			return err
		}
		topics = compose.MergeTopics(topics, compose.TopicsForLabels(iss.LabelNames(), m)...)
		if task == "" {
			task = issueTask(iss)
		}
	}

	var sections []compose.Entry
	switch {
	case cfg.Sections != "":
		sections, err = selectSections(index, cfg.Sections)
	case cfg.Interactive:
		sections, err = cfg.interactive(cc, index)
	default:
		kws := compose.Keywords(task)
		if debug.Compose() {
			debug.Logf("compose: keywords %v\n", kws)
		}
		sections = compose.MatchKeywords(index, kws)
	}
	if err != nil {
		return err
	}
	if debug.Compose() {
		debug.Logf("compose: %d section(s), topics %v\n", len(sections), topics)
	}

	doc, err := compose.Assemble(fsys, &compose.Document{
		Task:     task,
		Overview: compose.OverviewExcerpt(string(catme)),
		Topics:   topics,
		Sections: sections,
	})
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err = io.WriteString(cc.Out, doc)
		return err
	}
	if err := os.WriteFile(cfg.Output, []byte(doc), 0644); err != nil {
		return fmt.Errorf("cannot write to %s: %w", cfg.Output, err)
	}
	note("Wrote context document to %s", cfg.Output)
	return nil
}

func (cfg *composeConfig) task(cc *cli.Context, args []string) (string, error) {
	if cfg.From != "" {
		d, err := os.ReadFile(cfg.From)
		if err != nil {
			return "", fmt.Errorf("cannot read task file %s: %w", cfg.From, err)
		}
		return string(d), nil
	}
	if len(args) == 0 {
		return "", nil
	}
	if args[0] != "-" {
		return args[0], nil
	}
	if cfg.Interactive {
		return "", fmt.Errorf("%w: stdin carries section numbers with --interactive, use --from for the task", cli.ErrUsage)
	}
	d, err := io.ReadAll(cc.In)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func (cfg *composeConfig) interactive(cc *cli.Context, index []compose.Entry) ([]compose.Entry, error) {
	if len(index) == 0 {
		note("No sections found in .llmd/. Add topic files first.")
		return nil, nil
	}
	fmt.Fprintln(cc.Out, "Available sections, enter numbers to include (comma or newline separated, blank line to finish):")
	fmt.Fprintln(cc.Out)
	if err := compose.WriteIndex(cc.Out, index); err != nil {
		return nil, err
	}
	fmt.Fprintln(cc.Out)
	var lines []string
	sc := bufio.NewScanner(cc.In)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			break
		}
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return selectSections(index, strings.Join(lines, "\n"))
}

func selectSections(index []compose.Entry, text string) ([]compose.Entry, error) {
	pos, err := compose.ParsePositions(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return compose.SelectPositions(index, pos)
}

// issueTask describes iss as a task: its title, then its body without the
// comments block.
func issueTask(iss *issue.Issue) string {
	body, _, _ := strings.Cut(iss.Body, parse.CommentsHeading)
	body = strings.TrimSpace(body)
	task := fmt.Sprintf("#%d %s", iss.ID, iss.Title)
	if body != "" {
		task += "\n\n" + body
	}
	return task + "\n"
}
