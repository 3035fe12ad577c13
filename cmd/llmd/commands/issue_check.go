package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/graph"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/storage"
)

type checkConfig struct {
	*cli.Command
	store *issueStore
}

// IssueCheckCommand returns the issue check subcommand.
func IssueCheckCommand(store *issueStore) *cli.Command {
	cfg := &checkConfig{store: store}
	return cli.NewCommandAt(&cfg.Command, "check").
		WithSynopsis("check - Report unparsable files, duplicate ids, cycles and broken references").
		WithDescription("Exits non-zero when a problem is found.").
		WithRun(cfg.run)
}

func (cfg *checkConfig) run(cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd issue check", cli.ErrUsage)
	}
	s, err := cfg.store.get()
	if err != nil {
		return err
	}
	r, err := collectReport(s)
	if err != nil {
		return err
	}
	if r.write(cc.Out) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// report is what check found in a store.
type report struct {
	issues     int
	unparsable []storage.FileError
	duplicates map[issue.ID][]string
	cycle      []issue.ID
	dangling   []graph.Reference
	next, max  issue.ID
}

func collectReport(s *storage.Storage) (*report, error) {
	r := &report{}
	var err error
	if r.unparsable, err = s.Verify(); err != nil {
		return nil, err
	}
	if r.duplicates, err = s.Duplicates(); err != nil {
		return nil, err
	}
	set, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	r.issues = len(set)
	r.cycle = graph.FindCycle(set)
	r.dangling = graph.Dangling(set)
	if r.next, err = s.ReadCounter(); err != nil {
		return nil, err
	}
	for id := range set {
		r.max = max(r.max, id)
	}
	return r, nil
}

// write prints one line per problem and returns the number of problems.
func (r *report) write(w io.Writer) int {
	n := 0
	for _, fe := range r.unparsable {
		fmt.Fprintf(w, "unparsable: %v\n", fe.Err)
		n++
	}
	ids := make([]issue.ID, 0, len(r.duplicates))
	for id := range r.duplicates {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "duplicate id #%d: %s\n", id, strings.Join(r.duplicates[id], ", "))
		n++
	}
	if r.cycle != nil {
		parts := make([]string, len(r.cycle))
		for i, id := range r.cycle {
			parts[i] = fmt.Sprintf("#%d", id)
		}
		fmt.Fprintf(w, "cycle: %s\n", strings.Join(parts, " -> "))
		n++
	}
	for _, ref := range r.dangling {
		fmt.Fprintf(w, "dangling: #%d %s -> #%d\n", ref.From, ref.Field, ref.To)
		n++
	}
	if r.issues > 0 && r.next <= r.max {
		fmt.Fprintf(w, "counter: next_id %d is not above the highest id #%d\n", r.next, r.max)
		n++
	}
	if n == 0 {
		fmt.Fprintf(w, "ok: %d issue(s), no problems found\n", r.issues)
	}
	return n
}
