package commands

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/storage"
)

const issueUsageText = `llmd issue - markdown issue tracker kept in .llmd/issues/

Usage:
  llmd issue init                        Create .llmd/issues/ and its counter
  llmd issue new <title> [flags]         Create an issue
  llmd issue list [filters]              List issues
  llmd issue show <id|slug> [--json]     Show one issue
  llmd issue update <id|slug> [flags]    Change fields, add a comment or patch
  llmd issue ready [filters]             Open issues with no open dependencies
  llmd issue tree <id|slug>              Print an epic hierarchy
  llmd issue mentions [handle]           Comments mentioning @handle
  llmd issue check                       Report cycles and broken references

Examples:
  llmd issue new "Login page" --type task --priority high --labels ui,auth:blue --dep 3
  llmd issue list --status open --where 'haslabel("ui") && points >= 3'
  llmd issue update 4 --status closed --comment "done in #12"
  llmd issue update 4 --patch '{"milestone": "v2"}' --dry-run
  llmd issue ready --json`

// IssueCommand returns the issue command group.
func IssueCommand() *cli.Command {
	store := &issueStore{}
	return cli.NewCommand("issue").
		WithSynopsis("issue <command> - Issue tracker").
		WithDescription(issueUsageText).
		WithSubs(
			IssueInitCommand(),
			IssueNewCommand(store),
			IssueListCommand(store),
			IssueShowCommand(store),
			IssueUpdateCommand(store),
			IssueReadyCommand(store),
			IssueTreeCommand(store),
			IssueMentionsCommand(store),
			IssueCheckCommand(store),
		)
}

// issueStore opens the store of the enclosing knowledge base on first use.
type issueStore struct {
	once sync.Once
	s    *storage.Storage
	err  error
}

func (is *issueStore) get() (*storage.Storage, error) {
	is.once.Do(func() {
		is.s, is.err = openStore()
	})
	return is.s, is.err
}

func parseID(v string) (issue.ID, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(v), "#"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid issue id %q", cli.ErrUsage, v)
	}
	return issue.ID(n), nil
}

func parseIDs(v string) ([]issue.ID, error) {
	var res []issue.ID
	for _, p := range splitList(v) {
		id, err := parseID(p)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

// parseLabels reads "name[:color],..." label lists.
func parseLabels(v string) []issue.Label {
	var res []issue.Label
	for _, p := range splitList(v) {
		name, color, ok := strings.Cut(p, ":")
		l := issue.Label{Name: strings.TrimSpace(name)}
		if ok {
			l.Color = issue.Ptr(strings.TrimSpace(color))
		}
		res = append(res, l)
	}
	return res
}

func parsePoints(v string) (*int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid points %q", cli.ErrUsage, v)
	}
	return &n, nil
}

// linkChild records child in the epic's epic_children. A missing epic is
// reported but not an error.
func linkChild(s *storage.Storage, epic, child issue.ID) error {
	p, err := s.Get(strconv.Itoa(int(epic)))
	if err != nil {
		note("warning: parent #%d: %v", epic, err)
		return nil
	}
	if !p.AddChild(child) {
		return nil
	}
	p.Touch()
	return s.Write(p)
}
