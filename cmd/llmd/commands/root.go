package commands

import (
	"github.com/scott-cotton/cli"
)

const usageText = `llmd - context management for agentic development

llmd manages a .llmd/ directory, a persistent machine-readable knowledge base
that agents read, search and compose into task-specific context documents.

Usage:
  llmd init [--update] [root]            Create .llmd/ and import agent files
  llmd bootstrap [--show-existing]       Print a prompt that populates .llmd/
  llmd read <file> [flags]               Read a file or section from .llmd/
  llmd index                             Print the numbered section index
  llmd compose [task] [flags]            Compose a task-context document
  llmd search <pattern> [flags]          Search all .llmd/ files
  llmd build [--output dir]              Build a static mdbook site
  llmd serve [--port n] [--no-open]      Serve .llmd/ as an mdbook
  llmd issue <command>                   Issue tracker

Examples:
  llmd init
  llmd bootstrap | claude
  llmd read catme
  llmd read api --section Authentication --tokens
  llmd compose "fix token refresh in the auth flow" --include conventions
  llmd index && echo 2,5 | llmd compose --interactive
  llmd issue new "Add rate limiting" --type task --labels api,perf:red
  llmd issue ready`

// Root returns the root command for llmd.
func Root() *cli.Command {
	return cli.NewCommand("llmd").
		WithSynopsis("llmd - context management for agentic development").
		WithDescription(usageText).
		WithSubs(
			InitCommand(),
			BootstrapCommand(),
			ReadCommand(),
			IndexCommand(),
			ComposeCommand(),
			SearchCommand(),
			BuildCommand(),
			ServeCommand(),
			IssueCommand(),
		)
}
