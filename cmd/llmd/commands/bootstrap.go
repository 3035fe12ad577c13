package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/llmddir"
)

type bootstrapConfig struct {
	*cli.Command
	ShowExisting bool `cli:"name=show-existing desc='include the current catme.md so a partial bootstrap can continue'"`
}

// BootstrapCommand returns the bootstrap command.
func BootstrapCommand() *cli.Command {
	cfg := &bootstrapConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "bootstrap").
		WithSynopsis("bootstrap [--show-existing] - Print a prompt that populates .llmd/").
		WithDescription("The prompt is meant to be piped to an agent:\n\n  llmd bootstrap | claude\n  llmd bootstrap > prompt.md").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *bootstrapConfig) run(cc *cli.Context, args []string) error {
	_, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	root := filepath.Dir(llmd)
	existing := ""
	if cfg.ShowExisting {
		d, err := os.ReadFile(llmddir.CatmePath(llmd))
		switch {
		case err == nil:
			existing = string(d)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("cannot read existing catme.md: %w", err)
		}
	}
	_, err = fmt.Fprint(cc.Out, bootstrapPrompt(filepath.Base(root), llmddir.Dir, existing))
	return err
}

// bootstrapPrompt renders the population prompt. dir is the knowledge base
// directory relative to the project root.
func bootstrapPrompt(project, dir, existing string) string {
	if project == "" || project == "." || project == string(filepath.Separator) {
		project = "this project"
	}
	current := ""
	if existing != "" {
		current = "\n## Current catme.md\n\n" +
			"This is the current state of catme.md. Fill in every placeholder and " +
			"correct anything that is wrong or missing.\n\n" +
			"```markdown\n" + strings.TrimRight(existing, "\n") + "\n```\n"
	}
	r := strings.NewReplacer("{dir}", dir, "{project}", project, "{current}", current, "'''", "```")
	return r.Replace(promptTemplate)
}

const promptTemplate = `# Bootstrap task: write {dir}/ documentation for ` + "`{project}`" + `

You are about to populate the ` + "`{dir}/`" + ` directory for this project. It is a
persistent, machine-readable knowledge base that agents read through the
` + "`llmd`" + ` CLI instead of re-scanning the codebase every session.

Analyse the codebase thoroughly, then write every file described below. Do not
summarise or skip sections: agents will plan and implement tasks from this
content alone.

---

## What you must do

1. **Read the entire codebase.** Start with the README and the build manifest
   (go.mod, Cargo.toml, package.json, pyproject.toml or equivalent), then read
   the source. Understand the architecture and conventions before writing.

2. **Write ` + "`{dir}/catme.md`" + `**, the entry point every agent reads first.

3. **Write one topic file per major concern**, for example
   ` + "`{dir}/architecture.md`" + ` or ` + "`{dir}/data-models.md`" + `. Each file covers exactly
   one concern.

4. **Leave no placeholder comments.** Every section must hold real, specific
   information about this codebase. Vague content misleads agents.

---

## File specifications

### ` + "`{dir}/catme.md`" + ` (required)

'''
# <project name>

> **Agent entry point.** Read this file first to orient yourself in the project.

## Project Summary

One paragraph: what the project does and which problem it solves.

## Technology Stack

Every significant language, framework and library, with versions where
relevant. Include the build system and package manager.

## Build & Test

Exact shell commands an agent can copy and paste.

## Navigation

One line per topic file in {dir}/:

- [<file>.md](<file>.md): <what it covers>

## Rules of Engagement

Imperative rules for agents working in this codebase, such as generated
directories never to edit or error handling conventions to follow.

## Context Map

Source directories and key files mapped to the topic doc that covers them.
'''

### Topic files

Each topic file uses this structure:

'''
# <Topic>

## <Section>

<Specific, factual content about this codebase.>
'''

Always write **architecture.md** (entry points, major modules, data flow) and
**conventions.md** (naming, file layout, error handling, testing, configuration).
Add files such as api.md, data-models.md, auth.md, database.md, cli.md,
configuration.md, deployment.md, integrations.md, domain.md or testing.md
when the project has that concern.

---

## Content standards

- Name actual files, functions, types and modules, not just concepts.
- Quote exact error messages, configuration keys and CLI flags.
- Omit a section rather than leave it empty.
- Use imperative language: "Add new routes to router.go".
- Keep each H2 section self-contained; agents extract sections one at a time.
{current}
---

Begin by reading the codebase, then write each file described above. Output
each file as a complete markdown code block labelled with its path, e.g.:

'''markdown:{dir}/catme.md
# project-name
...
'''

Write all files before stopping. Do not ask for clarification.
`
