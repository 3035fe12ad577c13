package llmddir

import (
	"fmt"
	"strings"
)

// ImportedFile is an agent file copied into imported/.
type ImportedFile struct {
	Name        string // name under imported/
	Description string
}

// CatmeTemplate is the overview document written by init, with a
// navigation list of the imported files.
func CatmeTemplate(project string, imported []ImportedFile) string {
	if project == "" {
		project = "this project"
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "# %s\n\n", project)
	b.WriteString("> **Agent entry point.** Read this file first to orient yourself in the project.\n\n")

	b.WriteString("## Project Summary\n\n")
	b.WriteString("<!-- Describe what this project does and why it exists. One paragraph. -->\n\n")

	b.WriteString("## Technology Stack\n\n")
	b.WriteString("<!-- List the primary language, frameworks, and key dependencies. -->\n\n")

	b.WriteString("## Build & Test\n\n")
	b.WriteString("<!-- Exact commands to build, test, and lint the project. -->\n\n")
	b.WriteString("```sh\n# build\n# test\n# lint\n```\n\n")

	b.WriteString("## Navigation\n\n")
	b.WriteString("Topic documentation lives in `.llmd/`. Start here, then follow links.\n\n")
	if len(imported) != 0 {
		b.WriteString("### Imported Agent Config Files\n\n")
		b.WriteString("These files were discovered in your project and imported automatically:\n\n")
		for _, f := range imported {
			fmt.Fprintf(b, "- [imported/%s](imported/%s): %s\n", f.Name, f.Name, f.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Rules of Engagement\n\n")
	b.WriteString("<!-- List architectural constraints and \"don't touch\" zones for agents. -->\n\n")

	b.WriteString("## Context Map\n\n")
	b.WriteString("<!-- Map project modules to their documentation. Example:\n")
	b.WriteString("- `src/auth/` -> [auth-flow.md](auth-flow.md)\n")
	b.WriteString("- `src/api/` -> [api-standards.md](api-standards.md)\n")
	b.WriteString("-->\n")
	return b.String()
}
