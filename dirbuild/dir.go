// Package dirbuild turns a .llmd directory into an mdbook project and runs
// mdbook on it.
package dirbuild

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simulacralabs/llmd/issue"
	"github.com/simulacralabs/llmd/llmddir"
	"github.com/simulacralabs/llmd/storage"
)

// Book is a generated mdbook project.
type Book struct {
	Root  string // the project directory holding book.toml
	Src   string
	Title string
}

// Generate writes the mdbook project for llmd into llmd/.mdbook: every
// markdown file under llmd (generated output excluded), a SUMMARY.md with
// one chapter group per directory, a roadmap page when there are issues,
// and book.toml.
func Generate(llmd string, logger *slog.Logger) (*Book, error) {
	if logger == nil {
		logger = slog.Default()
	}
	book := &Book{
		Root:  filepath.Join(llmd, llmddir.BookSrc),
		Title: projectName(llmd) + " - llmd",
	}
	book.Src = filepath.Join(book.Root, "src")
	if err := os.MkdirAll(book.Src, 0755); err != nil {
		return nil, err
	}
	files, err := llmddir.ListAllFiles(llmd)
	if err != nil {
		return nil, err
	}

	summary := &strings.Builder{}
	summary.WriteString("# Summary\n\n")
	byDir := map[string][]string{}
	for _, f := range files {
		top, _, _ := strings.Cut(f, "/")
		if top == llmddir.BookSrc || top == llmddir.BookOut {
			continue
		}
		if f == llmddir.Catme {
			if err := CopyFile(filepath.Join(llmd, f), filepath.Join(book.Src, f)); err != nil {
				return nil, err
			}
			summary.WriteString("- [Overview](catme.md)\n")
			continue
		}
		dir := pathDir(f)
		byDir[dir] = append(byDir[dir], f)
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	for _, dir := range dirs {
		if dir != "" {
			fmt.Fprintf(summary, "\n## %s\n\n", dir)
		}
		if dir == llmddir.Issues {
			if err := book.writeRoadmap(llmd, logger); err != nil {
				return nil, err
			}
			summary.WriteString("- [Roadmap](issues/roadmap.md)\n")
		}
		for _, f := range byDir[dir] {
			if err := CopyFile(filepath.Join(llmd, filepath.FromSlash(f)), filepath.Join(book.Src, filepath.FromSlash(f))); err != nil {
				return nil, err
			}
			title := strings.TrimSuffix(filepath.Base(f), ".md")
			if dir == llmddir.Issues && title == "roadmap" {
				continue
			}
			fmt.Fprintf(summary, "- [%s](%s)\n", title, f)
		}
	}
	if err := os.WriteFile(filepath.Join(book.Src, "SUMMARY.md"), []byte(summary.String()), 0644); err != nil {
		return nil, err
	}
	toml := fmt.Sprintf("[book]\ntitle = %q\nsrc = \"src\"\n\n[output.html]\nno-section-label = true\n", book.Title)
	if err := os.WriteFile(filepath.Join(book.Root, "book.toml"), []byte(toml), 0644); err != nil {
		return nil, err
	}
	logger.Debug("generated mdbook project", "root", book.Root, "files", len(files))
	return book, nil
}

func (b *Book) writeRoadmap(llmd string, logger *slog.Logger) error {
	set := issue.Set{}
	if st, err := storage.Open(llmddir.IssuesPath(llmd), logger); err == nil {
		if set, err = st.LoadAll(); err != nil {
			return err
		}
	}
	dir := filepath.Join(b.Src, llmddir.Issues)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	page := Roadmap(set, issue.Now())
	return os.WriteFile(filepath.Join(dir, "roadmap.md"), []byte(page), 0644)
}

func projectName(llmd string) string {
	abs, err := filepath.Abs(llmd)
	if err != nil {
		return "project"
	}
	name := filepath.Base(filepath.Dir(abs))
	if name == "." || name == string(filepath.Separator) {
		return "project"
	}
	return name
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}

// CopyFile copies src to dst, creating dst's directory.
func CopyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CopyDir copies the tree at src into dst, creating directories as needed.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return CopyFile(p, target)
	})
}
