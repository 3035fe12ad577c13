package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/dirbuild"
	"github.com/simulacralabs/llmd/discovery"
	"github.com/simulacralabs/llmd/llmddir"
)

type initConfig struct {
	*cli.Command
	Update bool `cli:"name=update aliases=u desc='re-scan and regenerate catme.md without wiping existing files'"`
}

// InitCommand returns the init command.
func InitCommand() *cli.Command {
	cfg := &initConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "init").
		WithSynopsis("init [--update] [root] - Create .llmd/ and import agent files").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *initConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	root := "."
	switch len(args) {
	case 0:
	case 1:
		root = args[0]
	default:
		return fmt.Errorf("%w: usage: llmd init [--update] [root]", cli.ErrUsage)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid project root: %w", err)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return fmt.Errorf("invalid project root %s", root)
	}

	llmd := filepath.Join(root, llmddir.Dir)
	if _, err := os.Stat(llmd); err == nil && !cfg.Update {
		return fmt.Errorf(".llmd/ already exists. Use --update to refresh it without losing existing files")
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	imported := llmddir.ImportedPath(llmd)
	if err := os.MkdirAll(imported, 0755); err != nil {
		return fmt.Errorf("failed to create .llmd/imported/: %w", err)
	}

	found := discovery.Discover(root)
	names := make([]llmddir.ImportedFile, 0, len(found))
	for _, f := range found {
		name := discovery.FlattenName(f.Path, root)
		if err := dirbuild.CopyFile(f.Path, filepath.Join(imported, name)); err != nil {
			return fmt.Errorf("failed to import %s: %w", f.Path, err)
		}
		rel, _ := filepath.Rel(root, f.Path)
		fmt.Fprintf(cc.Out, "  imported: %s\n", filepath.ToSlash(rel))
		names = append(names, llmddir.ImportedFile{Name: name, Description: f.Format})
	}
	if len(found) == 0 {
		fmt.Fprintln(cc.Out, "  No known agent files found, creating a blank catme.md.")
	}

	catme := llmddir.CatmeTemplate(filepath.Base(root), names)
	if err := os.WriteFile(llmddir.CatmePath(llmd), []byte(catme), 0644); err != nil {
		return fmt.Errorf("failed to write catme.md: %w", err)
	}
	fmt.Fprintf(cc.Out, "\nInitialised .llmd/ at %s\n", llmd)
	fmt.Fprintln(cc.Out, "  catme.md written, edit it to describe your project.")
	if len(names) > 0 {
		fmt.Fprintf(cc.Out, "  %d file(s) imported into .llmd/imported/\n", len(names))
	}
	return nil
}
