package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/dirbuild"
	"github.com/simulacralabs/llmd/llmddir"
)

type buildConfig struct {
	*cli.Command
	Output string `cli:"name=output aliases=o desc='directory for the built site (default .llmd/book)'"`
}

// BuildCommand returns the build command.
func BuildCommand() *cli.Command {
	cfg := &buildConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "build").
		WithSynopsis("build [--output dir] - Build a static mdbook site from .llmd/").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *buildConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd build [--output dir]", cli.ErrUsage)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := dirbuild.EnsureGenerator(ctx); err != nil {
		return err
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	book, err := dirbuild.Generate(llmd, newLogger())
	if err != nil {
		return fmt.Errorf("could not generate book: %w", err)
	}
	dest := cfg.Output
	if dest == "" {
		dest = filepath.Join(llmd, llmddir.BookOut)
	}
	if err := dirbuild.Build(ctx, book, dest); err != nil {
		return err
	}
	note("Built mdbook site at %s", dest)
	return nil
}

type serveConfig struct {
	*cli.Command
	Port   int  `cli:"name=port aliases=p desc='port to serve on (default 3000)'"`
	NoOpen bool `cli:"name=no-open desc='do not open a browser'"`
}

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	cfg := &serveConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "serve").
		WithSynopsis("serve [--port n] [--no-open] - Serve .llmd/ as an mdbook").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *serveConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: usage: llmd serve [--port n] [--no-open]", cli.ErrUsage)
	}
	port := cfg.Port
	if port == 0 {
		port = 3000
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: invalid port %d", cli.ErrUsage, port)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := dirbuild.EnsureGenerator(ctx); err != nil {
		return err
	}
	llmd, err := findLLMD()
	if err != nil {
		return err
	}
	book, err := dirbuild.Generate(llmd, newLogger())
	if err != nil {
		return fmt.Errorf("could not generate book: %w", err)
	}
	note("Serving .llmd/ at http://localhost:%d, press Ctrl+C to stop", port)
	err = dirbuild.Serve(ctx, book, port, !cfg.NoOpen)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
