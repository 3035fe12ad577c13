package dirbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

var ErrGeneratorMissing = errors.New("`mdbook` is not installed. Install it with:\n  cargo install mdbook")

// Generator is the site generator executable.
var Generator = "mdbook"

// EnsureGenerator checks that the generator can be run.
func EnsureGenerator(ctx context.Context) error {
	if err := exec.CommandContext(ctx, Generator, "--version").Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil
		}
		return ErrGeneratorMissing
	}
	return nil
}

// Build runs the generator on book and moves the site to dest.
func Build(ctx context.Context, book *Book, dest string) error {
	if err := run(ctx, "build", book.Root); err != nil {
		return err
	}
	built := filepath.Join(book.Root, "book")
	if filepath.Clean(dest) == filepath.Clean(built) {
		return nil
	}
	if err := CopyDir(built, dest); err != nil {
		return fmt.Errorf("could not copy site to %s: %w", dest, err)
	}
	return os.RemoveAll(built)
}

// Serve runs the generator's development server until it exits or ctx is
// done.
func Serve(ctx context.Context, book *Book, port int, open bool) error {
	args := []string{"serve", "--port", strconv.Itoa(port), book.Root}
	if open {
		args = append(args, "--open")
	}
	return run(ctx, args...)
}

func run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, Generator, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return fmt.Errorf("`%s %s` exited with status %d", Generator, args[0], ee.ExitCode())
		}
		return fmt.Errorf("could not run %s: %w", Generator, err)
	}
	return nil
}
