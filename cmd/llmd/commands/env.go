package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/simulacralabs/llmd/debug"
	"github.com/simulacralabs/llmd/llmddir"
	"github.com/simulacralabs/llmd/storage"
)

// findLLMD locates the knowledge base from the working directory and loads
// its .env before any debug switch is consulted.
func findLLMD() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	llmd, err := llmddir.Find(cwd)
	if err != nil {
		return "", err
	}
	if err := llmddir.LoadEnv(llmd); err != nil {
		return "", err
	}
	debug.Reload()
	return llmd, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if debug.Store() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openStore() (*storage.Storage, error) {
	llmd, err := findLLMD()
	if err != nil {
		return nil, err
	}
	return storage.Open(llmddir.IssuesPath(llmd), newLogger())
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(v string) []string {
	var res []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

// author is the name recorded on new comments.
func author(flag string) string {
	for _, v := range []string{flag, os.Getenv("LLMD_AUTHOR"), os.Getenv("USER")} {
		if v != "" {
			return v
		}
	}
	return "unknown"
}

func note(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
