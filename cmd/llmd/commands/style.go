package commands

import (
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/simulacralabs/llmd/encode"
	"github.com/simulacralabs/llmd/issue"
)

// style colors terminal output. The zero value writes plain text.
type style struct {
	on bool
}

// styleFor enables color when w is a terminal and NO_COLOR is unset.
func styleFor(w io.Writer) style {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return style{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return style{}
	}
	return style{on: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (s style) paint(v string, attrs ...color.Attribute) string {
	if !s.on {
		return v
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(v)
}

func (s style) id(id issue.ID) string {
	return s.paint("#"+strconv.Itoa(int(id)), color.Bold)
}

func (s style) status(v string) string {
	switch v {
	case issue.StatusOpen:
		return s.paint(v, color.FgGreen)
	case issue.StatusClosed:
		return s.paint(v, color.Faint)
	}
	return s.paint(v, color.FgYellow)
}

func (s style) priority(v string) string {
	switch v {
	case issue.PriorityHigh:
		return s.paint(v, color.FgRed, color.Bold)
	case issue.PriorityMedium:
		return s.paint(v, color.FgYellow)
	case issue.PriorityLow:
		return s.paint(v, color.FgBlue)
	}
	return v
}

func (s style) faint(v string) string {
	return s.paint(v, color.Faint)
}

// encodeOpts colors the frontmatter encoding when s is on.
func (s style) encodeOpts() []encode.EncodeOption {
	if !s.on {
		return nil
	}
	return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
}
