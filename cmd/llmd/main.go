package main

import (
	"context"

	"github.com/scott-cotton/cli"
	"github.com/simulacralabs/llmd/cmd/llmd/commands"
)

func main() {
	cli.MainContext(context.Background(), commands.Root())
}
