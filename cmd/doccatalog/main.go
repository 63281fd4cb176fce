package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doccatalog/cmd/doccatalog/commands"
	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
	"git.home.luguber.info/inful/doccatalog/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("doccatalog"),
		kong.Description("Aggregate documentation content from git repositories into a content catalog."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err := parser.Run(commands.NewGlobal(), cli)
	stop()
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
