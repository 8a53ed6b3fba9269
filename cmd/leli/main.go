package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/leli/cmd/leli/commands"
	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cli, err := commands.Execute(ctx, os.Args[1:], &commands.Global{})
	stop()
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
