package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/findash/internal/cli"
	"github.com/rshade/findash/pkg/version"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
