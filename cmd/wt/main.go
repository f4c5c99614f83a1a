package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"worktime/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	root := cli.NewRootCommand(cli.WithVersion(version))
	err := root.Execute(ctx)
	if closeErr := root.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
