// Package main is the kodiak command line client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/askkodiak-gateway/internal/cli"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.Version = Version
	code := cli.Execute(ctx, os.Args[1:], cli.Options{Stdout: os.Stdout, Stderr: os.Stderr})

	stop()
	os.Exit(code)
}
