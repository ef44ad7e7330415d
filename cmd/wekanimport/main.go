// Package main provides the entry point for the wekanimport CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/wekanimport/cmd/wekanimport/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		// The banner has already been printed; only the exit status is left.
		cancel()
		os.Exit(1)
	}
}
