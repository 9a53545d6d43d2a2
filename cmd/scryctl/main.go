// Package main implements scryctl, the operator CLI for scry-cardgen.
//
// It issues access tokens, runs schema migrations and creates flashcard sets
// against the same configuration the server reads.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
