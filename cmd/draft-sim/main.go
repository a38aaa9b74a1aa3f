// draft-sim simulates sealed pools, builds a deck from each and analyzes
// the resulting decks.
//
// Usage:
//
//	draft-sim fetch     [--refresh] [-o cards.json]
//	draft-sim simulate  [-n runs] [-a archetype | --distribution] [--seed N] [--workers N]
//	draft-sim report    [analysis.json] [--watch] [--open]
//	draft-sim serve     [--port N]
//	draft-sim archetypes
//	draft-sim batches   list|show|delete|export
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
