// Command taskmigrate assigns existing tasks to the default account and
// seeds the user database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/taskmigrate/cmd"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cmd.Run(ctx, os.Args[1:]); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "\nInterrupted\n")
			os.Exit(130)
		}
		if !errors.Is(err, cmd.ErrMigrationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		// Any failure exits 1, including a migration whose failure line
		// cmd already printed.
		os.Exit(1)
	}
}
