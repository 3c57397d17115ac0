package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"life-planner/internal/cli"
	"life-planner/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Defaults, then the config file, then LP_* variables, then flags
	root := cli.NewRootCommand(config.NewLoader(), openSession)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
