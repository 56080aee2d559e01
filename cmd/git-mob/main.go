package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	rootcmd "github.com/go-ports/gitmob/cmd/git-mob/root"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	root := rootcmd.New()
	root.SetArgs(rootcmd.ExpandMultiValueFlags(os.Args[1:]))
	return root.ExecuteContext(ctx)
}
