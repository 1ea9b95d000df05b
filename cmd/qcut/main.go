package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/chojs23/qcut/internal/buildinfo"
	"github.com/chojs23/qcut/internal/cli"
	"github.com/chojs23/qcut/internal/diag"
	"github.com/chojs23/qcut/internal/run"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			fmt.Fprintln(os.Stdout, cli.Usage())
			os.Exit(0)
		}
		if errors.Is(err, cli.ErrVersion) {
			fmt.Fprintf(os.Stdout, "qcut %s\n", buildinfo.String())
			os.Exit(0)
		}
		diag.NewReporter(os.Stderr, "qcut").Errorf("%v", err)
		os.Exit(2)
	}

	exitCode := run.Run(ctx, opts)
	stop()
	os.Exit(exitCode)
}
