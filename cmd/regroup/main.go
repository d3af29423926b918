// Command regroup aggregates a long-format CSV array along one axis using a
// mapping file.
//
//	regroup -in population.csv -map regions.csv -dim region
//	REGROUP_PARTIAL=true regroup -in gdp.csv -map regions.yaml -weights pop.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/katalvlaran/regroup/internal/cli"
)

func main() {
	cfg, err := cli.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		exitf("Error: %v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
