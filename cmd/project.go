package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	projectionFlags
	json bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the budget cash flow over the next 12 months" }
func (*projectCmd) Usage() string {
	return `cfp project [-scenario <s>] [-invest <mode>] [-flex <pct>] [-start <date>] [-json]

  Projects the budget month by month over 12 months, using the current
  exchange rates, and prints the projection followed by its summary.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	c.projectionFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the projection and its stats as JSON")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: no arguments expected")
		return subcommands.ExitUsageError
	}
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	budget, err := DecodeBudget()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load budget: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}

	p := budget.Project(rates.Converter(), opts)
	stats := cashflow.ProjectionStats(p)
	log.Debug().Int("months", len(p)).Bool("healthy", stats.IsHealthy).Msg("projected")

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cashflow.Comparison{Projection: p, Stats: stats}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ProjectionMarkdown(p, stats))
	return subcommands.ExitSuccess
}
