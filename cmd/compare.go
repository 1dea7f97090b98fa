package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	projectionFlags
	by string
}

func (*compareCmd) Name() string { return "compare" }
func (*compareCmd) Synopsis() string {
	return "compare projections across scenarios or investment modes"
}
func (*compareCmd) Usage() string {
	return `cfp compare [-by scenario|mode] [projection flags]

  Projects the budget under every scenario (or every investment mode) and
  prints their summaries side by side. The flag being compared is ignored.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	c.projectionFlags.SetFlags(f)
	f.StringVar(&c.by, "by", "scenario", "What to compare: scenario or mode")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.by != "scenario" && c.by != "mode" {
		fmt.Fprintf(os.Stderr, "Error: invalid -by %q, want scenario or mode\n", c.by)
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

	if c.by == "mode" {
		printMarkdown(renderer.InvestmentModesMarkdown(budget.CompareInvestmentModes(rates.Converter(), opts)))
	} else {
		printMarkdown(renderer.ScenariosMarkdown(budget.CompareScenarios(rates.Converter(), opts)))
	}
	return subcommands.ExitSuccess
}
