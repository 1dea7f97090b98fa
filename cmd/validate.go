package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type validateCmd struct{}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the budget currencies and scheduled events" }
func (*validateCmd) Usage() string {
	return `cfp validate

  Reports every unsupported currency, unknown flow kind and invalid scheduled
  event of the budget. Exits with a failure status if any is found.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {}

func (c *validateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	budget, err := DecodeBudget()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load budget: %v\n", err)
		return subcommands.ExitFailure
	}
	verr := budget.Validate()
	printMarkdown(renderer.BudgetValidationMarkdown(budget, verr))
	if verr != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
