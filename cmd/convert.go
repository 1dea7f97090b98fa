package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type convertCmd struct {
	date string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an amount between currencies" }
func (*convertCmd) Usage() string {
	return `cfp convert [-d <date>] <amount> <from> <to>

  Converts amount from a currency to another. Supported currencies are
  EUR, CLP, USD and UF (also CLF). With -d the historical rates of that day
  are used, or the closest earlier day, or the current rates.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the rates to use (default current rates)")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected <amount> <from> <to>")
		return subcommands.ExitUsageError
	}
	amount, err := strconv.ParseFloat(f.Arg(0), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	from, err := cashflow.ParseCurrency(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := cashflow.ParseCurrency(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var on date.Date
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}
	var result float64
	if on.IsZero() {
		result = rates.Convert(amount, from, to)
	} else {
		result = rates.ConvertAt(amount, from, to, on)
	}
	printMarkdown(renderer.ConversionMarkdown(amount, from, to, result, on))
	return subcommands.ExitSuccess
}
