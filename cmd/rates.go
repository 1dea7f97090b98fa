package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

// now is the clock of the rate updates.
var now = time.Now

// ratesCmd is a container for the rates subcommands.
type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "manage exchange rates" }
func (*ratesCmd) Usage() string {
	return `cfp rates <subcommand> [args]

Commands:
  show   - Show the current rates, recent history and updates.
  set    - Set rates manually.
  import - Import historical rates from a JSON file.
  fetch  - Fetch the latest rates from mindicador.cl and the ECB.
  watch  - Fetch the latest rates on a schedule.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {}
func (c *ratesCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "rates")
	commander.Register(&ratesShowCmd{}, "")
	commander.Register(&ratesSetCmd{}, "")
	commander.Register(&ratesImportCmd{}, "")
	commander.Register(&ratesFetchCmd{}, "")
	commander.Register(&ratesWatchCmd{}, "")
	return commander.Execute(ctx, args...)
}

type ratesShowCmd struct {
	history int
	json    bool
}

func (*ratesShowCmd) Name() string     { return "show" }
func (*ratesShowCmd) Synopsis() string { return "show the exchange rates" }
func (*ratesShowCmd) Usage() string    { return "cfp rates show [-n <days>] [-json]\n" }
func (c *ratesShowCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.history, "n", 10, "Number of historical days to show")
	f.BoolVar(&c.json, "json", false, "Print the whole rates file as JSON")
}

func (c *ratesShowCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rates); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RatesMarkdown(rates, c.history))
	return subcommands.ExitSuccess
}

type ratesSetCmd struct{}

func (*ratesSetCmd) Name() string     { return "set" }
func (*ratesSetCmd) Synopsis() string { return "set exchange rates manually" }
func (*ratesSetCmd) Usage() string {
	return `cfp rates set <pair>=<rate>...

  Sets the current rate of the given pairs, for instance:

    cfp rates set EUR_CLP=1020 CLP_UF=39000

  Pairs are EUR_CLP, EUR_USD and CLP_UF (also UF_CLP).
`
}
func (c *ratesSetCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesSetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	updates, err := parsePairs(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}
	rates = rates.Update(updates, cashflow.SourceManual, now())
	if err := EncodeRates(rates); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save rates: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Updated %d rate(s) in %s\n", len(updates), ratesFilename())
	return subcommands.ExitSuccess
}

// parsePairs parses <pair>=<rate> arguments.
func parsePairs(args []string) (cashflow.Rates, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least one <pair>=<rate>")
	}
	rates := make(cashflow.Rates, len(args))
	for _, arg := range args {
		pair, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid %q, want <pair>=<rate>", arg)
		}
		pair = strings.ToUpper(strings.TrimSpace(pair))
		if pair == cashflow.UFCLP {
			pair = cashflow.CLPUF
		}
		if !slices.Contains(cashflow.Pairs, pair) {
			return nil, fmt.Errorf("unknown pair %q, want one of %v", pair, cashflow.Pairs)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || !(v > 0) {
			return nil, fmt.Errorf("invalid rate %q for %s: want a positive number", value, pair)
		}
		rates[pair] = v
	}
	return rates, nil
}

type ratesImportCmd struct{}

func (*ratesImportCmd) Name() string     { return "import" }
func (*ratesImportCmd) Synopsis() string { return "import historical exchange rates" }
func (*ratesImportCmd) Usage() string {
	return `cfp rates import <file>

  Imports historical rates from a JSON file ("-" reads stdin):

    {"current": {"EUR_CLP": 1020}, "history": {"2024-01-15": {"EUR_CLP": 1001}}}

  Imported days overwrite the existing ones, "current" is optional.
`
}
func (c *ratesImportCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesImportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a single file")
		return subcommands.ExitUsageError
	}
	var payload []byte
	var err error
	if name := f.Arg(0); name == "-" {
		payload, err = io.ReadAll(os.Stdin)
	} else {
		payload, err = os.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, res := rates.ImportJSON(payload)
	if !res.Success {
		fmt.Fprintf(os.Stderr, "Error: %s\n", res.Message)
		return subcommands.ExitFailure
	}
	if err := EncodeRates(rates); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save rates: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, res.Message)
	return subcommands.ExitSuccess
}

type ratesFetchCmd struct {
	timeout time.Duration
}

func (*ratesFetchCmd) Name() string     { return "fetch" }
func (*ratesFetchCmd) Synopsis() string { return "fetch the latest exchange rates" }
func (*ratesFetchCmd) Usage() string {
	return `cfp rates fetch [-timeout <duration>]

  Fetches EUR_CLP and CLP_UF from mindicador.cl and EUR_USD from the ECB,
  and records them as an automatic update. The first automatic update of a
  day is also recorded in the history.
`
}
func (c *ratesFetchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "Maximum duration of the fetch")
}

func (c *ratesFetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	rates, err = fetchAndSave(ctx, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RatesMarkdown(rates, 0))
	return subcommands.ExitSuccess
}

// fetchAndSave fetches the latest rates, applies them to s and saves the result.
func fetchAndSave(ctx context.Context, s *cashflow.Snapshot) (*cashflow.Snapshot, error) {
	latest, err := newFetcher().Latest(ctx)
	if err != nil {
		return s, err
	}
	s = s.Update(latest, cashflow.SourceAuto, now())
	if err := EncodeRates(s); err != nil {
		return s, fmt.Errorf("could not save rates: %w", err)
	}
	log.Info().Str("file", ratesFilename()).Msg("rates updated")
	return s, nil
}
