// Command cfp projects a personal budget cash flow over the next 12 months.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/cashflow/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	projection := map[string]complete.Predictor{
		"scenario": predict.Set{"realistic", "optimistic", "pessimistic"},
		"invest":   predict.Set{"fixed", "flexible", "none"},
		"flex":     predict.Something,
		"start":    predict.Something,
	}
	with := func(flags map[string]complete.Predictor, extra map[string]complete.Predictor) map[string]complete.Predictor {
		out := make(map[string]complete.Predictor, len(flags)+len(extra))
		for k, v := range flags {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}
	currencies := predict.Set{"EUR", "CLP", "USD", "UF"}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"budget-file":    predict.Files("*.json"),
			"rates-file":     predict.Files("*.json"),
			"log-level":      predict.Set{"debug", "info", "warn", "error"},
			"mindicador-url": predict.Something,
			"ecb-url":        predict.Something,
			"cache-dir":      predict.Dirs("*"),
			"markdown":       predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"project":  {Flags: with(projection, map[string]complete.Predictor{"json": predict.Nothing})},
			"compare":  {Flags: with(projection, map[string]complete.Predictor{"by": predict.Set{"scenario", "mode"}})},
			"validate": {},
			"convert":  {Flags: map[string]complete.Predictor{"d": predict.Something}, Args: currencies},
			"rates": {Sub: map[string]*complete.Command{
				"show":   {Flags: map[string]complete.Predictor{"n": predict.Something, "json": predict.Nothing}},
				"set":    {Args: predict.Set{"EUR_CLP=", "EUR_USD=", "CLP_UF="}},
				"import": {Args: predict.Files("*.json")},
				"fetch":  {Flags: map[string]complete.Predictor{"timeout": predict.Something}},
				"watch": {Flags: with(projection, map[string]complete.Predictor{
					"schedule": predict.Set{"@hourly", "@daily", "@every 30m"},
					"project":  predict.Nothing,
					"timeout":  predict.Something,
				})},
			}},
			"topic": {Args: predict.Set{"readme", "budget", "rates", "projection", "*"}},
		},
	}
}

func main() {
	name := path.Base(os.Args[0])
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	cmd.LoadEnv()
	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
