package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// cronLogger adapts a zerolog.Logger to cron.Logger.
type cronLogger struct{ log zerolog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

type ratesWatchCmd struct {
	schedule string
	project  bool
	timeout  time.Duration
	projectionFlags
}

func (*ratesWatchCmd) Name() string     { return "watch" }
func (*ratesWatchCmd) Synopsis() string { return "fetch the latest exchange rates on a schedule" }
func (*ratesWatchCmd) Usage() string {
	return `cfp rates watch [-schedule <cron>] [-project [projection flags]]

  Fetches the latest rates on a cron schedule until interrupted. The
  schedule uses the standard cron format or descriptors like "@hourly" or
  "@every 30m". With -project, the summary of the budget projection is
  printed after every update.
`
}

func (c *ratesWatchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "schedule", "@hourly", "Cron schedule of the fetches")
	f.BoolVar(&c.project, "project", false, "Print the budget projection summary after every update")
	f.DurationVar(&c.timeout, "timeout", 30*time.Second, "Maximum duration of each fetch")
	c.projectionFlags.SetFlags(f)
}

func (c *ratesWatchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load rates: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watcher{rates: rates, timeout: c.timeout, cache: cashflow.NewProjectionCache(24 * time.Hour), opts: opts, project: c.project}
	logger := cronLogger{log}
	sched := cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	if _, err := sched.AddFunc(c.schedule, func() { w.tick(ctx) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", c.schedule, err)
		return subcommands.ExitUsageError
	}

	log.Info().Str("schedule", c.schedule).Msg("watching rates")
	w.tick(ctx)
	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()
	return subcommands.ExitSuccess
}

// watcher holds the state of a rates watch between ticks.
// Ticks must not overlap.
type watcher struct {
	rates   *cashflow.Snapshot
	timeout time.Duration
	cache   *cashflow.ProjectionCache
	opts    cashflow.Options
	project bool
}

func (w *watcher) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	rates, err := fetchAndSave(ctx, w.rates)
	if err != nil {
		log.Error().Err(err).Msg("rates fetch failed")
		return
	}
	w.rates = rates
	if !w.project {
		return
	}
	budget, err := DecodeBudget()
	if err != nil {
		log.Error().Err(err).Msg("could not load budget")
		return
	}
	p := w.cache.Project(budget, rates.Current(), w.opts)
	printMarkdown(renderer.StatsMarkdown(p, cashflow.ProjectionStats(p)))
}
