package cmd

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

// projectionFlags are the flags shared by the projection commands.
type projectionFlags struct {
	scenario string
	mode     string
	flex     string
	start    string
}

func (p *projectionFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.scenario, "scenario", "realistic", "Scenario: realistic, optimistic or pessimistic")
	f.StringVar(&p.mode, "invest", "fixed", "Investment mode: fixed, flexible or none")
	f.StringVar(&p.flex, "flex", "", "Percentage of the surplus invested in flexible mode (default 20)")
	f.StringVar(&p.start, "start", "", "Any day of the first projected month (default today)")
}

// options parses the flags into projection options.
func (p *projectionFlags) options() (cashflow.Options, error) {
	var opts cashflow.Options
	var err error
	if opts.Scenario, err = cashflow.ParseScenario(p.scenario); err != nil {
		return opts, err
	}
	if opts.InvestmentMode, err = cashflow.ParseInvestmentMode(p.mode); err != nil {
		return opts, err
	}
	if p.flex != "" {
		v, err := strconv.ParseFloat(p.flex, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid -flex %q: %w", p.flex, err)
		}
		if v < 0 || v > 100 {
			return opts, fmt.Errorf("invalid -flex %v: want a percentage between 0 and 100", v)
		}
		opts.FlexibleInvestmentPercent = &v
	}
	if p.start != "" {
		if opts.Start, err = date.Parse(p.start); err != nil {
			return opts, fmt.Errorf("invalid -start: %w", err)
		}
	}
	return opts, nil
}
