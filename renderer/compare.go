package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// comparisonTable renders one column per compared projection.
func comparisonTable(doc *md.Markdown, names []string, comparisons []cashflow.Comparison) {
	c := cashflow.EUR
	for _, comp := range comparisons {
		if len(comp.Projection) > 0 {
			c = comp.Projection[0].Currency
			break
		}
	}

	header := append([]string{"Indicator"}, names...)
	row := func(label string, value func(cashflow.Comparison) string) []string {
		r := []string{label}
		for _, comp := range comparisons {
			r = append(r, value(comp))
		}
		return r
	}
	money := func(label string, f func(cashflow.Stats) float64) []string {
		return row(label, func(comp cashflow.Comparison) string { return cashflow.FormatAmount(f(comp.Stats), c) })
	}

	doc.Table(md.TableSet{
		Header: header,
		Rows: [][]string{
			money("Final balance", func(s cashflow.Stats) float64 { return s.FinalBalance }),
			money("Final net worth", func(s cashflow.Stats) float64 { return s.FinalNetWorth }),
			money("Lowest balance", func(s cashflow.Stats) float64 { return s.MinBalance }),
			money("Average net cash flow", func(s cashflow.Stats) float64 { return s.AvgNetCashflow }),
			money("Total invested", func(s cashflow.Stats) float64 { return s.TotalInvestment }),
			row("Deficit months", func(comp cashflow.Comparison) string { return fmt.Sprint(comp.Stats.DeficitMonths) }),
			row("Healthy", func(comp cashflow.Comparison) string { return yesno(comp.Stats.IsHealthy) }),
			row("Break even", func(comp cashflow.Comparison) string {
				if v := newStatsView(comp.Projection, comp.Stats); v.BreakEven != "" {
					return v.BreakEven
				}
				return "never"
			}),
		},
	})
}

// ScenariosMarkdown renders a side by side comparison of the scenarios.
func ScenariosMarkdown(comparisons map[cashflow.Scenario]cashflow.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Scenario Comparison")

	var names []string
	var values []cashflow.Comparison
	for _, sc := range cashflow.Scenarios {
		if comp, ok := comparisons[sc]; ok {
			names = append(names, string(sc))
			values = append(values, comp)
		}
	}
	comparisonTable(doc, names, values)
	return doc.String()
}

// InvestmentModesMarkdown renders a side by side comparison of the investment modes.
func InvestmentModesMarkdown(comparisons map[cashflow.InvestmentMode]cashflow.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Investment Mode Comparison")

	var names []string
	var values []cashflow.Comparison
	for _, mode := range cashflow.InvestmentModes {
		if comp, ok := comparisons[mode]; ok {
			names = append(names, string(mode))
			values = append(values, comp)
		}
	}
	comparisonTable(doc, names, values)
	return doc.String()
}
