package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// statsView is the data of the stats templates.
type statsView struct {
	Stats     cashflow.Stats
	Currency  cashflow.Currency
	BreakEven string // label of the break even month, empty if none
}

func newStatsView(p []cashflow.ProjectionMonth, s cashflow.Stats) statsView {
	v := statsView{Stats: s, Currency: currencyOf(p)}
	if s.BreakEvenMonth != nil && *s.BreakEvenMonth < len(p) {
		v.BreakEven = p[*s.BreakEvenMonth].Label
	}
	return v
}

func currencyOf(p []cashflow.ProjectionMonth) cashflow.Currency {
	if len(p) == 0 {
		return cashflow.EUR
	}
	return p[0].Currency
}

// StatsMarkdown renders the summary of a projection.
func StatsMarkdown(p []cashflow.ProjectionMonth, s cashflow.Stats) string {
	partials := map[string]string{
		"stats_health": "stats_health.md",
	}
	return renderTemplate("stats", "stats.md", partials, newStatsView(p, s))
}

// ProjectionMarkdown renders a projection month by month, followed by its stats.
func ProjectionMarkdown(p []cashflow.ProjectionMonth, s cashflow.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if len(p) == 0 {
		doc.H1("Cash Flow Projection")
		doc.PlainText("Nothing to project.")
		return doc.String()
	}
	first, last := p[0], p[len(p)-1]
	c := first.Currency
	doc.H1(fmt.Sprintf("Cash Flow Projection %s - %s", first.Label, last.Label))
	doc.PlainText(fmt.Sprintf("Scenario: %s, investment: %s, amounts in %s.", first.Scenario, first.InvestmentMode, c))

	table := md.TableSet{
		Header: []string{"Month", "Income", "Expenses", "Debt", "Surplus", "Invested", "Net", "Balance", "Net Worth"},
	}
	for _, m := range p {
		table.Rows = append(table.Rows, []string{
			m.Label,
			cashflow.FormatAmount(m.Income, c),
			cashflow.FormatAmount(m.OperatingExpenses, c),
			cashflow.FormatAmount(m.DebtPayments, c),
			cashflow.FormatAmount(m.Surplus, c),
			cashflow.FormatAmount(m.InvestmentContribution, c),
			cashflow.FormatAmount(m.NetCashflow, c),
			cashflow.FormatAmount(m.CumulativeBalance, c),
			cashflow.FormatAmount(m.ProjectedNetWorth, c),
		})
	}
	doc.Table(table)

	var events []string
	for _, m := range p {
		for _, e := range m.Events {
			sign := "+"
			if e.Type == cashflow.EventExpense {
				sign = "-"
			}
			events = append(events, fmt.Sprintf("%s: %s %s%s", m.Label, e.Name, sign, cashflow.FormatAmount(e.Amount, e.Currency)))
		}
	}
	if len(events) > 0 {
		doc.H2("Scheduled Events")
		doc.BulletList(events...)
	}

	return doc.String() + "\n" + StatsMarkdown(p, s)
}
