package cashflow

import "github.com/etnz/cashflow/date"

// Comparison is a projection and its stats.
type Comparison struct {
	Projection []ProjectionMonth `json:"projection"`
	Stats      Stats             `json:"stats"`
}

func compare(categories []BudgetCategory, debts []Debt, income IncomeConfig, convert ConvertFunc, display Currency, opts Options) Comparison {
	p := ProjectCashflow(categories, debts, income, convert, display, opts)
	return Comparison{Projection: p, Stats: ProjectionStats(p)}
}

// startOf pins the start month so that every run of a comparison projects the same months.
func startOf(opts Options) date.Date {
	if opts.Start.IsZero() {
		return date.Today()
	}
	return opts.Start
}

// CompareScenarios projects the same inputs under every Scenario.
// opts.Scenario is ignored.
func CompareScenarios(categories []BudgetCategory, debts []Debt, income IncomeConfig, convert ConvertFunc, display Currency, opts Options) map[Scenario]Comparison {
	opts.Start = startOf(opts)
	out := make(map[Scenario]Comparison, len(Scenarios))
	for _, sc := range Scenarios {
		o := opts
		o.Scenario = sc
		out[sc] = compare(categories, debts, income, convert, display, o)
	}
	return out
}

// CompareInvestmentModes projects the same inputs under every InvestmentMode.
// opts.InvestmentMode is ignored.
func CompareInvestmentModes(categories []BudgetCategory, debts []Debt, income IncomeConfig, convert ConvertFunc, display Currency, opts Options) map[InvestmentMode]Comparison {
	opts.Start = startOf(opts)
	out := make(map[InvestmentMode]Comparison, len(InvestmentModes))
	for _, mode := range InvestmentModes {
		o := opts
		o.InvestmentMode = mode
		out[mode] = compare(categories, debts, income, convert, display, o)
	}
	return out
}
