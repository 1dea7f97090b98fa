package cashflow

import (
	"math"
	"testing"

	"github.com/etnz/cashflow/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simple is a 2000 EUR income and a 1000 EUR rent.
var (
	simpleIncome     = IncomeConfig{MonthlyIncome: 2000, Currency: EUR}
	simpleCategories = []BudgetCategory{{Name: "Rent", Type: "expense", Budget: 1000, Currency: EUR}}
)

func project(t *testing.T, categories []BudgetCategory, debts []Debt, income IncomeConfig, display Currency, opts Options) []ProjectionMonth {
	t.Helper()
	if opts.Start.IsZero() {
		opts.Start = oct2026
	}
	p := ProjectCashflow(categories, debts, income, convertAt(testRates), display, opts)
	require.Len(t, p, ProjectionMonths)
	return p
}

func TestProjectCashflow_Simple(t *testing.T) {
	p := project(t, simpleCategories, nil, simpleIncome, EUR, Options{InvestmentMode: InvestNone})

	first := p[0]
	assert.Equal(t, "Oct 2026", first.Label)
	assert.Equal(t, date.New(2026, 10, 1), first.Month)
	assert.Equal(t, 0, first.MonthIndex)
	assert.Equal(t, 2000.0, first.Income)
	assert.Equal(t, 1000.0, first.OperatingExpenses)
	assert.Equal(t, 0.0, first.DebtPayments)
	assert.Equal(t, 0.0, first.InvestmentContribution)
	assert.Equal(t, 1000.0, first.NetCashflow)
	assert.Equal(t, 1000.0, first.NetOperational)
	assert.Equal(t, 1000.0, first.CumulativeBalance)
	assert.Equal(t, EUR, first.Currency)
	assert.Equal(t, Realistic, first.Scenario)
	assert.Equal(t, InvestNone, first.InvestmentMode)

	last := p[ProjectionMonths-1]
	assert.Equal(t, "Sep 2027", last.Label)
	assert.Equal(t, 11, last.MonthIndex)
	assert.Equal(t, 12000.0, last.CumulativeBalance)
	assert.Equal(t, 12000.0, last.ProjectedNetWorth)
}

func TestProjectCashflow_ExplicitFlowKind(t *testing.T) {
	categories := []BudgetCategory{{Budget: 1000, Currency: EUR, FlowKind: OperatingExpense}}
	income := IncomeConfig{MonthlyIncome: 2000, Currency: EUR}
	rates := Rates{EURCLP: 1000, EURUSD: 1.1, CLPUF: 36000}

	p := ProjectCashflow(categories, nil, income, convertAt(rates), EUR, Options{Scenario: Realistic, InvestmentMode: InvestNone})
	require.Len(t, p, ProjectionMonths)

	first := p[0]
	assert.Equal(t, 2000.0, first.Income)
	assert.Equal(t, 1000.0, first.OperatingExpenses)
	assert.Equal(t, 0.0, first.DebtPayments)
	assert.Equal(t, 0.0, first.InvestmentContribution)
	assert.Equal(t, 1000.0, first.NetCashflow)
	assert.Equal(t, 1000.0, first.CumulativeBalance)
}

func TestProjectCashflow_Defaults(t *testing.T) {
	p := ProjectCashflow(simpleCategories, nil, simpleIncome, nil, EUR, Options{})
	require.Len(t, p, ProjectionMonths)
	assert.Equal(t, Realistic, p[0].Scenario)
	assert.Equal(t, InvestFixed, p[0].InvestmentMode)
	assert.Equal(t, date.MonthOf(date.Today()).Label(), p[0].Label)
}

func TestProjectCashflow_DisplayCurrency(t *testing.T) {
	p := project(t, simpleCategories, nil, simpleIncome, CLP, Options{InvestmentMode: InvestNone})
	assert.Equal(t, 2_000_000.0, p[0].Income)
	assert.Equal(t, 1_000_000.0, p[0].OperatingExpenses)
	assert.Equal(t, CLP, p[0].Currency)
}

func TestProjectCashflow_EmptyCurrencyIsDisplay(t *testing.T) {
	income := IncomeConfig{MonthlyIncome: 2_000_000}
	categories := []BudgetCategory{{Name: "Arriendo", Budget: 500_000}}
	p := project(t, categories, nil, income, CLP, Options{InvestmentMode: InvestNone})
	assert.Equal(t, 2_000_000.0, p[0].Income)
	assert.Equal(t, 500_000.0, p[0].OperatingExpenses)
}

func TestProjectCashflow_IncomeCategoriesIgnored(t *testing.T) {
	categories := []BudgetCategory{
		{Name: "Salary", Type: "income", Budget: 1500, Currency: EUR},
		{Name: "Freelance", FlowKind: Income, Budget: 37_000, Currency: CLP},
		{Name: "Rent", Budget: 1000, Currency: EUR},
	}
	p := project(t, categories, nil, IncomeConfig{}, EUR, Options{InvestmentMode: InvestNone})
	assert.Equal(t, 0.0, p[0].Income, "income comes from the income config only")
	assert.Equal(t, 1000.0, p[0].OperatingExpenses, "income categories are not expenses")
	assert.Equal(t, -1000.0, p[0].NetCashflow)

	p = project(t, categories, nil, simpleIncome, EUR, Options{InvestmentMode: InvestNone})
	assert.Equal(t, 2000.0, p[0].Income)
}

func TestProjectCashflow_Scenarios(t *testing.T) {
	testCases := []struct {
		scenario          Scenario
		income, operating float64
	}{
		{Realistic, 2000, 1000},
		{Optimistic, 2200, 900},
		{Pessimistic, 1800, 1150},
	}
	debts := []Debt{{Name: "Car", MonthlyPayment: 100, Currency: EUR}}
	for _, tc := range testCases {
		t.Run(string(tc.scenario), func(t *testing.T) {
			p := project(t, simpleCategories, debts, simpleIncome, EUR, Options{Scenario: tc.scenario, InvestmentMode: InvestNone})
			for _, m := range p {
				assert.InDelta(t, tc.income, m.Income, 1e-9)
				assert.InDelta(t, tc.operating, m.OperatingExpenses, 1e-9)
				assert.Equal(t, 100.0, m.DebtPayments, "debt payments are not scaled")
				assert.InDelta(t, m.Income-m.OperatingExpenses-m.DebtPayments, m.NetCashflow, 1e-9)
			}
		})
	}
}

func TestProjectCashflow_DebtIsTheLargerSource(t *testing.T) {
	categories := []BudgetCategory{
		{Name: "Rent", Budget: 1000, Currency: EUR},
		{Name: "Credit card", Budget: 300, Currency: EUR},
	}
	testCases := []struct {
		name  string
		debts []Debt
		want  float64
	}{
		{"categories only", nil, 300},
		{"categories larger", []Debt{{Name: "Visa", MonthlyPayment: 200, Currency: EUR}}, 300},
		{"records larger", []Debt{
			{Name: "Visa", MonthlyPayment: 200, Currency: EUR},
			{Name: "CAE", MonthlyPayment: 300_000, Currency: CLP},
		}, 500},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := project(t, categories, tc.debts, simpleIncome, EUR, Options{InvestmentMode: InvestNone})
			assert.Equal(t, tc.want, p[0].DebtPayments)
			assert.Equal(t, 1000.0, p[0].OperatingExpenses, "debt categories are not operating expenses")
		})
	}
}

func TestProjectCashflow_ScheduledEvents(t *testing.T) {
	opts := Options{
		InvestmentMode: InvestNone,
		Scenario:       Pessimistic,
		ScheduledEvents: []ScheduledEvent{
			{Name: "Bonus", Date: date.New(2026, 11, 20), Amount: 500, Currency: EUR, Type: EventIncome},
			{Name: "Permiso", Date: date.New(2026, 12, 5), Amount: 200_000, Currency: CLP, Type: EventExpense},
			{Name: "Cancelled", Date: date.New(2026, 11, 1), Amount: 9999, Currency: EUR, Type: EventIncome, Enabled: ptr(false)},
			{Name: "Past", Date: date.New(2026, 9, 30), Amount: 9999, Currency: EUR, Type: EventIncome},
		},
	}
	p := project(t, simpleCategories, nil, simpleIncome, EUR, opts)

	assert.Empty(t, p[0].Events)
	assert.InDelta(t, 1800, p[0].Income, 1e-9)

	// events are added after the scenario factors.
	require.Len(t, p[1].Events, 1)
	assert.Equal(t, "Bonus", p[1].Events[0].Name)
	assert.InDelta(t, 2300, p[1].Income, 1e-9)
	assert.InDelta(t, 1150, p[1].OperatingExpenses, 1e-9)

	require.Len(t, p[2].Events, 1)
	assert.InDelta(t, 1800, p[2].Income, 1e-9)
	assert.InDelta(t, 1350, p[2].OperatingExpenses, 1e-9)
}

func TestProjectCashflow_FixedInvestment(t *testing.T) {
	categories := append([]BudgetCategory{{Name: "ETF", Type: "investment", Budget: 100, Currency: EUR}}, simpleCategories...)
	p := project(t, categories, nil, simpleIncome, EUR, Options{InvestmentMode: InvestFixed})

	for _, m := range p {
		assert.Equal(t, 100.0, m.InvestmentContribution)
		assert.Equal(t, 1000.0, m.Surplus)
		assert.Equal(t, 1000.0, m.NetOperational)
		assert.Equal(t, 900.0, m.NetCashflow)
	}
	assert.InDelta(t, 100*(1+MonthlyGrowthRate), p[0].CumulativeInvestment, 1e-9)
	assert.InDelta(t, p[0].CumulativeBalance+p[0].CumulativeInvestment, p[0].ProjectedNetWorth, 1e-9)
}

func TestProjectCashflow_FlexibleInvestment(t *testing.T) {
	testCases := []struct {
		name    string
		percent *float64
		income  float64
		want    float64
	}{
		{"default percent", nil, 2000, 200},
		{"custom percent", ptr(50.0), 2000, 500},
		{"clamped above", ptr(150.0), 2000, 1000},
		{"clamped below", ptr(-10.0), 2000, 0},
		{"deficit", nil, 500, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			income := IncomeConfig{MonthlyIncome: tc.income, Currency: EUR}
			p := project(t, simpleCategories, nil, income, EUR, Options{InvestmentMode: InvestFlexible, FlexibleInvestmentPercent: tc.percent})
			for _, m := range p {
				assert.InDelta(t, tc.want, m.InvestmentContribution, 1e-9)
				assert.GreaterOrEqual(t, m.InvestmentContribution, 0.0)
				assert.InDelta(t, m.Surplus-m.InvestmentContribution, m.NetCashflow, 1e-9)
			}
		})
	}
}

func TestProjectCashflow_InvestmentCompounding(t *testing.T) {
	opts := Options{
		InvestmentMode: InvestNone,
		Investments: []Investment{
			{Name: "Fintual", CurrentBalance: 500_000, Currency: CLP}, // 500 EUR
			{Name: "Broker", CurrentBalance: 550, Currency: USD},      // 500 EUR
			{Name: "Closed", CurrentBalance: 1e6, Currency: EUR, IsArchived: true},
		},
	}
	p := project(t, simpleCategories, nil, simpleIncome, EUR, opts)
	assert.InDelta(t, 1000*(1+MonthlyGrowthRate), p[0].CumulativeInvestment, 1e-6)
	// twelve months at the monthly rate is one year at the annual rate.
	assert.InDelta(t, 1000*(1+AnnualGrowthRate), p[11].CumulativeInvestment, 1e-6)
	assert.InDelta(t, 12000+1000*(1+AnnualGrowthRate), p[11].ProjectedNetWorth, 1e-6)
}

func TestProjectCashflow_Invariants(t *testing.T) {
	categories := []BudgetCategory{
		{Name: "Rent", Budget: 600_000, Currency: CLP},
		{Name: "Hipoteca", Budget: 5, Currency: UF},
		{Name: "ETF", FlowKind: InvestmentContribution, Budget: 150, Currency: USD},
	}
	debts := []Debt{{Name: "Car", MonthlyPayment: 150, Currency: EUR}}
	for _, sc := range Scenarios {
		for _, mode := range InvestmentModes {
			p := project(t, categories, debts, simpleIncome, EUR, Options{Scenario: sc, InvestmentMode: mode})
			var balance float64
			for i, m := range p {
				balance += m.NetCashflow
				assert.Equal(t, i, m.MonthIndex)
				assert.InDelta(t, balance, m.CumulativeBalance, 1e-6, "%s/%s month %d", sc, mode, i)
				assert.InDelta(t, m.Income-m.OperatingExpenses-m.DebtPayments, m.NetOperational, 1e-6)
				assert.InDelta(t, m.NetOperational-m.InvestmentContribution, m.NetCashflow, 1e-6)
				assert.False(t, math.IsNaN(m.ProjectedNetWorth))
			}
		}
	}
}

func TestParseScenario(t *testing.T) {
	for s, want := range map[string]Scenario{"": Realistic, "Optimistic": Optimistic, " pessimistic ": Pessimistic} {
		got, err := ParseScenario(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseScenario("dreamy")
	assert.Error(t, err)
}

func TestParseInvestmentMode(t *testing.T) {
	for s, want := range map[string]InvestmentMode{"": InvestFixed, "FLEXIBLE": InvestFlexible, "none": InvestNone} {
		got, err := ParseInvestmentMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseInvestmentMode("all-in")
	assert.Error(t, err)
}
