package cashflow

import (
	"fmt"
	"math"
	"strings"

	"github.com/etnz/cashflow/date"
)

// ProjectionMonths is the number of months in a projection.
const ProjectionMonths = 12

// AnnualGrowthRate is the nominal yearly return assumed for invested balances.
const AnnualGrowthRate = 0.07

// MonthlyGrowthRate is AnnualGrowthRate compounded monthly.
var MonthlyGrowthRate = math.Pow(1+AnnualGrowthRate, 1.0/12) - 1

// DefaultFlexibleInvestmentPercent is the share of a positive surplus invested in flexible mode.
const DefaultFlexibleInvestmentPercent = 20.0

// Scenario is an optimism level applied to income and operating expenses.
type Scenario string

const (
	Realistic   Scenario = "realistic"
	Optimistic  Scenario = "optimistic"
	Pessimistic Scenario = "pessimistic"
)

// Scenarios lists all scenarios.
var Scenarios = []Scenario{Realistic, Optimistic, Pessimistic}

// ParseScenario parses a scenario name, case insensitive. Empty means Realistic.
func ParseScenario(s string) (Scenario, error) {
	switch sc := Scenario(strings.ToLower(strings.TrimSpace(s))); sc {
	case "":
		return Realistic, nil
	case Realistic, Optimistic, Pessimistic:
		return sc, nil
	}
	return "", fmt.Errorf("unknown scenario %q, want one of %v", s, Scenarios)
}

// factors returns the income and expenses multipliers.
func (s Scenario) factors() (income, expenses float64) {
	switch s {
	case Optimistic:
		return 1.1, 0.9
	case Pessimistic:
		return 0.9, 1.15
	default:
		return 1, 1
	}
}

// InvestmentMode is the policy deciding the monthly investment contribution.
type InvestmentMode string

const (
	// InvestFixed contributes the budget of the investment categories every month.
	InvestFixed InvestmentMode = "fixed"
	// InvestFlexible contributes a percentage of the positive monthly surplus.
	InvestFlexible InvestmentMode = "flexible"
	// InvestNone contributes nothing.
	InvestNone InvestmentMode = "none"
)

// InvestmentModes lists all investment modes.
var InvestmentModes = []InvestmentMode{InvestNone, InvestFixed, InvestFlexible}

// ParseInvestmentMode parses an investment mode, case insensitive. Empty means InvestFixed.
func ParseInvestmentMode(s string) (InvestmentMode, error) {
	switch m := InvestmentMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return InvestFixed, nil
	case InvestFixed, InvestFlexible, InvestNone:
		return m, nil
	}
	return "", fmt.Errorf("unknown investment mode %q, want one of %v", s, InvestmentModes)
}

// Options tune a projection. The zero value is a realistic projection with
// fixed investment starting this month.
type Options struct {
	Scenario        Scenario
	InvestmentMode  InvestmentMode
	ScheduledEvents []ScheduledEvent
	Investments     []Investment // current balances, seed the compounding

	// FlexibleInvestmentPercent is the percentage, in [0, 100], of a positive
	// surplus invested in flexible mode. nil means DefaultFlexibleInvestmentPercent.
	FlexibleInvestmentPercent *float64

	// Start is any day of the first projected month, zero means today.
	Start date.Date
}

func (o Options) scenario() Scenario {
	if o.Scenario == "" {
		return Realistic
	}
	return o.Scenario
}

func (o Options) investmentMode() InvestmentMode {
	if o.InvestmentMode == "" {
		return InvestFixed
	}
	return o.InvestmentMode
}

func (o Options) flexiblePercent() float64 {
	if o.FlexibleInvestmentPercent == nil || math.IsNaN(*o.FlexibleInvestmentPercent) {
		return DefaultFlexibleInvestmentPercent
	}
	return min(max(*o.FlexibleInvestmentPercent, 0), 100)
}

// ProjectionMonth is one month of a projection, amounts in Currency.
type ProjectionMonth struct {
	Label                  string           `json:"label"`
	Month                  date.Date        `json:"month"` // first day of the month
	MonthIndex             int              `json:"monthIndex"`
	Income                 float64          `json:"income"`
	OperatingExpenses      float64          `json:"operatingExpenses"`
	DebtPayments           float64          `json:"debtPayments"`
	InvestmentContribution float64          `json:"investmentContribution"`
	NetCashflow            float64          `json:"netCashflow"`
	NetOperational         float64          `json:"netOperational"`
	Surplus                float64          `json:"surplus"`
	CumulativeBalance      float64          `json:"cumulativeBalance"`
	CumulativeInvestment   float64          `json:"cumulativeInvestment"`
	ProjectedNetWorth      float64          `json:"projectedNetWorth"`
	Currency               Currency         `json:"currency"`
	Events                 []ScheduledEvent `json:"events,omitempty"`
	Scenario               Scenario         `json:"scenario"`
	InvestmentMode         InvestmentMode   `json:"investmentMode"`
}

// baseFigures are the monthly amounts shared by all projected months.
type baseFigures struct {
	income     float64
	operating  float64
	debt       float64
	investment float64
}

// recordCurrency defaults an unset record currency to the display currency.
func recordCurrency(c, display Currency) Currency {
	if c == "" {
		return display
	}
	return c
}

// bases computes the monthly base figures in the display currency.
//
// Budgets are flat monthly amounts. The income is the configured monthly
// income only, income categories are not part of any base figure.
// The debt payment is the larger of the debt categories and the debt records:
// the same obligation is often tracked both ways, so the two are not added.
// This underestimates outflows when both sources are genuinely distinct.
func bases(categories []BudgetCategory, debts []Debt, income IncomeConfig, convert ConvertFunc, display Currency) baseFigures {
	var b baseFigures
	var debtCategories, debtRecords float64
	for _, c := range categories {
		kind := ClassifyFlowKind(c)
		if kind == Income {
			continue
		}
		amount := convert(c.Budget, recordCurrency(c.Currency, display), display)
		switch kind {
		case DebtPayment:
			debtCategories += amount
		case InvestmentContribution:
			b.investment += amount
		default:
			b.operating += amount
		}
	}
	for _, d := range debts {
		debtRecords += convert(d.MonthlyPayment, recordCurrency(d.Currency, display), display)
	}
	b.debt = max(debtCategories, debtRecords)

	b.income = convert(income.MonthlyIncome, recordCurrency(income.Currency, display), display)
	return b
}

// investedBalance returns the sum of the active investments, totalled in EUR
// and expressed in the display currency.
func investedBalance(investments []Investment, convert ConvertFunc, display Currency) float64 {
	var eur float64
	for _, inv := range investments {
		if inv.IsArchived {
			continue
		}
		eur += convert(inv.CurrentBalance, recordCurrency(inv.Currency, display), EUR)
	}
	return convert(eur, EUR, display)
}

// ProjectCashflow projects the monthly cash flow for the next 12 months.
//
// Every month starts from the same base figures. The scenario scales income
// and operating expenses (not debt payments nor investments), then enabled
// scheduled events of that month are added. Fixed costs are deducted from the
// income to get the surplus, from which the investment contribution is
// decided according to the investment mode. Invested amounts compound monthly
// at MonthlyGrowthRate on top of the active investment balances.
//
// A nil convert uses DefaultRates.
func ProjectCashflow(categories []BudgetCategory, debts []Debt, income IncomeConfig, convert ConvertFunc, display Currency, opts Options) []ProjectionMonth {
	if convert == nil {
		convert = DefaultSnapshot().Convert
	}
	scenario, mode := opts.scenario(), opts.investmentMode()
	incomeFactor, expensesFactor := scenario.factors()
	base := bases(categories, debts, income, convert, display)

	start := startOf(opts)

	var cumulativeBalance float64
	cumulativeInvestment := investedBalance(opts.Investments, convert, display)

	projection := make([]ProjectionMonth, 0, ProjectionMonths)
	for i, month := range date.Months(start, ProjectionMonths) {
		m := ProjectionMonth{
			Label:             month.Label(),
			Month:             month.From,
			MonthIndex:        i,
			Income:            base.income * incomeFactor,
			OperatingExpenses: base.operating * expensesFactor,
			DebtPayments:      base.debt,
			Currency:          display,
			Events:            eventsIn(opts.ScheduledEvents, month),
			Scenario:          scenario,
			InvestmentMode:    mode,
		}
		for _, e := range m.Events {
			amount := convert(e.Amount, recordCurrency(e.Currency, display), display)
			switch e.Type {
			case EventIncome:
				m.Income += amount
			case EventExpense:
				m.OperatingExpenses += amount
			}
		}

		m.Surplus = m.Income - m.OperatingExpenses - m.DebtPayments
		switch mode {
		case InvestFlexible:
			m.InvestmentContribution = max(0, m.Surplus) * opts.flexiblePercent() / 100
		case InvestNone:
			m.InvestmentContribution = 0
		default:
			m.InvestmentContribution = base.investment
		}

		m.NetOperational = m.Surplus
		m.NetCashflow = m.Surplus - m.InvestmentContribution

		cumulativeBalance += m.NetCashflow
		cumulativeInvestment = (cumulativeInvestment + m.InvestmentContribution) * (1 + MonthlyGrowthRate)
		m.CumulativeBalance = cumulativeBalance
		m.CumulativeInvestment = cumulativeInvestment
		m.ProjectedNetWorth = cumulativeBalance + cumulativeInvestment

		projection = append(projection, m)
	}
	return projection
}
