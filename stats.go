package cashflow

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a projection.
type Stats struct {
	DeficitMonths            int     `json:"deficitMonths"`            // months with a negative net cash flow
	OperationalDeficitMonths int     `json:"operationalDeficitMonths"` // months with a negative net operational cash flow
	AvgNetCashflow           float64 `json:"avgNetCashflow"`
	AvgNetOperational        float64 `json:"avgNetOperational"`
	FinalBalance             float64 `json:"finalBalance"`
	MinBalance               float64 `json:"minBalance"`
	MaxBalance               float64 `json:"maxBalance"`
	FinalNetWorth            float64 `json:"finalNetWorth"`
	TotalIncome              float64 `json:"totalIncome"`
	TotalExpenses            float64 `json:"totalExpenses"`
	TotalDebtPayments        float64 `json:"totalDebtPayments"`
	TotalInvestment          float64 `json:"totalInvestment"`

	// IsHealthy is true when no month has an operational deficit and the final
	// balance is not negative.
	IsHealthy bool `json:"isHealthy"`

	// BreakEvenMonth is the index of the first month with a non-negative
	// cumulative balance, nil if there is none.
	BreakEvenMonth *int `json:"breakEvenMonth"`
}

// ProjectionStats computes the summary statistics of a projection.
// An empty projection yields zero stats, not healthy.
func ProjectionStats(projection []ProjectionMonth) Stats {
	var s Stats
	if len(projection) == 0 {
		return s
	}

	n := len(projection)
	net := make([]float64, n)
	operational := make([]float64, n)
	balance := make([]float64, n)
	for i, m := range projection {
		net[i], operational[i], balance[i] = m.NetCashflow, m.NetOperational, m.CumulativeBalance

		if m.NetCashflow < 0 {
			s.DeficitMonths++
		}
		if m.NetOperational < 0 {
			s.OperationalDeficitMonths++
		}
		if s.BreakEvenMonth == nil && m.CumulativeBalance >= 0 {
			month := i
			s.BreakEvenMonth = &month
		}
		s.TotalIncome += m.Income
		s.TotalExpenses += m.OperatingExpenses
		s.TotalDebtPayments += m.DebtPayments
		s.TotalInvestment += m.InvestmentContribution
	}

	last := projection[n-1]
	s.AvgNetCashflow = stat.Mean(net, nil)
	s.AvgNetOperational = stat.Mean(operational, nil)
	s.FinalBalance = last.CumulativeBalance
	s.FinalNetWorth = last.ProjectedNetWorth
	s.MinBalance = floats.Min(balance)
	s.MaxBalance = floats.Max(balance)
	s.IsHealthy = s.OperationalDeficitMonths == 0 && s.FinalBalance >= 0
	return s
}
