package cashflow

import (
	"math"

	"github.com/etnz/cashflow/date"
	"github.com/shopspring/decimal"
)

// ConvertFunc converts an amount between two currencies.
type ConvertFunc func(amount float64, from, to Currency) float64

// Convert converts amount from one currency to another using rates.
//
// All conversions go through EUR. Converting to the same currency returns
// amount unchanged. NaN and infinite amounts convert to 0. Unknown currency
// codes are treated as EUR and reported to the diagnostics logger.
func Convert(amount float64, from, to Currency, rates Rates) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	if from == to {
		return amount
	}
	eur := toEUR(decimal.NewFromFloat(amount), from, rates)
	return fromEUR(eur, to, rates).InexactFloat64()
}

// divisionPrecision is the number of decimal places kept by divisions.
// Amounts below 1e-20 lose precision, far below any money amount.
const divisionPrecision = 40

func toEUR(amount decimal.Decimal, from Currency, rates Rates) decimal.Decimal {
	switch from {
	case EUR:
		return amount
	case CLP:
		return amount.DivRound(rate(rates, EURCLP), divisionPrecision)
	case USD:
		return amount.DivRound(rate(rates, EURUSD), divisionPrecision)
	case UF:
		return amount.Mul(rate(rates, CLPUF)).DivRound(rate(rates, EURCLP), divisionPrecision)
	default:
		diag.Warn().Str("currency", string(from)).Msg("unknown currency, treated as EUR")
		return amount
	}
}

func fromEUR(eur decimal.Decimal, to Currency, rates Rates) decimal.Decimal {
	switch to {
	case EUR:
		return eur
	case CLP:
		return eur.Mul(rate(rates, EURCLP))
	case USD:
		return eur.Mul(rate(rates, EURUSD))
	case UF:
		return eur.Mul(rate(rates, EURCLP)).DivRound(rate(rates, CLPUF), divisionPrecision)
	default:
		diag.Warn().Str("currency", string(to)).Msg("unknown currency, treated as EUR")
		return eur
	}
}

func rate(rates Rates, pair string) decimal.Decimal { return decimal.NewFromFloat(rates.Rate(pair)) }

// Convert converts amount at the current rates.
func (s *Snapshot) Convert(amount float64, from, to Currency) float64 {
	return Convert(amount, from, to, s.currentRates())
}

// ConvertAt converts amount at the rates applicable on day, see RatesFor.
func (s *Snapshot) ConvertAt(amount float64, from, to Currency, day date.Date) float64 {
	return Convert(amount, from, to, s.RatesFor(day))
}

// Converter returns a ConvertFunc at the current rates.
func (s *Snapshot) Converter() ConvertFunc { return s.Convert }

// ConverterAt returns a ConvertFunc at the rates applicable on day.
func (s *Snapshot) ConverterAt(day date.Date) ConvertFunc {
	return converterFor(s.RatesFor(day))
}
