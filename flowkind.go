package cashflow

import (
	"fmt"
	"strings"
)

// FlowKind is the economic role of a budget category.
type FlowKind string

const (
	Income                 FlowKind = "INCOME"
	OperatingExpense       FlowKind = "OPERATING_EXPENSE"
	DebtPayment            FlowKind = "DEBT_PAYMENT"
	InvestmentContribution FlowKind = "INVESTMENT_CONTRIBUTION"
)

// ParseFlowKind parses a flow kind tag, case insensitive.
func ParseFlowKind(s string) (FlowKind, error) {
	k := FlowKind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case Income, OperatingExpense, DebtPayment, InvestmentContribution:
		return k, nil
	}
	return "", fmt.Errorf("unknown flow kind %q", s)
}

// debtKeywords identify debt payments in legacy categories without a flow kind.
// Matched as lower case substrings of the group or the name.
var debtKeywords = []string{
	"debt", "deuda",
	"loan", "préstamo", "prestamo",
	"mortgage", "hipoteca",
	"cae", // Crédito con Aval del Estado, Chilean student loan
	"credit card", "tarjeta de crédito", "tarjeta de credito",
	"crédito", "credito",
}

// ClassifyFlowKind returns the flow kind of a category.
//
// In order of precedence: the explicit FlowKind, the legacy Type ("income",
// "investment"), debt keywords in the Group or Name, and OperatingExpense.
// The keyword match is a best effort for legacy records, new records should
// carry an explicit FlowKind.
func ClassifyFlowKind(c BudgetCategory) FlowKind {
	if c.FlowKind != "" {
		return c.FlowKind
	}
	switch strings.ToLower(c.Type) {
	case "income":
		return Income
	case "investment":
		return InvestmentContribution
	}
	group, name := strings.ToLower(c.Group), strings.ToLower(c.Name)
	for _, kw := range debtKeywords {
		if strings.Contains(group, kw) || strings.Contains(name, kw) {
			return DebtPayment
		}
	}
	return OperatingExpense
}
