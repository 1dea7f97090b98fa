package cashflow

import "github.com/etnz/cashflow/date"

// BudgetCategory is a monthly budget line.
//
// FlowKind should be set on new records, Type is the legacy classification
// kept for older data, see ClassifyFlowKind.
type BudgetCategory struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Group    string   `json:"group,omitempty"`
	Type     string   `json:"type,omitempty"`
	FlowKind FlowKind `json:"flowKind,omitempty"`
	Budget   float64  `json:"budget"`
	Currency Currency `json:"currency"`
}

// Debt is a tracked debt and its monthly payment.
type Debt struct {
	Name           string   `json:"name"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	Currency       Currency `json:"currency"`
	Balance        float64  `json:"balance,omitempty"`
}

// IncomeConfig is the recurring monthly income.
type IncomeConfig struct {
	MonthlyIncome float64  `json:"monthlyIncome"`
	Currency      Currency `json:"currency"`
}

// Investment is the balance held on an investment platform.
type Investment struct {
	Name           string   `json:"name"`
	Platform       string   `json:"platform,omitempty"`
	CurrentBalance float64  `json:"currentBalance"`
	Currency       Currency `json:"currency"`
	IsArchived     bool     `json:"isArchived,omitempty"`
}

// EventType is the direction of a ScheduledEvent.
type EventType string

const (
	EventIncome  EventType = "income"
	EventExpense EventType = "expense"
)

// ScheduledEvent is a one-off income or expense on a given date.
type ScheduledEvent struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Date     date.Date `json:"date"`
	Amount   float64   `json:"amount"`
	Currency Currency  `json:"currency"`
	Type     EventType `json:"type"`
	Enabled  *bool     `json:"enabled,omitempty"` // nil means enabled
}

// IsEnabled reports whether the event applies, events are enabled unless explicitly disabled.
func (e ScheduledEvent) IsEnabled() bool { return e.Enabled == nil || *e.Enabled }
