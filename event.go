package cashflow

import (
	"errors"
	"strings"

	"github.com/etnz/cashflow/date"
)

// Validation is the outcome of a record validation, with every failure found.
type Validation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Err returns the validation failures joined as an error, nil when valid.
func (v Validation) Err() error {
	errs := make([]error, 0, len(v.Errors))
	for _, msg := range v.Errors {
		errs = append(errs, errors.New(msg))
	}
	return errors.Join(errs...)
}

// ValidateScheduledEvent checks that the event has a name, a date, a positive
// amount and a known type. It reports all failures at once.
func ValidateScheduledEvent(e ScheduledEvent) Validation {
	var errs []string
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "name is required")
	}
	if e.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if !(e.Amount > 0) {
		errs = append(errs, "amount must be greater than 0")
	}
	if e.Type != EventIncome && e.Type != EventExpense {
		errs = append(errs, `type must be "income" or "expense"`)
	}
	return Validation{IsValid: len(errs) == 0, Errors: errs}
}

// eventsIn returns the enabled events falling in month.
func eventsIn(events []ScheduledEvent, month date.Range) []ScheduledEvent {
	var in []ScheduledEvent
	for _, e := range events {
		if e.IsEnabled() && month.Contains(e.Date) {
			in = append(in, e)
		}
	}
	return in
}
