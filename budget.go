package cashflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Budget bundles the records a projection is computed from.
type Budget struct {
	DisplayCurrency Currency         `json:"displayCurrency,omitempty"`
	Income          IncomeConfig     `json:"income"`
	Categories      []BudgetCategory `json:"categories"`
	Debts           []Debt           `json:"debts,omitempty"`
	ScheduledEvents []ScheduledEvent `json:"scheduledEvents,omitempty"`
	Investments     []Investment     `json:"investments,omitempty"`
}

// Display returns the display currency, EUR when unset.
func (b *Budget) Display() Currency {
	if b.DisplayCurrency == "" {
		return EUR
	}
	return b.DisplayCurrency
}

// options completes opts with the budget's events and investments.
func (b *Budget) options(opts Options) Options {
	if opts.ScheduledEvents == nil {
		opts.ScheduledEvents = b.ScheduledEvents
	}
	if opts.Investments == nil {
		opts.Investments = b.Investments
	}
	return opts
}

// Project runs ProjectCashflow on the budget.
func (b *Budget) Project(convert ConvertFunc, opts Options) []ProjectionMonth {
	return ProjectCashflow(b.Categories, b.Debts, b.Income, convert, b.Display(), b.options(opts))
}

// CompareScenarios runs CompareScenarios on the budget.
func (b *Budget) CompareScenarios(convert ConvertFunc, opts Options) map[Scenario]Comparison {
	return CompareScenarios(b.Categories, b.Debts, b.Income, convert, b.Display(), b.options(opts))
}

// CompareInvestmentModes runs CompareInvestmentModes on the budget.
func (b *Budget) CompareInvestmentModes(convert ConvertFunc, opts Options) map[InvestmentMode]Comparison {
	return CompareInvestmentModes(b.Categories, b.Debts, b.Income, convert, b.Display(), b.options(opts))
}

// Validate checks currencies and scheduled events and returns all failures.
//
// Projections do not require a valid budget, unknown currencies are treated
// as EUR. Validate is for callers that want to report them.
func (b *Budget) Validate() error {
	var errs []error
	check := func(what string, c Currency) {
		if c == "" {
			return
		}
		if err := ValidateCurrency(string(c)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}
	check("display currency", b.DisplayCurrency)
	check("income", b.Income.Currency)
	for _, c := range b.Categories {
		check(fmt.Sprintf("category %q", c.Name), c.Currency)
		if c.FlowKind != "" {
			if _, err := ParseFlowKind(string(c.FlowKind)); err != nil {
				errs = append(errs, fmt.Errorf("category %q: %w", c.Name, err))
			}
		}
	}
	for _, d := range b.Debts {
		check(fmt.Sprintf("debt %q", d.Name), d.Currency)
	}
	for _, inv := range b.Investments {
		check(fmt.Sprintf("investment %q", inv.Name), inv.Currency)
	}
	for i, e := range b.ScheduledEvents {
		check(fmt.Sprintf("event %q", e.Name), e.Currency)
		if err := ValidateScheduledEvent(e).Err(); err != nil {
			errs = append(errs, fmt.Errorf("event #%d %q: %w", i+1, e.Name, err))
		}
	}
	return errors.Join(errs...)
}

// DecodeBudget reads a JSON budget.
func DecodeBudget(r io.Reader) (*Budget, error) {
	var b Budget
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding budget: %w", err)
	}
	return &b, nil
}

// EncodeBudget writes b as indented JSON.
func EncodeBudget(w io.Writer, b *Budget) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// DecodeBudgetFile reads a JSON budget file.
func DecodeBudgetFile(filename string) (*Budget, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := DecodeBudget(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return b, nil
}

// EncodeBudgetFile writes b to filename.
func EncodeBudgetFile(filename string, b *Budget) error {
	return writeFile(filename, func(w io.Writer) error { return EncodeBudget(w, b) })
}

// DecodeSnapshotFile reads a snapshot file written by EncodeSnapshotFile.
func DecodeSnapshotFile(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	s := new(Snapshot)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// EncodeSnapshotFile writes s to filename as indented JSON.
func EncodeSnapshotFile(filename string, s *Snapshot) error {
	return writeFile(filename, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	})
}

// writeFile writes to a temporary file renamed over filename, so that a
// failure never leaves a truncated file.
func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), filename)
}
