package cashflow

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is a currency code.
type Currency string

// Supported currencies. EUR is the pivot currency.
const (
	EUR Currency = "EUR"
	CLP Currency = "CLP"
	USD Currency = "USD"
	UF  Currency = "UF" // Chilean Unidad de Fomento
)

// Currencies lists the supported currencies, pivot first.
var Currencies = []Currency{EUR, CLP, USD, UF}

// IsSupported reports whether c is one of the supported currencies.
func (c Currency) IsSupported() bool {
	switch c {
	case EUR, CLP, USD, UF:
		return true
	}
	return false
}

func (c Currency) String() string { return string(c) }

// iso returns the ISO 4217 code, UF is known as CLF.
func (c Currency) iso() string {
	if c == UF {
		return "CLF"
	}
	return string(c)
}

// ValidateCurrency returns an error if code is not a supported currency.
//
// Convert never fails on unknown codes, callers that want to reject them
// must check with this function first.
func ValidateCurrency(code string) error {
	if !Currency(code).IsSupported() {
		return fmt.Errorf("unsupported currency %q, want one of %v", code, Currencies)
	}
	return nil
}

// ParseCurrency parses a currency code, case insensitive.
// "CLF" is accepted as UF.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if c == "CLF" {
		c = UF
	}
	if err := ValidateCurrency(string(c)); err != nil {
		return "", err
	}
	return c, nil
}

// FormatAmount formats an amount for display, with the currency's grapheme
// and number of fraction digits.
// Unknown currencies and non finite amounts are printed plainly.
func FormatAmount(amount float64, c Currency) string {
	if money.GetCurrency(c.iso()) == nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strings.TrimSpace(fmt.Sprintf("%.2f %s", amount, c))
	}
	return money.NewFromFloat(amount, c.iso()).Display()
}
