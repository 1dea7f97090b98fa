package cashflow

import "github.com/etnz/cashflow/date"

// testRates are the rates used across tests unless stated otherwise.
var testRates = Rates{EURCLP: 1000, EURUSD: 1.1, CLPUF: 36000}

// convertAt is a helper for tests to get a ConvertFunc at fixed rates.
func convertAt(r Rates) ConvertFunc { return converterFor(r) }

// oct2026 is a fixed projection start.
var oct2026 = date.New(2026, 10, 16)

// ptr is a helper for tests to take the address of a constant.
func ptr[T any](v T) *T { return &v }
