package cashflow

import "github.com/rs/zerolog"

// diag receives diagnostics from otherwise silent soft failures, like unknown
// currency codes.
var diag = zerolog.Nop()

// SetLogger sets the logger used for diagnostics. It is not safe to call it
// concurrently with other functions of this package.
func SetLogger(log zerolog.Logger) {
	diag = log.With().Str("component", "cashflow").Logger()
}
