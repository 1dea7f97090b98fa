// Package cmd implements the cfp command line application, projecting a
// personal budget cash flow.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/fetch"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&projectCmd{}, "projection")
	c.Register(&compareCmd{}, "projection")
	c.Register(&validateCmd{}, "projection")

	c.Register(&convertCmd{}, "rates")
	c.Register(&ratesCmd{}, "rates")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	budgetFile    = flag.String("budget-file", "", "Path to the budget file (JSON). Defaults to $CFP_BUDGET_FILE or budget.json")
	ratesFile     = flag.String("rates-file", "", "Path to the exchange rates file (JSON). Defaults to $CFP_RATES_FILE or rates.json")
	logLevel      = flag.String("log-level", "", "Log level: debug, info, warn, error. Defaults to $LOG_LEVEL or warn")
	mindicadorURL = flag.String("mindicador-url", "", "mindicador.cl API address. Defaults to $CFP_MINDICADOR_URL or "+fetch.DefaultMindicadorURL)
	ecbURL        = flag.String("ecb-url", "", "ECB daily reference rates address. Defaults to $CFP_ECB_URL or "+fetch.DefaultECBURL)
	cacheDir      = flag.String("cache-dir", "", "Directory of the daily HTTP cache, empty disables it. Defaults to $CFP_CACHE_DIR")
	rawMarkdown   = flag.Bool("markdown", false, "Print raw markdown instead of rendering it for the terminal")
)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// log is the application logger, configured by Setup.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// setting returns the flag value, or the environment variable, or the default.
func setting(flagValue, env, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// LoadEnv loads the environment variables from the .env file in the current
// directory, if any. Variables already set are not overridden.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: cannot load .env: %v\n", err)
	}
}

// Setup configures the logger from the flags, it must be called after flag.Parse.
func Setup() error {
	level, err := zerolog.ParseLevel(strings.ToLower(setting(*logLevel, "LOG_LEVEL", "warn")))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log = log.Level(level)
	cashflow.SetLogger(log)
	return nil
}

func budgetFilename() string { return setting(*budgetFile, "CFP_BUDGET_FILE", "budget.json") }
func ratesFilename() string  { return setting(*ratesFile, "CFP_RATES_FILE", "rates.json") }

// DecodeBudget reads the app budget file.
func DecodeBudget() (*cashflow.Budget, error) {
	return cashflow.DecodeBudgetFile(budgetFilename())
}

// DecodeRates reads the app rates file. A missing file yields the default rates.
func DecodeRates() (*cashflow.Snapshot, error) {
	filename := ratesFilename()
	s, err := cashflow.DecodeSnapshotFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", filename).Msg("rates file does not exist, using default rates")
		return cashflow.DefaultSnapshot(), nil
	}
	return s, err
}

// EncodeRates writes the app rates file.
func EncodeRates(s *cashflow.Snapshot) error {
	return cashflow.EncodeSnapshotFile(ratesFilename(), s)
}

// newFetcher returns a rates fetcher configured from the flags.
func newFetcher() *fetch.Client {
	return fetch.NewClient(fetch.Config{
		MindicadorURL: setting(*mindicadorURL, "CFP_MINDICADOR_URL", ""),
		ECBURL:        setting(*ecbURL, "CFP_ECB_URL", ""),
		CacheDir:      setting(*cacheDir, "CFP_CACHE_DIR", ""),
	}, log)
}
