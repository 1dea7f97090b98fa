package cashflow

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"math"
	"time"

	"github.com/etnz/cashflow/date"
	"github.com/google/uuid"
)

// Rate pair names.
const (
	EURCLP = "EUR_CLP" // CLP per EUR
	EURUSD = "EUR_USD" // USD per EUR
	CLPUF  = "CLP_UF"  // CLP per UF
	UFCLP  = "UF_CLP"  // alias of CLP_UF
)

// Pairs lists the rate pairs a Snapshot always carries.
var Pairs = []string{EURCLP, EURUSD, CLPUF}

// DefaultRates are used for any pair without a usable value.
var DefaultRates = Rates{EURCLP: 1050, EURUSD: 1.09, CLPUF: 36000}

// Update sources.
const (
	SourceManual = "manual"
	SourceAuto   = "api-auto" // automatic fetch, also recorded once a day in the history
)

// maxUpdateLog is the number of RateUpdate kept in a Snapshot.
const maxUpdateLog = 10

// Rates maps a pair name, like "EUR_CLP", to its rate.
type Rates map[string]float64

// usable reports whether v can be used as a divisor rate.
func usable(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// Rate returns the rate of pair, or its default when missing or unusable.
//
// CLP_UF and UF_CLP are interchangeable, CLP_UF is preferred.
func (r Rates) Rate(pair string) float64 {
	if pair == UFCLP {
		pair = CLPUF
	}
	if v, ok := r[pair]; ok && usable(v) {
		return v
	}
	if pair == CLPUF {
		if v, ok := r[UFCLP]; ok && usable(v) {
			return v
		}
	}
	return DefaultRates[pair]
}

// withDefaults returns a copy of r where every supported pair has a usable value.
func (r Rates) withDefaults() Rates {
	out := maps.Clone(r)
	if out == nil {
		out = make(Rates, len(Pairs))
	}
	for _, pair := range Pairs {
		out[pair] = r.Rate(pair)
	}
	return out
}

// RateUpdate is an entry of the audit log of rate updates.
type RateUpdate struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Source string    `json:"source"`
	Rates  Rates     `json:"rates"`
}

// Snapshot holds current and historical exchange rates.
//
// A Snapshot is immutable: Update and Import return a new Snapshot and leave
// the receiver untouched, so it can be shared freely.
// The zero value is a snapshot with DefaultRates and no history.
type Snapshot struct {
	current     Rates // nil in the zero value, Rates.Rate falls back to DefaultRates
	history     date.History[Rates]
	lastUpdated time.Time
	updateLog   []RateUpdate
}

// NewSnapshot returns a Snapshot with the given current rates and an empty history.
// Missing pairs get their DefaultRates value.
func NewSnapshot(current Rates) *Snapshot {
	return &Snapshot{current: current.withDefaults()}
}

// DefaultSnapshot returns a Snapshot with DefaultRates.
func DefaultSnapshot() *Snapshot { return NewSnapshot(nil) }

// clone returns a copy sharing nothing mutable with s.
func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		current:     s.current.withDefaults(),
		history:     *s.history.Clone(),
		lastUpdated: s.lastUpdated,
		updateLog:   append([]RateUpdate(nil), s.updateLog...),
	}
}

// Current returns a copy of the current rates.
func (s *Snapshot) Current() Rates { return s.current.withDefaults() }

// LastUpdated returns the time of the last Update, zero if never updated.
func (s *Snapshot) LastUpdated() time.Time { return s.lastUpdated }

// UpdateLog returns the most recent updates, oldest first.
func (s *Snapshot) UpdateLog() []RateUpdate { return append([]RateUpdate(nil), s.updateLog...) }

// History iterates over the historical rates in chronological order.
func (s *Snapshot) History() iter.Seq2[date.Date, Rates] { return s.history.Values() }

// HistoryLen returns the number of days with recorded historical rates.
func (s *Snapshot) HistoryLen() int { return s.history.Len() }

// RatesFor returns the rates applicable on day: the exact historical entry if
// any, otherwise the closest prior entry, otherwise the current rates.
// The returned rates are shared with s and must not be modified.
func (s *Snapshot) RatesFor(day date.Date) Rates {
	if r, ok := s.history.ValueAsOf(day); ok {
		return r
	}
	return s.currentRates()
}

// currentRates returns the current rates without copying them.
func (s *Snapshot) currentRates() Rates {
	if s.current == nil {
		return DefaultRates
	}
	return s.current
}

// RatesForString is like RatesFor for an ISO date string. An invalid date
// yields the current rates.
func (s *Snapshot) RatesForString(day string) Rates {
	on, err := date.Parse(day)
	if err != nil {
		diag.Warn().Str("date", day).Msg("invalid rate date, using current rates")
		return s.currentRates()
	}
	return s.RatesFor(on)
}

// Update returns a new Snapshot where the provided rates overwrite the current ones.
//
// Only provided keys change, values that are not positive finite numbers are
// ignored. UF_CLP is stored as CLP_UF. When source is SourceAuto the resulting
// current rates are recorded in the history for now's day, unless that day
// already has an entry.
// Every update is recorded in the update log, which keeps the last 10 entries.
func (s *Snapshot) Update(rates Rates, source string, now time.Time) *Snapshot {
	next := s.clone()
	applied := make(Rates, len(rates))
	for pair, v := range rates {
		if pair == UFCLP {
			pair = CLPUF
		}
		if !usable(v) {
			diag.Warn().Str("pair", pair).Float64("rate", v).Msg("ignoring unusable rate")
			continue
		}
		next.current[pair] = v
		applied[pair] = v
	}

	if source == SourceAuto {
		today := date.Of(now)
		if !next.history.AppendIfAbsent(today, maps.Clone(next.current)) {
			diag.Debug().Stringer("day", today).Msg("history already recorded for today")
		}
	}

	next.lastUpdated = now
	next.updateLog = append(next.updateLog, RateUpdate{
		ID:     uuid.NewString(),
		At:     now,
		Source: source,
		Rates:  applied,
	})
	if n := len(next.updateLog); n > maxUpdateLog {
		next.updateLog = next.updateLog[n-maxUpdateLog:]
	}
	return next
}

// RatesImport is a payload of historical rates.
type RatesImport struct {
	Current Rates               `json:"current,omitempty"`
	History map[date.Date]Rates `json:"history"`
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Imported int    `json:"imported"` // number of history days imported
}

// Import returns a new Snapshot with data merged in.
//
// Incoming history entries overwrite existing entries for the same day, and
// the current rates are replaced when data carries some.
// History days are normalized, so "2024-1-5" and "2024-01-05" are the same key
// and the stored history is always keyed by sortable YYYY-MM-DD dates.
// If data has no history, the receiver is returned unchanged with a failed result.
func (s *Snapshot) Import(data RatesImport) (*Snapshot, ImportResult) {
	if data.History == nil {
		return s, ImportResult{Message: "invalid rates data: missing history"}
	}
	next := s.clone()
	for on, r := range data.History {
		next.history.Append(on, maps.Clone(r))
	}
	if len(data.Current) > 0 {
		next.current = data.Current.withDefaults()
	}
	return next, ImportResult{
		Success:  true,
		Message:  fmt.Sprintf("imported %d days of historical rates", len(data.History)),
		Imported: len(data.History),
	}
}

// ImportJSON decodes a RatesImport payload and imports it.
//
// Malformed payloads (not a JSON object, no history object, invalid dates)
// return the receiver unchanged and a failed result.
func (s *Snapshot) ImportJSON(payload []byte) (*Snapshot, ImportResult) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return s, ImportResult{Message: "invalid rates data: not a JSON object"}
	}
	if h, ok := raw["history"]; !ok || len(h) == 0 || h[0] != '{' {
		return s, ImportResult{Message: "invalid rates data: missing history"}
	}
	var data RatesImport
	if err := json.Unmarshal(payload, &data); err != nil {
		return s, ImportResult{Message: fmt.Sprintf("invalid rates data: %v", err)}
	}
	return s.Import(data)
}

// MarshalJSON encodes the snapshot for storage.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	history := make(map[date.Date]Rates, s.history.Len())
	for on, r := range s.history.Values() {
		history[on] = r
	}
	var w jsonObjectWriter
	w.Append("current", s.currentRates())
	w.Append("history", history)
	if !s.lastUpdated.IsZero() {
		w.Append("lastUpdated", s.lastUpdated)
	}
	w.Optional("updateLog", s.updateLog)
	return w.MarshalJSON()
}

// UnmarshalJSON decodes a snapshot encoded by MarshalJSON.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var aux struct {
		Current     Rates               `json:"current"`
		History     map[date.Date]Rates `json:"history"`
		LastUpdated time.Time           `json:"lastUpdated"`
		UpdateLog   []RateUpdate        `json:"updateLog"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decoding rates snapshot: %w", err)
	}
	s.current = aux.Current.withDefaults()
	s.history = date.History[Rates]{}
	for on, r := range aux.History {
		s.history.Append(on, r)
	}
	s.lastUpdated = aux.LastUpdated
	s.updateLog = aux.UpdateLog
	if n := len(s.updateLog); n > maxUpdateLog {
		s.updateLog = s.updateLog[n-maxUpdateLog:]
	}
	return nil
}
