package cashflow

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// ProjectionCache memoizes budget projections for a limited time.
//
// Entries are keyed on a hash of the budget, the rates and the options, so a
// cached result is always the one a fresh computation would return for the
// same inputs. It is safe for concurrent use.
type ProjectionCache struct {
	c *cache.Cache
}

// NewProjectionCache returns a cache whose entries expire after ttl.
func NewProjectionCache(ttl time.Duration) *ProjectionCache {
	return &ProjectionCache{c: cache.New(ttl, 2*ttl)}
}

// key hashes the projection inputs. ok is false if they cannot be encoded.
func (pc *ProjectionCache) key(kind string, b *Budget, rates Rates, opts Options) (string, bool) {
	data, err := json.Marshal(struct {
		Kind    string
		Budget  *Budget
		Rates   Rates
		Options Options
	}{kind, b, rates, opts})
	if err != nil {
		diag.Debug().Err(err).Msg("projection inputs cannot be hashed, cache bypassed")
		return "", false
	}
	return fmt.Sprintf("%x", sha1.Sum(data)), true
}

// Project returns b.Project at rates, from the cache when available.
// The returned projection may be shared and must not be modified.
func (pc *ProjectionCache) Project(b *Budget, rates Rates, opts Options) []ProjectionMonth {
	opts.Start = startOf(opts)
	key, ok := pc.key("project", b, rates, opts)
	if ok {
		if v, found := pc.c.Get(key); found {
			return v.([]ProjectionMonth)
		}
	}
	p := b.Project(converterFor(rates), opts)
	if ok {
		pc.c.SetDefault(key, p)
	}
	return p
}

// CompareScenarios returns b.CompareScenarios at rates, from the cache when available.
func (pc *ProjectionCache) CompareScenarios(b *Budget, rates Rates, opts Options) map[Scenario]Comparison {
	opts.Start = startOf(opts)
	key, ok := pc.key("scenarios", b, rates, opts)
	if ok {
		if v, found := pc.c.Get(key); found {
			return v.(map[Scenario]Comparison)
		}
	}
	c := b.CompareScenarios(converterFor(rates), opts)
	if ok {
		pc.c.SetDefault(key, c)
	}
	return c
}

// Len returns the number of cached entries, expired ones included until they are purged.
func (pc *ProjectionCache) Len() int { return pc.c.ItemCount() }

// converterFor returns a ConvertFunc at fixed rates.
func converterFor(rates Rates) ConvertFunc {
	return func(amount float64, from, to Currency) float64 { return Convert(amount, from, to, rates) }
}
