package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etnz/cashflow"
	"github.com/rs/zerolog"
)

// Default source addresses.
const (
	DefaultMindicadorURL = "https://mindicador.cl/api"
	DefaultECBURL        = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"
)

// Config configures a Client. Zero values use the defaults.
type Config struct {
	MindicadorURL string
	ECBURL        string
	// CacheDir holds the daily response cache, empty disables it.
	CacheDir string
	Timeout  time.Duration // per request, default 10s
}

// Client fetches rates from mindicador.cl and the ECB.
type Client struct {
	mindicadorURL string
	ecbURL        string
	client        *http.Client
	log           zerolog.Logger
}

// NewClient returns a Client for cfg.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	c := &Client{
		mindicadorURL: cfg.MindicadorURL,
		ecbURL:        cfg.ECBURL,
		client:        &http.Client{Timeout: cfg.Timeout},
		log:           log.With().Str("component", "fetch").Logger(),
	}
	if c.mindicadorURL == "" {
		c.mindicadorURL = DefaultMindicadorURL
	}
	if c.ecbURL == "" {
		c.ecbURL = DefaultECBURL
	}
	if c.client.Timeout == 0 {
		c.client.Timeout = 10 * time.Second
	}
	if cfg.CacheDir != "" {
		c.client.Transport = &dailyCache{base: http.DefaultTransport, dir: cfg.CacheDir, log: c.log}
	}
	return c
}

// Latest returns the latest rates from all sources.
//
// mindicador.cl provides EUR_CLP, CLP_UF and a cross EUR_USD, the ECB
// reference EUR_USD is preferred when available. It fails only when no
// source answered.
func (c *Client) Latest(ctx context.Context) (cashflow.Rates, error) {
	rates := make(cashflow.Rates)
	var errs []error

	clp, err := c.Mindicador(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("mindicador.cl unavailable")
		errs = append(errs, err)
	}
	for pair, v := range clp {
		rates[pair] = v
	}

	usd, err := c.ECB(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("ECB unavailable")
		errs = append(errs, err)
	}
	for pair, v := range usd {
		rates[pair] = v
	}

	if len(rates) == 0 {
		return nil, fmt.Errorf("no rate source available: %w", errors.Join(errs...))
	}
	c.log.Info().Interface("rates", rates).Msg("fetched latest rates")
	return rates, nil
}

// getBody performs a GET on addr and returns the body of a 200 response.
func (c *Client) getBody(ctx context.Context, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// getJSON performs a GET on addr and decodes the JSON response into data.
func (c *Client) getJSON(ctx context.Context, addr string, data any) error {
	body, err := c.getBody(ctx, addr)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
