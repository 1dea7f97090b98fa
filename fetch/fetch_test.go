package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/etnz/cashflow"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mindicadorJSON = `{
  "version": "1.7.0",
  "autor": "mindicador.cl",
  "uf": {"codigo": "uf", "unidad_medida": "Pesos", "valor": 39500},
  "dolar": {"codigo": "dolar", "unidad_medida": "Pesos", "valor": 950},
  "euro": {"codigo": "euro", "unidad_medida": "Pesos", "valor": 1045}
}`

const ecbXML = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<gesmes:Sender>
		<gesmes:name>European Central Bank</gesmes:name>
	</gesmes:Sender>
	<Cube>
		<Cube time='2026-10-16'>
			<Cube currency='USD' rate='1.0945'/>
			<Cube currency='JPY' rate='162.38'/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

// serve returns a test server answering body, and a counter of requests.
func serve(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestMindicador(t *testing.T) {
	ts, _ := serve(t, http.StatusOK, mindicadorJSON)
	c := NewClient(Config{MindicadorURL: ts.URL}, zerolog.Nop())

	got, err := c.Mindicador(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1045.0, got[cashflow.EURCLP])
	assert.Equal(t, 39500.0, got[cashflow.CLPUF])
	assert.InDelta(t, 1045.0/950.0, got[cashflow.EURUSD], 1e-12)
}

func TestMindicador_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, mindicadorJSON},
		{"not json", http.StatusOK, "<html>"},
		{"missing euro", http.StatusOK, `{"uf": {"valor": 39500}}`},
		{"missing uf", http.StatusOK, `{"euro": {"valor": 1045}}`},
		{"string value", http.StatusOK, `{"euro": {"valor": "1045"}, "uf": {"valor": 39500}}`},
		{"zero value", http.StatusOK, `{"euro": {"valor": 0}, "uf": {"valor": 39500}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts, _ := serve(t, tc.status, tc.body)
			c := NewClient(Config{MindicadorURL: ts.URL}, zerolog.Nop())
			got, err := c.Mindicador(context.Background())
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestMindicador_NoDollar(t *testing.T) {
	ts, _ := serve(t, http.StatusOK, `{"euro": {"valor": 1045}, "uf": {"valor": 39500}}`)
	c := NewClient(Config{MindicadorURL: ts.URL}, zerolog.Nop())
	got, err := c.Mindicador(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, got, cashflow.EURUSD)
}

func TestECB(t *testing.T) {
	ts, _ := serve(t, http.StatusOK, ecbXML)
	c := NewClient(Config{ECBURL: ts.URL}, zerolog.Nop())

	got, err := c.ECB(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cashflow.Rates{cashflow.EURUSD: 1.0945}, got)
}

func TestParseECB_Errors(t *testing.T) {
	for name, body := range map[string]string{
		"not xml":      "{}",
		"no usd":       `<Envelope><Cube><Cube time='2026-10-16'><Cube currency='JPY' rate='162.38'/></Cube></Cube></Envelope>`,
		"invalid rate": `<Envelope><Cube><Cube currency='USD' rate='n/a'/></Cube></Envelope>`,
		"zero rate":    `<Envelope><Cube><Cube currency='USD' rate='0'/></Cube></Envelope>`,
	} {
		if got, err := parseECB([]byte(body), "USD"); err == nil {
			t.Errorf("parseECB(%s) = %v, want error", name, got)
		}
	}
}

func TestLatest(t *testing.T) {
	mindicador, _ := serve(t, http.StatusOK, mindicadorJSON)
	ecb, _ := serve(t, http.StatusOK, ecbXML)
	down, _ := serve(t, http.StatusServiceUnavailable, "")

	testCases := []struct {
		name     string
		cfg      Config
		want     cashflow.Rates
		wantFail bool
	}{
		{
			name: "both sources, ECB dollar wins",
			cfg:  Config{MindicadorURL: mindicador.URL, ECBURL: ecb.URL},
			want: cashflow.Rates{cashflow.EURCLP: 1045, cashflow.CLPUF: 39500, cashflow.EURUSD: 1.0945},
		},
		{
			name: "ECB down",
			cfg:  Config{MindicadorURL: mindicador.URL, ECBURL: down.URL},
			want: cashflow.Rates{cashflow.EURCLP: 1045, cashflow.CLPUF: 39500, cashflow.EURUSD: 1045.0 / 950.0},
		},
		{
			name: "mindicador down",
			cfg:  Config{MindicadorURL: down.URL, ECBURL: ecb.URL},
			want: cashflow.Rates{cashflow.EURUSD: 1.0945},
		},
		{
			name:     "all down",
			cfg:      Config{MindicadorURL: down.URL, ECBURL: down.URL},
			wantFail: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewClient(tc.cfg, zerolog.Nop()).Latest(context.Background())
			if tc.wantFail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tc.want))
			for pair, v := range tc.want {
				assert.InDelta(t, v, got[pair], 1e-12, pair)
			}
		})
	}
}

func TestLatest_Canceled(t *testing.T) {
	ts, _ := serve(t, http.StatusOK, mindicadorJSON)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(Config{MindicadorURL: ts.URL, ECBURL: ts.URL}, zerolog.Nop()).Latest(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDailyCache(t *testing.T) {
	ts, hits := serve(t, http.StatusOK, mindicadorJSON)
	dir := t.TempDir()

	for range 3 {
		c := NewClient(Config{MindicadorURL: ts.URL, CacheDir: dir}, zerolog.Nop())
		got, err := c.Mindicador(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1045.0, got[cashflow.EURCLP])
	}
	assert.Equal(t, int32(1), hits.Load(), "responses are cached for the day")
}

func TestDailyCache_ErrorsAreNotCached(t *testing.T) {
	ts, hits := serve(t, http.StatusInternalServerError, "")
	c := NewClient(Config{MindicadorURL: ts.URL, CacheDir: t.TempDir()}, zerolog.Nop())
	for range 2 {
		_, err := c.Mindicador(context.Background())
		assert.Error(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}
