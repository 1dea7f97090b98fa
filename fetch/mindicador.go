package fetch

import (
	"context"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cashflow"
)

/*
	{
	    "version": "1.7.0",
	    "autor": "mindicador.cl",
	    "fecha": "2026-10-16T11:00:00.000Z",
	    "uf": {
	        "codigo": "uf",
	        "nombre": "Unidad de fomento (UF)",
	        "unidad_medida": "Pesos",
	        "fecha": "2026-10-16T03:00:00.000Z",
	        "valor": 39485.65
	    },
	    "dolar": { "codigo": "dolar", ..., "valor": 948.3 },
	    "euro": { "codigo": "euro", ..., "valor": 1102.17 },
	    ...
	}
*/

// Mindicador returns EUR_CLP, CLP_UF and EUR_USD derived from the Chilean
// daily indicators.
func (c *Client) Mindicador(ctx context.Context) (cashflow.Rates, error) {
	var jobj any
	if err := c.getJSON(ctx, c.mindicadorURL, &jobj); err != nil {
		return nil, fmt.Errorf("mindicador.cl: %w", err)
	}
	euro, err := positive(jobj, "$.euro.valor")
	if err != nil {
		return nil, fmt.Errorf("mindicador.cl: %w", err)
	}
	uf, err := positive(jobj, "$.uf.valor")
	if err != nil {
		return nil, fmt.Errorf("mindicador.cl: %w", err)
	}
	rates := cashflow.Rates{cashflow.EURCLP: euro, cashflow.CLPUF: uf}

	// the dollar is optional, EUR_USD can come from another source.
	if dolar, err := positive(jobj, "$.dolar.valor"); err == nil {
		rates[cashflow.EURUSD] = euro / dolar
	} else {
		c.log.Debug().Err(err).Msg("no dollar in mindicador.cl")
	}
	return rates, nil
}

// positive reads a positive number at path.
func positive(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("reading %q: %w", path, err)
	}
	// jsonpath may return a list of one answer, keep the first one.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("reading %q: not a number: %v", path, jval)
	}
	if !(val > 0) {
		return 0, fmt.Errorf("reading %q: not a positive rate: %v", path, val)
	}
	return val, nil
}
