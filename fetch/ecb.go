package fetch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/etnz/cashflow"
)

// ECB returns EUR_USD from the European Central Bank daily reference rates.
func (c *Client) ECB(ctx context.Context) (cashflow.Rates, error) {
	body, err := c.getBody(ctx, c.ecbURL)
	if err != nil {
		return nil, fmt.Errorf("ECB: %w", err)
	}
	usd, err := parseECB(body, "USD")
	if err != nil {
		return nil, fmt.Errorf("ECB: %w", err)
	}
	return cashflow.Rates{cashflow.EURUSD: usd}, nil
}

// parseECB extracts the rate of currency from an eurofxref document:
//
//	<gesmes:Envelope ...>
//	  <Cube>
//	    <Cube time="2026-10-16">
//	      <Cube currency="USD" rate="1.0945"/>
func parseECB(body []byte, currency string) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}
	cube := doc.FindElement(fmt.Sprintf("//Cube[@currency='%s']", currency))
	if cube == nil {
		return 0, fmt.Errorf("no %s rate found in XML", currency)
	}
	rate, err := strconv.ParseFloat(cube.SelectAttrValue("rate", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s rate: %w", currency, err)
	}
	if !(rate > 0) {
		return 0, fmt.Errorf("invalid %s rate: %v", currency, rate)
	}
	return rate, nil
}
