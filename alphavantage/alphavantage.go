// Package alphavantage fetches batch stock quotes from the Alpha Vantage
// API. It resolves as many tickers as the API knows in a single request;
// unknown tickers are left for the next provider in the chain.
package alphavantage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Provider implements rebalance.QuoteProvider against Alpha Vantage.
type Provider struct {
	apiKey  string
	baseURL string
}

// New returns a provider using the given API key.
func New(apiKey string) *Provider {
	return &Provider{apiKey: apiKey, baseURL: defaultBaseURL}
}

func (p *Provider) Name() string { return "alphavantage" }

// Quotes fetches the latest price for the given tickers in one batch
// request.
//
//	{
//	  "Meta Data": { ... },
//	  "Stock Quotes": [
//	    { "1. symbol": "MSFT", "2. price": "104.3900", ... }
//	  ]
//	}
func (p *Provider) Quotes(tickers []string) (map[string]decimal.Decimal, error) {
	if len(tickers) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := url.Values{}
	query.Set("function", "BATCH_STOCK_QUOTES")
	query.Set("symbols", strings.Join(tickers, ","))
	query.Set("apikey", p.apiKey)
	addr := p.baseURL + "/query?" + query.Encode()

	// the payload: prices are decimal strings, keep them exact
	type jquote struct {
		Symbol string          `json:"1. symbol"`
		Price  decimal.Decimal `json:"2. price"`
	}
	var content struct {
		Error  string   `json:"Error Message"`
		Quotes []jquote `json:"Stock Quotes"`
	}

	if err := jwget(newDailyCachingClient(), addr, &content); err != nil {
		return nil, err
	}
	if content.Error != "" {
		return nil, fmt.Errorf("unable to get tickers info: %s", content.Error)
	}

	prices := make(map[string]decimal.Decimal, len(content.Quotes))
	for _, quote := range content.Quotes {
		prices[quote.Symbol] = quote.Price
	}
	return prices, nil
}
