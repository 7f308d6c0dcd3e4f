package rebalance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// QuoteProvider resolves instrument tickers to exact decimal prices.
// A provider may resolve only part of the requested tickers; unresolved
// tickers are simply absent from the returned map.
type QuoteProvider interface {
	Name() string
	Quotes(tickers []string) (map[string]decimal.Decimal, error)
}

// ResolvePrices asks each provider in turn for the tickers the previous ones
// could not resolve, in a single bulk request per provider. It fails when
// any ticker is left unresolved.
func ResolvePrices(tickers []string, providers ...QuoteProvider) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(tickers))

	remaining := tickers
	for _, provider := range providers {
		if len(remaining) == 0 {
			break
		}

		quotes, err := provider.Quotes(remaining)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", provider.Name(), err)
		}

		var unresolved []string
		for _, ticker := range remaining {
			if price, ok := quotes[ticker]; ok {
				prices[ticker] = price
			} else {
				unresolved = append(unresolved, ticker)
			}
		}
		remaining = unresolved
	}

	if len(remaining) > 0 {
		return nil, fmt.Errorf("unable to get prices for the following tickers: %s", strings.Join(remaining, ", "))
	}
	return prices, nil
}
