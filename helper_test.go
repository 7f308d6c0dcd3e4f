package rebalance

import "github.com/shopspring/decimal"

// USD is a helper for tests to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// priceMap is a helper for tests to build a price map from consts
func priceMap(m map[string]float64) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(m))
	for ticker, value := range m {
		prices[ticker] = decimal.NewFromFloat(value)
	}
	return prices
}
