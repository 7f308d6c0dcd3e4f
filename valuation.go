package rebalance

import "github.com/shopspring/decimal"

// valueHoldings computes the current value of every node from prices,
// bottom-up, and initializes the working value to it. Prices must cover
// every ticker in the forest.
func valueHoldings(holdings []Holding, prices map[string]decimal.Decimal, currency string) Money {
	total := M(0, currency)
	for _, h := range holdings {
		switch v := h.(type) {
		case *Group:
			v.currentValue = valueHoldings(v.holdings, prices, currency)
			v.value = v.currentValue
		case *Leaf:
			v.price = M(prices[v.ticker], currency)
			v.currentValue = v.price.Mul(v.currentShares)
			v.value = v.currentValue
		}
		total = total.Add(h.CurrentValue())
	}
	return total
}
