package rebalance

// rebalanceHoldings converts corrected weights into whole share counts,
// post-order, and returns the total resulting value of the forest.
//
// A leaf trades only when its current weight differs from its target. The
// desired share count is floored to whole shares; when that changes the
// count, the commission for the delta is deducted from buying power and the
// count floored again. A trade that would violate a sell/buy restriction or
// move less than the minimum trade volume is blocked instead of committed.
func rebalanceHoldings(holdings []Holding, expectedTotal Money, spec CommissionSpec, minTradeVolume Money, obs Observer) Money {
	var total Money

	for _, h := range holdings {
		expected := h.Weight().Of(expectedTotal)

		switch v := h.(type) {
		case *Group:
			v.value = rebalanceHoldings(v.holdings, expected, spec, minTradeVolume, obs)
		case *Leaf:
			if !v.shares.Equal(v.currentShares) {
				// the distribution pass runs after this one, nothing else trades
				panic("leaf share count diverged from its snapshot before rebalancing")
			}

			currentWeight := WeightOf(v.currentValue, expectedTotal)

			if !currentWeight.Equal(v.weight) {
				rebalanced := expected.DivPrice(v.price).Floor()

				if !rebalanced.Equal(v.currentShares) {
					commission := v.commissionFor(rebalanced, spec)
					rebalanced = expected.Sub(commission).DivPrice(v.price).Floor()
				}

				if !rebalanced.Equal(v.currentShares) {
					switch {
					case rebalanced.LessThan(v.currentShares) && restricted(v.sellingRestricted):
						v.onSellBlocked("selling is restricted", obs)
					case rebalanced.GreaterThan(v.currentShares) && restricted(v.buyingRestricted):
						v.onBuyBlocked("buying is restricted", obs)
					case v.price.Mul(rebalanced.Sub(v.currentShares).Abs()).LessThan(minTradeVolume):
						if rebalanced.LessThan(v.currentShares) {
							v.onSellBlocked("min trade volume restriction", obs)
						} else {
							v.onBuyBlocked("min trade volume restriction", obs)
						}
					default:
						v.change("rebalancing", rebalanced, spec, obs)
					}
				}
			}
		}

		total = total.Add(h.Value())
	}

	return total
}

// totalCommissions sums the accumulated fees over the forest.
func totalCommissions(holdings []Holding) Money {
	var total Money
	for _, h := range holdings {
		switch v := h.(type) {
		case *Group:
			total = total.Add(totalCommissions(v.holdings))
		case *Leaf:
			total = total.Add(v.commission)
		}
	}
	return total
}
