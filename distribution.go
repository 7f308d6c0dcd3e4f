package rebalance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// distributeFreeAssets spends leftover cash on additional whole shares and
// returns the cash the forest could not absorb.
//
// Siblings are visited most-underfunded first, by relative shortfall from
// their expected value. When underfundedOnly is set, leaves already at or
// above their expected value are skipped. A purchase is sized to the
// available cash, clamped so the whole run's trade still satisfies the
// minimum trade volume, and re-sized once for the marginal commission of the
// larger trade.
func distributeFreeAssets(holdings []Holding, expectedTotal, freeAssets Money, spec CommissionSpec, minTradeVolume Money, underfundedOnly bool, obs Observer) Money {
	// relative shortfall from the expected value; a holding expecting
	// nothing sorts by how little it already has.
	shortfall := func(h Holding) decimal.Decimal {
		expected := h.ExpectedWeight().Of(expectedTotal)
		if expected.IsZero() {
			return h.Value().value.Neg()
		}
		return expected.Sub(h.Value()).value.Div(expected.value)
	}

	sorted := make([]Holding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return shortfall(sorted[i]).GreaterThan(shortfall(sorted[j]))
	})

	for _, h := range sorted {
		if !freeAssets.IsPositive() {
			return freeAssets
		}

		expected := h.ExpectedWeight().Of(expectedTotal)

		switch v := h.(type) {
		case *Group:
			freeAssets = distributeFreeAssets(v.holdings, expected, freeAssets, spec, minTradeVolume, underfundedOnly, obs)

			var value Money
			for _, child := range v.holdings {
				value = value.Add(child.Value())
			}
			v.value = value
		case *Leaf:
			if underfundedOnly && !v.value.LessThan(expected) {
				continue
			}

			// a bigger trade replaces the previous commission, so the
			// previously charged fee is buying power again
			previousCommission := v.commission
			extraShares := freeAssets.Add(previousCommission).DivPrice(v.price).Floor()
			extraShares = limitExtraShares(v, extraShares, minTradeVolume)

			if extraShares.IsPositive() {
				commission := spec.Calculate(v.shares.Add(extraShares).Sub(v.currentShares).Abs(), v.price)
				extraShares = freeAssets.Add(previousCommission).Sub(commission).DivPrice(v.price).Floor()
				extraShares = limitExtraShares(v, extraShares, minTradeVolume)
			}

			if extraShares.IsPositive() {
				resultShares := v.shares.Add(extraShares)

				blocked := resultShares.LessThan(v.currentShares) && restricted(v.sellingRestricted) ||
					resultShares.GreaterThan(v.currentShares) && restricted(v.buyingRestricted) ||
					v.price.Mul(resultShares.Sub(v.currentShares).Abs()).LessThan(minTradeVolume)

				if !blocked {
					v.change("free assets distribution", resultShares, spec, obs)
					freeAssets = freeAssets.Sub(v.price.Mul(extraShares).Sub(v.commission.Sub(previousCommission)))
				}
			}
		}
	}

	return freeAssets
}

// limitExtraShares caps a candidate purchase at the smallest size that keeps
// the whole run's trade above the minimum trade volume, and at least one
// share.
func limitExtraShares(l *Leaf, extraShares Quantity, minTradeVolume Money) Quantity {
	minTradeShares := minTradeVolume.DivPrice(l.price).Ceil()

	minExtraShares := minTradeShares
	if l.shares.GreaterThan(l.currentShares) {
		// shares already bought this run count toward the minimum
		minExtraShares = minExtraShares.Sub(l.shares.Sub(l.currentShares))
	}
	if minExtraShares.LessThan(Q(1)) {
		minExtraShares = Q(1)
	}

	if extraShares.LessThan(minExtraShares) {
		return extraShares
	}
	return minExtraShares
}
