package rebalance

// The correction passes redistribute working weights among siblings so that
// no sibling's implied value (expected total x weight) violates its value
// floor or ceiling, while unconstrained siblings absorb the shortfall or
// excess proportionally to their current weight.
//
// Both passes iterate to a fixed point at each level: clamping a sibling to
// its own bound changes which siblings are pinned, so the level is
// re-examined. The retry only happens when a clamp occurred and correctable
// siblings remain; every retry strictly shrinks the correctable set, which
// bounds the loop by the number of siblings.
//
// An infeasible constraint set is not an error: the pass returns false and
// the affected holdings surface later as blocked trades in the rebalancer.

// correctForSelling lowers the weights of unconstrained siblings when pinned
// siblings need more than their implied value to honor a selling lock.
func correctForSelling(holdings []Holding, expectedTotal Money, obs Observer) bool {
	for {
		succeeded := true
		var overuse Money
		var correctable []Holding

		for _, h := range holdings {
			implied := h.Weight().Of(expectedTotal)
			if floor := h.base().minimumValue; floor != nil && implied.LessThanOrEqual(*floor) {
				overuse = overuse.Add(floor.Sub(implied))
			} else {
				correctable = append(correctable, h)
			}
		}

		if overuse.IsPositive() {
			if len(correctable) > 0 {
				var correctableValue Money
				for _, h := range correctable {
					correctableValue = correctableValue.Add(h.Weight().Of(expectedTotal))
				}

				multiplicator := WeightOf(correctableValue.Sub(overuse), correctableValue)

				for _, h := range correctable {
					corrected := h.Weight().Mul(multiplicator)

					if floor := h.base().minimumValue; floor != nil && corrected.Of(expectedTotal).LessThan(*floor) {
						corrected = WeightOf(*floor, expectedTotal)
						succeeded = false
					}

					h.base().setWeight("selling restrictions", corrected, obs)
				}
			} else {
				succeeded = false
			}
		}

		if !succeeded && len(correctable) > 0 {
			continue
		}

		for _, h := range holdings {
			if g, ok := h.(*Group); ok {
				succeeded = correctForSelling(g.holdings, g.weight.Of(expectedTotal), obs) && succeeded
			}
		}

		return succeeded
	}
}

// correctForBuying raises the weights of unconstrained siblings when pinned
// siblings would receive more than a buying lock allows.
func correctForBuying(holdings []Holding, expectedTotal Money, obs Observer) bool {
	for {
		succeeded := true
		var extra Money
		var correctable []Holding

		for _, h := range holdings {
			implied := h.Weight().Of(expectedTotal)
			if ceiling := h.base().maximumValue; ceiling != nil && implied.GreaterThanOrEqual(*ceiling) {
				extra = extra.Add(implied.Sub(*ceiling))
			} else {
				correctable = append(correctable, h)
			}
		}

		if extra.IsPositive() {
			if len(correctable) > 0 {
				var correctableValue Money
				for _, h := range correctable {
					correctableValue = correctableValue.Add(h.Weight().Of(expectedTotal))
				}

				multiplicator := WeightOf(correctableValue.Add(extra), correctableValue)

				for _, h := range correctable {
					corrected := h.Weight().Mul(multiplicator)

					if ceiling := h.base().maximumValue; ceiling != nil && corrected.Of(expectedTotal).GreaterThan(*ceiling) {
						corrected = WeightOf(*ceiling, expectedTotal)
						succeeded = false
					}

					h.base().setWeight("buying restrictions", corrected, obs)
				}
			} else {
				succeeded = false
			}
		}

		if !succeeded && len(correctable) > 0 {
			continue
		}

		for _, h := range holdings {
			if g, ok := h.(*Group); ok {
				succeeded = correctForBuying(g.holdings, g.weight.Of(expectedTotal), obs) && succeeded
			}
		}

		return succeeded
	}
}
