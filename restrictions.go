package rebalance

// propagateRestrictions computes, bottom-up, the minimum and maximum total
// value each node can end up with given the per-leaf sell/buy locks.
//
// A selling-restricted leaf cannot go below its current value, a
// buying-restricted leaf cannot go above it. A group's floor is the sum of
// its children's floors, counting only the bounded ones. A group's ceiling
// is the sum of its children's ceilings, but a single unbounded child makes
// the whole group unbounded.
func propagateRestrictions(holdings []Holding) (minValue, maxValue *Money) {
	var maxSum Money
	bounded := 0

	for _, h := range holdings {
		switch v := h.(type) {
		case *Group:
			v.minimumValue, v.maximumValue = propagateRestrictions(v.holdings)
		case *Leaf:
			if restricted(v.sellingRestricted) {
				floor := v.currentValue
				v.minimumValue = &floor
			}
			if restricted(v.buyingRestricted) {
				ceiling := v.currentValue
				v.maximumValue = &ceiling
			}
		}

		b := h.base()
		if b.minimumValue != nil {
			if minValue == nil {
				floor := *b.minimumValue
				minValue = &floor
			} else {
				floor := minValue.Add(*b.minimumValue)
				minValue = &floor
			}
		}
		if b.maximumValue != nil {
			maxSum = maxSum.Add(*b.maximumValue)
			bounded++
		}
	}

	if bounded == len(holdings) && len(holdings) > 0 {
		maxValue = &maxSum
	}
	return minValue, maxValue
}
