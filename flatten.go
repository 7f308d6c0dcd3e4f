package rebalance

import "sort"

// Flatten replaces the portfolio's grouped tree with a single list of
// leaves, their weights scaled by every ancestor group's, sorted by value
// descending. Meant for reporting, after a run completed.
func (p *Portfolio) Flatten() {
	p.Holdings = flatten(p.Holdings, W(1), W(1))
	sort.SliceStable(p.Holdings, func(i, j int) bool {
		return p.Holdings[i].Value().GreaterThan(p.Holdings[j].Value())
	})
}

func flatten(holdings []Holding, expectedWeight, weight Weight) []Holding {
	var flat []Holding

	for _, h := range holdings {
		b := h.base()
		b.expectedWeight = b.expectedWeight.Mul(expectedWeight)
		b.weight = b.weight.Mul(weight)

		if g, ok := h.(*Group); ok {
			flat = append(flat, flatten(g.holdings, g.expectedWeight, g.weight)...)
		} else {
			flat = append(flat, h)
		}
	}

	return flat
}
