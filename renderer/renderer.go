// Package renderer turns a post-run portfolio tree into markdown reports.
// It only reads the tree; the engine in package rebalance never prints.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/rebalance"
)

// ShowMarkdown renders the weights-only view of a portfolio: every holding
// with its target weight and the value that weight represents. The preview
// result's value stands for the total to allocate.
func ShowMarkdown(p *rebalance.Portfolio, result rebalance.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	writeShowHoldings(&b, p.Holdings, result.Value, 0)
	return b.String()
}

// RebalanceMarkdown renders the full rebalancing report: per holding the
// current position, the trade to make, the resulting allocation and the
// expected one, then the run totals.
func RebalanceMarkdown(p *rebalance.Portfolio, result rebalance.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	writeRebalanceHoldings(&b, p.Holdings, result.Value, 0)

	fmt.Fprintf(&b, "\n**Total value:** %s\n\n", result.Value)

	freeAssets := result.FreeAssets.String()
	if result.FreeAssets.LessThan(p.MinFreeAssets) {
		freeAssets += " ⚠ below the reserve"
	}
	fmt.Fprintf(&b, "**Free assets:** %s\n\n", freeAssets)

	commissions := result.Commissions.String()
	if p.FreeCommissions != nil && result.Commissions.GreaterThan(*p.FreeCommissions) {
		commissions += " ⚠ above the allowance"
	}
	fmt.Fprintf(&b, "**Commissions:** %s\n", commissions)

	return b.String()
}

// byWeight returns the holdings sorted by working weight, heaviest first.
func byWeight(holdings []rebalance.Holding) []rebalance.Holding {
	sorted := make([]rebalance.Holding, len(holdings))
	copy(sorted, holdings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight().GreaterThan(sorted[j].Weight())
	})
	return sorted
}

func writeShowHoldings(b *strings.Builder, holdings []rebalance.Holding, expectedTotal rebalance.Money, depth int) {
	for _, h := range byWeight(holdings) {
		title := fmt.Sprintf("%s* **%s** - %s (%s)",
			strings.Repeat("  ", depth), h.Name(),
			h.ExpectedWeight(), h.ExpectedWeight().Of(expectedTotal))

		if g, ok := h.(*rebalance.Group); ok {
			fmt.Fprintln(b, title+":")
			writeShowHoldings(b, g.Holdings(), h.Weight().Of(expectedTotal), depth+1)
		} else {
			fmt.Fprintln(b, title)
		}
	}
}

func writeRebalanceHoldings(b *strings.Builder, holdings []rebalance.Holding, expectedTotal rebalance.Money, depth int) {
	for _, h := range byWeight(holdings) {
		title := strings.Repeat("  ", depth) + "* **" + h.Name() + "**"

		if h.SellBlocked() {
			title += " `[sell blocked]`"
		}
		if h.BuyBlocked() {
			title += " `[buy blocked]`"
		}
		title += " -"

		leaf, isLeaf := h.(*rebalance.Leaf)
		if isLeaf {
			title += fmt.Sprintf(" %ss", leaf.CurrentShares())
		}

		currentWeight := rebalance.WeightOf(h.CurrentValue(), expectedTotal)
		title += fmt.Sprintf(" %s (%s)", currentWeight, h.CurrentValue())

		if !h.Value().Equal(h.CurrentValue()) {
			if isLeaf {
				delta := leaf.Shares().Sub(leaf.CurrentShares())
				change := h.Value().Sub(h.CurrentValue())
				title += fmt.Sprintf(" %ss (%s)", delta.SignedString(), change.Abs())
			}
			title += fmt.Sprintf(" → %s (%s)",
				rebalance.WeightOf(h.Value(), expectedTotal), h.Value())
		}

		title += fmt.Sprintf(" / %s (%s)",
			h.ExpectedWeight(), h.ExpectedWeight().Of(expectedTotal))

		if g, ok := h.(*rebalance.Group); ok {
			fmt.Fprintln(b, title+":")
			writeRebalanceHoldings(b, g.Holdings(), h.Weight().Of(expectedTotal), depth+1)
		} else {
			fmt.Fprintln(b, title)
		}
	}
}
