package rebalance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Portfolio is a weighted tree of holdings plus the cash settings that drive
// a rebalancing run. It is built once from configuration, mutated in place by
// the passes, then read for reporting.
type Portfolio struct {
	Name     string
	Currency string // ISO 4217 code, used for formatting only

	Commission CommissionSpec
	Holdings   []Holding

	FreeAssets     Money  // cash not allocated to any holding
	MinFreeAssets  Money  // cash reserve never allocated
	MinTradeVolume Money  // smallest notional a single trade must move
	FreeCommissions *Money // optional commission allowance, for reporting
}

// RestrictSelling forbids selling on every leaf whose flag is still unset.
func (p *Portfolio) RestrictSelling(restrict bool) *Portfolio {
	restrictLeaves(p.Holdings, selling, restrict)
	return p
}

// RestrictBuying forbids buying on every leaf whose flag is still unset.
func (p *Portfolio) RestrictBuying(restrict bool) *Portfolio {
	restrictLeaves(p.Holdings, buying, restrict)
	return p
}

// Validate checks that in every group, and at the portfolio's top level,
// the children's expected weights sum to exactly 1.
func (p *Portfolio) Validate() error {
	return validateWeights(p.Name, p.Holdings)
}

func validateWeights(name string, holdings []Holding) error {
	sum := decimal.Zero
	for _, h := range holdings {
		sum = sum.Add(h.ExpectedWeight().value)
	}
	if len(holdings) > 0 && !sum.Equal(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid weights for %q: they sum to %s, not 100%%", name, Weight{sum})
	}
	for _, h := range holdings {
		if g, ok := h.(*Group); ok {
			if err := validateWeights(g.Name(), g.holdings); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tickers returns the sorted set of instrument tickers in the tree.
func (p *Portfolio) Tickers() []string {
	set := make(map[string]struct{})
	collectTickers(p.Holdings, set)
	tickers := make([]string, 0, len(set))
	for t := range set {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

func collectTickers(holdings []Holding, set map[string]struct{}) {
	for _, h := range holdings {
		switch v := h.(type) {
		case *Group:
			collectTickers(v.holdings, set)
		case *Leaf:
			set[v.ticker] = struct{}{}
		}
	}
}
