package rebalance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Result summarizes a rebalancing run.
type Result struct {
	Value       Money // total value allocated to holdings
	FreeAssets  Money // cash left after distribution, reserve included
	Commissions Money // total fees charged for the run
}

// Rebalance runs the full pipeline over the portfolio tree: valuation,
// restriction propagation, selling then buying weight correction, share
// rebalancing and free assets distribution. The tree is mutated in place;
// prices must map every ticker of the tree to its exact decimal price.
//
// A nil observer is allowed and means no trace.
func (p *Portfolio) Rebalance(prices map[string]decimal.Decimal, obs Observer) (Result, error) {
	return p.calculate(prices, false, obs)
}

// Preview values every leaf at a unit price and skips the restriction
// passes, producing a weights-only view of the target allocation: the
// portfolio's free assets stand for the total to allocate.
func (p *Portfolio) Preview() (Result, error) {
	prices := make(map[string]decimal.Decimal)
	for _, ticker := range p.Tickers() {
		prices[ticker] = decimal.NewFromInt(1)
	}
	if _, err := p.calculate(prices, true, nil); err != nil {
		return Result{}, err
	}
	return Result{
		Value:       p.FreeAssets,
		FreeAssets:  M(0, p.Currency),
		Commissions: M(0, p.Currency),
	}, nil
}

func (p *Portfolio) calculate(prices map[string]decimal.Decimal, preview bool, obs Observer) (Result, error) {
	if obs == nil {
		obs = nopObserver{}
	}

	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	var unresolved []string
	for _, ticker := range p.Tickers() {
		if _, ok := prices[ticker]; !ok {
			unresolved = append(unresolved, ticker)
		}
	}
	if len(unresolved) > 0 {
		return Result{}, fmt.Errorf("no price resolved for: %s", strings.Join(unresolved, ", "))
	}

	currentValue := valueHoldings(p.Holdings, prices, p.Currency)
	totalAssets := currentValue.Add(p.FreeAssets)
	rebalanceTo := totalAssets.Sub(p.MinFreeAssets)

	if !preview {
		propagateRestrictions(p.Holdings)
		correctForSelling(p.Holdings, rebalanceTo, obs)
		correctForBuying(p.Holdings, rebalanceTo, obs)
	}

	rebalancedValue := rebalanceHoldings(p.Holdings, rebalanceTo, p.Commission, p.MinTradeVolume, obs)
	commissions := totalCommissions(p.Holdings)
	freeAssets := totalAssets.Sub(rebalancedValue).Sub(commissions)
	toDistribute := freeAssets.Sub(p.MinFreeAssets)

	// Two outer passes: first only holdings below their expected value may
	// buy, then anyone. Each pass repeats until a full inner pass leaves the
	// cash unchanged.
	for _, underfundedOnly := range []bool{true, false} {
		for toDistribute.IsPositive() {
			remaining := distributeFreeAssets(p.Holdings, rebalancedValue, toDistribute, p.Commission, p.MinTradeVolume, underfundedOnly, obs)
			if remaining.Equal(toDistribute) {
				break
			}
			toDistribute = remaining
		}
	}

	freeAssets = toDistribute.Add(p.MinFreeAssets)

	var value Money
	for _, h := range p.Holdings {
		value = value.Add(h.Value())
	}

	return Result{
		Value:       value.withCurrency(p.Currency),
		FreeAssets:  freeAssets.withCurrency(p.Currency),
		Commissions: totalCommissions(p.Holdings).withCurrency(p.Currency),
	}, nil
}
