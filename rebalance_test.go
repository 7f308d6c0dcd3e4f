package rebalance

import (
	"strings"
	"testing"
)

func TestRebalanceToTargets(t *testing.T) {
	a := NewLeaf("A", "AAA", W(0.6), Q(100))
	b := NewLeaf("B", "BBB", W(0.4), Q(0))
	p := &Portfolio{
		Name:          "P",
		Currency:      "USD",
		Holdings:      []Holding{a, b},
		FreeAssets:    USD(0),
		MinFreeAssets: USD(0),
	}

	result, err := p.Rebalance(priceMap(map[string]float64{"AAA": 10, "BBB": 10}), nil)
	if err != nil {
		t.Fatalf("Rebalance() unexpected error = %v", err)
	}

	if !a.Shares().Equal(Q(60)) {
		t.Errorf("A shares = %v, want 60", a.Shares())
	}
	if !b.Shares().Equal(Q(40)) {
		t.Errorf("B shares = %v, want 40", b.Shares())
	}
	if !result.Value.Equal(USD(1000)) {
		t.Errorf("total value = %v, want $1000", result.Value)
	}
	if !result.FreeAssets.IsZero() {
		t.Errorf("free assets = %v, want $0", result.FreeAssets)
	}
	if !result.Commissions.IsZero() {
		t.Errorf("commissions = %v, want $0", result.Commissions)
	}
}

func TestRebalanceSellRestricted(t *testing.T) {
	locked := NewLeaf("A", "AAA", W(0.4), Q(50)).RestrictSelling(true)
	b := NewLeaf("B", "BBB", W(0.6), Q(0))
	p := &Portfolio{
		Name:       "P",
		Currency:   "USD",
		Holdings:   []Holding{locked, b},
		FreeAssets: USD(0),
	}

	result, err := p.Rebalance(priceMap(map[string]float64{"AAA": 20, "BBB": 10}), nil)
	if err != nil {
		t.Fatalf("Rebalance() unexpected error = %v", err)
	}

	// A holds the whole $1000; the target sale down to 40% is blocked and
	// there is nothing left for B to buy.
	if !locked.Shares().Equal(Q(50)) {
		t.Errorf("A shares = %v, want unchanged 50", locked.Shares())
	}
	if !locked.SellBlocked() {
		t.Error("A should report its blocked sale")
	}
	if !b.Shares().IsZero() {
		t.Errorf("B shares = %v, want 0", b.Shares())
	}
	if !result.Value.Equal(USD(1000)) {
		t.Errorf("total value = %v, want $1000", result.Value)
	}
}

func TestRebalanceMinTradeVolume(t *testing.T) {
	a := NewLeaf("A", "AAA", W(0.6), Q(100))
	b := NewLeaf("B", "BBB", W(0.4), Q(0))
	p := &Portfolio{
		Name:           "P",
		Currency:       "USD",
		Holdings:       []Holding{a, b},
		FreeAssets:     USD(0),
		MinTradeVolume: USD(500),
	}

	if _, err := p.Rebalance(priceMap(map[string]float64{"AAA": 10, "BBB": 10}), nil); err != nil {
		t.Fatalf("Rebalance() unexpected error = %v", err)
	}

	// both trades would move $400, below the $500 minimum
	if !a.Shares().Equal(Q(100)) || !a.SellBlocked() {
		t.Errorf("A = %v shares, blocked %v; want 100 shares, sell blocked", a.Shares(), a.SellBlocked())
	}
	if !b.Shares().IsZero() || !b.BuyBlocked() {
		t.Errorf("B = %v shares, blocked %v; want 0 shares, buy blocked", b.Shares(), b.BuyBlocked())
	}
}

func TestRebalanceUnresolvedPrice(t *testing.T) {
	p := &Portfolio{
		Name:     "P",
		Currency: "USD",
		Holdings: []Holding{NewLeaf("A", "AAA", W(1), Q(0))},
	}

	_, err := p.Rebalance(priceMap(map[string]float64{}), nil)
	if err == nil {
		t.Fatal("Rebalance() expected an error on a missing price")
	}
	if !strings.Contains(err.Error(), "no price resolved for: AAA") {
		t.Errorf("Rebalance() error = %q, want it to name the unpriced ticker", err)
	}
}

func TestRebalanceInvalidWeights(t *testing.T) {
	p := &Portfolio{
		Name:     "P",
		Currency: "USD",
		Holdings: []Holding{
			NewLeaf("A", "AAA", W(0.6), Q(0)),
			NewLeaf("B", "BBB", W(0.6), Q(0)),
		},
	}

	if _, err := p.Rebalance(priceMap(map[string]float64{"AAA": 10, "BBB": 10}), nil); err == nil {
		t.Fatal("Rebalance() expected an error on weights summing to 120%")
	}
}

func TestRebalanceSnapshotPanic(t *testing.T) {
	leaf := NewLeaf("A", "AAA", W(1), Q(10))
	holdings := []Holding{leaf}
	valueHoldings(holdings, priceMap(map[string]float64{"AAA": 10}), "USD")
	leaf.shares = Q(5)

	defer func() {
		if recover() == nil {
			t.Error("rebalanceHoldings() should panic on a diverged share snapshot")
		}
	}()
	rebalanceHoldings(holdings, USD(100), CommissionSpec{}, USD(0), nopObserver{})
}
