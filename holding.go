package rebalance

import "fmt"

// Holding is a node in the portfolio tree: either a tradable instrument
// (Leaf) or a named weighted group of sub-holdings (Group).
type Holding interface {
	// Name returns the display name; for a leaf it includes the ticker.
	Name() string
	// ShortName returns the ticker for a leaf, the name for a group.
	ShortName() string
	// ExpectedWeight is the target weight set at construction.
	ExpectedWeight() Weight
	// Weight is the working weight, adjusted by the correction passes.
	Weight() Weight
	// Value is the allocation result for this node.
	Value() Money
	// CurrentValue is the valuation snapshot before rebalancing.
	CurrentValue() Money
	// SellBlocked reports that a desired sell could not execute.
	SellBlocked() bool
	// BuyBlocked reports that a desired buy could not execute.
	BuyBlocked() bool

	base() *holding
}

// holding carries the fields common to leaves and groups.
type holding struct {
	name      string
	shortName string

	expectedWeight Weight // immutable after construction
	weight         Weight // mutated by the correction passes

	value        Money
	currentValue Money

	// value floor/ceiling implied by restrictions, nil when unbounded
	minimumValue *Money
	maximumValue *Money

	sellBlocked bool
	buyBlocked  bool
}

func (h *holding) Name() string           { return h.name }
func (h *holding) ShortName() string      { return h.shortName }
func (h *holding) ExpectedWeight() Weight { return h.expectedWeight }
func (h *holding) Weight() Weight         { return h.weight }
func (h *holding) Value() Money           { return h.value }
func (h *holding) CurrentValue() Money    { return h.currentValue }
func (h *holding) SellBlocked() bool      { return h.sellBlocked }
func (h *holding) BuyBlocked() bool       { return h.buyBlocked }
func (h *holding) base() *holding         { return h }

func (h *holding) setWeight(reason string, w Weight, obs Observer) {
	if !w.Equal(h.weight) {
		obs.WeightChanged(h.shortName, reason, h.weight, w)
	}
	h.weight = w
}

// Leaf is a tradable instrument holding.
type Leaf struct {
	holding

	ticker string

	currentShares Quantity // snapshot at the start of the run
	shares        Quantity // working share count
	price         Money    // assigned once per run by the valuation pass
	commission    Money    // accumulated fee for the run

	// tri-state: nil is unset and may be filled by a group-level restriction
	sellingRestricted *bool
	buyingRestricted  *bool
}

// NewLeaf creates an instrument holding with its target weight and the
// current number of shares held.
func NewLeaf(name, ticker string, weight Weight, shares Quantity) *Leaf {
	return &Leaf{
		holding: holding{
			name:           fmt.Sprintf("%s (%s)", name, ticker),
			shortName:      ticker,
			expectedWeight: weight,
			weight:         weight,
		},
		ticker:        ticker,
		currentShares: shares,
		shares:        shares,
	}
}

func (l *Leaf) Ticker() string          { return l.ticker }
func (l *Leaf) Shares() Quantity        { return l.shares }
func (l *Leaf) CurrentShares() Quantity { return l.currentShares }
func (l *Leaf) Price() Money            { return l.price }
func (l *Leaf) Commission() Money       { return l.commission }

// RestrictSelling forbids (or explicitly allows) decreasing this leaf's
// share count during the run.
func (l *Leaf) RestrictSelling(restrict bool) *Leaf {
	l.sellingRestricted = &restrict
	return l
}

// RestrictBuying forbids (or explicitly allows) increasing this leaf's
// share count during the run.
func (l *Leaf) RestrictBuying(restrict bool) *Leaf {
	l.buyingRestricted = &restrict
	return l
}

// change commits a trade: it recomputes the commission for the whole run's
// delta, updates the working share count and the resulting value.
func (l *Leaf) change(reason string, shares Quantity, spec CommissionSpec, obs Observer) {
	if !shares.Equal(l.shares) {
		obs.SharesChanged(l.shortName, reason, l.shares, shares)
	}
	l.commission = l.commissionFor(shares, spec)
	l.shares = shares
	l.value = l.price.Mul(shares)
}

// commissionFor returns the fee for moving from the snapshot share count to
// the given one.
func (l *Leaf) commissionFor(shares Quantity, spec CommissionSpec) Money {
	return spec.Calculate(shares.Sub(l.currentShares).Abs(), l.price)
}

func (l *Leaf) onSellBlocked(reason string, obs Observer) {
	obs.TradeBlocked(l.shortName, "sell", reason)
	l.sellBlocked = true
}

func (l *Leaf) onBuyBlocked(reason string, obs Observer) {
	obs.TradeBlocked(l.shortName, "buy", reason)
	l.buyBlocked = true
}

// Group is a named weighted collection of sub-holdings. It owns its children
// exclusively.
type Group struct {
	holding
	holdings []Holding
}

// NewGroup creates a group holding with its target weight and children.
func NewGroup(name string, weight Weight, holdings ...Holding) *Group {
	return &Group{
		holding: holding{
			name:           name,
			shortName:      name,
			expectedWeight: weight,
			weight:         weight,
		},
		holdings: holdings,
	}
}

// Holdings returns the ordered list of children.
func (g *Group) Holdings() []Holding { return g.holdings }

// RestrictSelling forbids selling on every leaf of the subtree whose flag is
// still unset; leaves configured explicitly keep their own setting.
func (g *Group) RestrictSelling(restrict bool) *Group {
	restrictLeaves(g.holdings, selling, restrict)
	return g
}

// RestrictBuying forbids buying on every leaf of the subtree whose flag is
// still unset; leaves configured explicitly keep their own setting.
func (g *Group) RestrictBuying(restrict bool) *Group {
	restrictLeaves(g.holdings, buying, restrict)
	return g
}

type side int

const (
	selling side = iota
	buying
)

// restrictLeaves fills the restriction flag of every leaf in the forest that
// does not have one yet.
func restrictLeaves(holdings []Holding, s side, restrict bool) {
	for _, h := range holdings {
		switch v := h.(type) {
		case *Group:
			restrictLeaves(v.holdings, s, restrict)
		case *Leaf:
			switch s {
			case selling:
				if v.sellingRestricted == nil {
					v.sellingRestricted = &restrict
				}
			case buying:
				if v.buyingRestricted == nil {
					v.buyingRestricted = &restrict
				}
			}
		}
	}
}

// restricted interprets a tri-state restriction flag.
func restricted(flag *bool) bool { return flag != nil && *flag }
