package rebalance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// This file decodes the static portfolio definition: a JSON document holding
// one or more portfolios, their fee schedule, cash settings and holding
// tree. Weights are percentage strings ("60%"), amounts are decimal strings
// so no precision is lost in transit.
//
// The weight-sum invariant (children of every group sum to 100%) is
// enforced here, at load time.

// to parse a json, we use dedicated local structs with tag annotations.

type jcommission struct {
	Minimum        string  `json:"minimum"`
	Percent        *string `json:"percent"`
	PerShare       *string `json:"per_share"`
	MaximumPercent *string `json:"maximum_percent"`
}

type jholding struct {
	Name              string     `json:"name"`
	Weight            string     `json:"weight"`
	Ticker            string     `json:"ticker"`
	Shares            *int64     `json:"shares"`
	SellingRestricted *bool      `json:"selling_restricted"`
	BuyingRestricted  *bool      `json:"buying_restricted"`
	Holdings          []jholding `json:"holdings"`
}

type jportfolio struct {
	Name            string      `json:"name"`
	Currency        string      `json:"currency"`
	Commission      jcommission `json:"commission"`
	FreeAssets      string      `json:"free_assets"`
	MinFreeAssets   string      `json:"min_free_assets"`
	MinTradeVolume  string      `json:"min_trade_volume"`
	FreeCommissions *string     `json:"free_commissions"`
	Holdings        []jholding  `json:"holdings"`
}

// DecodePortfolios reads a JSON array of portfolio definitions and builds
// the validated portfolio trees.
func DecodePortfolios(r io.Reader) ([]*Portfolio, error) {
	var jportfolios []jportfolio

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jportfolios); err != nil {
		return nil, fmt.Errorf("format error in portfolio definition: %w", err)
	}

	portfolios := make([]*Portfolio, 0, len(jportfolios))
	for _, jp := range jportfolios {
		p, err := jp.portfolio()
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, nil
}

func (jp jportfolio) portfolio() (*Portfolio, error) {
	if money.GetCurrency(jp.Currency) == nil {
		return nil, fmt.Errorf("invalid portfolio %q: unknown currency %q", jp.Name, jp.Currency)
	}

	spec, err := jp.Commission.spec(jp.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio %q: %w", jp.Name, err)
	}

	p := &Portfolio{
		Name:       jp.Name,
		Currency:   jp.Currency,
		Commission: spec,
	}

	if p.FreeAssets, err = ParseMoney(jp.FreeAssets, jp.Currency); err != nil {
		return nil, fmt.Errorf("invalid portfolio %q: free_assets: %w", jp.Name, err)
	}
	if p.MinFreeAssets, err = ParseMoney(jp.MinFreeAssets, jp.Currency); err != nil {
		return nil, fmt.Errorf("invalid portfolio %q: min_free_assets: %w", jp.Name, err)
	}
	p.MinTradeVolume = M(0, jp.Currency)
	if jp.MinTradeVolume != "" {
		if p.MinTradeVolume, err = ParseMoney(jp.MinTradeVolume, jp.Currency); err != nil {
			return nil, fmt.Errorf("invalid portfolio %q: min_trade_volume: %w", jp.Name, err)
		}
	}
	if jp.FreeCommissions != nil {
		allowance, err := ParseMoney(*jp.FreeCommissions, jp.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid portfolio %q: free_commissions: %w", jp.Name, err)
		}
		p.FreeCommissions = &allowance
	}

	for _, jh := range jp.Holdings {
		h, err := jh.holding()
		if err != nil {
			return nil, fmt.Errorf("invalid portfolio %q: %w", jp.Name, err)
		}
		p.Holdings = append(p.Holdings, h)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (jc jcommission) spec(currency string) (CommissionSpec, error) {
	var spec CommissionSpec
	var err error

	if spec.Minimum, err = ParseMoney(jc.Minimum, currency); err != nil {
		return spec, fmt.Errorf("commission: minimum: %w", err)
	}
	if jc.Percent != nil {
		percent, err := decimal.NewFromString(*jc.Percent)
		if err != nil {
			return spec, fmt.Errorf("commission: percent: %w", err)
		}
		spec.Percent = &percent
	}
	if jc.PerShare != nil {
		perShare, err := ParseMoney(*jc.PerShare, currency)
		if err != nil {
			return spec, fmt.Errorf("commission: per_share: %w", err)
		}
		spec.PerShare = &perShare
	}
	if jc.MaximumPercent != nil {
		maximum, err := decimal.NewFromString(*jc.MaximumPercent)
		if err != nil {
			return spec, fmt.Errorf("commission: maximum_percent: %w", err)
		}
		spec.MaximumPercent = &maximum
	}
	return spec, nil
}

func (jh jholding) holding() (Holding, error) {
	if (jh.Ticker != "") == (len(jh.Holdings) > 0) {
		return nil, fmt.Errorf("invalid holding %q: either a ticker or a group's holdings must be specified", jh.Name)
	}
	if (jh.Ticker == "") != (jh.Shares == nil) {
		return nil, fmt.Errorf("invalid holding %q: a ticker must be specified with shares", jh.Name)
	}

	weight, err := ParseWeight(jh.Weight)
	if err != nil {
		return nil, fmt.Errorf("invalid holding %q: %w", jh.Name, err)
	}

	if jh.Ticker != "" {
		leaf := NewLeaf(jh.Name, jh.Ticker, weight, Q(*jh.Shares))
		leaf.sellingRestricted = jh.SellingRestricted
		leaf.buyingRestricted = jh.BuyingRestricted
		return leaf, nil
	}

	children := make([]Holding, 0, len(jh.Holdings))
	for _, jc := range jh.Holdings {
		child, err := jc.holding()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	group := NewGroup(jh.Name, weight, children...)
	if jh.SellingRestricted != nil {
		group.RestrictSelling(*jh.SellingRestricted)
	}
	if jh.BuyingRestricted != nil {
		group.RestrictBuying(*jh.BuyingRestricted)
	}
	return group, nil
}
