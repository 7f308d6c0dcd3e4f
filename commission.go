package rebalance

import "github.com/shopspring/decimal"

// CommissionSpec describes a broker's fee schedule: a minimum fee per trade,
// an optional percentage of the traded notional, an optional fee per share,
// and an optional cap expressed as a percentage of the notional.
type CommissionSpec struct {
	Minimum        Money
	Percent        *decimal.Decimal // percent of notional
	PerShare       *Money
	MaximumPercent *decimal.Decimal // cap, percent of notional
}

// Calculate returns the fee charged for trading the given number of shares at
// the given price. The fee is never below Minimum; when MaximumPercent is set
// it never exceeds that share of the notional (before the minimum applies).
func (s CommissionSpec) Calculate(shares Quantity, price Money) Money {
	var fee Money

	notional := price.Mul(shares)

	if s.Percent != nil {
		fee = fee.Add(notional.scale(s.Percent.Shift(-2)))
	}

	if s.PerShare != nil {
		fee = fee.Add(s.PerShare.Mul(shares))
	}

	if s.MaximumPercent != nil {
		cap := notional.scale(s.MaximumPercent.Shift(-2))
		if cap.LessThan(fee) {
			fee = cap
		}
	}

	if fee.LessThan(s.Minimum) {
		fee = s.Minimum
	}
	return fee
}
