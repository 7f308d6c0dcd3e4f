package rebalance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Weight is a holding's share of its parent's value, as a fraction in [0,1].
type Weight struct {
	value decimal.Decimal
}

func W[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

// ParseWeight parses a percentage string like "60%" into a fraction.
func ParseWeight(s string) (Weight, error) {
	value, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return Weight{}, fmt.Errorf("invalid weight %q: %w", s, err)
	}
	return Weight{value: value.Shift(-2)}, nil
}

// Of returns the slice of total that this weight represents.
func (w Weight) Of(total Money) Money {
	return Money{value: total.value.Mul(w.value), cur: total.cur}
}

// Mul composes two fractions, e.g. a holding's weight with its group's.
func (w Weight) Mul(x Weight) Weight { return Weight{value: w.value.Mul(x.value)} }

func (w Weight) Equal(x Weight) bool       { return w.value.Equal(x.value) }
func (w Weight) LessThan(x Weight) bool    { return w.value.LessThan(x.value) }
func (w Weight) GreaterThan(x Weight) bool { return w.value.GreaterThan(x.value) }
func (w Weight) IsZero() bool              { return w.value.IsZero() }

// String formats the weight as a percentage with at most one decimal,
// trailing zeros trimmed: 0.6 is "60%", 0.125 is "12.5%".
func (w Weight) String() string {
	s := w.value.Shift(2).StringFixed(1)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s + "%"
}

// WeightOf returns value as a fraction of total. By convention an empty total
// weighs 1: everything there is, is allocated.
func WeightOf(value, total Money) Weight {
	if total.IsZero() {
		return W(1)
	}
	return Weight{value: value.value.Div(total.value)}
}
