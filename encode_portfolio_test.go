package rebalance

import (
	"strings"
	"testing"
)

const samplePortfolio = `[
  {
    "name": "Retirement",
    "currency": "USD",
    "commission": {"minimum": "1", "percent": "0.5"},
    "free_assets": "1000",
    "min_free_assets": "50",
    "min_trade_volume": "100",
    "free_commissions": "10",
    "holdings": [
      {
        "name": "Equities",
        "weight": "60%",
        "selling_restricted": true,
        "holdings": [
          {"name": "Apple", "weight": "50%", "ticker": "AAPL", "shares": 10},
          {"name": "Microsoft", "weight": "50%", "ticker": "MSFT", "shares": 5, "selling_restricted": false}
        ]
      },
      {"name": "Gold", "weight": "40%", "ticker": "GLD", "shares": 0}
    ]
  }
]`

func TestDecodePortfolios(t *testing.T) {
	portfolios, err := DecodePortfolios(strings.NewReader(samplePortfolio))
	if err != nil {
		t.Fatalf("DecodePortfolios() unexpected error = %v", err)
	}
	if len(portfolios) != 1 {
		t.Fatalf("DecodePortfolios() returned %d portfolios, want 1", len(portfolios))
	}

	p := portfolios[0]
	if p.Name != "Retirement" || p.Currency != "USD" {
		t.Errorf("portfolio = %q %q, want Retirement USD", p.Name, p.Currency)
	}
	if !p.FreeAssets.Equal(USD(1000)) {
		t.Errorf("free assets = %v, want $1000", p.FreeAssets)
	}
	if !p.MinFreeAssets.Equal(USD(50)) {
		t.Errorf("min free assets = %v, want $50", p.MinFreeAssets)
	}
	if !p.MinTradeVolume.Equal(USD(100)) {
		t.Errorf("min trade volume = %v, want $100", p.MinTradeVolume)
	}
	if p.FreeCommissions == nil || !p.FreeCommissions.Equal(USD(10)) {
		t.Errorf("free commissions = %v, want $10", p.FreeCommissions)
	}
	if !p.Commission.Minimum.Equal(USD(1)) || p.Commission.Percent == nil {
		t.Errorf("commission = %+v, want minimum $1 and a percent", p.Commission)
	}

	if got := p.Tickers(); len(got) != 3 || got[0] != "AAPL" || got[1] != "GLD" || got[2] != "MSFT" {
		t.Errorf("Tickers() = %v, want [AAPL GLD MSFT]", got)
	}

	equities, ok := p.Holdings[0].(*Group)
	if !ok {
		t.Fatalf("first holding is %T, want *Group", p.Holdings[0])
	}
	if !equities.ExpectedWeight().Equal(W(0.6)) {
		t.Errorf("Equities weight = %v, want 60%%", equities.ExpectedWeight())
	}

	apple, ok := equities.Holdings()[0].(*Leaf)
	if !ok {
		t.Fatalf("first Equities holding is %T, want *Leaf", equities.Holdings()[0])
	}
	if apple.Name() != "Apple (AAPL)" || apple.Ticker() != "AAPL" {
		t.Errorf("leaf = %q %q, want Apple (AAPL) AAPL", apple.Name(), apple.Ticker())
	}
	if !apple.CurrentShares().Equal(Q(10)) {
		t.Errorf("Apple shares = %v, want 10", apple.CurrentShares())
	}

	// the group restriction fills unset leaf flags only
	if !restricted(apple.sellingRestricted) {
		t.Error("Apple should inherit the group selling restriction")
	}
	msft := equities.Holdings()[1].(*Leaf)
	if restricted(msft.sellingRestricted) {
		t.Error("Microsoft opted out of the group selling restriction")
	}
}

func TestDecodePortfoliosErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "weights must sum to 100%",
			input: `[{"name": "P", "currency": "USD", "commission": {"minimum": "0"},
				"free_assets": "0", "min_free_assets": "0", "holdings": [
				{"name": "A", "weight": "60%", "ticker": "AAA", "shares": 0},
				{"name": "B", "weight": "60%", "ticker": "BBB", "shares": 0}]}]`,
			want: "they sum to 120%",
		},
		{
			name: "ticker and sub-holdings are exclusive",
			input: `[{"name": "P", "currency": "USD", "commission": {"minimum": "0"},
				"free_assets": "0", "min_free_assets": "0", "holdings": [
				{"name": "A", "weight": "100%", "ticker": "AAA", "shares": 0, "holdings": [
				{"name": "B", "weight": "100%", "ticker": "BBB", "shares": 0}]}]}]`,
			want: "either a ticker or a group's holdings",
		},
		{
			name: "a ticker requires shares",
			input: `[{"name": "P", "currency": "USD", "commission": {"minimum": "0"},
				"free_assets": "0", "min_free_assets": "0", "holdings": [
				{"name": "A", "weight": "100%", "ticker": "AAA"}]}]`,
			want: "a ticker must be specified with shares",
		},
		{
			name: "unknown currency",
			input: `[{"name": "P", "currency": "XXX42", "commission": {"minimum": "0"},
				"free_assets": "0", "min_free_assets": "0", "holdings": []}]`,
			want: "unknown currency",
		},
		{
			name: "unknown field",
			input: `[{"name": "P", "currency": "USD", "commission": {"minimum": "0"},
				"free_assets": "0", "min_free_assets": "0", "cash": "12", "holdings": []}]`,
			want: "format error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePortfolios(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("DecodePortfolios() expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DecodePortfolios() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
