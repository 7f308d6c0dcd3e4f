package alphavantage

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "BATCH_STOCK_QUOTES" {
			t.Errorf("function = %q, want BATCH_STOCK_QUOTES", got)
		}
		if got := r.URL.Query().Get("symbols"); got != "AAPL,MSFT" {
			t.Errorf("symbols = %q, want AAPL,MSFT", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "demo" {
			t.Errorf("apikey = %q, want demo", got)
		}
		fmt.Fprint(w, `{
			"Meta Data": {"1. Information": "Batch Stock Market Quotes"},
			"Stock Quotes": [
				{"1. symbol": "MSFT", "2. price": "104.3900", "3. volume": "--", "4. timestamp": "2018-10-18 14:58:59"},
				{"1. symbol": "AAPL", "2. price": "216.8400", "3. volume": "--", "4. timestamp": "2018-10-18 14:58:59"}
			]
		}`)
	}))
	defer server.Close()

	p := New("demo")
	p.baseURL = server.URL

	prices, err := p.Quotes([]string{"AAPL", "MSFT"})
	if err != nil {
		t.Fatalf("Quotes() unexpected error = %v", err)
	}

	if len(prices) != 2 {
		t.Fatalf("Quotes() resolved %d tickers, want 2", len(prices))
	}
	if want, _ := decimal.NewFromString("104.3900"); !prices["MSFT"].Equal(want) {
		t.Errorf("MSFT = %v, want 104.39", prices["MSFT"])
	}
	if want, _ := decimal.NewFromString("216.8400"); !prices["AAPL"].Equal(want) {
		t.Errorf("AAPL = %v, want 216.84", prices["AAPL"])
	}
}

func TestQuotesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Error Message": "Invalid API call."}`)
	}))
	defer server.Close()

	p := New("demo")
	p.baseURL = server.URL

	if _, err := p.Quotes([]string{"AAPL"}); err == nil {
		t.Error("Quotes() expected an error on an API error payload")
	}
}

func TestQuotesNoTickers(t *testing.T) {
	p := New("demo")
	prices, err := p.Quotes(nil)
	if err != nil {
		t.Fatalf("Quotes() unexpected error = %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("Quotes() = %v, want an empty map and no request at all", prices)
	}
}
