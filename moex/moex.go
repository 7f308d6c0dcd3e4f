// Package moex fetches share quotes from the Moscow Exchange ISS API.
// It is meant as the fallback provider for tickers the primary quote source
// does not list.
//
// See http://iss.moex.com/iss/reference/
package moex

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://iss.moex.com"

// board whose quotes this provider trusts
const board = "TQTF"

// Provider implements rebalance.QuoteProvider against the MOEX ISS API.
type Provider struct {
	baseURL string
	client  *http.Client
}

// New returns a MOEX quote provider.
func New() *Provider {
	return &Provider{baseURL: defaultBaseURL, client: new(http.Client)}
}

func (p *Provider) Name() string { return "moex" }

// Quotes fetches the last trade price (or the current price when there was
// no trade yet) for the given tickers, in one request.
//
// The ISS response is a columns/data table:
//
//	{ "marketdata": {
//	    "columns": ["SECID", "BOARDID", ..., "LAST", ..., "LCURRENTPRICE"],
//	    "data": [["FXMM", "TQTF", ..., 1.0487, ..., null], ...] } }
func (p *Provider) Quotes(tickers []string) (map[string]decimal.Decimal, error) {
	if len(tickers) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	query := url.Values{}
	query.Set("securities", strings.Join(tickers, ","))
	addr := p.baseURL + "/iss/engines/stock/markets/shares/securities.json?" + query.Encode()

	var jobj any
	if err := jwget(p.client, addr, &jobj); err != nil {
		return nil, err
	}

	columns, err := columnIndex(jobj)
	if err != nil {
		return nil, err
	}
	secid, err := columns.of("SECID")
	if err != nil {
		return nil, err
	}
	boardid, err := columns.of("BOARDID")
	if err != nil {
		return nil, err
	}
	last, err := columns.of("LAST")
	if err != nil {
		return nil, err
	}
	lcurrent, err := columns.of("LCURRENTPRICE")
	if err != nil {
		return nil, err
	}

	jrows, err := jsonpath.Get("$.marketdata.data", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected marketdata payload: %w", err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected marketdata payload: data is not a list")
	}

	wanted := make(map[string]struct{}, len(tickers))
	for _, ticker := range tickers {
		wanted[ticker] = struct{}{}
	}

	prices := make(map[string]decimal.Decimal)
	for _, jrow := range rows {
		row, ok := jrow.([]any)
		if !ok || len(row) <= max(secid, boardid, last, lcurrent) {
			continue
		}

		ticker, _ := row[secid].(string)
		if _, ok := wanted[ticker]; !ok {
			continue
		}
		if b, _ := row[boardid].(string); b != board {
			continue
		}

		price := row[last]
		if price == nil {
			price = row[lcurrent]
		}
		value, ok := price.(float64)
		if !ok {
			continue
		}
		prices[ticker] = decimal.NewFromFloat(value)
	}
	return prices, nil
}

// columns maps an ISS column name to its position in the data rows.
type columns map[string]int

func columnIndex(jobj any) (columns, error) {
	jcolumns, err := jsonpath.Get("$.marketdata.columns", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected marketdata payload: %w", err)
	}
	jlist, ok := jcolumns.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected marketdata payload: columns is not a list")
	}

	index := make(columns, len(jlist))
	for i, jname := range jlist {
		if name, ok := jname.(string); ok {
			index[name] = i
		}
	}
	return index, nil
}

func (c columns) of(name string) (int, error) {
	i, ok := c[name]
	if !ok {
		return 0, fmt.Errorf("unexpected marketdata payload: no %q column", name)
	}
	return i, nil
}
