package rebalance

import (
	"bytes"
	"log"
	"testing"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(log.New(&buf, "", 0))

	obs.SharesChanged("AAA", "rebalancing", Q(100), Q(60))
	obs.WeightChanged("BBB", "selling restrictions", W(0.5), W(0.4))
	obs.TradeBlocked("CCC", "sell", "selling is restricted")

	expected := "AAA shares: 100 -> 60 (rebalancing).\n" +
		"BBB weight: 50% -> 40% (selling restrictions).\n" +
		"CCC: sell blocked: selling is restricted.\n"
	if buf.String() != expected {
		t.Errorf("log = %q, want %q", buf.String(), expected)
	}
}
