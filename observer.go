package rebalance

import "log"

// Observer is notified of every state transition the passes apply to the
// tree. The engine has no logger of its own; callers that want a trace of
// the run install an observer.
type Observer interface {
	// SharesChanged reports a committed trade on a leaf.
	SharesChanged(name, reason string, from, to Quantity)
	// WeightChanged reports a working-weight adjustment.
	WeightChanged(name, reason string, from, to Weight)
	// TradeBlocked reports a desired trade that could not execute.
	// side is "sell" or "buy".
	TradeBlocked(name, side, reason string)
}

type nopObserver struct{}

func (nopObserver) SharesChanged(name, reason string, from, to Quantity) {}
func (nopObserver) WeightChanged(name, reason string, from, to Weight)   {}
func (nopObserver) TradeBlocked(name, side, reason string)               {}

// NewLogObserver returns an observer that writes every transition to l.
func NewLogObserver(l *log.Logger) Observer { return &logObserver{l} }

type logObserver struct{ l *log.Logger }

func (o *logObserver) SharesChanged(name, reason string, from, to Quantity) {
	o.l.Printf("%s shares: %s -> %s (%s).", name, from, to, reason)
}

func (o *logObserver) WeightChanged(name, reason string, from, to Weight) {
	o.l.Printf("%s weight: %s -> %s (%s).", name, from, to, reason)
}

func (o *logObserver) TradeBlocked(name, side, reason string) {
	o.l.Printf("%s: %s blocked: %s.", name, side, reason)
}
