package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/alphavantage"
	"github.com/etnz/rebalance/moex"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	flat  bool
	debug bool
}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "compute the trades that rebalance each portfolio" }
func (*rebalanceCmd) Usage() string {
	return `prc rebalance [-flat] [-debug]

  Fetches live prices, computes the whole-share trades that bring every
  holding to its target weight, and distributes the leftover cash. The
  report shows, per holding, the current position, the trade to make, the
  resulting allocation and the expected one.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.flat, "flat", false, "flatten the groups into a single list")
	f.BoolVar(&c.debug, "debug", false, "trace every share and weight change to stderr")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolios, err := DecodePortfolios()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	providers := []rebalance.QuoteProvider{
		alphavantage.New(alphavantageAPIKey()),
		moex.New(),
	}

	var obs rebalance.Observer
	if c.debug {
		obs = rebalance.NewLogObserver(log.New(os.Stderr, "", 0))
	}

	for i, p := range portfolios {
		if i > 0 {
			fmt.Println()
		}

		prices, err := rebalance.ResolvePrices(p.Tickers(), providers...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching prices for portfolio %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}

		result, err := p.Rebalance(prices, obs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rebalancing portfolio %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}

		if c.flat {
			p.Flatten()
		}

		printMarkdown(renderer.RebalanceMarkdown(p, result))
	}

	return subcommands.ExitSuccess
}
