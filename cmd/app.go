// Package cmd implements the CLI application to rebalance portfolios.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands the application offers.
// A main package registers them all and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&showCmd{},
	&rebalanceCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio definition file (JSON format)")

const alphavantageKeyEnv = "ALPHAVANTAGE_API_KEY"

var alphavantageKeyFlag = flag.String("alphavantage-api-key", "", "Alpha Vantage API key to use for fetching quotes.\n If missing it will read the environment variable \""+alphavantageKeyEnv+"\". You can get one at https://www.alphavantage.co/")

func alphavantageAPIKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *alphavantageKeyFlag == "" {
		*alphavantageKeyFlag = os.Getenv(alphavantageKeyEnv)
	}
	return *alphavantageKeyFlag
}

// DecodePortfolios loads the portfolio definitions from the app portfolio file.
func DecodePortfolios() ([]*rebalance.Portfolio, error) {
	f, err := os.Open(*portfolioFile)
	if err != nil {
		return nil, fmt.Errorf("could not open portfolio file %q: %w", *portfolioFile, err)
	}
	defer f.Close()

	return rebalance.DecodePortfolios(f)
}
