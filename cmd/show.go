package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	flat bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the target allocation of each portfolio" }
func (*showCmd) Usage() string {
	return `prc show [-flat]

  Displays the planned allocation: every holding with its target weight and
  the slice of the free assets that weight represents. Instruments are
  valued at a unit price and restrictions are ignored.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.flat, "flat", false, "flatten the groups into a single list")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolios, err := DecodePortfolios()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	for i, p := range portfolios {
		if i > 0 {
			fmt.Println()
		}

		result, err := p.Preview()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error previewing portfolio %q: %v\n", p.Name, err)
			return subcommands.ExitFailure
		}

		if c.flat {
			p.Flatten()
		}

		printMarkdown(renderer.ShowMarkdown(p, result))
	}

	return subcommands.ExitSuccess
}
