package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rebalance/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")

	// shell completion; exits the process when invoked by the shell.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"show":      {Flags: map[string]complete.Predictor{"flat": predict.Nothing}},
			"rebalance": {Flags: map[string]complete.Predictor{"flat": predict.Nothing, "debug": predict.Nothing}},
			"topic":     {Args: predict.Something},
		},
		Flags: map[string]complete.Predictor{
			"portfolio-file":       predict.Files("*.json"),
			"alphavantage-api-key": predict.Something,
		},
	}
	completion.Complete("prc")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
