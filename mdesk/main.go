package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/oneview/marketdesk/cmd"
)

func main() {
	// Shell completion: this returns immediately unless the shell is asking
	// for completions.
	completion().Complete("mdesk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	kinds := predict.Set{"one_pager", "memo"}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"watch":    {Flags: map[string]complete.Predictor{"w": predict.Something}},
			"add":      {Flags: map[string]complete.Predictor{"w": predict.Something, "id": predict.Something, "isin": predict.Something, "c": predict.Something, "n": predict.Something}},
			"drop":     {Flags: map[string]complete.Predictor{"w": predict.Something}},
			"quotes":   {Flags: map[string]complete.Predictor{"w": predict.Something}},
			"holdings": {},
			"generate": {Flags: map[string]complete.Predictor{"kind": kinds}},
			"pending":  {},
			"track":    {Flags: map[string]complete.Predictor{"timeout": predict.Something}},
			"research": {Flags: map[string]complete.Predictor{"kind": kinds, "o": predict.Files("*.md"), "model": predict.Something}},
			"publish":  {Flags: map[string]complete.Predictor{"o": predict.Dirs("*")}, Args: predict.Files("*.md")},
		},
		Flags: map[string]complete.Predictor{
			"desk-path":        predict.Dirs("*"),
			"portfolio-file":   predict.Files("*.jsonl"),
			"docs-url":         predict.Something,
			"default-currency": predict.Set{"EUR", "USD"},
		},
	}
}
