package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/oneview/marketdesk/research"
	"github.com/oneview/marketdesk/tracker"
)

type researchCmd struct {
	kind  string
	out   string
	model string
}

func (*researchCmd) Name() string     { return "research" }
func (*researchCmd) Synopsis() string { return "draft a research document locally with Gemini" }
func (*researchCmd) Usage() string {
	return `mdesk research [-kind <one_pager|memo>] [-o <file>] <symbol>

  Drafts a research document about an asset on the desk, locally, without
  going through the documents backend. Useful for a quick note while a full
  generation job is running.
`
}

func (c *researchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", string(tracker.OnePager), "Kind of document to draft (one_pager, memo).")
	f.StringVar(&c.out, "o", "", "Write the draft to this file instead of the terminal.")
	f.StringVar(&c.model, "model", research.DefaultModel, "Gemini model to draft with.")
}

func (c *researchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one symbol")
		return subcommands.ExitUsageError
	}

	asset, err := findAsset(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := research.NewAnalyst()
	analyst.ModelName = c.model
	draft, err := analyst.Draft(ctx, client, asset, tracker.Kind(c.kind))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if err := os.WriteFile(c.out, []byte(draft), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "could not write draft to %q: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Draft written to %s\n", c.out)
		return subcommands.ExitSuccess
	}
	printMarkdown(draft)
	return subcommands.ExitSuccess
}
