package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/oneview/marketdesk/renderer"
)

type publishCmd struct {
	outputDir string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "convert saved markdown documents to HTML" }
func (*publishCmd) Usage() string {
	return `mdesk publish [-o <dir>] <file.md>...

  Converts markdown research documents to HTML fragments in the output
  directory, ready to be served by the dashboard.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "site", "Output directory for the generated HTML")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "expected at least one markdown file")
		return subcommands.ExitUsageError
	}
	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, file := range f.Args() {
		md, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read %q: %v\n", file, err)
			return subcommands.ExitFailure
		}
		html, err := renderer.HTML(string(md))
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not convert %q: %v\n", file, err)
			return subcommands.ExitFailure
		}

		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		out := filepath.Join(c.outputDir, base+".html")
		if err := os.WriteFile(out, html, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "could not write %q: %v\n", out, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Published %s\n", out)
	}
	return subcommands.ExitSuccess
}
