package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/oneview/marketdesk/renderer"
	"github.com/oneview/marketdesk/tracker"
)

type generateCmd struct {
	kind string
}

func (*generateCmd) Name() string { return "generate" }
func (*generateCmd) Synopsis() string {
	return "ask the documents backend to generate a research document"
}
func (*generateCmd) Usage() string {
	return `mdesk generate [-kind <one_pager|memo>] <symbol>

  Submits a generation job to the documents backend for an asset on the desk,
  and registers it with the job tracker so its completion is picked up later,
  even across restarts.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", string(tracker.OnePager), "Kind of document to generate (one_pager, memo).")
}

func (c *generateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one symbol")
		return subcommands.ExitUsageError
	}
	kind := tracker.Kind(c.kind)
	if kind != tracker.OnePager && kind != tracker.Memo {
		fmt.Fprintf(os.Stderr, "unknown document kind %q\n", c.kind)
		return subcommands.ExitUsageError
	}

	asset, err := findAsset(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tr, client, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer tr.Close()

	if taskID, ok := tr.PendingTaskID(asset.ID, kind); ok {
		fmt.Printf("A %s for %s is already being generated (task %s).\n", kind, asset.Symbol, taskID)
		return subcommands.ExitSuccess
	}

	taskID, err := client.Submit(ctx, asset.ID, kind, asset.Symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tr.Register(tracker.PendingTask{
		ID:        taskID,
		AssetID:   asset.ID,
		Kind:      kind,
		Label:     asset.Symbol,
		StartedAt: time.Now(),
	})

	fmt.Printf("Generation of a %s for %s started (task %s). Run 'mdesk track' to wait for it.\n", kind, asset.Symbol, taskID)
	return subcommands.ExitSuccess
}

type pendingCmd struct{}

func (*pendingCmd) Name() string     { return "pending" }
func (*pendingCmd) Synopsis() string { return "list the generation jobs being tracked" }
func (*pendingCmd) Usage() string {
	return `mdesk pending

  Lists the generation jobs currently tracked by the desk, including the ones
  recovered from the last session.
`
}

func (*pendingCmd) SetFlags(f *flag.FlagSet) {}

func (c *pendingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tr, _, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer tr.Close()

	printMarkdown(renderer.PendingMarkdown(renderer.NewPendingView(tr.List())))
	return subcommands.ExitSuccess
}

type trackCmd struct {
	timeout time.Duration
}

func (*trackCmd) Name() string { return "track" }
func (*trackCmd) Synopsis() string {
	return "poll the documents backend until all tracked jobs resolve"
}
func (*trackCmd) Usage() string {
	return `mdesk track [-timeout <duration>]

  Keeps polling the documents backend until every tracked generation job has
  completed, failed or been cancelled, printing each completion as it lands.
`
}

func (c *trackCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.timeout, "timeout", 0, "Give up after this duration (0 waits forever).")
}

func (c *trackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tr, _, err := openTracker()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer tr.Close()

	unsubscribe := tr.OnCompleted(func(task tracker.PendingTask) {
		fmt.Printf("Completed: %s for %s (task %s)\n", task.Kind, task.Label, task.ID)
	})
	defer unsubscribe()

	if len(tr.List()) == 0 {
		fmt.Println("Nothing to track.")
		return subcommands.ExitSuccess
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "gave up with %d job(s) still pending\n", len(tr.List()))
			return subcommands.ExitFailure
		case <-ticker.C:
			if len(tr.List()) == 0 {
				fmt.Println("All jobs resolved.")
				return subcommands.ExitSuccess
			}
		}
	}
}
