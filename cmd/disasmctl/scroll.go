package main

import (
	"context"
	"fmt"

	"github.com/joshuapare/disasmkit/disasm/scroll"
	"github.com/joshuapare/disasmkit/pkg/types"
	"github.com/spf13/cobra"
)

var (
	scrollTargets   []int64
	scrollBurst     bool
	scrollThreshold int64
)

func init() {
	cmd := newScrollCmd()
	cmd.Flags().Int64SliceVar(&scrollTargets, "to", nil, "Scrollbar indices to scroll to, in order")
	cmd.Flags().BoolVar(&scrollBurst, "burst", false, "Send all scrolls before any resolution completes")
	cmd.Flags().Int64Var(&scrollThreshold, "threshold", -1, "Override the re-anchor threshold")
	rootCmd.AddCommand(cmd)
}

func newScrollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scroll [file]",
		Short: "Simulate scrollbar movement over a window",
		Long: `The scroll command creates a window at the entrypoint and feeds a series of
scrollbar indices through the scroll coordinator, reporting every re-anchor.
With --burst all indices arrive while the first resolution is in flight, so
intermediate targets are coalesced.

Example:
  disasmctl scroll firmware.bin --to 100,2000,2050
  disasmctl scroll --mock --to 10,900,20 --burst --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScroll(args)
		},
	}
	return cmd
}

// scrollStep is one re-anchor reported by the scroll command.
type scrollStep struct {
	Generation uint64 `json:"generation"`
	Anchor     string `json:"anchor"`
	Index      int64  `json:"index"`
	Entries    int    `json:"entries"`
}

// scrollReport is the JSON form of the scroll command.
type scrollReport struct {
	Targets []int64      `json:"targets"`
	Steps   []scrollStep `json:"steps"`
	Seeks   int          `json:"seeks"`
	Stale   int          `json:"stale"`
	Final   int64        `json:"final_index"`
}

func runScroll(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSession(args, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	anchor, err := s.Blob.GetEntrypoint(ctx).Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve entrypoint: %w", err)
	}

	opts := cfg.ScrollOptions()
	opts.Logger = logger()
	if scrollThreshold >= 0 {
		opts.Threshold = scrollThreshold
	}
	win := s.Blob.CreateWindow(anchor, opts.Before, opts.After)
	coord := scroll.ForWindow(win, opts)

	report := scrollReport{Targets: scrollTargets}
	cancel := win.OnDataChanged(func() {
		step := scrollStep{
			Generation: win.Generation(),
			Anchor:     win.Anchor().String(),
			Index:      int64(win.CurrentScrollbarIndex()),
			Entries:    win.Len(),
		}
		report.Steps = append(report.Steps, step)
		if !jsonOut {
			printInfo("  seek #%d (generation %d): anchor %s, index %d, %d entries\n",
				len(report.Steps), step.Generation, step.Anchor, step.Index, step.Entries)
		}
	})
	defer cancel()

	// The calling goroutine acts as the dispatch loop: every completion is
	// posted here and applied in order.
	posts := make(chan func(), 1)
	post := func(fn func()) { posts <- fn }
	drain := func() {
		for coord.InFlight() {
			(<-posts)()
		}
	}

	if !jsonOut {
		printInfo("\nScrolling %d targets (threshold %d, max index %d):\n",
			len(scrollTargets), opts.Threshold, win.MaxScrollbarIndex())
	}
	for _, idx := range scrollTargets {
		started := coord.HandleScroll(ctx, types.ScrollbarIndex(idx), post)
		printVerbose("  scroll %d (resolving: %t)\n", idx, started)
		if !scrollBurst {
			drain()
		}
	}
	drain()

	report.Seeks, report.Stale = coord.Stats()
	report.Final = int64(win.CurrentScrollbarIndex())
	if jsonOut {
		return printJSON(report)
	}
	printInfo("\nSeeks: %d, stale results discarded: %d, final index: %d\n",
		report.Seeks, report.Stale, report.Final)
	return nil
}
