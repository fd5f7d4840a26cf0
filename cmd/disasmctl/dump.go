package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joshuapare/disasmkit/disasm/printer"
	"github.com/joshuapare/disasmkit/pkg/types"
	"github.com/spf13/cobra"
)

var (
	dumpAddr     string
	dumpIndex    int64
	dumpBefore   int
	dumpAfter    int
	dumpCollapse []string
	dumpNoText   bool
	dumpComments bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpAddr, "addr", "", "Anchor at the chunk holding this address (default: entrypoint)")
	cmd.Flags().Int64Var(&dumpIndex, "index", -1, "Anchor at this scrollbar index instead of an address")
	cmd.Flags().IntVar(&dumpBefore, "before", 0, "Entries to include before the anchor")
	cmd.Flags().IntVar(&dumpAfter, "after", 40, "Entries to include from the anchor on")
	cmd.Flags().StringSliceVar(&dumpCollapse, "collapse", nil, "Chunk ids to collapse (repeatable)")
	cmd.Flags().BoolVar(&dumpNoText, "no-text", false, "Hide chunk text")
	cmd.Flags().BoolVar(&dumpComments, "comments", false, "Show chunk comments")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print a window of the listing",
		Long: `The dump command materializes a window of the listing around an anchor
and prints its entries: chunk begin and end markers, fields and overlap
markers.

Example:
  disasmctl dump firmware.bin --addr 0x1000 --before 10 --after 30
  disasmctl dump firmware.bin --index 200 --collapse sec_00000000
  disasmctl dump --mock --collapse fn_1 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
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
	var anchor types.Bookmark
	switch {
	case dumpIndex >= 0:
		anchor, err = s.Blob.GetPosition(ctx, types.ScrollbarIndex(dumpIndex)).Wait(ctx)
	case dumpAddr != "":
		var addr types.Address
		if addr, err = types.ParseAddress(dumpAddr); err == nil {
			anchor, err = s.Blob.BookmarkAt(addr)
		}
	default:
		anchor, err = s.Blob.GetEntrypoint(ctx).Wait(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve anchor: %w", err)
	}

	win := s.Blob.CreateWindow(anchor, dumpBefore, dumpAfter)
	for _, id := range dumpCollapse {
		if err := win.ChunkCollapseToggle(types.ChunkID(id)); err != nil {
			return fmt.Errorf("failed to collapse %q: %w", id, err)
		}
	}
	printVerbose("Window %s: %d entries, anchor at %d, scrollbar %d/%d\n",
		win.ID(), win.Len(), win.AnchorOffset(), win.CurrentScrollbarIndex(), win.MaxScrollbarIndex())

	opts := printer.DefaultOptions()
	opts.ShowText = !dumpNoText
	opts.ShowComments = dumpComments
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if err := printer.New(os.Stdout, opts).PrintEntries(win.Entries()); err != nil {
		return fmt.Errorf("failed to print window: %w", err)
	}
	return nil
}
