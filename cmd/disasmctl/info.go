package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Report chunk, row and scrollbar statistics",
		Long: `The info command decodes a file and reports the size of its chunk tree,
the number of rows in the fully expanded listing and the scrollbar range.

Example:
  disasmctl info firmware.bin
  disasmctl info --mock --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

// infoReport is the JSON form of the info command.
type infoReport struct {
	Source       string         `json:"source"`
	Size         int            `json:"size"`
	Chunks       int            `json:"chunks"`
	ChunkTypes   map[string]int `json:"chunk_types"`
	MaxDepth     int            `json:"max_depth"`
	Rows         int64          `json:"rows"`
	RowsPerIndex int64          `json:"rows_per_index"`
	MaxIndex     int64          `json:"max_scrollbar_index"`
	Entrypoint   string         `json:"entrypoint"`
}

func runInfo(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSession(args, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	tree := s.Tree()
	report := infoReport{
		Source:       s.Source,
		Size:         s.Size,
		Chunks:       tree.Len(),
		ChunkTypes:   make(map[string]int),
		Rows:         tree.TotalRows(),
		RowsPerIndex: s.Blob.RowsPerIndex(),
		MaxIndex:     int64(s.Blob.MaxScrollbarIndex()),
	}
	tree.Walk(func(c *disasm.Chunk, depth int) bool {
		report.ChunkTypes[c.Type]++
		report.MaxDepth = max(report.MaxDepth, depth)
		return true
	})

	ctx := context.Background()
	entry, err := s.Blob.GetEntrypoint(ctx).Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve entrypoint: %w", err)
	}
	if c := tree.ChunkCovering(entry); c != nil {
		report.Entrypoint = fmt.Sprintf("%s (%s)", c.Addr.Begin, c.ID)
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nListing Information:\n")
	printInfo("  Source: %s\n", report.Source)
	if report.Size > 0 {
		printInfo("  Size: %s\n", formatSize(report.Size))
	}
	printInfo("  Chunks: %d (max depth %d)\n", report.Chunks, report.MaxDepth)
	for _, typ := range slices.Sorted(maps.Keys(report.ChunkTypes)) {
		printInfo("    %s: %d\n", typ, report.ChunkTypes[typ])
	}
	printInfo("  Rows: %d\n", report.Rows)
	printInfo("  Scrollbar: 0-%d (%d rows per index)\n", report.MaxIndex, report.RowsPerIndex)
	printInfo("  Entrypoint: %s\n", report.Entrypoint)
	return nil
}

func formatSize(size int) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
