package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/disasmkit/disasm/printer"
	"github.com/joshuapare/disasmkit/pkg/types"
	"github.com/spf13/cobra"
)

var (
	treeDepth    int
	treeChunk    string
	treeCompact  bool
	treeNoAddrs  bool
	treeComments bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 2, "Maximum depth (0 = unlimited)")
	cmd.Flags().StringVar(&treeChunk, "chunk", "", "Print only the subtree of this chunk id")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	cmd.Flags().BoolVar(&treeNoAddrs, "no-addresses", false, "Hide address ranges")
	cmd.Flags().BoolVar(&treeComments, "comments", false, "Show chunk comments")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Display the chunk hierarchy",
		Long: `The tree command displays the chunk hierarchy without fields.

Example:
  disasmctl tree firmware.bin
  disasmctl tree firmware.bin --chunk sec_00001000 --depth 0
  disasmctl tree --mock --depth 1 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openSession(args, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowAddresses = !treeNoAddrs
	opts.ShowComments = treeComments
	if treeCompact {
		opts.IndentSize = 1
	}
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	if err := printer.New(os.Stdout, opts).PrintTree(s.Tree(), types.ChunkID(treeChunk)); err != nil {
		return fmt.Errorf("failed to display tree: %w", err)
	}
	return nil
}
