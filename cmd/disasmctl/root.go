package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/disasmkit/disasm/mock"
	"github.com/joshuapare/disasmkit/internal/config"
	"github.com/joshuapare/disasmkit/pkg/session"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	useMock    bool
	mockSeed   int64
)

var rootCmd = &cobra.Command{
	Use:   "disasmctl",
	Short: "Inspect binaries as hierarchical listings",
	Long: `disasmctl decodes a binary file into a tree of chunks (file, sections,
rows) and prints the tree, windows of the listing around an address, and
simulated scroll sessions. Use --mock to work on a generated tree instead of a
file.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $DISASMKIT_CONFIG or ~/.disasmkit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "Use a generated tree instead of a file")
	rootCmd.PersistentFlags().Int64Var(&mockSeed, "seed", 1, "Seed for --mock")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// logger returns a stderr logger in verbose mode and a discarding one
// otherwise.
func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// loadConfig reads the config file and environment.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openSession opens the file named by args[0], or a mock tree with --mock.
func openSession(args []string, cfg config.Config) (*session.Session, error) {
	opts := cfg.SessionOptions()
	opts.Blob.Logger = logger()

	if useMock {
		if len(args) > 0 {
			return nil, fmt.Errorf("--mock takes no file argument, got %q", args[0])
		}
		fopts := mock.DefaultFactoryOptions()
		fopts.Seed = mockSeed
		printVerbose("Generating mock tree (seed %d)\n", mockSeed)
		return session.OpenMock(fopts, opts.Blob)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("expected a file argument (or --mock)")
	}
	printVerbose("Opening file: %s\n", args[0])
	s, err := session.Open(args[0], opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return s, nil
}
