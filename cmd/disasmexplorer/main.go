// Command disasmexplorer is an interactive terminal listing viewer.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/joshuapare/disasmkit/cmd/disasmexplorer/logger"
	"github.com/joshuapare/disasmkit/disasm/mock"
	"github.com/joshuapare/disasmkit/internal/config"
	"github.com/joshuapare/disasmkit/pkg/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliArgs are the parsed command-line arguments.
type cliArgs struct {
	debug      bool
	mock       bool
	help       bool
	version    bool
	configPath string
	path       string
}

// parseArgs extracts flags anywhere in args; the first other argument is
// the file.
func parseArgs(args []string) (cliArgs, error) {
	var out cliArgs
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--debug", "-d":
			out.debug = true
		case "--mock":
			out.mock = true
		case "--help", "-h":
			out.help = true
		case "--version", "-v":
			out.version = true
		case "--config":
			if i+1 >= len(args) {
				return out, fmt.Errorf("--config needs a path")
			}
			i++
			out.configPath = args[i]
		default:
			if out.path != "" {
				return out, fmt.Errorf("unexpected argument %q", arg)
			}
			out.path = arg
		}
	}
	return out, nil
}

func main() {
	_ = godotenv.Load()

	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}
	if args.help {
		printHelp()
		os.Exit(0)
	}
	if args.version {
		fmt.Printf("disasmexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}
	if args.path == "" && !args.mock {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(args.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: args.debug,
		LogDir:  cfg.Log.Dir,
		Level:   logger.ParseLevel(cfg.Log.Level),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	sess, err := openSession(args, cfg)
	if err != nil {
		logger.Error("open failed", "path", args.path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting disasmexplorer", "source", sess.Source, "debug", args.debug)

	scrollOpts := cfg.ScrollOptions()
	scrollOpts.Logger = logger.L
	m := NewModel(sess, scrollOpts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing session", "error", err)
		}
	}
	logger.Info("disasmexplorer exited normally")
}

func openSession(args cliArgs, cfg config.Config) (*session.Session, error) {
	opts := cfg.SessionOptions()
	opts.Blob.Logger = logger.L
	if args.mock {
		return session.OpenMock(mock.DefaultFactoryOptions(), opts.Blob)
	}
	return session.Open(args.path, opts)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: disasmexplorer [options] <file>\n")
	fmt.Fprintf(os.Stderr, "Try 'disasmexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("disasmexplorer - Interactive listing viewer for binary files")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  disasmexplorer [options] <file>")
	fmt.Println("  disasmexplorer --mock")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Decodes a file into sections and rows and shows the listing in a")
	fmt.Println("  scrollable terminal view. Only a window of the listing around the")
	fmt.Println("  cursor is materialized; scrollbar jumps are resolved in the background.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move cursor")
	fmt.Println("    pgup/pgdn   Page up/down")
	fmt.Println("    g/G         Start/end of the listing")
	fmt.Println("    [ / ]       Jump the scrollbar by 5%")
	fmt.Println("    space       Collapse/expand the chunk under the cursor")
	fmt.Println("    :           Go to address")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug      Enable debug logging to ~/.disasmexplorer/logs/")
	fmt.Println("      --config F   Read settings from F (default ~/.disasmkit.yaml)")
	fmt.Println("      --mock       Explore a generated tree instead of a file")
	fmt.Println("  -h, --help       Show this help message")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println()
	fmt.Println("For non-interactive output, use the 'disasmctl' command instead.")
}
