package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/pkg/types"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the indented listing format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per depth level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth omits entries and chunks nested deeper than this (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowAddresses prefixes lines with the chunk or field address.
	// Default: true
	ShowAddresses bool

	// ShowText appends chunk text representations.
	// Default: true
	ShowText bool

	// ShowComments appends chunk comments.
	// Default: false
	ShowComments bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		ShowAddresses: true,
		ShowText:      true,
		ShowComments:  false,
	}
}

// Printer renders entry streams and chunk trees.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	win := blob.CreateWindow(anchor, 0, 50)
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintEntries(win.Entries())
func New(w io.Writer, opts Options) *Printer {
	return &Printer{writer: w, opts: opts}
}

// PrintEntries prints a materialized entry sequence. Fields without a
// textual form are printed as a placeholder.
func (p *Printer) PrintEntries(entries []disasm.Entry) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printEntriesJSON(entries)
	case FormatText:
		return p.printEntriesText(entries)
	default:
		return p.printEntriesText(entries)
	}
}

// PrintTree prints the chunk hierarchy below id (fields excluded).
func (p *Printer) PrintTree(tree *disasm.ChunkTree, id types.ChunkID) error {
	if id == types.NoChunk {
		root := tree.Root()
		if root == nil {
			return types.ErrNilTree
		}
		id = root.ID
	}
	c, ok := tree.Find(id)
	if !ok {
		return fmt.Errorf("find chunk %q: %w", id, types.ErrUnknownChunk)
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(tree, c)
	case FormatText:
		return p.printTreeText(tree, c, 0)
	default:
		return p.printTreeText(tree, c, 0)
	}
}

func (p *Printer) tooDeep(depth int) bool {
	return p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth
}
