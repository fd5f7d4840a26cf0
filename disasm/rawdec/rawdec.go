// Package rawdec turns raw bytes into a chunk tree of fixed-size sections
// and rows, each row carrying hex, text and word fields. It is the decoder
// used when a file has no richer structure to offer.
//
//	FILE
//	└── SECTION (SectionSize bytes)
//	    └── ROW (RowSize bytes; fields: hex, text, word)
//
// Bookmarks mirror addresses.
package rawdec

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/internal/buf"
	"github.com/joshuapare/disasmkit/pkg/types"
)

const (
	DefaultSectionSize = 0x1000
	DefaultRowSize     = 16
	DefaultWordSize    = 4

	TypeFile    = "FILE"
	TypeSection = "SECTION"
	TypeRow     = "ROW"
)

// Options controls decoding.
type Options struct {
	// Name is the display name of the file chunk.
	Name string
	// Base is the address of the first byte.
	Base uint64
	// SectionSize is the number of bytes per section.
	// Default: 0x1000
	SectionSize int
	// RowSize is the number of bytes per row.
	// Default: 16
	RowSize int
	// WordSize is the width of the word field: 1, 2, 4 or 8 bytes.
	// Default: 4
	WordSize int
	// Order is the byte order of the word field.
	// Default: little endian
	Order buf.Order
}

// DefaultOptions returns 4 KiB sections of 16-byte rows at address 0.
func DefaultOptions() Options {
	return Options{
		Name:        "file",
		SectionSize: DefaultSectionSize,
		RowSize:     DefaultRowSize,
		WordSize:    DefaultWordSize,
		Order:       buf.LittleEndian,
	}
}

func (o Options) validate() error {
	switch {
	case o.RowSize <= 0:
		return fmt.Errorf("rawdec: row size must be positive, got %d", o.RowSize)
	case o.SectionSize < o.RowSize:
		return fmt.Errorf("rawdec: section size %d smaller than row size %d", o.SectionSize, o.RowSize)
	case o.SectionSize%o.RowSize != 0:
		return fmt.Errorf("rawdec: section size %d is not a multiple of row size %d", o.SectionSize, o.RowSize)
	}
	switch o.WordSize {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("rawdec: word size must be 1, 2, 4 or 8, got %d", o.WordSize)
	}
	return nil
}

// Decode builds the chunk tree for data. Row bytes are copied, so data may
// be released once Decode returns.
func Decode(data []byte, opts Options) (*disasm.ChunkTree, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	size := uint64(len(data))
	if opts.Base > ^uint64(0)-size {
		return nil, fmt.Errorf("rawdec: %d bytes at base %#x overflow the address space", size, opts.Base)
	}
	end := opts.Base + size

	b := disasm.NewBuilder(disasm.DefaultBuilderOptions())
	name := opts.Name
	if name == "" {
		name = "file"
	}
	err := b.AddChunk(disasm.ChunkSpec{
		ID:          "file",
		Addr:        disasm.Span{Begin: opts.Base, End: end},
		Type:        TypeFile,
		DisplayName: name,
		Text:        disasm.Text{Text: fmt.Sprintf("%d bytes", size)},
	})
	if err != nil {
		return nil, err
	}

	dec := charmap.Windows1252.NewDecoder()
	for off := 0; off < len(data); off += opts.SectionSize {
		secLen := min(opts.SectionSize, len(data)-off)
		secBegin := opts.Base + uint64(off)
		secID := types.ChunkID(fmt.Sprintf("sec_%08x", secBegin))
		err := b.AddChunk(disasm.ChunkSpec{
			ID:          secID,
			Parent:      "file",
			Addr:        disasm.Span{Begin: secBegin, End: secBegin + uint64(secLen)},
			Type:        TypeSection,
			DisplayName: fmt.Sprintf("section %s", types.Address(secBegin)),
			Text:        disasm.Text{Text: fmt.Sprintf("%d rows", (secLen+opts.RowSize-1)/opts.RowSize), Highlight: true},
		})
		if err != nil {
			return nil, err
		}
		for r := off; r < off+secLen; r += opts.RowSize {
			row := buf.Clamp(data, r, min(opts.RowSize, off+secLen-r))
			if err := addRow(b, dec, secID, opts, opts.Base+uint64(r), row); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}

func addRow(b *disasm.Builder, dec *encoding.Decoder, parent types.ChunkID, opts Options, addr uint64, row []byte) error {
	id := types.ChunkID(fmt.Sprintf("row_%08x", addr))
	word, hasWord := buf.Word(row, 0, opts.WordSize, opts.Order)

	text := disasm.Sublist{Items: []disasm.TextRepr{disasm.Keyword{Text: "db", Kind: disasm.KeywordOpcode}}}
	if hasWord {
		text.Items = append(text.Items, disasm.Blank{}, disasm.Number{Value: word, Width: opts.WordSize * 8, Base: 16})
	}
	err := b.AddChunk(disasm.ChunkSpec{
		ID:     id,
		Parent: parent,
		Addr:   disasm.Span{Begin: addr, End: addr + uint64(len(row))},
		Type:   TypeRow,
		Text:   text,
	})
	if err != nil {
		return err
	}

	fields := []disasm.FieldSpec{
		{Name: "hex", Addr: addr, Value: disasm.FieldBytes(append([]byte(nil), row...))},
		{Name: "text", Addr: addr, Value: disasm.FieldString(printable(dec, row))},
	}
	if hasWord {
		fields = append(fields, disasm.FieldSpec{
			Name:  "word",
			Addr:  addr,
			Value: disasm.FieldNumber{Value: word, Width: opts.WordSize * 8, Base: 16},
		})
	}
	for _, f := range fields {
		if err := b.AddField(id, f); err != nil {
			return err
		}
	}
	return nil
}

// printable decodes row as Windows-1252 and replaces every non-printable
// character with a dot, one character per byte.
func printable(dec *encoding.Decoder, row []byte) string {
	decoded, err := dec.Bytes(row)
	if err != nil {
		decoded = row
	}
	var sb strings.Builder
	sb.Grow(len(row))
	for _, r := range string(decoded) {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			sb.WriteByte('.')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
