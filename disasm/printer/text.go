package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/disasmkit/disasm"
)

// Line renders one entry without indentation, e.g.
//
//	0x0800 ChunkBegin(id: funcB, type: FUNCTION) funcB
//	0x1000 ChunkEnd(id: funcB)
func Line(e disasm.Entry, opts Options) string {
	var b strings.Builder
	addr := func(v fmt.Stringer) {
		if opts.ShowAddresses {
			b.WriteString(v.String())
			b.WriteByte(' ')
		}
	}

	switch e.Kind {
	case disasm.EntryChunkBegin, disasm.EntryChunkCollapsed:
		c := e.Chunk
		addr(c.Addr.Begin)
		fmt.Fprintf(&b, "%s(id: %s, type: %s)", e.Kind, c.ID, c.Type)
		if text := c.TextString(); opts.ShowText && text != "" {
			b.WriteByte(' ')
			b.WriteString(text)
		}
		if opts.ShowComments && c.Comment != "" {
			b.WriteString(" ; ")
			b.WriteString(c.Comment)
		}
	case disasm.EntryChunkEnd:
		addr(e.Chunk.Addr.End)
		fmt.Fprintf(&b, "ChunkEnd(id: %s)", e.Chunk.ID)
	case disasm.EntryField:
		addr(e.Field.Addr)
		b.WriteString(e.Field.String())
	case disasm.EntryOverlap:
		b.WriteString("Overlap()")
	default:
		b.WriteString("[UNKNOWN]")
	}
	return b.String()
}

func (p *Printer) printEntriesText(entries []disasm.Entry) error {
	for _, e := range entries {
		if p.tooDeep(e.Depth) {
			continue
		}
		indent := strings.Repeat(" ", e.Depth*p.opts.IndentSize)
		if _, err := fmt.Fprintf(p.writer, "%s%s\n", indent, Line(e, p.opts)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printTreeText(tree *disasm.ChunkTree, c *disasm.Chunk, depth int) error {
	if p.tooDeep(depth) {
		return nil
	}
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	kids := tree.Children(c.ID)

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s] %s", indent, c.Type, c.Label())
	if p.opts.ShowAddresses {
		fmt.Fprintf(&b, " %s-%s", c.Addr.Begin, c.Addr.End)
	}
	if len(kids) > 0 {
		fmt.Fprintf(&b, " (%d children)", len(kids))
	}
	if p.opts.ShowComments && c.Comment != "" {
		fmt.Fprintf(&b, " ; %s", c.Comment)
	}
	if _, err := fmt.Fprintln(p.writer, b.String()); err != nil {
		return err
	}

	for _, k := range kids {
		if err := p.printTreeText(tree, k, depth+1); err != nil {
			return err
		}
	}
	return nil
}
