package printer

import (
	"encoding/json"

	"github.com/joshuapare/disasmkit/disasm"
)

// jsonEntry represents one entry in JSON format.
type jsonEntry struct {
	Kind    string     `json:"kind"`
	Depth   int        `json:"depth"`
	Pos     uint64     `json:"pos"`
	ID      string     `json:"id,omitempty"`
	Type    string     `json:"type,omitempty"`
	Addr    string     `json:"addr,omitempty"`
	Text    string     `json:"text,omitempty"`
	Comment string     `json:"comment,omitempty"`
	Field   *jsonField `json:"field,omitempty"`
}

// jsonField represents a field value in JSON format.
type jsonField struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Value     string `json:"value"`
	Malformed bool   `json:"malformed,omitempty"`
}

// jsonChunk represents a chunk subtree in JSON format.
type jsonChunk struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Name      string      `json:"name,omitempty"`
	AddrBegin string      `json:"addr_begin"`
	AddrEnd   string      `json:"addr_end"`
	Text      string      `json:"text,omitempty"`
	Comment   string      `json:"comment,omitempty"`
	Fields    []jsonField `json:"fields,omitempty"`
	Children  []jsonChunk `json:"children,omitempty"`
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) printEntriesJSON(entries []disasm.Entry) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		if p.tooDeep(e.Depth) {
			continue
		}
		je := jsonEntry{Kind: e.Kind.String(), Depth: e.Depth, Pos: e.Pos.Raw()}
		if c := e.Chunk; c != nil {
			je.ID = string(c.ID)
			je.Type = c.Type
		}
		switch e.Kind {
		case disasm.EntryChunkBegin, disasm.EntryChunkCollapsed:
			je.Addr = e.Chunk.Addr.Begin.String()
			if p.opts.ShowText {
				je.Text = e.Chunk.TextString()
			}
			if p.opts.ShowComments {
				je.Comment = e.Chunk.Comment
			}
		case disasm.EntryChunkEnd:
			je.Addr = e.Chunk.Addr.End.String()
		case disasm.EntryField:
			je.Addr = e.Field.Addr.String()
			f := fieldJSON(e.Field)
			je.Field = &f
		}
		out = append(out, je)
	}
	return p.encode(out)
}

func fieldJSON(f *disasm.Field) jsonField {
	text, err := disasm.FieldText(f.Value)
	jf := jsonField{Name: f.Name, Value: text, Malformed: err != nil}
	if f.Value != nil {
		jf.Kind = f.Value.Kind().String()
	}
	return jf
}

func (p *Printer) printTreeJSON(tree *disasm.ChunkTree, c *disasm.Chunk) error {
	return p.encode(p.chunkJSON(tree, c, 0))
}

func (p *Printer) chunkJSON(tree *disasm.ChunkTree, c *disasm.Chunk, depth int) jsonChunk {
	jc := jsonChunk{
		ID:        string(c.ID),
		Type:      c.Type,
		Name:      c.DisplayName,
		AddrBegin: c.Addr.Begin.String(),
		AddrEnd:   c.Addr.End.String(),
	}
	if p.opts.ShowText {
		jc.Text = c.TextString()
	}
	if p.opts.ShowComments {
		jc.Comment = c.Comment
	}
	for i := range c.Fields {
		jc.Fields = append(jc.Fields, fieldJSON(&c.Fields[i]))
	}
	if p.tooDeep(depth + 1) {
		return jc
	}
	for _, k := range tree.Children(c.ID) {
		jc.Children = append(jc.Children, p.chunkJSON(tree, k, depth+1))
	}
	return jc
}
