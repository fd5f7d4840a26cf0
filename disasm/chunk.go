package disasm

import (
	"github.com/joshuapare/disasmkit/pkg/types"
)

// BookmarkRange is a half-open [Begin, End) span of bookmarks.
type BookmarkRange struct {
	Begin types.Bookmark
	End   types.Bookmark
}

// Contains reports whether b lies inside the range. End is exclusive.
func (r BookmarkRange) Contains(b types.Bookmark) bool {
	return !b.Less(r.Begin) && b.Less(r.End)
}

// Covers reports whether o lies entirely inside r.
func (r BookmarkRange) Covers(o BookmarkRange) bool {
	return !o.Begin.Less(r.Begin) && !r.End.Less(o.End)
}

// Empty reports whether the range spans no positions.
func (r BookmarkRange) Empty() bool { return !r.Begin.Less(r.End) }

// AddrRange is a half-open [Begin, End) span of addresses.
type AddrRange struct {
	Begin types.Address
	End   types.Address
}

// Contains reports whether a lies inside the range. End is exclusive.
func (r AddrRange) Contains(a types.Address) bool {
	return a >= r.Begin && a < r.End
}

// Covers reports whether o lies entirely inside r.
func (r AddrRange) Covers(o AddrRange) bool {
	return o.Begin >= r.Begin && o.End <= r.End
}

// Overlaps reports whether the two ranges share at least one address.
func (r AddrRange) Overlaps(o AddrRange) bool {
	return r.Begin < o.End && o.Begin < r.End
}

// Len returns the number of addresses spanned.
func (r AddrRange) Len() uint64 {
	if r.End <= r.Begin {
		return 0
	}
	return uint64(r.End - r.Begin)
}

// Chunk is one contiguous region of the address space. Chunks are immutable
// once their tree is built; the parent is referenced by id and resolved
// through the owning ChunkTree.
type Chunk struct {
	ID          types.ChunkID
	Parent      types.ChunkID
	Pos         BookmarkRange
	Addr        AddrRange
	Type        string
	DisplayName string
	Text        TextRepr
	Comment     string
	Fields      []Field
}

// IsRoot reports whether the chunk has no parent.
func (c *Chunk) IsRoot() bool { return c.Parent == types.NoChunk }

// Label returns the display name, falling back to the id.
func (c *Chunk) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return string(c.ID)
}

// TextString renders the chunk's text representation, or "" when it has none.
func (c *Chunk) TextString() string {
	if c.Text == nil {
		return ""
	}
	return c.Text.String()
}

// Field is a named datum attached to a chunk. Its bookmark lies inside the
// owning chunk's range and outside every child of that chunk.
type Field struct {
	Name  string
	Pos   types.Bookmark
	Addr  types.Address
	Value FieldValue
}

// String renders the field the way listings print it.
func (f *Field) String() string {
	text := RenderField(f.Value)
	if f.Name == "" {
		return text
	}
	return f.Name + ": " + text
}
