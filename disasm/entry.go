package disasm

import (
	"fmt"
	"sort"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// EntryKind tags an Entry.
type EntryKind int

const (
	EntryChunkBegin EntryKind = iota
	EntryChunkEnd
	EntryField
	EntryOverlap
	EntryChunkCollapsed
)

func (k EntryKind) String() string {
	switch k {
	case EntryChunkBegin:
		return "ChunkBegin"
	case EntryChunkEnd:
		return "ChunkEnd"
	case EntryField:
		return "Field"
	case EntryOverlap:
		return "Overlap"
	case EntryChunkCollapsed:
		return "ChunkCollapsed"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// Entry is one display row. Chunk is the chunk that begins, ends or is
// collapsed, the owner of a field, or for an overlap marker the chunk that
// follows it. Field is set for field entries only. Entries are comparable
// with ==.
type Entry struct {
	Kind  EntryKind
	Chunk *Chunk
	Field *Field
	Pos   types.Bookmark
	Depth int
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryChunkBegin, EntryChunkEnd, EntryChunkCollapsed:
		return fmt.Sprintf("%s(%s)%v", e.Kind, e.Chunk.ID, e.Pos)
	case EntryField:
		return fmt.Sprintf("Field(%s.%s)%v", e.Chunk.ID, e.Field.Name, e.Pos)
	default:
		return fmt.Sprintf("%s%v", e.Kind, e.Pos)
	}
}

// precedes reports whether e sorts before an anchor at b: every entry before
// b, plus the end entries sitting exactly on b.
func (e Entry) precedes(b types.Bookmark) bool {
	return e.Pos.Less(b) || (e.Kind == EntryChunkEnd && e.Pos.Equal(b))
}

// CollapseSet is the set of chunk ids rendered as a single collapsed entry.
// A nil set is empty.
type CollapseSet map[types.ChunkID]struct{}

// Has reports whether id is collapsed.
func (s CollapseSet) Has(id types.ChunkID) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips id and reports whether it is now collapsed.
func (s CollapseSet) Toggle(id types.ChunkID) bool {
	if _, ok := s[id]; ok {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Len returns the number of collapsed chunks.
func (s CollapseSet) Len() int { return len(s) }

// Clone returns an independent copy.
func (s CollapseSet) Clone() CollapseSet {
	out := make(CollapseSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the collapsed ids in sorted order.
func (s CollapseSet) IDs() []types.ChunkID {
	ids := make([]types.ChunkID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
