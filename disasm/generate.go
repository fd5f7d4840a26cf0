package disasm

import (
	"iter"
	"slices"
	"sort"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// Range bounds a generation pass. Begin, field, overlap and collapsed entries
// are produced when Lo <= pos < Hi; an end entry is produced when its chunk
// was opened and its position is <= Hi.
type Range struct {
	Lo types.Bookmark
	Hi types.Bookmark
}

// Unbounded returns a range from lo to the end of the tree.
func Unbounded(lo types.Bookmark) Range {
	return Range{Lo: lo, Hi: types.MaxBookmark}
}

// Entries streams the flattened tree in bookmark order. Ancestors of the
// first in-range entry are produced first as begin entries so that depth
// stays balanced. Each call walks the tree from scratch.
func Entries(tree *ChunkTree, collapsed CollapseSet, r Range) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if tree == nil || tree.root == nil || !r.Lo.Less(r.Hi) {
			return
		}
		w := forward{collapsed: collapsed, lo: r.Lo, hi: r.Hi, yield: yield}
		w.visit(tree.root)
	}
}

// Generate collects Entries into a slice.
func Generate(tree *ChunkTree, collapsed CollapseSet, r Range) []Entry {
	return slices.Collect(Entries(tree, collapsed, r))
}

type forward struct {
	collapsed CollapseSet
	lo, hi    types.Bookmark
	yield     func(Entry) bool
}

// visit emits n and its descendants. It returns false once the walk must
// stop, either because the range is exhausted or the consumer quit.
func (w *forward) visit(n *node) bool {
	c := n.chunk
	if !c.Pos.Begin.Less(w.hi) {
		return false
	}
	if !w.lo.Less(c.Pos.End) && !(c.IsRoot() && c.Pos.Empty() && c.Pos.Begin.Equal(w.lo)) {
		return true
	}
	if w.collapsed.Has(c.ID) {
		return w.yield(Entry{Kind: EntryChunkCollapsed, Chunk: c, Pos: c.Pos.Begin, Depth: n.depth})
	}
	if !w.yield(Entry{Kind: EntryChunkBegin, Chunk: c, Pos: c.Pos.Begin, Depth: n.depth}) {
		return false
	}

	items := n.items
	start := sort.Search(len(items), func(i int) bool { return items[i].reaches(w.lo) })
	for _, it := range items[start:] {
		if !it.pos.Less(w.hi) {
			return false
		}
		if it.child == nil {
			if !w.yield(Entry{Kind: EntryField, Chunk: c, Field: it.field, Pos: it.pos, Depth: n.depth + 1}) {
				return false
			}
			continue
		}
		if it.overlap && !it.pos.Less(w.lo) {
			if !w.yield(Entry{Kind: EntryOverlap, Chunk: it.child.chunk, Pos: it.pos, Depth: n.depth + 1}) {
				return false
			}
		}
		if !w.visit(it.child) {
			return false
		}
	}

	if w.hi.Less(c.Pos.End) {
		return false
	}
	return w.yield(Entry{Kind: EntryChunkEnd, Chunk: c, Pos: c.Pos.End, Depth: n.depth})
}

// EntriesBefore streams, nearest first, the entries of the flattened tree
// that precede anchor: everything positioned before it plus end entries
// sitting exactly on it. It is the reverse of Entries over that prefix.
func EntriesBefore(tree *ChunkTree, collapsed CollapseSet, anchor types.Bookmark) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if tree == nil || tree.root == nil {
			return
		}
		w := backward{collapsed: collapsed, anchor: anchor, yield: yield}
		w.visit(tree.root)
	}
}

type backward struct {
	collapsed CollapseSet
	anchor    types.Bookmark
	yield     func(Entry) bool
}

func (w *backward) visit(n *node) bool {
	c := n.chunk
	if !c.Pos.Begin.Less(w.anchor) {
		return true
	}
	if w.collapsed.Has(c.ID) {
		return w.yield(Entry{Kind: EntryChunkCollapsed, Chunk: c, Pos: c.Pos.Begin, Depth: n.depth})
	}
	if !w.anchor.Less(c.Pos.End) {
		if !w.yield(Entry{Kind: EntryChunkEnd, Chunk: c, Pos: c.Pos.End, Depth: n.depth}) {
			return false
		}
	}

	items := n.items
	stop := sort.Search(len(items), func(i int) bool { return !items[i].pos.Less(w.anchor) })
	for i := stop - 1; i >= 0; i-- {
		it := items[i]
		if it.child == nil {
			if !w.yield(Entry{Kind: EntryField, Chunk: c, Field: it.field, Pos: it.pos, Depth: n.depth + 1}) {
				return false
			}
			continue
		}
		if !w.visit(it.child) {
			return false
		}
		if it.overlap {
			if !w.yield(Entry{Kind: EntryOverlap, Chunk: it.child.chunk, Pos: it.pos, Depth: n.depth + 1}) {
				return false
			}
		}
	}

	return w.yield(Entry{Kind: EntryChunkBegin, Chunk: c, Pos: c.Pos.Begin, Depth: n.depth})
}
