package disasm

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// Window is the materialized slice of a Blob's entry stream around an anchor
// bookmark. A Window is not safe for concurrent use; it belongs to the
// goroutine that renders it.
type Window struct {
	id        uuid.UUID
	blob      *Blob
	anchor    types.Bookmark
	before    int
	after     int
	collapsed CollapseSet

	entries      []Entry
	anchorOffset int
	moreBefore   bool
	moreAfter    bool
	generation   uint64

	observers map[int]func()
	nextObs   int
}

func newWindow(b *Blob) *Window {
	return &Window{
		id:           uuid.New(),
		blob:         b,
		collapsed:    make(CollapseSet),
		anchorOffset: -1,
		observers:    make(map[int]func()),
	}
}

// ID identifies the window in logs.
func (w *Window) ID() uuid.UUID { return w.id }

// Blob returns the blob the window pages over.
func (w *Window) Blob() *Blob { return w.blob }

// Entries returns a copy of the materialized entries.
func (w *Window) Entries() []Entry { return slices.Clone(w.entries) }

// Len returns the number of materialized entries.
func (w *Window) Len() int { return len(w.entries) }

// At returns the i-th materialized entry.
func (w *Window) At(i int) (Entry, bool) {
	if i < 0 || i >= len(w.entries) {
		return Entry{}, false
	}
	return w.entries[i], true
}

// Anchor returns the bookmark the window is centred on.
func (w *Window) Anchor() types.Bookmark { return w.anchor }

// Margins returns the requested before and after counts.
func (w *Window) Margins() (before, after int) { return w.before, w.after }

// AnchorOffset returns the index in Entries of the first entry that does not
// precede the anchor, or -1 when that entry is not materialized.
func (w *Window) AnchorOffset() int { return w.anchorOffset }

// HasMoreBefore reports whether the stream holds entries before the first
// materialized one that the window does not show.
func (w *Window) HasMoreBefore() bool { return w.moreBefore }

// HasMoreAfter reports whether the stream continues past the last
// materialized entry.
func (w *Window) HasMoreAfter() bool { return w.moreAfter }

// Generation counts completed seeks, including the one CreateWindow makes,
// so a new window reports 1.
func (w *Window) Generation() uint64 { return w.generation }

// IsCollapsed reports whether id is in the window's collapse set.
func (w *Window) IsCollapsed(id types.ChunkID) bool { return w.collapsed.Has(id) }

// Collapsed returns a copy of the collapse set.
func (w *Window) Collapsed() CollapseSet { return w.collapsed.Clone() }

// CurrentScrollbarIndex returns the scrollbar index of the anchor.
func (w *Window) CurrentScrollbarIndex() types.ScrollbarIndex {
	return w.blob.ScrollbarIndexOf(w.anchor)
}

// MaxScrollbarIndex returns the largest valid scrollbar index.
func (w *Window) MaxScrollbarIndex() types.ScrollbarIndex {
	return w.blob.MaxScrollbarIndex()
}

// OnDataChanged registers fn to run whenever a seek or collapse toggle
// changes the materialized entries. The returned func unregisters it.
func (w *Window) OnDataChanged(fn func()) (cancel func()) {
	id := w.nextObs
	w.nextObs++
	w.observers[id] = fn
	return func() { delete(w.observers, id) }
}

// Seek re-anchors the window. Negative margins are treated as zero.
func (w *Window) Seek(anchor types.Bookmark, before, after int) {
	w.anchor = anchor
	w.before = max(before, 0)
	w.after = max(after, 0)
	w.generation++
	w.refresh("seek")
}

// ChunkCollapseToggle flips the collapse state of id and regenerates. An id
// absent from the tree is reported with an ErrKindUnknownChunk error and
// leaves the window untouched.
func (w *Window) ChunkCollapseToggle(id types.ChunkID) error {
	if _, ok := w.blob.tree.Find(id); !ok {
		w.blob.log.Debug("collapse toggle ignored", "window", w.id.String(), "chunk", string(id))
		return types.Errorf(types.ErrKindUnknownChunk, "chunk %q not in tree", id)
	}
	w.collapsed.Toggle(id)
	w.refresh("toggle")
	return nil
}

func (w *Window) refresh(reason string) {
	start := time.Now()
	entries, offset := w.materialize()
	changed := !slices.Equal(entries, w.entries)
	w.entries, w.anchorOffset = entries, offset

	w.blob.log.Debug("window materialized",
		"window", w.id.String(),
		"reason", reason,
		"anchor", w.anchor.String(),
		"entries", len(entries),
		"anchor_offset", offset,
		"changed", changed,
		"elapsed", time.Since(start),
	)
	if !changed {
		return
	}
	for _, fn := range w.observers {
		fn()
	}
}

// materialize produces up to before entries preceding the anchor entry, the
// anchor entry and up to after-1 entries following it. Chunks still open at
// the first materialized entry are prepended as begin entries. It also sets
// moreBefore and moreAfter.
func (w *Window) materialize() ([]Entry, int) {
	tree := w.blob.tree
	var pre []Entry
	w.moreBefore, w.moreAfter = false, false
	for e := range EntriesBefore(tree, w.collapsed, w.anchor) {
		if len(pre) < w.before {
			pre = append(pre, e)
			continue
		}
		// Begins reached from here on belong to chunks still open at the
		// first materialized entry, which the context prefix covers.
		if e.Kind != EntryChunkBegin {
			w.moreBefore = true
			break
		}
	}
	slices.Reverse(pre)

	out := make([]Entry, 0, len(pre)+w.after+8)
	if len(pre) > 0 {
		out = append(out, contextOf(tree, pre[0])...)
		out = append(out, pre...)
	}
	offset := -1
	for e := range Entries(tree, w.collapsed, Unbounded(w.anchor)) {
		if offset < 0 && e.precedes(w.anchor) {
			// Context begins; already covered when pre is non-empty.
			if len(pre) == 0 {
				out = append(out, e)
			}
			continue
		}
		if offset < 0 {
			offset = len(out)
		}
		if len(out)-offset == w.after {
			w.moreAfter = true
			break
		}
		out = append(out, e)
	}
	if offset >= len(out) {
		offset = -1
	}
	return out, offset
}

// contextOf returns begin entries for the chunks open at e, outermost first.
// An end or field entry keeps its own chunk open.
func contextOf(t *ChunkTree, e Entry) []Entry {
	if e.Chunk == nil {
		return nil
	}
	path := t.Path(e.Chunk.ID)
	switch e.Kind {
	case EntryChunkEnd, EntryField:
	default:
		path = path[:len(path)-1]
	}
	out := make([]Entry, len(path))
	for i, c := range path {
		out[i] = Entry{Kind: EntryChunkBegin, Chunk: c, Pos: c.Pos.Begin, Depth: i}
	}
	return out
}
