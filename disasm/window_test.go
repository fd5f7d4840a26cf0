package disasm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/disasmkit/pkg/types"
)

func newBlob(t *testing.T, tree *ChunkTree) *Blob {
	t.Helper()
	b, err := NewBlob(tree, DefaultBlobOptions())
	require.NoError(t, err)
	return b
}

func TestWindow_ScenarioStartsAtRoot(t *testing.T) {
	blob := newBlob(t, scenarioTree(t))
	w := blob.CreateWindow(bm(0), 0, 10)

	entries := w.Entries()
	require.Len(t, entries, 6)
	require.Equal(t, EntryChunkBegin, entries[0].Kind)
	require.Equal(t, types.ChunkID("root"), entries[0].Chunk.ID)

	idx := func(kind EntryKind, id types.ChunkID) int {
		for i, e := range entries {
			if e.Kind == kind && e.Chunk != nil && e.Chunk.ID == id {
				return i
			}
		}
		return -1
	}
	require.Equal(t, 1, idx(EntryChunkBegin, "funcA"))
	require.Less(t, idx(EntryChunkBegin, "funcA"), idx(EntryChunkBegin, "funcB"))
	require.Equal(t, 0, w.AnchorOffset())
}

func TestWindow_CollapseReplacesBlock(t *testing.T) {
	blob := newBlob(t, scenarioTree(t))
	w := blob.CreateWindow(bm(0), 0, 10)
	before := w.Len()

	fired := 0
	w.OnDataChanged(func() { fired++ })

	require.NoError(t, w.ChunkCollapseToggle("funcA"))
	require.Equal(t, 1, fired)
	require.True(t, w.IsCollapsed("funcA"))
	require.Equal(t, before-1, w.Len())

	var collapsed, funcA int
	for _, e := range w.Entries() {
		if e.Chunk == nil || e.Chunk.ID != "funcA" {
			continue
		}
		funcA++
		if e.Kind == EntryChunkCollapsed {
			collapsed++
		}
	}
	require.Equal(t, 1, collapsed)
	require.Equal(t, 1, funcA)

	require.NoError(t, w.ChunkCollapseToggle("funcA"))
	require.Equal(t, 2, fired)
	require.Equal(t, before, w.Len())
}

func TestWindow_ExactMargins(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0x40), 2, 3)

	require.Equal(t, []row{
		{EntryChunkBegin, "root", 0x00, 0},
		{EntryChunkBegin, "f1", 0x00, 1},
		{EntryChunkBegin, "b2", 0x20, 2},
		{EntryChunkEnd, "b2", 0x40, 2},
		{EntryChunkEnd, "f1", 0x40, 1},
		{EntryOverlap, "f2", 0x40, 1},
		{EntryChunkBegin, "f2", 0x40, 1},
		{EntryChunkEnd, "f2", 0x80, 1},
	}, rowsOf(w.Entries()))
	require.Equal(t, 5, w.AnchorOffset())

	before, after := w.Margins()
	require.Equal(t, 2, before)
	require.Equal(t, 3, after)
}

func TestWindow_NoBeforeMarginKeepsContext(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0x40), 0, 3)
	require.Equal(t, []row{
		{EntryChunkBegin, "root", 0x00, 0},
		{EntryOverlap, "f2", 0x40, 1},
		{EntryChunkBegin, "f2", 0x40, 1},
		{EntryChunkEnd, "f2", 0x80, 1},
	}, rowsOf(w.Entries()))
	require.Equal(t, 1, w.AnchorOffset())
}

func TestWindow_TruncatesAtTreeBoundaries(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0x40), 100, 100)
	require.Equal(t, nestedStream, rowsOf(w.Entries()))
	require.Equal(t, 8, w.AnchorOffset())

	w.Seek(bm(0x40), -5, 0)
	require.Equal(t, -1, w.AnchorOffset())
	before, after := w.Margins()
	require.Zero(t, before)
	require.Zero(t, after)
}

func TestWindow_BalancedEverywhere(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0), 0, 0)
	for _, collapsed := range []types.ChunkID{"", "b1", "f1"} {
		if collapsed != "" {
			require.NoError(t, w.ChunkCollapseToggle(collapsed))
		}
		for a := uint64(0); a <= 0x108; a += 4 {
			for _, margin := range []int{0, 1, 2, 3, 5, 9} {
				w.Seek(bm(a), margin, margin+1)
				requireBalanced(t, w.Entries())
			}
		}
	}
}

func TestWindow_DataChangedOnlyOnEffectiveChange(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0), 2, 4)

	fired := 0
	cancel := w.OnDataChanged(func() { fired++ })

	w.Seek(bm(0), 2, 4)
	require.Zero(t, fired, "identical sequence must not notify")

	w.Seek(bm(0x80), 2, 4)
	require.Equal(t, 1, fired)

	// f3 is materialized; b1 is not.
	require.NoError(t, w.ChunkCollapseToggle("b1"))
	require.Equal(t, 1, fired)
	require.True(t, w.IsCollapsed("b1"))

	cancel()
	w.Seek(bm(0), 2, 4)
	require.Equal(t, 1, fired)
}

func TestWindow_UnknownChunkToggle(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0), 0, 10)
	before := w.Entries()

	fired := 0
	w.OnDataChanged(func() { fired++ })

	err := w.ChunkCollapseToggle("stale")
	require.ErrorIs(t, err, types.ErrUnknownChunk)
	require.Zero(t, fired)
	require.Equal(t, before, w.Entries())
	require.Zero(t, w.Collapsed().Len())
}

func TestWindow_GenerationCountsSeeks(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0), 1, 1)
	require.Equal(t, uint64(1), w.Generation())

	w.Seek(bm(0x20), 1, 1)
	require.Equal(t, uint64(2), w.Generation())

	require.NoError(t, w.ChunkCollapseToggle("f1"))
	require.Equal(t, uint64(2), w.Generation())
	require.NotEqual(t, w.ID(), blob.CreateWindow(bm(0), 1, 1).ID())
}

func TestWindow_ScrollbarIndex(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	w := blob.CreateWindow(bm(0x40), 1, 1)
	require.Equal(t, types.ScrollbarIndex(8), w.CurrentScrollbarIndex())
	require.Equal(t, types.ScrollbarIndex(13), w.MaxScrollbarIndex())

	w.Seek(bm(0), 1, 1)
	require.Equal(t, types.ScrollbarIndex(0), w.CurrentScrollbarIndex())
}

func TestWindow_EntriesIsACopy(t *testing.T) {
	blob := newBlob(t, scenarioTree(t))
	w := blob.CreateWindow(bm(0), 0, 10)
	got := w.Entries()
	got[0] = Entry{}
	first, ok := w.At(0)
	require.True(t, ok)
	require.Equal(t, EntryChunkBegin, first.Kind)
	_, ok = w.At(99)
	require.False(t, ok)
}

func TestWindow_HasMore(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	tests := []struct {
		name          string
		anchor        uint64
		before, after int
		moreBefore    bool
		moreAfter     bool
	}{
		{"middle", 0x40, 2, 3, true, true},
		{"whole stream", 0x40, 100, 100, false, false},
		{"at start without margin", 0, 0, 3, false, true},
		{"closed entries precede", 0x40, 0, 3, true, true},
		{"only open chunks precede", 0x10, 1, 2, false, true},
		{"past the end", 0x100, 2, 5, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := blob.CreateWindow(bm(tt.anchor), tt.before, tt.after)
			require.Equal(t, tt.moreBefore, w.HasMoreBefore(), "HasMoreBefore")
			require.Equal(t, tt.moreAfter, w.HasMoreAfter(), "HasMoreAfter")
		})
	}
}
