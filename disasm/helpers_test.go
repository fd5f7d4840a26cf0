package disasm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// scenarioTree is root [0,0x1000) holding funcA [0,0x800) and funcB
// [0x800,0x1000).
func scenarioTree(t *testing.T) *ChunkTree {
	t.Helper()
	b := NewBuilder(DefaultBuilderOptions())
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "root", Addr: Span{0, 0x1000}, Type: "FILE"}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "funcA", Parent: "root", Addr: Span{0, 0x800}, Type: "FUNCTION"}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "funcB", Parent: "root", Addr: Span{0x800, 0x1000}, Type: "FUNCTION"}))
	tree, err := b.Build()
	require.NoError(t, err)
	return tree
}

// nestedTree has a field, grandchildren and an address overlap between f1
// and f2. Its fully expanded stream is:
//
//	0 Begin(root)@0     7 End(f1)@40
//	1 Begin(f1)@0       8 Overlap(f2)@40
//	2 Field(f1.name)@0  9 Begin(f2)@40
//	3 Begin(b1)@10     10 End(f2)@80
//	4 End(b1)@20       11 Begin(f3)@80
//	5 Begin(b2)@20     12 End(f3)@100
//	6 End(b2)@40       13 End(root)@100
func nestedTree(t *testing.T) *ChunkTree {
	t.Helper()
	b := NewBuilder(DefaultBuilderOptions())
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "root", Addr: Span{0, 0x100}, Type: "FILE"}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "f1", Parent: "root", Addr: Span{0, 0x40}, Type: "FUNCTION"}))
	require.NoError(t, b.AddField("f1", FieldSpec{Name: "name", Addr: 0, Value: FieldString("f1")}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "b1", Parent: "f1", Addr: Span{0x10, 0x20}, Type: "BLOCK"}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "b2", Parent: "f1", Addr: Span{0x20, 0x40}, Type: "BLOCK"}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "f2", Parent: "root", Addr: Span{0x30, 0x70}, Pos: &Span{0x40, 0x80}, Type: "FUNCTION"}))
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "f3", Parent: "root", Addr: Span{0x80, 0x100}, Type: "FUNCTION"}))
	tree, err := b.Build()
	require.NoError(t, err)
	return tree
}

// row is a compact, comparable description of an entry.
type row struct {
	Kind  EntryKind
	ID    types.ChunkID
	Pos   uint64
	Depth int
}

func rowsOf(entries []Entry) []row {
	out := make([]row, len(entries))
	for i, e := range entries {
		r := row{Kind: e.Kind, Pos: e.Pos.Raw(), Depth: e.Depth}
		if e.Chunk != nil {
			r.ID = e.Chunk.ID
		}
		out[i] = r
	}
	return out
}

var nestedStream = []row{
	{EntryChunkBegin, "root", 0x00, 0},
	{EntryChunkBegin, "f1", 0x00, 1},
	{EntryField, "f1", 0x00, 2},
	{EntryChunkBegin, "b1", 0x10, 2},
	{EntryChunkEnd, "b1", 0x20, 2},
	{EntryChunkBegin, "b2", 0x20, 2},
	{EntryChunkEnd, "b2", 0x40, 2},
	{EntryChunkEnd, "f1", 0x40, 1},
	{EntryOverlap, "f2", 0x40, 1},
	{EntryChunkBegin, "f2", 0x40, 1},
	{EntryChunkEnd, "f2", 0x80, 1},
	{EntryChunkBegin, "f3", 0x80, 1},
	{EntryChunkEnd, "f3", 0x100, 1},
	{EntryChunkEnd, "root", 0x100, 0},
}

func bm(pos uint64) types.Bookmark { return types.NewBookmark(pos) }

// requireBalanced checks that depth never goes negative and that every end
// closes a chunk opened earlier in the same sequence.
func requireBalanced(t *testing.T, entries []Entry) {
	t.Helper()
	var open []types.ChunkID
	for i, e := range entries {
		require.GreaterOrEqual(t, e.Depth, 0, "entry %d", i)
		switch e.Kind {
		case EntryChunkBegin:
			require.Equal(t, len(open), e.Depth, "entry %d %v", i, e)
			open = append(open, e.Chunk.ID)
		case EntryChunkEnd:
			require.NotEmpty(t, open, "entry %d %v closes nothing", i, e)
			require.Equal(t, open[len(open)-1], e.Chunk.ID, "entry %d", i)
			open = open[:len(open)-1]
			require.Equal(t, len(open), e.Depth, "entry %d %v", i, e)
		default:
			require.Equal(t, len(open), e.Depth, "entry %d %v", i, e)
		}
	}
}
