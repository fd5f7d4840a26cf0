package rawdec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/internal/buf"
	"github.com/joshuapare/disasmkit/pkg/types"
)

func sample(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestDecode_Layout(t *testing.T) {
	opts := DefaultOptions()
	opts.SectionSize = 32
	opts.Base = 0x400000
	tree, err := Decode(sample(72), opts)
	require.NoError(t, err)

	root := tree.Root()
	require.Equal(t, disasm.AddrRange{Begin: 0x400000, End: 0x400048}, root.Addr)

	secs := tree.Children(root.ID)
	require.Len(t, secs, 3)
	require.Equal(t, types.ChunkID("sec_00400040"), secs[2].ID)
	require.Equal(t, disasm.AddrRange{Begin: 0x400040, End: 0x400048}, secs[2].Addr)

	rows := tree.Children(secs[0].ID)
	require.Len(t, rows, 2)
	require.Equal(t, TypeRow, rows[0].Type)

	last := tree.Children(secs[2].ID)
	require.Len(t, last, 1)
	require.Equal(t, uint64(8), last[0].Addr.Len())
}

func TestDecode_RowFields(t *testing.T) {
	data := []byte("Hi\x00\x01caf\xe9\x81ABCDEFG")
	tree, err := Decode(data, DefaultOptions())
	require.NoError(t, err)

	row, ok := tree.Find("row_00000000")
	require.True(t, ok)
	require.Len(t, row.Fields, 3)

	byName := map[string]string{}
	for i := range row.Fields {
		byName[row.Fields[i].Name] = disasm.RenderField(row.Fields[i].Value)
	}
	require.Equal(t, "48 69 00 01 63 61 66 e9 81 41 42 43 44 45 46 47", byName["hex"])
	require.Equal(t, "Hi..café.ABCDEFG", byName["text"])
	require.Equal(t, "0x01006948", byName["word"])
	require.Equal(t, "db 0x01006948", row.TextString())
}

func TestDecode_ShortRowHasNoWord(t *testing.T) {
	opts := DefaultOptions()
	opts.WordSize = 8
	opts.Order = buf.BigEndian
	tree, err := Decode(sample(20), opts)
	require.NoError(t, err)

	first, ok := tree.Find("row_00000000")
	require.True(t, ok)
	require.Equal(t, "db 0x0001020304050607", first.TextString())

	tail, ok := tree.Find("row_00000010")
	require.True(t, ok)
	require.Len(t, tail.Fields, 2)
	require.Equal(t, "db", tail.TextString())
}

func TestDecode_Empty(t *testing.T) {
	tree, err := Decode(nil, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, tree.Children(tree.Root().ID))

	blob, err := disasm.NewBlob(tree, disasm.DefaultBlobOptions())
	require.NoError(t, err)
	_, err = blob.GetEntrypoint(context.Background()).Result()
	require.ErrorIs(t, err, types.ErrEmptyTree)
}

func TestDecode_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"zero row", func(o *Options) { o.RowSize = 0 }},
		{"section smaller than row", func(o *Options) { o.SectionSize = 8 }},
		{"section not multiple", func(o *Options) { o.SectionSize = 40 }},
		{"word size", func(o *Options) { o.WordSize = 3 }},
		{"overflow", func(o *Options) { o.Base = ^uint64(0) - 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mod(&opts)
			_, err := Decode(sample(16), opts)
			require.Error(t, err)
		})
	}
}

func TestDecode_WindowOverRows(t *testing.T) {
	tree, err := Decode(sample(0x3000), DefaultOptions())
	require.NoError(t, err)
	blob, err := disasm.NewBlob(tree, disasm.DefaultBlobOptions())
	require.NoError(t, err)

	anchor, err := blob.BookmarkAt(0x1010)
	require.NoError(t, err)
	w := blob.CreateWindow(anchor, 3, 5)
	e, ok := w.At(w.AnchorOffset())
	require.True(t, ok)
	require.Equal(t, disasm.EntryChunkBegin, e.Kind)
	require.Equal(t, types.ChunkID("row_00001010"), e.Chunk.ID)
}
