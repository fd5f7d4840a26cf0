package disasm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/disasmkit/pkg/types"
)

func TestNewBlob_NilTree(t *testing.T) {
	_, err := NewBlob(nil, DefaultBlobOptions())
	require.ErrorIs(t, err, types.ErrNilTree)
}

func TestBlob_GetEntrypoint(t *testing.T) {
	ctx := context.Background()
	tree := nestedTree(t)

	blob := newBlob(t, tree)
	got, err := blob.GetEntrypoint(ctx).Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, bm(0), got)

	addr := types.Address(0x50)
	blob, err = NewBlob(tree, BlobOptions{Entrypoint: &addr})
	require.NoError(t, err)
	got, err = blob.GetEntrypoint(ctx).Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, bm(0x40), got, "f2 starts at bookmark 0x40")

	outside := types.Address(0x500)
	blob, err = NewBlob(tree, BlobOptions{Entrypoint: &outside})
	require.NoError(t, err)
	_, err = blob.GetEntrypoint(ctx).Wait(ctx)
	require.ErrorIs(t, err, types.ErrResolution)
}

func TestBlob_GetEntrypointEmptyTree(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(DefaultBuilderOptions())
	require.NoError(t, b.AddChunk(ChunkSpec{ID: "root", Addr: Span{0x10, 0x10}}))
	tree, err := b.Build()
	require.NoError(t, err)

	blob := newBlob(t, tree)
	_, err = blob.GetEntrypoint(ctx).Wait(ctx)
	require.ErrorIs(t, err, types.ErrResolution)
	require.Equal(t, types.ScrollbarIndex(1), blob.MaxScrollbarIndex())
}

func TestBlob_GetPositionIdempotent(t *testing.T) {
	ctx := context.Background()
	blob := newBlob(t, nestedTree(t))

	first, err := blob.GetPosition(ctx, 9).Wait(ctx)
	require.NoError(t, err)
	second, err := blob.GetPosition(ctx, 9).Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, bm(0x40), first)
}

func TestBlob_GetPositionOutOfRange(t *testing.T) {
	ctx := context.Background()
	blob := newBlob(t, nestedTree(t))

	for _, idx := range []types.ScrollbarIndex{-1, 14, 1 << 40} {
		_, err := blob.GetPosition(ctx, idx).Wait(ctx)
		require.ErrorIs(t, err, types.ErrResolution, "index %d", idx)
	}
}

func TestBlob_RowsPerIndex(t *testing.T) {
	blob, err := NewBlob(nestedTree(t), BlobOptions{RowsPerIndex: 2})
	require.NoError(t, err)
	require.Equal(t, int64(2), blob.RowsPerIndex())
	require.Equal(t, types.ScrollbarIndex(6), blob.MaxScrollbarIndex())

	pos, err := blob.PositionAt(3)
	require.NoError(t, err)
	require.Equal(t, bm(0x40), pos, "row 6 is End(b2)")
	require.Equal(t, types.ScrollbarIndex(4), blob.ScrollbarIndexOf(bm(0x40)))

	zero, err := NewBlob(nestedTree(t), BlobOptions{})
	require.NoError(t, err)
	require.Equal(t, int64(1), zero.RowsPerIndex())
}

func TestBlob_ScrollbarIndexRoundTrip(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	for i := types.ScrollbarIndex(0); i <= blob.MaxScrollbarIndex(); i++ {
		pos, err := blob.PositionAt(i)
		require.NoError(t, err)
		w := blob.CreateWindow(pos, 0, 1)
		if w.AnchorOffset() < 0 {
			continue
		}
		anchor, _ := w.At(w.AnchorOffset())
		require.Equal(t, pos, anchor.Pos, "index %d", i)
		require.GreaterOrEqual(t, w.CurrentScrollbarIndex(), i-2, "index %d", i)
	}
}

func TestBlob_BookmarkAt(t *testing.T) {
	blob := newBlob(t, nestedTree(t))
	got, err := blob.BookmarkAt(0x15)
	require.NoError(t, err)
	require.Equal(t, bm(0x10), got)

	_, err = blob.BookmarkAt(0x1000)
	require.ErrorIs(t, err, types.ErrResolution)
}

func TestBlob_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blob := newBlob(t, nestedTree(t))
	_, err := blob.GetPosition(ctx, 0).Wait(context.Background())
	// Either the resolution or the cancellation wins, never both.
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
	}
}
