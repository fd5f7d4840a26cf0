package disasm

import (
	"context"
	"io"
	"log/slog"

	"github.com/joshuapare/disasmkit/pkg/types"
)

// BlobOptions configures a Blob.
type BlobOptions struct {
	// Entrypoint is the address GetEntrypoint resolves. When nil the
	// entrypoint is the start of the root chunk.
	Entrypoint *types.Address

	// RowsPerIndex is how many rows of the expanded stream one scrollbar
	// index stands for. Values below 1 are treated as 1.
	RowsPerIndex int64

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultBlobOptions returns options with one row per scrollbar index and no
// configured entrypoint.
func DefaultBlobOptions() BlobOptions {
	return BlobOptions{RowsPerIndex: 1}
}

// Blob is the backend façade over one decoded binary. It resolves
// entrypoints and scrollbar indices to bookmarks and creates Windows. A Blob
// is safe for concurrent use.
type Blob struct {
	tree  *ChunkTree
	entry *types.Address
	scale int64
	log   *slog.Logger
}

// NewBlob wraps a built tree.
func NewBlob(tree *ChunkTree, opts BlobOptions) (*Blob, error) {
	if tree == nil || tree.root == nil {
		return nil, types.ErrNilTree
	}
	scale := opts.RowsPerIndex
	if scale < 1 {
		scale = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Blob{tree: tree, entry: opts.Entrypoint, scale: scale, log: log}, nil
}

// Tree returns the chunk tree behind the blob.
func (b *Blob) Tree() *ChunkTree { return b.tree }

// RowsPerIndex returns the scrollbar scale.
func (b *Blob) RowsPerIndex() int64 { return b.scale }

// GetEntrypoint resolves the initial bookmark in the background.
func (b *Blob) GetEntrypoint(ctx context.Context) *Future[types.Bookmark] {
	return Go(ctx, func(context.Context) (types.Bookmark, error) {
		return b.entrypoint()
	})
}

func (b *Blob) entrypoint() (types.Bookmark, error) {
	root := b.tree.root.chunk
	if root.Pos.Empty() {
		return types.Bookmark{}, types.ErrEmptyTree
	}
	if b.entry == nil {
		return root.Pos.Begin, nil
	}
	bm, err := b.BookmarkAt(*b.entry)
	if err != nil {
		return types.Bookmark{}, types.Wrap(types.ErrKindResolution, "resolve entrypoint", err)
	}
	b.log.Debug("entrypoint resolved", "addr", b.entry.String(), "bookmark", bm.String())
	return bm, nil
}

// BookmarkAt returns the start of the deepest chunk holding addr.
func (b *Blob) BookmarkAt(addr types.Address) (types.Bookmark, error) {
	c := b.tree.ChunkAt(addr)
	if c == nil {
		return types.Bookmark{}, types.Errorf(types.ErrKindResolution, "address %v is outside every chunk", addr)
	}
	return c.Pos.Begin, nil
}

// GetPosition resolves a scrollbar index in the background. The result is
// the bookmark of the row idx*RowsPerIndex of the fully expanded stream.
func (b *Blob) GetPosition(ctx context.Context, idx types.ScrollbarIndex) *Future[types.Bookmark] {
	return Go(ctx, func(context.Context) (types.Bookmark, error) {
		return b.PositionAt(idx)
	})
}

// PositionAt is the synchronous form of GetPosition.
func (b *Blob) PositionAt(idx types.ScrollbarIndex) (types.Bookmark, error) {
	if idx < 0 || idx > b.MaxScrollbarIndex() {
		return types.Bookmark{}, types.Errorf(types.ErrKindResolution,
			"scrollbar index %d out of range [0, %d]", idx, b.MaxScrollbarIndex())
	}
	bm, ok := b.tree.RowPosition(int64(idx) * b.scale)
	if !ok {
		return types.Bookmark{}, types.Errorf(types.ErrKindResolution, "scrollbar index %d has no row", idx)
	}
	return bm, nil
}

// ScrollbarIndexOf returns the index of the row an anchor at bm lands on.
func (b *Blob) ScrollbarIndexOf(bm types.Bookmark) types.ScrollbarIndex {
	idx := types.ScrollbarIndex(b.tree.RowOf(bm) / b.scale)
	return min(idx, b.MaxScrollbarIndex())
}

// MaxScrollbarIndex returns the largest valid index; never negative.
func (b *Blob) MaxScrollbarIndex() types.ScrollbarIndex {
	rows := b.tree.TotalRows()
	if rows <= 0 {
		return 0
	}
	return types.ScrollbarIndex((rows - 1) / b.scale)
}

// CreateWindow materializes a window around anchor.
func (b *Blob) CreateWindow(anchor types.Bookmark, before, after int) *Window {
	w := newWindow(b)
	w.Seek(anchor, before, after)
	return w
}
