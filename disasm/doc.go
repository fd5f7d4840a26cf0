// Package disasm implements the chunk tree, entry stream and windowing engine
// behind a scrollable listing of a decoded binary.
//
// # Overview
//
// A Blob owns a ChunkTree: the address space of one binary decomposed into
// nested chunks (file, functions, blocks, instructions, data rows). A Window
// materializes only the slice of that hierarchy around an anchor Bookmark as
// a flat sequence of Entry records that a presentation layer renders 1:1 as
// rows.
//
//	tree, err := b.Build()                      // decoder side
//	blob, err := disasm.NewBlob(tree, disasm.DefaultBlobOptions())
//	entry, err := blob.GetEntrypoint(ctx).Wait(ctx)
//	win := blob.CreateWindow(entry, 500, 500)
//	for _, e := range win.Entries() {
//	    // render e at indentation e.Depth
//	}
//
// # Bookmarks
//
// Bookmarks are opaque, totally ordered positions. Every entry in the stream
// carries one, and the stream is ordered by them. A bookmark that sits exactly
// on a chunk boundary belongs to the chunk that starts there, never to the one
// that ends there.
//
// # Entry Stream
//
// The generator flattens the tree depth-first:
//
//	ChunkBegin(file)
//	  ChunkBegin(funcA)
//	    Field(funcA, name)
//	    ChunkBegin(block) ... ChunkEnd(block)
//	  ChunkEnd(funcA)
//	  ChunkCollapsed(funcB)          // funcB is in the collapse set
//	ChunkEnd(file)
//
// A child whose address range overlaps an earlier sibling is preceded by an
// Overlap marker. Generation is a pure function of (tree, collapse set,
// range); it is restarted from scratch on every call.
//
// # Scrollbar Indices
//
// ScrollbarIndex values count rows of the fully expanded stream of the whole
// tree (optionally scaled by BlobOptions.RowsPerIndex). Row counts are
// computed per chunk on first use and memoised, so resolving an index that
// lands in a region never visited before walks that region once.
//
// # Thread Safety
//
// ChunkTree and Blob are safe for concurrent use. A Window is owned by the
// goroutine that drives the presentation layer; Seek and
// ChunkCollapseToggle must not race with Entries.
package disasm
