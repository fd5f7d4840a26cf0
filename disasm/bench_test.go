package disasm_test

import (
	"testing"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/disasm/mock"
	"github.com/joshuapare/disasmkit/pkg/types"
)

// Sinks keep the compiler from discarding benchmarked work.
var (
	benchEntries  []disasm.Entry
	benchBookmark types.Bookmark
)

type benchTree struct {
	Name string
	Opts mock.FactoryOptions
}

var benchTrees = []benchTree{
	{"small", mock.FactoryOptions{Seed: 1, Functions: 16, Blocks: 4, Instructions: 8, End: 0x1000}},
	{"large", mock.FactoryOptions{Seed: 1, Functions: 256, Blocks: 16, Instructions: 32, End: 1 << 20}},
}

func loadBlob(b *testing.B, opts mock.FactoryOptions) *disasm.Blob {
	b.Helper()
	tree, err := mock.NewChunkTreeFactory(opts).Tree()
	if err != nil {
		b.Fatalf("Tree failed: %v", err)
	}
	blob, err := disasm.NewBlob(tree, disasm.DefaultBlobOptions())
	if err != nil {
		b.Fatalf("NewBlob failed: %v", err)
	}
	return blob
}

// BenchmarkWindowSeek measures materializing 500 entries on either side of
// an anchor in the middle of the listing.
func BenchmarkWindowSeek(b *testing.B) {
	for _, bt := range benchTrees {
		b.Run(bt.Name, func(b *testing.B) {
			blob := loadBlob(b, bt.Opts)
			mid, err := blob.PositionAt(blob.MaxScrollbarIndex() / 2)
			if err != nil {
				b.Fatalf("PositionAt failed: %v", err)
			}
			w := blob.CreateWindow(mid, 0, 0)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				w.Seek(mid, 500, 500)
			}

			benchEntries = w.Entries()
		})
	}
}

// BenchmarkPositionAt measures resolving scrollbar indices spread over the
// whole listing.
func BenchmarkPositionAt(b *testing.B) {
	for _, bt := range benchTrees {
		b.Run(bt.Name, func(b *testing.B) {
			blob := loadBlob(b, bt.Opts)
			maxIdx := int64(blob.MaxScrollbarIndex())

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				idx := types.ScrollbarIndex(int64(i*7919) % (maxIdx + 1))
				bm, err := blob.PositionAt(idx)
				if err != nil {
					b.Fatalf("PositionAt(%d) failed: %v", idx, err)
				}
				benchBookmark = bm
			}
		})
	}
}

// BenchmarkCollapseToggle measures regenerating a window around a toggled
// function.
func BenchmarkCollapseToggle(b *testing.B) {
	for _, bt := range benchTrees {
		b.Run(bt.Name, func(b *testing.B) {
			blob := loadBlob(b, bt.Opts)
			w := blob.CreateWindow(types.NewBookmark(0), 0, 200)
			var fn types.ChunkID
			for _, e := range w.Entries() {
				if e.Kind == disasm.EntryChunkBegin && e.Depth == 1 {
					fn = e.Chunk.ID
					break
				}
			}
			if fn == "" {
				b.Fatalf("no function in %s", bt.Name)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := w.ChunkCollapseToggle(fn); err != nil {
					b.Fatalf("toggle failed: %v", err)
				}
			}

			benchEntries = w.Entries()
		})
	}
}
