package scroll

import (
	"context"

	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/pkg/types"
)

// BlobResolver adapts a Blob's asynchronous GetPosition to Resolver.
type BlobResolver struct {
	Blob *disasm.Blob
}

// Position implements Resolver.
func (r BlobResolver) Position(ctx context.Context, idx types.ScrollbarIndex) (types.Bookmark, error) {
	return r.Blob.GetPosition(ctx, idx).Wait(ctx)
}

// ForWindow returns a coordinator paging w through its own blob.
func ForWindow(w *disasm.Window, opts Options) *Coordinator {
	return New(BlobResolver{Blob: w.Blob()}, w, opts)
}
