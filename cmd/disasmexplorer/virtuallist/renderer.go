// Package virtuallist renders only the visible rows of a long list.
package virtuallist

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// VirtualList is implemented by components whose rows are rendered on
// demand.
type VirtualList interface {
	// ItemCount returns the total number of rows.
	ItemCount() int

	// RenderItem renders row index at the given width. isCursor marks the
	// selected row.
	RenderItem(index int, isCursor bool, width int) string
}

// Renderer tracks the cursor and the first visible row of a VirtualList.
// Rendering cost depends on the height, not on the number of rows.
type Renderer struct {
	list     VirtualList
	viewport viewport.Model
	cursor   int
	offset   int
	width    int
	height   int
}

// New creates a renderer for list.
func New(list VirtualList) *Renderer {
	return &Renderer{list: list, viewport: viewport.New(0, 0)}
}

// SetSize updates the renderer size and keeps the cursor on screen.
func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.viewport.Width = width
	r.viewport.Height = height
	r.clamp()
}

// SetCursor moves the cursor, scrolling just enough to keep it visible.
func (r *Renderer) SetCursor(cursor int) {
	r.cursor = cursor
	r.clamp()
}

// MoveCursor moves the cursor by delta rows.
func (r *Renderer) MoveCursor(delta int) {
	r.SetCursor(r.cursor + delta)
}

// PlaceCursor moves the cursor to row and scrolls so that it appears on
// screen line line. Used after the list contents were replaced.
func (r *Renderer) PlaceCursor(row, line int) {
	r.cursor = row
	r.offset = row - line
	r.clamp()
}

// CenterOn moves the cursor to row and scrolls it to the middle of the
// screen.
func (r *Renderer) CenterOn(row int) {
	r.PlaceCursor(row, r.height/2)
}

// Cursor returns the selected row.
func (r *Renderer) Cursor() int { return r.cursor }

// Offset returns the first visible row.
func (r *Renderer) Offset() int { return r.offset }

// Width returns the current width.
func (r *Renderer) Width() int { return r.width }

// Height returns the current height.
func (r *Renderer) Height() int { return r.height }

// clamp keeps cursor inside the list and offset inside [0, count-height],
// with the cursor on screen.
func (r *Renderer) clamp() {
	count := r.list.ItemCount()
	r.cursor = max(0, min(r.cursor, count-1))

	if r.height > 0 {
		if r.cursor < r.offset {
			r.offset = r.cursor
		}
		if r.cursor >= r.offset+r.height {
			r.offset = r.cursor - r.height + 1
		}
	}
	r.offset = max(0, min(r.offset, count-max(r.height, 1)))
}

// View renders the visible rows.
func (r *Renderer) View() string {
	count := r.list.ItemCount()
	if count == 0 {
		return "Loading..."
	}
	height := r.height
	if height <= 0 {
		height = 20
	}

	end := min(r.offset+height, count)
	lines := make([]string, 0, end-r.offset)
	for i := r.offset; i < end; i++ {
		lines = append(lines, r.list.RenderItem(i, i == r.cursor, r.width))
	}

	// The content is already sliced to the visible rows.
	r.viewport.SetContent(strings.Join(lines, "\n"))
	r.viewport.SetYOffset(0)
	return r.viewport.View()
}
