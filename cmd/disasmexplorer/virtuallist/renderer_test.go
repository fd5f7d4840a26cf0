package virtuallist

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockVirtualList is a VirtualList over fixed strings.
type mockVirtualList struct {
	items []string
}

func (m *mockVirtualList) ItemCount() int { return len(m.items) }

func (m *mockVirtualList) RenderItem(index int, isCursor bool, width int) string {
	if isCursor {
		return "> " + m.items[index]
	}
	return "  " + m.items[index]
}

func numbered(n int) *mockVirtualList {
	l := &mockVirtualList{}
	for i := range n {
		l.items = append(l.items, fmt.Sprintf("item%03d", i))
	}
	return l
}

func TestRenderer_EmptyList(t *testing.T) {
	r := New(&mockVirtualList{})
	r.SetSize(50, 10)
	require.Equal(t, "Loading...", r.View())
	require.Equal(t, 0, r.Cursor())
}

func TestRenderer_OnlyVisibleRowsRendered(t *testing.T) {
	r := New(numbered(100))
	r.SetSize(40, 5)
	r.SetCursor(2)

	view := r.View()
	require.Contains(t, view, "> item002")
	require.Contains(t, view, "item004")
	require.NotContains(t, view, "item005")
}

func TestRenderer_CursorScrolls(t *testing.T) {
	r := New(numbered(100))
	r.SetSize(40, 5)

	r.SetCursor(10)
	require.Equal(t, 6, r.Offset())

	r.MoveCursor(-8)
	require.Equal(t, 2, r.Cursor())
	require.Equal(t, 2, r.Offset())

	r.SetCursor(500)
	require.Equal(t, 99, r.Cursor())
	require.Equal(t, 95, r.Offset())

	r.SetCursor(-3)
	require.Equal(t, 0, r.Cursor())
	require.Equal(t, 0, r.Offset())
}

func TestRenderer_CenterOn(t *testing.T) {
	r := New(numbered(100))
	r.SetSize(40, 10)

	r.CenterOn(50)
	require.Equal(t, 50, r.Cursor())
	require.Equal(t, 45, r.Offset())

	// Near the end the list stays full.
	r.CenterOn(98)
	require.Equal(t, 90, r.Offset())

	view := r.View()
	require.Equal(t, 10, len(strings.Split(view, "\n")))
	require.Contains(t, view, "> item098")
}

func TestRenderer_ShrinkingList(t *testing.T) {
	l := numbered(100)
	r := New(l)
	r.SetSize(40, 10)
	r.SetCursor(80)

	l.items = l.items[:20]
	r.SetCursor(r.Cursor())
	require.Equal(t, 19, r.Cursor())
	require.Equal(t, 10, r.Offset())
}

func TestRenderer_PlaceCursor(t *testing.T) {
	r := New(numbered(100))
	r.SetSize(40, 10)

	r.PlaceCursor(40, 3)
	require.Equal(t, 40, r.Cursor())
	require.Equal(t, 37, r.Offset())

	r.PlaceCursor(2, 8)
	require.Equal(t, 0, r.Offset())
}
