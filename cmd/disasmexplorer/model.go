package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/disasmkit/cmd/disasmexplorer/logger"
	"github.com/joshuapare/disasmkit/cmd/disasmexplorer/virtuallist"
	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/disasm/printer"
	"github.com/joshuapare/disasmkit/disasm/scroll"
	"github.com/joshuapare/disasmkit/pkg/session"
	"github.com/joshuapare/disasmkit/pkg/types"
)

// Layout constants
const (
	headerHeight = 2 // title line and chunk path line
	statusHeight = 1
	borderSize   = 2 // rounded border around the listing
	scrollbarW   = 1
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	GotoMode
)

// listing adapts the window's entries to virtuallist.VirtualList. It is
// refreshed by the window's data-changed callback.
type listing struct {
	entries []disasm.Entry
	opts    printer.Options
	changes int
}

func (l *listing) ItemCount() int { return len(l.entries) }

func (l *listing) RenderItem(index int, isCursor bool, width int) string {
	e := l.entries[index]
	indent := strings.Repeat("  ", e.Depth)
	line := truncate(indent+printer.Line(e, l.opts), width)
	if isCursor {
		return cursorStyle.Width(width).Render(line)
	}
	return entryStyle(e.Kind).Render(line)
}

// Model is the main application model
type Model struct {
	source string
	sess   *session.Session
	opts   scroll.Options
	ctx    context.Context

	win   *disasm.Window
	coord *scroll.Coordinator
	list  *listing
	view  *virtuallist.Renderer
	keys  KeyMap

	width  int
	height int

	// Input modes
	inputMode InputMode
	input     textinput.Model

	// Overlays
	showHelp bool
	detail   *chunkDetail

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel creates a TUI model over an opened session. The window is created
// once the entrypoint resolves.
func NewModel(sess *session.Session, opts scroll.Options) Model {
	list := &listing{opts: printer.DefaultOptions()}
	input := textinput.New()
	input.Prompt = "go to address: "
	input.Placeholder = "0x1000"
	input.CharLimit = 20

	return Model{
		source: sess.Source,
		sess:   sess,
		opts:   opts,
		ctx:    context.Background(),
		list:   list,
		view:   virtuallist.New(list),
		keys:   DefaultKeyMap(),
		input:  input,
	}
}

// Init starts entrypoint resolution
func (m Model) Init() tea.Cmd {
	blob := m.sess.Blob
	ctx := m.ctx
	return func() tea.Msg {
		bm, err := blob.GetEntrypoint(ctx).Wait(ctx)
		return entrypointMsg{anchor: bm, err: err}
	}
}

// Close releases the session
func (m *Model) Close() error {
	if m.sess == nil {
		return nil
	}
	err := m.sess.Close()
	m.sess = nil
	return err
}

// attach creates the window at anchor and wires the list and coordinator.
func (m *Model) attach(anchor types.Bookmark) {
	m.win = m.sess.Blob.CreateWindow(anchor, m.opts.Before, m.opts.After)
	m.coord = scroll.ForWindow(m.win, m.opts)

	win, list := m.win, m.list
	list.entries = win.Entries()
	win.OnDataChanged(func() {
		list.entries = win.Entries()
		list.changes++
	})
	m.placeAnchor()
	logger.Info("window created", "window", win.ID().String(), "anchor", anchor.String(), "entries", win.Len())
}

// placeAnchor centres the cursor on the anchor entry, or on the last entry
// when the anchor lies past the end of the stream.
func (m *Model) placeAnchor() {
	if off := m.win.AnchorOffset(); off >= 0 {
		m.view.CenterOn(off)
		return
	}
	m.view.CenterOn(m.win.Len() - 1)
}

// current returns the entry under the cursor.
func (m Model) current() (disasm.Entry, bool) {
	if m.win == nil {
		return disasm.Entry{}, false
	}
	return m.win.At(m.view.Cursor())
}

// cursorIndex returns the scrollbar index of the entry under the cursor.
func (m Model) cursorIndex() types.ScrollbarIndex {
	e, ok := m.current()
	if !ok {
		return 0
	}
	return m.sess.Blob.ScrollbarIndexOf(e.Pos)
}

// Messages

// entrypointMsg carries the resolved entrypoint.
type entrypointMsg struct {
	anchor types.Bookmark
	err    error
}

// scrollResolvedMsg carries a coordinator resolution back to Update.
type scrollResolvedMsg struct {
	res scroll.Result
}

// resolveCmd resolves req off the update loop.
func (m Model) resolveCmd(req scroll.Request) tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return scrollResolvedMsg{res: coord.Resolve(ctx, req)}
	}
}

// chunkDetail is the content of the chunk details modal.
type chunkDetail struct {
	chunk *disasm.Chunk
	path  []*disasm.Chunk
	depth int
}

func newChunkDetail(tree *disasm.ChunkTree, c *disasm.Chunk) *chunkDetail {
	depth, _ := tree.Depth(c.ID)
	return &chunkDetail{chunk: c, path: tree.Path(c.ID), depth: depth}
}

// lines renders the modal body.
func (d *chunkDetail) lines() []string {
	c := d.chunk
	names := make([]string, len(d.path))
	for i, p := range d.path {
		names[i] = p.Label()
	}
	out := []string{
		fmt.Sprintf("ID:      %s", c.ID),
		fmt.Sprintf("Type:    %s", c.Type),
		fmt.Sprintf("Name:    %s", c.Label()),
		fmt.Sprintf("Address: %s-%s (%d bytes)", c.Addr.Begin, c.Addr.End, c.Addr.Len()),
		fmt.Sprintf("Depth:   %d", d.depth),
		fmt.Sprintf("Path:    %s", strings.Join(names, " › ")),
	}
	if text := c.TextString(); text != "" {
		out = append(out, fmt.Sprintf("Text:    %s", text))
	}
	if c.Comment != "" {
		out = append(out, fmt.Sprintf("Comment: %s", c.Comment))
	}
	if len(c.Fields) > 0 {
		out = append(out, "", "Fields:")
		for i := range c.Fields {
			out = append(out, "  "+c.Fields[i].String())
		}
	}
	return out
}
