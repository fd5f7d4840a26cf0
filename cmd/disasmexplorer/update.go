package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/disasmkit/cmd/disasmexplorer/logger"
	"github.com/joshuapare/disasmkit/disasm"
	"github.com/joshuapare/disasmkit/disasm/printer"
	"github.com/joshuapare/disasmkit/pkg/types"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetSize(m.listWidth(), m.listHeight())
		return m, nil

	case entrypointMsg:
		if msg.err != nil {
			logger.Error("entrypoint resolution failed", "error", msg.err)
			m.err = fmt.Errorf("resolve entrypoint: %w", msg.err)
			return m, nil
		}
		m.attach(msg.anchor)
		return m, nil

	case scrollResolvedMsg:
		return m.applyScroll(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyScroll installs a resolved scroll target and chains any follow-up.
func (m Model) applyScroll(msg scrollResolvedMsg) (tea.Model, tea.Cmd) {
	changes := m.list.changes
	next, more, err := m.coord.Apply(msg.res)
	if err != nil {
		logger.Warn("scroll failed", "target", int64(msg.res.Request.Target), "error", err)
		m.statusMessage = fmt.Sprintf("Scroll failed: %v", err)
	}
	if m.list.changes != changes {
		m.placeAnchor()
	}
	if more {
		return m, m.resolveCmd(next)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.detail != nil {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Details) || key.Matches(msg, m.keys.Enter) {
			m.detail = nil
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.inputMode == GotoMode {
		return m.handleGotoInput(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}
	if m.win == nil {
		return m, nil
	}
	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-max(m.view.Height(), 1))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(max(m.view.Height(), 1))
	case key.Matches(msg, m.keys.Home):
		m.seekTo(m.sess.Tree().Root().Pos.Begin, false)
	case key.Matches(msg, m.keys.End):
		m.seekTo(m.sess.Tree().Root().Pos.End, true)
	case key.Matches(msg, m.keys.JumpBack):
		return m, m.scrollBy(-m.jumpSize())
	case key.Matches(msg, m.keys.JumpForward):
		return m, m.scrollBy(m.jumpSize())
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCurrent()
	case key.Matches(msg, m.keys.Details):
		if e, ok := m.current(); ok && e.Chunk != nil {
			m.detail = newChunkDetail(m.sess.Tree(), e.Chunk)
		}
	case key.Matches(msg, m.keys.Parent):
		m.gotoParent()
	case key.Matches(msg, m.keys.Goto):
		m.inputMode = GotoMode
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		m.copyCurrent()
	}
	return m, nil
}

func (m Model) handleGotoInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.inputMode = NormalMode
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.inputMode = NormalMode
		m.input.Blur()
		m.gotoAddress(m.input.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.win == nil || m.showHelp || m.detail != nil {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(3)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		// Clicks on the scrollbar column pick a scrollbar index.
		if msg.X != m.scrollbarColumn() {
			return m, nil
		}
		line := msg.Y - headerHeight - 1
		if line < 0 || line >= m.view.Height() {
			return m, nil
		}
		return m, m.scrollTo(m.indexAtLine(line))
	}
	return m, nil
}

// moveCursor moves within the window. When the target row is close to an
// edge that hides more of the stream, the window is first re-anchored on
// the cursor entry so that the rows around it are real neighbours rather
// than context.
func (m *Model) moveCursor(delta int) {
	edge := max(m.view.Height(), 1)
	target := m.view.Cursor() + delta
	nearTop := target < edge && m.win.HasMoreBefore()
	nearBottom := target >= m.win.Len()-edge && m.win.HasMoreAfter()
	if nearTop || nearBottom {
		m.reanchorOnCursor()
	}
	m.view.MoveCursor(delta)
}

func (m *Model) reanchorOnCursor() {
	e, ok := m.current()
	if !ok {
		return
	}
	line := m.view.Cursor() - m.view.Offset()
	m.win.Seek(e.Pos, m.opts.Before, m.opts.After)
	if i := m.indexOf(e); i >= 0 {
		m.view.PlaceCursor(i, line)
	} else {
		m.placeAnchor()
	}
	logger.Debug("window re-anchored on cursor", "anchor", e.Pos.String(), "entries", m.win.Len())
}

// seekTo re-anchors the window at bm and puts the cursor on the anchor
// entry, or on the last entry when last is set.
func (m *Model) seekTo(bm types.Bookmark, last bool) {
	m.win.Seek(bm, m.opts.Before, m.opts.After)
	switch {
	case last:
		m.view.PlaceCursor(m.win.Len()-1, m.view.Height()-1)
	case m.win.AnchorOffset() >= 0:
		m.view.PlaceCursor(m.win.AnchorOffset(), 0)
	}
}

// scrollTo hands idx to the coordinator and starts a resolution when one is
// needed.
func (m Model) scrollTo(idx types.ScrollbarIndex) tea.Cmd {
	idx = max(0, min(idx, m.win.MaxScrollbarIndex()))
	req, ok := m.coord.Scroll(idx)
	if !ok {
		return nil
	}
	return m.resolveCmd(req)
}

func (m Model) scrollBy(delta types.ScrollbarIndex) tea.Cmd {
	return m.scrollTo(m.cursorIndex() + delta)
}

// jumpSize is 5% of the scrollbar range.
func (m Model) jumpSize() types.ScrollbarIndex {
	return max(m.win.MaxScrollbarIndex()/20, 1)
}

func (m *Model) toggleCurrent() {
	e, ok := m.current()
	if !ok || e.Chunk == nil {
		return
	}
	id := e.Chunk.ID
	line := m.view.Cursor() - m.view.Offset()
	if err := m.win.ChunkCollapseToggle(id); err != nil {
		m.statusMessage = err.Error()
		return
	}
	if i := m.indexOfChunk(id); i >= 0 {
		m.view.PlaceCursor(i, line)
	} else {
		m.view.SetCursor(m.view.Cursor())
	}
	state := "expanded"
	if m.win.IsCollapsed(id) {
		state = "collapsed"
	}
	m.statusMessage = fmt.Sprintf("%s %s", id, state)
}

func (m *Model) gotoParent() {
	e, ok := m.current()
	if !ok || e.Chunk == nil {
		return
	}
	target := e.Chunk
	if e.Kind != disasm.EntryField {
		parent, ok := m.sess.Tree().Parent(e.Chunk.ID)
		if !ok {
			m.statusMessage = "Already at the root"
			return
		}
		target = parent
	}
	if i := m.indexOfChunk(target.ID); i >= 0 {
		m.view.SetCursor(i)
		return
	}
	m.seekTo(target.Pos.Begin, false)
}

func (m *Model) gotoAddress(s string) {
	addr, err := types.ParseAddress(s)
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	bm, err := m.sess.Blob.BookmarkAt(addr)
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	m.seekTo(bm, false)
	m.statusMessage = fmt.Sprintf("Jumped to %s", addr)
}

func (m *Model) copyCurrent() {
	e, ok := m.current()
	if !ok {
		return
	}
	line := printer.Line(e, m.list.opts)
	if err := writeClipboard(line); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = "Copied: " + truncate(line, 40)
}

// indexOf finds e among the materialized entries.
func (m Model) indexOf(e disasm.Entry) int {
	for i, x := range m.list.entries {
		if x.Kind == e.Kind && x.Chunk == e.Chunk && x.Field == e.Field && x.Pos == e.Pos {
			return i
		}
	}
	return -1
}

// indexOfChunk finds the begin or collapsed entry of id.
func (m Model) indexOfChunk(id types.ChunkID) int {
	for i, x := range m.list.entries {
		if x.Chunk == nil || x.Chunk.ID != id {
			continue
		}
		if x.Kind == disasm.EntryChunkBegin || x.Kind == disasm.EntryChunkCollapsed {
			return i
		}
	}
	return -1
}
