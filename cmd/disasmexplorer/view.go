package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshuapare/disasmkit/pkg/types"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var fg tea.Model
	switch {
	case m.showHelp:
		fg = modal{body: m.renderHelp()}
	case m.detail != nil:
		fg = modal{title: "Chunk Details", body: strings.Join(m.detail.lines(), "\n")}
	default:
		return m.renderMain()
	}
	// The overlay is rebuilt every frame; Update returns new models, so a
	// stored background would be stale.
	return overlay.New(fg, mainView{model: &m}, overlay.Center, overlay.Center, 0, 0).View()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
}

// renderHeader renders the title and the chunk path of the cursor entry
func (m Model) renderHeader() string {
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Disassembly Explorer"),
		"  ",
		pathStyle.Render("Source: "+m.source),
	)

	path := ""
	if e, ok := m.current(); ok && e.Chunk != nil {
		chunks := m.sess.Tree().Path(e.Chunk.ID)
		names := make([]string, len(chunks))
		for i, c := range chunks {
			names[i] = c.Label()
		}
		path = strings.Join(names, " › ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, pathStyle.Render(truncate(path, max(m.width, 1))))
}

// renderContent renders the listing and its scrollbar inside a border
func (m Model) renderContent() string {
	height := m.listHeight()
	list := lipgloss.NewStyle().Width(m.listWidth()).Height(height).Render(m.view.View())
	bar := m.renderScrollbar(height)
	return paneStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, list, bar))
}

// renderScrollbar draws a one-column scrollbar whose thumb sits at the
// cursor's scrollbar index.
func (m Model) renderScrollbar(height int) string {
	if height <= 0 {
		return ""
	}
	thumb := -1
	if m.win != nil {
		if maxIdx := m.win.MaxScrollbarIndex(); maxIdx > 0 {
			thumb = int(int64(m.cursorIndex()) * int64(height-1) / int64(maxIdx))
		} else {
			thumb = 0
		}
	}
	lines := make([]string, height)
	for i := range lines {
		if i == thumb {
			lines[i] = scrollThumbStyle.Render("█")
		} else {
			lines[i] = scrollTrackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// renderStatus renders the status bar or the goto prompt
func (m Model) renderStatus() string {
	if m.inputMode == GotoMode {
		return promptStyle.Render(m.input.View())
	}
	if m.win == nil {
		return statusStyle.Render("Resolving entrypoint...")
	}

	seeks, stale := m.coord.Stats()
	parts := []string{
		fmt.Sprintf("entry %s/%d", statusCountStyle.Render(fmt.Sprint(m.view.Cursor()+1)), m.win.Len()),
		fmt.Sprintf("index %d/%d", m.cursorIndex(), m.win.MaxScrollbarIndex()),
		fmt.Sprintf("gen %d", m.win.Generation()),
		fmt.Sprintf("seeks %d stale %d", seeks, stale),
	}
	if n := m.win.Collapsed().Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d collapsed", n))
	}
	if m.coord.InFlight() {
		parts = append(parts, "resolving...")
	}
	if m.statusMessage != "" {
		parts = append(parts, m.statusMessage)
	}
	parts = append(parts, "? help")
	return statusStyle.Render(strings.Join(parts, " │ "))
}

// helpChrome counts the help overlay lines that hold no key row.
const helpChrome = 4 + 2 + 1 + 2

// renderHelp renders the keyboard shortcut table with the groups side by
// side. Rows that do not fit the terminal height are dropped.
func (m Model) renderHelp() string {
	rows := max(m.height-helpChrome, 1)
	titles := []string{"Navigation", "Actions"}
	var cols []string
	for i, group := range m.keys.FullHelp() {
		var b strings.Builder
		b.WriteString(modalTitleStyle.Render(titles[i]))
		for j, k := range group {
			b.WriteString("\n")
			if j == rows-1 && len(group) > rows {
				b.WriteString(helpDescStyle.Render("…"))
				break
			}
			h := k.Help()
			b.WriteString(helpKeyStyle.Width(10).Render(h.Key))
			b.WriteString("  ")
			b.WriteString(helpDescStyle.Render(h.Desc))
		}
		if i > 0 {
			cols = append(cols, "    ")
		}
		cols = append(cols, b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		helpTitleStyle.Render("Keyboard Shortcuts"),
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		"",
		"Press ? or esc to close",
	)
}

// listWidth is the terminal width minus the border and scrollbar.
func (m Model) listWidth() int {
	return max(m.width-borderSize-scrollbarW, 10)
}

// listHeight is the terminal height minus header, border and status bar.
func (m Model) listHeight() int {
	return max(m.height-headerHeight-borderSize-statusHeight, 3)
}

// scrollbarColumn is the screen column of the scrollbar.
func (m Model) scrollbarColumn() int {
	return 1 + m.listWidth()
}

// indexAtLine maps a scrollbar line to a scrollbar index.
func (m Model) indexAtLine(line int) types.ScrollbarIndex {
	height := m.view.Height()
	if height <= 1 {
		return 0
	}
	return types.ScrollbarIndex(int64(line) * int64(m.win.MaxScrollbarIndex()) / int64(height-1))
}

// mainView renders the main UI as the background of an overlay.
type mainView struct {
	model *Model
}

func (v mainView) Init() tea.Cmd                       { return nil }
func (v mainView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v mainView) View() string                        { return v.model.renderMain() }

// modal is a static bordered box drawn over the main view.
type modal struct {
	title string
	body  string
}

func (d modal) Init() tea.Cmd                       { return nil }
func (d modal) Update(tea.Msg) (tea.Model, tea.Cmd) { return d, nil }
func (d modal) View() string {
	if d.title == "" {
		return modalStyle.Render(d.body)
	}
	return modalStyle.Render(modalTitleStyle.Render(d.title) + "\n\n" + d.body)
}
