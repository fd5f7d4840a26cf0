package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/joshuapare/disasmkit/disasm"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	accentColor    = lipgloss.Color("#FF00FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	// Listing row styles
	beginStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	endStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	overlapStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	collapsedStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	// Scrollbar styles
	scrollTrackStyle = lipgloss.NewStyle().
				Foreground(borderColor)

	scrollThumbStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

	// Status bar styles
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	statusCountStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Help overlay styles
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// Modal styles
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Background(lipgloss.Color("#1A1A1A"))

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Error styles
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// entryStyle returns the style for an entry kind
func entryStyle(kind disasm.EntryKind) lipgloss.Style {
	switch kind {
	case disasm.EntryChunkBegin:
		return beginStyle
	case disasm.EntryChunkEnd:
		return endStyle
	case disasm.EntryField:
		return fieldStyle
	case disasm.EntryOverlap:
		return overlapStyle
	case disasm.EntryChunkCollapsed:
		return collapsedStyle
	default:
		return errorStyle
	}
}

// truncate truncates a string to the specified length with ellipsis
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
