package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Scrollbar jumps, resolved through the scroll coordinator
	JumpBack    key.Binding
	JumpForward key.Binding

	// Actions
	Toggle  key.Binding
	Details key.Binding
	Parent  key.Binding
	Esc     key.Binding
	Enter   key.Binding

	// Commands
	Goto key.Binding
	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to end"),
		),

		JumpBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "scrollbar back 5%"),
		),
		JumpForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "scrollbar forward 5%"),
		),

		// Actions
		Toggle: key.NewBinding(
			key.WithKeys(" ", "tab"),
			key.WithHelp("space", "collapse/expand chunk"),
		),
		Details: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "chunk details"),
		),
		Parent: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "go to parent chunk"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),

		// Commands
		Goto: key.NewBinding(
			key.WithKeys(":", "ctrl+g"),
			key.WithHelp(":", "go to address"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy line"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Goto, k.Help, k.Quit}
}

// FullHelp returns all key bindings grouped for the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.JumpBack, k.JumpForward},
		{k.Toggle, k.Details, k.Parent, k.Goto, k.Copy, k.Help, k.Quit},
	}
}
