package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ColorMode  key.Binding
	Reload     key.Binding
	Escape     key.Binding

	// Navigation
	PanLeft    key.Binding
	PanRight   key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Reset      key.Binding

	// Threads
	CollapseAll key.Binding
	ExpandAll   key.Binding

	// Search
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Confirm   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ColorMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Color by kind/label"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload trace"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear selection"),
		),

		// Navigation
		PanLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Pan right"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Zoom out"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "Zoom to fit"),
		),

		// Threads
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Collapse all"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Expand all"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search labels"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Previous match"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PanLeft, k.ZoomIn, k.ZoomOut, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Reset},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.CollapseAll, k.ExpandAll},
		{k.Search, k.NextMatch, k.PrevMatch},
		{k.ColorMode, k.CycleTheme, k.Reload, k.Help, k.Quit},
	}
}
