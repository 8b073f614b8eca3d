package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpTitles = []string{"Navigation", "Scrolling", "Threads", "Search", "General"}

// helpSections builds the overlay content from the key map plus mouse gestures.
func (m Model) helpSections() []helpSection {
	var sections []helpSection
	for i, group := range m.keys.FullHelp() {
		s := helpSection{title: helpTitles[min(i, len(helpTitles)-1)]}
		for _, b := range group {
			s.items = append(s.items, bindingItem(b))
		}
		sections = append(sections, s)
	}
	return append(sections, helpSection{
		title: "Mouse",
		items: []helpItem{
			{"wheel", "Zoom at pointer"},
			{"ctrl+wheel", "Scroll threads"},
			{"drag", "Pan timeline"},
			{"click", "Select event"},
			{"dbl-click", "Zoom to event"},
			{"label click", "Collapse/expand thread"},
			{"overview", "Left jump, right select range"},
			{"scrollbars", "Drag thumb or click track"},
		},
	})
}

func bindingItem(b key.Binding) helpItem {
	h := b.Help()
	return helpItem{key: h.Key, desc: h.Desc}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard and Mouse"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	sections := m.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(13)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
