package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of hex colors for the timeline chrome plus the HSL
// parameters used to color event cells.
type Theme struct {
	Name string

	Background, Surface, SurfaceAlt string
	FocusBg                         string // mini timeline indicator

	SelectionBg, SelectionText string

	Border, BorderMuted, BorderFocus string

	Text, Muted, Faint                    string
	Accent, Success, Warning, Danger, Info string

	EventText string
	Shadow    string // culled-level markers

	// Saturation and Lightness apply to every generated event hue.
	Saturation float64
	Lightness  float64
}

// Styles holds the text styles the status bar, details panel and footer use.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// Styles builds lipgloss styles for t.
func (t Theme) Styles() Styles {
	bar := func(hex string) lipgloss.Style {
		return fg(hex).Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),
		Header:      bar(t.Text),
		Footer:      bar(t.Muted),
		Logo:        fg(t.Warning).Bold(true),
	}
}

// WithBackground puts every style on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText, &s.WarningText,
		&s.DangerText, &s.InfoText, &s.Header, &s.Footer, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", FocusBg: "#29394f",
		SelectionBg: "#dbc074", SelectionText: "#131a24",
		Border: "#39506d", BorderMuted: "#212e3f", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent: "#719cd6", Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		EventText: "#cdcecf", Shadow: "#39506d",
		Saturation: 0.35, Lightness: 0.38,
	},
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", FocusBg: "#363646",
		SelectionBg: "#E6C384", SelectionText: "#16161D",
		Border: "#54546D", BorderMuted: "#2A2A37", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent: "#7E9CD8", Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		EventText: "#DCD7BA", Shadow: "#54546D",
		Saturation: 0.30, Lightness: 0.36,
	},
	// Tailwind slate and sky.
	"Slate": {
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", FocusBg: "#283548",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderMuted: "#1e293b", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b",
		Accent: "#38bdf8", Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		EventText: "#f1f5f9", Shadow: "#475569",
		Saturation: 0.40, Lightness: 0.34,
	},
}

// GetTheme returns the named theme, or Nightfox for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns the theme names in cycle order.
func ThemeNames() []string {
	return themeOrder
}
