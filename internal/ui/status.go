package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/lanes/internal/engine"
	"github.com/five82/lanes/internal/viewport"
)

// renderStatus renders the top bar: source, trace summary and watch state.
func (m Model) renderStatus(f engine.Frame) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := "  "

	parts := []string{bg.Render("lanes", styles.Logo)}

	source := m.engine.Source()
	if source == "" {
		source = "no trace"
	}
	parts = append(parts, bg.Render(truncateMiddle(source, 48), styles.Text))

	switch {
	case m.engine.Loading():
		parts = append(parts, bg.Render("Loading…", styles.WarningText.Bold(true)))
	case m.engine.Err() != nil:
		parts = append(parts, bg.Render("Load failed", styles.DangerText))
	}

	if store := m.engine.Store(); store != nil {
		summary := fmt.Sprintf("%s events  %s threads",
			humanize.Comma(int64(store.EventCount())),
			humanize.Comma(int64(len(store.Threads()))))
		parts = append(parts, bg.Render(summary, styles.MutedText))
		if m.width >= LayoutCompactWidth {
			parts = append(parts, bg.Render(m.rangeLabel(f), styles.AccentText))
			if m.loaded != nil {
				info := fmt.Sprintf("%s in %s", m.loaded.Format, m.loaded.Elapsed.Round(time.Millisecond))
				parts = append(parts, bg.Render(info, styles.FaintText))
			}
		}
	}

	if w := m.watchLabel(); w != "" {
		style := styles.FaintText
		if m.snapshot.IsUnavailable() {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(w, style))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(bg.Join(parts, sep))
}

// rangeLabel describes the visible window relative to the trace start.
func (m Model) rangeLabel(f engine.Frame) string {
	r := f.Range
	offset := float64(r.Origin - f.Bounds.Start)
	return fmt.Sprintf("%s – %s  (%s)",
		viewport.FormatDuration(int64(r.T0+offset)),
		viewport.FormatDuration(int64(r.T1+offset)),
		viewport.FormatDuration(int64(r.Span())))
}

// watchLabel summarizes source change tracking.
func (m Model) watchLabel() string {
	s := m.snapshot
	switch {
	case s.IsUnavailable() && s.LastError != nil:
		return "source unavailable"
	case s.Changes > 0:
		return fmt.Sprintf("changed %s", humanize.Time(s.LastChange))
	default:
		return ""
	}
}

// renderDetails renders the two-row panel for the selected or hovered event.
func (m Model) renderDetails(f engine.Frame) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	d := f.Selected
	heading := "selected"
	if d == nil {
		d = f.Hovered
		heading = "hover"
	}
	if d == nil {
		hint := "Click an event to inspect it"
		if m.engine.Err() != nil {
			hint = truncate(m.engine.Err().Error(), m.width-2)
		}
		lines := []string{
			bg.FillLine(bg.Spaces(1)+bg.Render(hint, styles.FaintText), m.width),
			bg.FillLine("", m.width),
		}
		return strings.Join(lines, "\n")
	}

	label := d.Label
	if label == "" {
		label = "(unnamed)"
	}
	first := []string{
		bg.Render(heading, styles.FaintText),
		bg.Render(truncate(label, max(m.width/2, 8)), styles.Text.Bold(true)),
	}
	if d.Kind != "" {
		first = append(first, bg.Render(d.Kind, styles.AccentText))
	}
	first = append(first,
		bg.Render(truncate(d.Thread, 32), styles.MutedText),
		bg.Render(fmt.Sprintf("depth %d", d.Event.Depth), styles.FaintText),
	)

	origin := f.Bounds.Start
	second := []string{
		bg.Render("start "+viewport.FormatDuration(d.Event.Start-origin), styles.Text),
		bg.Render("duration "+viewport.FormatDuration(d.Event.Duration), styles.InfoText),
	}
	if d.Parent != "" {
		second = append(second, bg.Render("parent "+truncate(d.Parent, 32), styles.MutedText))
	}
	if d.Children > 0 {
		second = append(second, bg.Render(humanize.Comma(int64(d.Children))+" children", styles.MutedText))
	}

	lines := []string{
		bg.FillLine(bg.Spaces(1)+bg.Join(first, "  "), m.width),
		bg.FillLine(bg.Spaces(1)+bg.Join(second, "  "), m.width),
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders either the search prompt or key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.search.active {
		return styles.Footer.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(m.search.input.View())
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Spaces(1)+bg.Render(h.Desc, styles.MutedText))
	}
	if m.search.query != "" {
		parts = append(parts, bg.Render("search "+m.search.query, styles.AccentText))
	}
	if m.search.status != "" {
		parts = append(parts, bg.Render(m.search.status, styles.WarningText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.InfoText))
	}
	return styles.Footer.Width(m.width).MaxWidth(m.width).MaxHeight(1).Render(bg.Join(parts, "  "))
}

// joinScreen stacks rendered sections vertically.
func joinScreen(sections ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
