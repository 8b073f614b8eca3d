package ui

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/lanes/internal/engine"
	"github.com/five82/lanes/internal/trace"
)

// cellSpan converts a pixel interval to whole cells, at least one wide.
func cellSpan(x, w float64) (int, int) {
	x0 := int(math.Floor(x))
	x1 := max(int(math.Ceil(x+w)), x0+1)
	return x0, x1
}

// renderTimeline draws the canvas part of the screen for frame f.
func (m Model) renderTimeline(f engine.Frame, width, height int) string {
	t := m.theme
	c := newCanvas(width, height, t.Background)
	a := f.Areas

	mx, my := int(a.Mini.X), int(a.Mini.Y)
	c.fill(mx, my, mx+int(a.Mini.W), my+int(a.Mini.H), t.SurfaceAlt)
	c.fill(0, 0, int(a.Labels.W), int(a.Labels.Y), t.Surface)
	c.fill(int(a.Labels.X), int(a.Labels.Y), int(a.Labels.X+a.Labels.W), int(a.Labels.Y+a.Labels.H), t.SurfaceAlt)

	store := m.engine.Store()
	if store == nil {
		m.drawPlaceholder(c, a)
		return c.render()
	}
	if m.palette == nil {
		m.palette = newPalette(store, t, m.colorMode)
	}

	m.drawMini(c, f)
	m.drawRuler(c, f)
	m.drawLabels(c, f)
	m.drawDetail(c, f, store)
	m.drawScrollbars(c, f)
	return c.render()
}

func (m Model) drawPlaceholder(c *canvas, a engine.Areas) {
	msg := "No trace open"
	fg := m.theme.Muted
	switch {
	case m.engine.Loading():
		msg = "Loading " + m.engine.Source() + "…"
		fg = m.theme.Warning
	case m.engine.Err() != nil:
		msg = m.engine.Err().Error()
		fg = m.theme.Danger
	}
	y := int(a.Detail.Y + a.Detail.H/2)
	x := int(a.Detail.X) + 2
	c.text(x, y, msg, int(a.Detail.W)-4, fg, "")
}

func (m Model) drawMini(c *canvas, f engine.Frame) {
	t := m.theme
	a := f.Areas.Mini
	ox, oy := int(a.X), int(a.Y)
	h := int(a.H)
	if h <= 0 || a.W <= 0 {
		return
	}

	ix0, ix1 := cellSpan(f.Indicator.X, f.Indicator.W)
	c.fill(ox+max(ix0, 0), oy, ox+min(ix1, int(a.W)), oy+h, t.FocusBg)

	for _, d := range f.Mini {
		x0, x1 := cellSpan(d.Rect.X, d.Rect.W)
		y0 := int(math.Floor(d.Rect.Y))
		y1 := max(int(math.Ceil(d.Rect.Y+d.Rect.H)), y0+1)
		fg := m.palette.color(d.Label, d.Kind)
		for y := y0; y < min(y1, h); y++ {
			for x := max(x0, 0); x < min(x1, int(a.W)); x++ {
				c.set(ox+x, oy+y, '▄', fg, "")
			}
		}
	}

	if f.Selection != nil {
		sx0, sx1 := cellSpan(f.Selection.X, f.Selection.W)
		for y := 0; y < h; y++ {
			for x := max(sx0, 0); x < min(sx1, int(a.W)); x++ {
				c.set(ox+x, oy+y, ' ', "", t.SelectionBg)
			}
		}
	}

	for _, edge := range []int{ix0, ix1 - 1} {
		if edge < 0 || edge >= int(a.W) {
			continue
		}
		for y := 0; y < h; y++ {
			c.set(ox+edge, oy+y, '│', t.BorderFocus, "")
		}
	}
}

func (m Model) drawRuler(c *canvas, f engine.Frame) {
	t := m.theme
	a := f.Areas.Header
	if a.H <= 0 {
		return
	}
	ox, y := int(a.X), int(a.Y)
	c.fill(ox, y, ox+int(a.W), y+1, t.Surface)
	c.text(1, y, humanize.Comma(int64(math.Round(f.Range.Span())))+" ns", int(a.X)-2, t.Faint, t.Surface)

	for i, tk := range f.Ticks {
		x := int(math.Round(tk.X))
		limit := int(a.W) - x - 1
		if i+1 < len(f.Ticks) {
			limit = int(math.Round(f.Ticks[i+1].X)) - x - 2
		}
		c.set(ox+x, y, '╷', t.Border, "")
		c.text(ox+x+1, y, tk.Label, limit, t.Muted, "")
	}
	for _, tk := range f.Ticks {
		x := ox + int(math.Round(tk.X))
		for row := int(f.Areas.Detail.Y); row < int(f.Areas.Detail.Y+f.Areas.Detail.H); row++ {
			c.set(x, row, '┊', t.BorderMuted, "")
		}
	}
}

func (m Model) drawLabels(c *canvas, f engine.Frame) {
	t := m.theme
	a := f.Areas.Labels
	top := int(a.Y)
	w := int(a.W) - 1
	for _, row := range f.Threads {
		glyph := "▾ "
		if row.Collapsed {
			glyph = "▸ "
		}
		y := top + row.Y
		if row.Y >= 0 && row.Y < int(a.H) {
			used := c.text(0, y, glyph, w, t.Accent, "")
			c.text(used, y, row.Name, w-used, t.Text, "")
		}
		if row.Rows > 1 && row.Y+1 >= 0 && row.Y+1 < int(a.H) {
			info := humanize.Comma(int64(row.Events)) + " events"
			c.text(2, y+1, info, w-2, t.Faint, "")
		}
	}
	if w >= 0 {
		for y := top; y < top+int(a.H); y++ {
			c.set(w, y, '│', t.Border, "")
		}
	}
}

func (m Model) drawDetail(c *canvas, f engine.Frame, store *trace.Store) {
	t := m.theme
	a := f.Areas.Detail
	ox, oy := int(a.X), int(a.Y)
	aw, ah := int(a.W), int(a.H)

	for _, mk := range f.Shadows {
		x0, x1 := cellSpan(mk.Rect.X, mk.Rect.W)
		y := int(math.Floor(mk.Rect.Y))
		if y < 0 || y >= ah {
			continue
		}
		for x := max(x0, 0); x < min(x1, aw); x++ {
			c.set(ox+x, oy+y, '░', t.Shadow, "")
		}
	}

	for _, d := range f.Detail {
		x0, x1 := cellSpan(d.Rect.X, d.Rect.W)
		x0, x1 = max(x0, 0), min(x1, aw)
		y0 := int(math.Floor(d.Rect.Y))
		y1 := max(int(math.Ceil(d.Rect.Y+d.Rect.H)), y0+1)
		y0, y1 = max(y0, 0), min(y1, ah)
		if x0 >= x1 || y0 >= y1 {
			continue
		}

		bg := m.palette.color(d.Label, d.Kind)
		fg := t.EventText
		switch {
		case d.Selected:
			bg, fg = t.SelectionBg, t.SelectionText
		case d.Hovered:
			bg = highlight(bg)
		}
		c.fill(ox+x0, oy+y0, ox+x1, oy+y1, bg)

		x := x0
		if x1-x0 >= 2 {
			c.set(ox+x, oy+y0, '▏', t.Background, "")
			x++
		}
		c.text(ox+x, oy+y0, store.Label(d.Label), x1-x, fg, "")
		if d.Selected {
			c.bold(ox+x0, ox+x1, oy+y0)
		}
	}
}

func (m Model) drawScrollbars(c *canvas, f engine.Frame) {
	t := m.theme
	if a := f.Areas.HScroll; a.W > 0 && a.H > 0 {
		ox, y := int(a.X), int(a.Y)
		c.fill(ox, y, ox+int(a.W), y+int(a.H), t.Surface)
		for x := 0; x < int(a.W); x++ {
			c.set(ox+x, y, '─', t.BorderMuted, "")
		}
		x0, x1 := cellSpan(f.HThumb.X, f.HThumb.W)
		if f.HThumb.W <= 0 {
			x1 = x0
		}
		for x := max(x0, 0); x < min(x1, int(a.W)); x++ {
			c.set(ox+x, y, '━', t.Muted, "")
		}
	}
	if a := f.Areas.VScroll; a.W > 0 && a.H > 0 {
		x, oy := int(a.X), int(a.Y)
		c.fill(x, oy, x+int(a.W), oy+int(a.H), t.Surface)
		for y := 0; y < int(a.H); y++ {
			c.set(x, oy+y, '│', t.BorderMuted, "")
		}
		y0, y1 := cellSpan(f.VThumb.Y, f.VThumb.H)
		if f.VThumb.H <= 0 {
			y1 = y0
		}
		for y := max(y0, 0); y < min(y1, int(a.H)); y++ {
			c.set(x, oy+y, '┃', t.Muted, "")
		}
	}
}

// highlight lightens a hex color for hovered events.
func highlight(hex string) string {
	col, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return col.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.25).Clamped().Hex()
}
