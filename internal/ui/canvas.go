package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// cell is one terminal position. A zero ch marks the right half of a wide
// rune and renders nothing.
type cell struct {
	ch   rune
	fg   string
	bg   string
	bold bool
}

type cellStyle struct {
	fg   string
	bg   string
	bold bool
}

// canvas is a fixed grid of cells rendered as styled runs.
type canvas struct {
	w, h   int
	cells  []cell
	styles map[cellStyle]lipgloss.Style
}

func newCanvas(w, h int, bg string) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{
		w:      w,
		h:      h,
		cells:  make([]cell, w*h),
		styles: make(map[cellStyle]lipgloss.Style),
	}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', bg: bg}
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) at(x, y int) *cell {
	if !c.in(x, y) {
		return nil
	}
	return &c.cells[y*c.w+x]
}

// set writes a rune. An empty fg or bg keeps the current color.
func (c *canvas) set(x, y int, ch rune, fg, bg string) {
	p := c.at(x, y)
	if p == nil {
		return
	}
	p.ch = ch
	if fg != "" {
		p.fg = fg
	}
	if bg != "" {
		p.bg = bg
	}
}

// fill paints [x0, x1) x [y0, y1) with blanks on bg.
func (c *canvas) fill(x0, y0, x1, y1 int, bg string) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.w), min(y1, c.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.cells[y*c.w+x] = cell{ch: ' ', bg: bg}
		}
	}
}

// text writes s starting at x, clipped to limit columns. It returns the
// number of columns used.
func (c *canvas) text(x, y int, s string, limit int, fg, bg string) int {
	if limit <= 0 || y < 0 || y >= c.h {
		return 0
	}
	s = ansi.Truncate(s, limit, "…")
	used := 0
	for _, r := range s {
		rw := ansi.StringWidth(string(r))
		if rw == 0 {
			continue
		}
		if used+rw > limit {
			break
		}
		c.set(x+used, y, r, fg, bg)
		if rw == 2 {
			c.set(x+used+1, y, 0, fg, bg)
		}
		used += rw
	}
	return used
}

// bold marks a span of cells bold.
func (c *canvas) bold(x0, x1, y int) {
	for x := max(x0, 0); x < min(x1, c.w); x++ {
		if p := c.at(x, y); p != nil {
			p.bold = true
		}
	}
}

func (c *canvas) style(k cellStyle) lipgloss.Style {
	if s, ok := c.styles[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().Bold(k.bold)
	if k.fg != "" {
		s = s.Foreground(lipgloss.Color(k.fg))
	}
	if k.bg != "" {
		s = s.Background(lipgloss.Color(k.bg))
	}
	c.styles[k] = s
	return s
}

// render joins rows, emitting one styled run per change of colors.
func (c *canvas) render() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		var cur cellStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(c.style(cur).Render(run.String()))
			run.Reset()
		}
		for i, p := range row {
			k := cellStyle{fg: p.fg, bg: p.bg, bold: p.bold}
			if i == 0 {
				cur = k
			}
			if k != cur {
				flush()
				cur = k
			}
			if p.ch != 0 {
				run.WriteRune(p.ch)
			}
		}
		flush()
	}
	return b.String()
}
