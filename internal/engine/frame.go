package engine

import (
	"github.com/five82/lanes/internal/trace"
	"github.com/five82/lanes/internal/viewport"
)

// Areas locates the canvas regions of a frame. Descriptor rectangles are
// relative to their own area.
type Areas struct {
	Mini    viewport.Rect
	Header  viewport.Rect
	Labels  viewport.Rect
	Detail  viewport.Rect
	HScroll viewport.Rect
	VScroll viewport.Rect
}

// ThreadRow is one entry in the label column.
type ThreadRow struct {
	Thread    int64
	Name      string
	Y         int
	Rows      int
	Collapsed bool
	Events    int
	MaxDepth  int
}

// Details describes an event for the details panel.
type Details struct {
	Ref      trace.EventRef
	Event    trace.Event
	Label    string
	Kind     string
	Thread   string
	Parent   string
	Children int
}

// Frame is everything the renderer needs for one draw.
type Frame struct {
	Areas     Areas
	Detail    []viewport.Descriptor
	Shadows   []viewport.Marker
	Mini      []viewport.Descriptor
	Indicator viewport.Rect
	Selection *viewport.Rect
	HThumb    viewport.Rect // relative to Areas.HScroll
	VThumb    viewport.Rect // relative to Areas.VScroll
	Threads   []ThreadRow
	Ticks     []viewport.Tick
	MiniTicks []viewport.Tick
	Selected  *Details
	Hovered   *Details
	Range     viewport.Mapper
	Bounds    trace.Bounds
}

// Frame answers what is visible and where. It only reads m.
func (m Model) Frame() Frame {
	g := m.Geometry
	dw, dh := float64(m.detailWidth()), float64(m.detailHeight())
	top := float64(m.detailTop())
	lw := float64(min(g.LabelWidth, m.width))
	sb := float64(g.ScrollbarSize)

	f := Frame{
		Areas: Areas{
			Mini:   viewport.Rect{X: lw, Y: 0, W: dw, H: float64(g.MiniHeight)},
			Header: viewport.Rect{X: lw, Y: float64(g.MiniHeight), W: dw, H: float64(g.HeaderHeight)},
			Labels: viewport.Rect{X: 0, Y: top, W: lw, H: dh},
			Detail: viewport.Rect{X: lw, Y: top, W: dw, H: dh},
		},
	}
	if sb > 0 {
		f.Areas.HScroll = viewport.Rect{X: lw, Y: top + dh, W: dw, H: sb}
		f.Areas.VScroll = viewport.Rect{X: lw + dw, Y: top, W: sb, H: dh}
	}
	if !m.Ready() {
		return f
	}

	st := m.view
	layout := m.layout()
	f.Range = st.Mapper
	f.Bounds = m.store.Bounds()

	f.Detail = viewport.Visible(m.store, m.index, st, layout, m.Settings.MinEventWidth)
	f.Shadows = viewport.Shadows(m.store, m.index, st, layout)
	f.Ticks = viewport.Ticks(st.Mapper, 0, m.Settings.TickSpacing)

	mini := m.mini()
	f.Mini = m.miniDescriptors(mini)
	f.MiniTicks = viewport.Ticks(mini.Mapper(), 0, m.Settings.TickSpacing)
	x0, x1 := mini.Indicator(st.Mapper)
	f.Indicator = viewport.Rect{X: x0, Y: 0, W: x1 - x0, H: float64(g.MiniHeight)}
	if sel := st.Selection; sel != nil {
		lo, hi := sel.Span()
		f.Selection = &viewport.Rect{X: lo, Y: 0, W: hi - lo, H: float64(g.MiniHeight)}
	}
	if sb > 0 {
		pos, size := m.hScrollbar().Thumb()
		f.HThumb = viewport.Rect{X: pos, Y: 0, W: size, H: sb}
		pos, size = m.vScrollbar().Thumb()
		f.VThumb = viewport.Rect{X: 0, Y: pos, W: sb, H: size}
	}

	for _, b := range layout.Bands() {
		th, _ := m.store.Thread(b.Thread)
		y := b.Top - st.ScrollY
		if y+layout.Height(b) <= 0 || y >= st.Height {
			continue
		}
		f.Threads = append(f.Threads, ThreadRow{
			Thread:    b.Thread,
			Name:      th.Name,
			Y:         y,
			Rows:      b.Rows,
			Collapsed: b.Collapsed,
			Events:    len(th.Events),
			MaxDepth:  th.MaxDepth,
		})
	}

	if st.Selected != nil {
		f.Selected = m.details(*st.Selected)
	}
	if st.Hovered != nil {
		f.Hovered = m.details(*st.Hovered)
	}
	return f
}

// miniDescriptors lays every thread's top-level events across the mini strip,
// one band per thread.
func (m Model) miniDescriptors(mini viewport.Mini) []viewport.Descriptor {
	threads := m.store.Threads()
	if len(threads) == 0 || mini.Width <= 0 {
		return nil
	}
	mm := mini.Mapper()
	scale := mm.Scale()
	bounds := m.store.Bounds()
	h := float64(m.Geometry.MiniHeight) / float64(len(threads))

	var out []viewport.Descriptor
	for i, th := range threads {
		for idx := range m.index.Query(th.ID, bounds.Start, bounds.End, scale) {
			ev := th.Events[idx]
			if ev.Depth != 0 {
				continue
			}
			x0 := mm.PixelOf(ev.Start)
			x1 := max(mm.PixelOf(ev.End()), x0+1)
			ref := trace.EventRef{Thread: th.ID, Index: idx}
			out = append(out, viewport.Descriptor{
				Rect:     viewport.Rect{X: x0, Y: float64(i) * h, W: min(x1, mini.Width) - x0, H: h},
				Ref:      ref,
				Label:    ev.Label,
				Kind:     ev.Kind,
				Selected: m.view.IsSelected(ref),
			})
		}
	}
	return out
}

func (m Model) details(ref trace.EventRef) *Details {
	ev, ok := m.store.Event(ref)
	if !ok {
		return nil
	}
	th, _ := m.store.Thread(ref.Thread)
	d := &Details{
		Ref:      ref,
		Event:    ev,
		Label:    m.store.Label(ev.Label),
		Kind:     m.store.Label(ev.Kind),
		Thread:   th.Name,
		Children: len(m.store.Children(ref)),
	}
	if p, ok := m.store.Parent(ref); ok {
		pev, _ := m.store.Event(p)
		d.Parent = m.store.Label(pev.Label)
	}
	return d
}
