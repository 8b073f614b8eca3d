package engine

import (
	"math"

	"github.com/five82/lanes/internal/trace"
	"github.com/five82/lanes/internal/viewport"
)

// doubleClickPadding is the fraction of an event's duration shown on each
// side after a double-click zoom.
const doubleClickPadding = 0.2

// wheelPanFraction is the share of the visible span one wheel notch pans
// over the horizontal scrollbar.
const wheelPanFraction = 0.1

// Update applies one input and returns the next model. It has no side
// effects and never blocks.
func Update(m Model, in Input) Model {
	switch in := in.(type) {
	case ViewportResized:
		return m.resize(in.Width, in.Height)
	case LoadStarted:
		m.open = true
		m.loading = true
		m.source = in.Source
		m.generation++
		return m
	case TraceLoaded:
		return m.install(in)
	case DocumentClosed:
		m.open = false
		m.loading = false
		m.source = ""
		m.err = nil
		m.generation++
		m.store, m.index = nil, nil
		m.view = viewport.State{}
		m.press = nil
		return m
	}

	if !m.Ready() {
		return m
	}

	switch in := in.(type) {
	case PointerMoved:
		return m.hover(in.X, in.Y)
	case PointerDown:
		return m.pointerDown(in)
	case PointerDragged:
		return m.pointerDragged(in.X, in.Y)
	case PointerUp:
		return m.pointerUp(in)
	case PointerDoubleClicked:
		return m.doubleClick(in.X, in.Y)
	case WheelScrolled:
		return m.wheel(in)
	case ThreadLabelClicked:
		m.view = m.view.ToggleCollapsed(in.Thread)
		return m.clampScroll()
	case ResetView:
		m.view.Mapper = viewport.Fit(m.limits(), float64(m.detailWidth()))
		m.view.ScrollY = 0
		return m
	case PanBy:
		m.view.Mapper = m.view.Mapper.Pan(in.Fraction*m.view.Mapper.Span(), m.limits())
		return m
	case ZoomBy:
		m.view.Mapper = m.view.Mapper.Zoom(in.Factor, m.view.Mapper.Width/2, m.limits())
		return m
	case ScrollBy:
		m.view = m.view.ScrollBy(in.Rows*m.Geometry.LaneHeight, m.layout().TotalHeight())
		return m
	case CollapseAll:
		m.view = m.view.SetAllCollapsed(m.store.Threads(), true)
		return m.clampScroll()
	case ExpandAll:
		m.view = m.view.SetAllCollapsed(m.store.Threads(), false)
		return m.clampScroll()
	case ClearSelection:
		m.view = m.view.Select(trace.EventRef{}, false)
		return m
	case FocusLost:
		m.view = viewport.CancelSelection(m.view)
		m.press = nil
		return m
	case RevealEvent:
		return m.reveal(in.Ref)
	}
	return m
}

func (m Model) resize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	if !m.Ready() {
		return m
	}
	m.view = m.view.Resize(m.detailWidth(), m.detailHeight(), m.layout().TotalHeight())
	return m
}

func (m Model) install(in TraceLoaded) Model {
	if in.Generation != m.generation || !m.open {
		return m
	}
	m.loading = false
	m.press = nil
	if in.Err == nil && (in.Doc.Store == nil || in.Doc.Index == nil) {
		in.Err = ErrIncompleteLoad
	}
	if in.Err != nil {
		m.err = in.Err
		m.store, m.index = nil, nil
		m.view = viewport.State{}
		return m
	}
	m.err = nil
	m.store, m.index = in.Doc.Store, in.Doc.Index
	m.view = viewport.NewState(m.limits(), m.detailWidth(), m.detailHeight())
	return m
}

func (m Model) clampScroll() Model {
	m.view.ScrollY = viewport.ClampScroll(m.view.ScrollY, m.layout().TotalHeight(), m.view.Height)
	return m
}

// hitAt hit-tests a canvas point in the detail area.
func (m Model) hitAt(x, y float64) (trace.EventRef, bool) {
	if m.areaAt(x, y) != areaDetail {
		return trace.EventRef{}, false
	}
	px, py := m.toDetail(x, y)
	return viewport.HitTest(m.store, m.index, m.view, m.layout(), px, py, m.Settings.MinEventWidth)
}

func (m Model) hover(x, y float64) Model {
	ref, ok := m.hitAt(x, y)
	m.view = m.view.Hover(ref, ok)
	return m
}

func (m Model) pointerDown(in PointerDown) Model {
	// A new press ends any mini selection; its release will not.
	m.view = viewport.CancelSelection(m.view)

	a := m.areaAt(in.X, in.Y)
	m.press = &press{button: in.Button, area: a, x: in.X, y: in.Y, mapper: m.view.Mapper}
	mx, my := m.toDetail(in.X, in.Y)

	switch {
	case a == areaHScroll && in.Button == ButtonLeft:
		m.press.grab, _ = m.hScrollbar().Grab(mx)
		m = m.dragHScroll(mx)
	case a == areaVScroll && in.Button == ButtonLeft:
		m.press.grab, _ = m.vScrollbar().Grab(my)
		m = m.dragVScroll(my)
	case a == areaMini && in.Button == ButtonLeft:
		m.view.Mapper = m.mini().Jump(m.view.Mapper, mx, m.limits())
	case a == areaMini && in.Button == ButtonRight:
		m.view = m.mini().BeginSelection(m.view, mx)
	case a == areaLabels && in.Button == ButtonLeft:
		if thread, _, ok := m.layout().RowAt(int(math.Floor(my)) + m.view.ScrollY); ok {
			m.view = m.view.ToggleCollapsed(thread)
			m = m.clampScroll()
		}
	}
	return m
}

func (m Model) pointerDragged(x, y float64) Model {
	p := m.press
	if p == nil {
		return m.hover(x, y)
	}
	mx, my := m.toDetail(x, y)

	switch {
	case p.area == areaHScroll && p.button == ButtonLeft:
		m = m.dragHScroll(mx)
	case p.area == areaVScroll && p.button == ButtonLeft:
		m = m.dragVScroll(my)
	case p.area == areaMini && p.button == ButtonLeft:
		m.view.Mapper = m.mini().Jump(m.view.Mapper, mx, m.limits())
	case p.area == areaMini && p.button == ButtonRight:
		m.view = m.mini().DragSelection(m.view, mx)
	case (p.area == areaDetail || p.area == areaHeader) && p.button == ButtonLeft:
		dx, dy := x-p.x, y-p.y
		if !p.dragging && math.Hypot(dx, dy) < m.Settings.DragThreshold {
			return m
		}
		next := *p
		next.dragging = true
		m.press = &next
		if p.mapper.Width > 0 {
			dt := -dx * p.mapper.Span() / p.mapper.Width
			m.view.Mapper = p.mapper.Pan(dt, m.limits())
		}
		if rows := int(math.Round(dy)); rows != 0 && p.area == areaDetail {
			m.view = m.view.ScrollBy(-rows, m.layout().TotalHeight())
			next.y = y
		}
	}
	return m
}

func (m Model) pointerUp(in PointerUp) Model {
	p := m.press
	m.press = nil
	if p == nil {
		return m
	}
	switch {
	case p.area == areaMini && p.button == ButtonRight:
		m.view = m.mini().EndSelection(m.view, m.Settings.DragThreshold, m.limits())
	case p.area == areaDetail && p.button == ButtonLeft && !p.dragging:
		ref, ok := m.hitAt(p.x, p.y)
		m.view = m.view.Select(ref, ok)
	}
	return m
}

// dragHScroll moves the horizontal thumb so the grabbed point sits at px.
func (m Model) dragHScroll(px float64) Model {
	t0 := m.hScrollbar().ValueAt(px - m.press.grab)
	m.view.Mapper = m.view.Mapper.Pan(t0-m.view.Mapper.T0, m.limits())
	return m
}

// dragVScroll moves the vertical thumb so the grabbed point sits at py.
func (m Model) dragVScroll(py float64) Model {
	m.view.ScrollY = int(math.Round(m.vScrollbar().ValueAt(py - m.press.grab)))
	return m.clampScroll()
}

func (m Model) doubleClick(x, y float64) Model {
	m.press = nil
	ref, ok := m.hitAt(x, y)
	if !ok {
		return m
	}
	ev, _ := m.store.Event(ref)
	pad := float64(ev.Duration) * doubleClickPadding
	m.view = m.view.Select(ref, true)
	mp := m.view.Mapper
	m.view.Mapper = mp.SetRange(mp.Rel(ev.Start)-pad, mp.Rel(ev.End())+pad, m.limits())
	return m
}

func (m Model) wheel(in WheelScrolled) Model {
	a := m.areaAt(in.X, in.Y)
	if a == areaNone {
		return m
	}
	if a == areaHScroll {
		m.view.Mapper = m.view.Mapper.Pan(-in.Delta*wheelPanFraction*m.view.Mapper.Span(), m.limits())
		return m
	}
	if in.Mods&ModCtrl != 0 || a == areaLabels || a == areaVScroll {
		rows := int(math.Round(-in.Delta * float64(m.Settings.ScrollRows)))
		m.view = m.view.ScrollBy(rows*m.Geometry.LaneHeight, m.layout().TotalHeight())
		return m
	}

	factor := math.Pow(m.Settings.ZoomStep, in.Delta)
	detail := m.view.Mapper
	anchor := in.X - float64(m.Geometry.LabelWidth)
	if a == areaMini {
		t := m.mini().Mapper().PixelToTime(anchor)
		anchor = max(0, min(detail.TimeToPixel(t), detail.Width))
	}
	m.view.Mapper = detail.Zoom(factor, anchor, m.limits())
	return m
}

// reveal selects ref, expands its thread when the event is nested and brings
// it into view.
func (m Model) reveal(ref trace.EventRef) Model {
	ev, ok := m.store.Event(ref)
	if !ok {
		return m
	}
	m.view = m.view.Select(ref, true)
	if ev.Depth > 0 && m.view.IsCollapsed(ref.Thread) {
		m.view = m.view.ToggleCollapsed(ref.Thread)
	}

	lim := m.limits()
	mp := m.view.Mapper
	if float64(ev.Duration) > mp.Span() {
		pad := float64(ev.Duration) * doubleClickPadding
		mp = mp.SetRange(mp.Rel(ev.Start)-pad, mp.Rel(ev.End())+pad, lim)
	} else {
		mp = mp.CenterOn(mp.Rel(ev.Start)+float64(ev.Duration)/2, lim)
	}
	if ev.Duration > 0 && float64(ev.Duration)*mp.Scale() < m.Settings.MinEventWidth {
		// Zoom in until the event is twice the draw cutoff.
		span := float64(ev.Duration) * mp.Width / (2 * m.Settings.MinEventWidth)
		mid := mp.Rel(ev.Start) + float64(ev.Duration)/2
		mp = mp.SetRange(mid-span/2, mid+span/2, lim)
	}
	m.view.Mapper = mp

	l := m.layout()
	if top, ok := l.RowTop(ref.Thread, ev.Depth); ok {
		lh := l.LaneHeight()
		if top < m.view.ScrollY || top+lh > m.view.ScrollY+m.view.Height {
			m.view.ScrollY = top - m.view.Height/2
		}
	}
	return m.clampScroll()
}
