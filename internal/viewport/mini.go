package viewport

import "github.com/five82/lanes/internal/trace"

// Mini maps the full trace range onto the overview strip. Its mapping never
// depends on the detail zoom.
type Mini struct {
	Bounds trace.Bounds
	Width  float64
}

// Mapper returns the fixed full-range mapping.
func (mi Mini) Mapper() Mapper {
	return Mapper{Origin: mi.Bounds.Start, T0: 0, T1: float64(mi.Bounds.Width()), Width: mi.Width}
}

// Indicator returns the pixel span of the detail range, clamped to the strip.
func (mi Mini) Indicator(detail Mapper) (float64, float64) {
	m := mi.Mapper()
	x0 := clamp(m.TimeToPixel(detail.T0), 0, mi.Width)
	x1 := clamp(m.TimeToPixel(detail.T1), 0, mi.Width)
	return x0, x1
}

// Jump re-centers the detail range on the time under a mini pixel, keeping
// the current zoom width.
func (mi Mini) Jump(detail Mapper, px float64, lim Limits) Mapper {
	t := mi.Mapper().PixelToTime(clamp(px, 0, mi.Width))
	return detail.CenterOn(t, lim)
}

// BeginSelection starts a right-drag at a mini pixel.
func (mi Mini) BeginSelection(st State, px float64) State {
	px = clamp(px, 0, mi.Width)
	st.Selection = &MiniSelection{Start: px, Current: px}
	return st
}

// DragSelection moves the live end of an active selection.
func (mi Mini) DragSelection(st State, px float64) State {
	if st.Selection == nil {
		return st
	}
	sel := *st.Selection
	sel.Current = clamp(px, 0, mi.Width)
	st.Selection = &sel
	return st
}

// EndSelection zooms the detail view to the selected interval and clears the
// selection. Selections narrower than threshold pixels only clear it.
func (mi Mini) EndSelection(st State, threshold float64, lim Limits) State {
	sel := st.Selection
	st.Selection = nil
	if sel == nil {
		return st
	}
	lo, hi := sel.Span()
	if hi-lo < threshold {
		return st
	}
	m := mi.Mapper()
	st.Mapper = st.Mapper.SetRange(m.PixelToTime(lo), m.PixelToTime(hi), lim)
	return st
}

// CancelSelection drops an active selection without zooming.
func CancelSelection(st State) State {
	st.Selection = nil
	return st
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
