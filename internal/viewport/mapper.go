package viewport

import (
	"math"

	"github.com/five82/lanes/internal/trace"
)

// Limits bounds every range a Mapper may show: the trace bounds and the
// narrowest allowed span. Start and End are relative to Origin.
type Limits struct {
	Origin  int64
	Start   float64
	End     float64
	MinSpan float64
}

// LimitsFor returns limits for a trace, with the origin at the trace start.
// minSpan is capped at the full width.
func LimitsFor(b trace.Bounds, minSpan float64) Limits {
	return Limits{Origin: b.Start, Start: 0, End: float64(b.End - b.Start), MinSpan: minSpan}
}

func (l Limits) full() float64 {
	return l.End - l.Start
}

func (l Limits) clampSpan(w float64) float64 {
	full := l.full()
	floor := min(max(l.MinSpan, 0), full)
	if w < floor || math.IsNaN(w) {
		return floor
	}
	if w > full {
		return full
	}
	return w
}

// place positions a span of width w starting at t0 inside the limits.
func (l Limits) place(t0, w float64) (float64, float64) {
	if t0 < l.Start {
		t0 = l.Start
	}
	if t0+w > l.End {
		t0 = l.End - w
	}
	return t0, t0 + w
}

// Mapper is the affine map between trace time and detail pixels. T0 and T1
// are offsets from Origin; absolute timestamps never pass through float64,
// which cannot hold epoch nanoseconds exactly. A Mapper and the Limits it is
// clamped to share one Origin.
type Mapper struct {
	Origin int64
	T0     float64
	T1     float64
	Width  float64
}

// Fit returns a mapper showing the whole of lim.
func Fit(lim Limits, width float64) Mapper {
	return Mapper{Origin: lim.Origin, T0: lim.Start, T1: lim.End, Width: width}
}

// Rel converts an absolute trace time to mapper time.
func (m Mapper) Rel(t int64) float64 {
	return float64(t - m.Origin)
}

// PixelOf maps an absolute trace time to a pixel offset.
func (m Mapper) PixelOf(t int64) float64 {
	return m.TimeToPixel(m.Rel(t))
}

// Window returns the visible range in absolute trace units, widened to whole
// units and never empty.
func (m Mapper) Window() (int64, int64) {
	lo := m.Origin + int64(math.Floor(m.T0))
	hi := m.Origin + int64(math.Ceil(m.T1))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Span returns T1-T0.
func (m Mapper) Span() float64 {
	return m.T1 - m.T0
}

// Scale returns pixels per time unit.
func (m Mapper) Scale() float64 {
	if m.Span() <= 0 {
		return 0
	}
	return m.Width / m.Span()
}

// TimeToPixel maps mapper time t to a pixel offset from the left edge.
func (m Mapper) TimeToPixel(t float64) float64 {
	if m.Span() <= 0 {
		return 0
	}
	return (t - m.T0) * m.Width / m.Span()
}

// PixelToTime maps a pixel offset back to mapper time.
func (m Mapper) PixelToTime(p float64) float64 {
	if m.Width <= 0 {
		return m.T0
	}
	return m.T0 + p*m.Span()/m.Width
}

// Zoom scales the span by 1/f keeping the time under anchor fixed, then
// clamps the result into lim. f > 1 zooms in.
func (m Mapper) Zoom(f, anchor float64, lim Limits) Mapper {
	if f <= 0 || m.Width <= 0 {
		return m
	}
	ta := m.PixelToTime(anchor)
	w := lim.clampSpan(m.Span() / f)
	m.T0, m.T1 = lim.place(ta-anchor/m.Width*w, w)
	return m
}

// Pan shifts the range by dt without changing its span.
func (m Mapper) Pan(dt float64, lim Limits) Mapper {
	w := lim.clampSpan(m.Span())
	m.T0, m.T1 = lim.place(m.T0+dt, w)
	return m
}

// CenterOn keeps the span and centers it on t.
func (m Mapper) CenterOn(t float64, lim Limits) Mapper {
	w := lim.clampSpan(m.Span())
	m.T0, m.T1 = lim.place(t-w/2, w)
	return m
}

// SetRange shows exactly [t0, t1) when allowed. Spans outside the limits are
// corrected around the requested center.
func (m Mapper) SetRange(t0, t1 float64, lim Limits) Mapper {
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	want := t1 - t0
	w := lim.clampSpan(want)
	if w != want {
		t0 = (t0+t1)/2 - w/2
	}
	m.T0, m.T1 = lim.place(t0, w)
	return m
}

// Resize changes the pixel width and keeps the visible time range.
func (m Mapper) Resize(width float64) Mapper {
	m.Width = max(width, 0)
	return m
}
