package viewport

// minThumbFraction keeps the thumb visible on very long tracks.
const minThumbFraction = 0.02

// Scrollbar maps a scroll value in [Min, Max] onto a track Length pixels
// long. Visible is the share of the content on screen and sets the thumb
// size.
type Scrollbar struct {
	Length  float64
	Value   float64
	Min     float64
	Max     float64
	Visible float64
}

// HorizontalScrollbar describes the detail range inside lim on a track of
// length pixels. Its value is the range start.
func HorizontalScrollbar(m Mapper, lim Limits, length float64) Scrollbar {
	full := lim.full()
	visible := 1.0
	if full > 0 {
		visible = m.Span() / full
	}
	return Scrollbar{
		Length:  length,
		Value:   m.T0,
		Min:     lim.Start,
		Max:     max(lim.End-m.Span(), lim.Start),
		Visible: visible,
	}
}

// VerticalScrollbar describes the scroll offset of st over total rows on a
// track of length pixels.
func VerticalScrollbar(st State, total int, length float64) Scrollbar {
	visible := 1.0
	if total > 0 {
		visible = float64(st.Height) / float64(total)
	}
	return Scrollbar{
		Length:  length,
		Value:   float64(st.ScrollY),
		Max:     float64(max(total-st.Height, 0)),
		Visible: visible,
	}
}

// Thumb returns the thumb position and size along the track. The thumb is
// at least one pixel long.
func (s Scrollbar) Thumb() (float64, float64) {
	if s.Length <= 0 {
		return 0, 0
	}
	size := min(max(clamp(s.Visible, minThumbFraction, 1)*s.Length, 1), s.Length)
	free := s.Length - size
	frac := 0.0
	if s.Max > s.Min {
		frac = clamp((s.Value-s.Min)/(s.Max-s.Min), 0, 1)
	}
	return free * frac, size
}

// ValueAt returns the value that puts the thumb's leading edge at pos.
func (s Scrollbar) ValueAt(pos float64) float64 {
	_, size := s.Thumb()
	free := s.Length - size
	if free <= 0 || s.Max <= s.Min {
		return s.Min
	}
	return s.Min + clamp(pos/free, 0, 1)*(s.Max-s.Min)
}

// Grab returns the offset from the thumb's leading edge at which a press at
// pos holds the thumb. Presses on the track outside the thumb grab its
// middle, so the thumb jumps under the pointer.
func (s Scrollbar) Grab(pos float64) (float64, bool) {
	at, size := s.Thumb()
	if pos >= at && pos < at+size {
		return pos - at, true
	}
	return size / 2, false
}
