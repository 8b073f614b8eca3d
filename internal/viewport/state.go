package viewport

import (
	"maps"

	"github.com/five82/lanes/internal/trace"
)

// MiniSelection is the live right-drag on the mini timeline, in mini pixels.
type MiniSelection struct {
	Start   float64
	Current float64
}

// Span returns the selection as an ordered pixel pair.
func (s MiniSelection) Span() (float64, float64) {
	return min(s.Start, s.Current), max(s.Start, s.Current)
}

// State is the mutable navigation state of one open trace. Methods return
// updated copies; the collapse map is copied on write so earlier values stay
// untouched.
type State struct {
	Mapper    Mapper
	Height    int
	ScrollY   int
	Collapsed map[int64]bool
	Selected  *trace.EventRef
	Hovered   *trace.EventRef
	Selection *MiniSelection
}

// NewState returns a zoom-to-fit state for a trace.
func NewState(lim Limits, width, height int) State {
	return State{
		Mapper: Fit(lim, float64(max(width, 0))),
		Height: max(height, 0),
	}
}

// IsCollapsed reports whether a thread shows only its depth-0 row.
func (s State) IsCollapsed(thread int64) bool {
	return s.Collapsed[thread]
}

// ToggleCollapsed flips one thread's collapse flag.
func (s State) ToggleCollapsed(thread int64) State {
	next := maps.Clone(s.Collapsed)
	if next == nil {
		next = make(map[int64]bool)
	}
	if next[thread] {
		delete(next, thread)
	} else {
		next[thread] = true
	}
	s.Collapsed = next
	return s
}

// SetAllCollapsed collapses or expands every listed thread.
func (s State) SetAllCollapsed(threads []*trace.Thread, collapsed bool) State {
	if !collapsed {
		s.Collapsed = nil
		return s
	}
	next := make(map[int64]bool, len(threads))
	for _, th := range threads {
		next[th.ID] = true
	}
	s.Collapsed = next
	return s
}

// Select sets or clears the selected event.
func (s State) Select(ref trace.EventRef, ok bool) State {
	if !ok {
		s.Selected = nil
		return s
	}
	s.Selected = &ref
	return s
}

// Hover sets or clears the hovered event.
func (s State) Hover(ref trace.EventRef, ok bool) State {
	if !ok {
		s.Hovered = nil
		return s
	}
	s.Hovered = &ref
	return s
}

// IsSelected reports whether ref is the current selection.
func (s State) IsSelected(ref trace.EventRef) bool {
	return s.Selected != nil && *s.Selected == ref
}

// IsHovered reports whether ref is under the pointer.
func (s State) IsHovered(ref trace.EventRef) bool {
	return s.Hovered != nil && *s.Hovered == ref
}

// ScrollBy adds dy rows and clamps against the content height.
func (s State) ScrollBy(dy, total int) State {
	s.ScrollY = ClampScroll(s.ScrollY+dy, total, s.Height)
	return s
}

// Resize updates pixel dimensions and re-clamps the vertical scroll.
func (s State) Resize(width, height, total int) State {
	s.Mapper = s.Mapper.Resize(float64(width))
	s.Height = max(height, 0)
	s.ScrollY = ClampScroll(s.ScrollY, total, s.Height)
	return s
}

// ClampScroll limits an offset to [0, total-height], or 0 when content fits.
func ClampScroll(y, total, height int) int {
	limit := total - height
	if limit <= 0 || y < 0 {
		return 0
	}
	return min(y, limit)
}
