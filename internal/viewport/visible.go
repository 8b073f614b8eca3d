package viewport

import (
	"cmp"
	"slices"

	"github.com/five82/lanes/internal/mipmap"
	"github.com/five82/lanes/internal/trace"
)

// Rect is a pixel rectangle relative to the area it was computed for.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Descriptor is one event the renderer should draw.
type Descriptor struct {
	Rect     Rect
	Ref      trace.EventRef
	Depth    int
	Label    trace.LabelID
	Kind     trace.LabelID
	Selected bool
	Hovered  bool
}

// Marker stands in for events culled by level skipping.
type Marker struct {
	Rect   Rect
	Thread int64
	Depth  int
}

// bandVisible reports whether any part of a band lies in the scrolled window.
func bandVisible(st State, layout Layout, b Band) bool {
	top := b.Top - st.ScrollY
	return top < st.Height && top+layout.Height(b) > 0
}

// Visible returns the detail-view descriptors in thread order, then depth,
// then start. Collapsed threads contribute only depth 0 and events narrower
// than minWidth pixels are dropped.
func Visible(store *trace.Store, index *mipmap.Index, st State, layout Layout, minWidth float64) []Descriptor {
	if store == nil || st.Mapper.Width <= 0 {
		return nil
	}
	m := st.Mapper
	scale := m.Scale()
	lo, hi := m.Window()
	lh := float64(layout.LaneHeight())

	var out []Descriptor
	for _, b := range layout.Bands() {
		if !bandVisible(st, layout, b) {
			continue
		}
		th, ok := store.Thread(b.Thread)
		if !ok {
			continue
		}
		start := len(out)
		for i := range index.Query(b.Thread, lo, hi, scale) {
			ev := th.Events[i]
			if b.Collapsed && ev.Depth != 0 {
				continue
			}
			x0 := m.PixelOf(ev.Start)
			x1 := m.PixelOf(ev.End())
			if x1-x0 < minWidth {
				continue
			}
			y := float64(b.Top-st.ScrollY) + float64(ev.Depth)*lh
			if y+lh <= 0 || y >= float64(st.Height) {
				continue
			}
			x0 = max(x0, 0)
			x1 = min(x1, m.Width)
			ref := trace.EventRef{Thread: b.Thread, Index: i}
			out = append(out, Descriptor{
				Rect:     Rect{X: x0, Y: y, W: x1 - x0, H: lh},
				Ref:      ref,
				Depth:    ev.Depth,
				Label:    ev.Label,
				Kind:     ev.Kind,
				Selected: st.IsSelected(ref),
				Hovered:  st.IsHovered(ref),
			})
		}
		band := out[start:]
		slices.SortFunc(band, func(a, b Descriptor) int {
			if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
				return c
			}
			return cmp.Compare(a.Ref.Index, b.Ref.Index)
		})
	}
	return out
}

// Shadows returns thin markers covering events hidden by level skipping.
// Each marker is at least one pixel wide.
func Shadows(store *trace.Store, index *mipmap.Index, st State, layout Layout) []Marker {
	if store == nil || st.Mapper.Width <= 0 {
		return nil
	}
	m := st.Mapper
	lo, hi := m.Window()
	lh := float64(layout.LaneHeight())

	var out []Marker
	for _, b := range layout.Bands() {
		if !bandVisible(st, layout, b) {
			continue
		}
		for _, s := range index.Shadows(b.Thread, lo, hi, m.Scale()) {
			if b.Collapsed && s.Depth != 0 {
				continue
			}
			y := float64(b.Top-st.ScrollY) + float64(s.Depth)*lh
			if y+lh <= 0 || y >= float64(st.Height) {
				continue
			}
			x0 := max(m.PixelOf(s.Start), 0)
			x1 := min(m.PixelOf(s.End), m.Width)
			if x1-x0 < 1 {
				x1 = min(x0+1, m.Width)
				x0 = x1 - 1
			}
			out = append(out, Marker{
				Rect:   Rect{X: x0, Y: y, W: x1 - x0, H: lh},
				Thread: b.Thread,
				Depth:  s.Depth,
			})
		}
	}
	return out
}
