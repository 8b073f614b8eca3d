package viewport

import (
	"math"

	"github.com/five82/lanes/internal/mipmap"
	"github.com/five82/lanes/internal/trace"
)

// HitTest resolves a detail-area pointer position to at most one event.
// px and py are relative to the detail area's top-left corner. Events are
// hit on the half-open interval [start, start+duration), so a point on a
// shared boundary belongs to the later event. Events narrower than minWidth
// pixels cannot be hit, matching what is drawn.
func HitTest(store *trace.Store, index *mipmap.Index, st State, layout Layout, px, py, minWidth float64) (trace.EventRef, bool) {
	m := st.Mapper
	if store == nil || px < 0 || px >= m.Width || py < 0 || py >= float64(st.Height) {
		return trace.EventRef{}, false
	}
	bounds := store.Bounds()
	t := m.PixelToTime(px)
	if t < m.Rel(bounds.Start) || t >= m.Rel(bounds.End) {
		return trace.EventRef{}, false
	}
	thread, depth, ok := layout.RowAt(int(math.Floor(py)) + st.ScrollY)
	if !ok {
		return trace.EventRef{}, false
	}
	if st.IsCollapsed(thread) && depth != 0 {
		return trace.EventRef{}, false
	}
	th, ok := store.Thread(thread)
	if !ok {
		return trace.EventRef{}, false
	}

	scale := m.Scale()
	lo := m.Origin + int64(math.Floor(t))
	best := -1
	for i := range index.Query(thread, lo, lo+1, scale) {
		ev := th.Events[i]
		if ev.Depth != depth || t < m.Rel(ev.Start) || t >= m.Rel(ev.End()) {
			continue
		}
		if float64(ev.Duration)*scale < minWidth {
			continue
		}
		// Well-nested data has one candidate; otherwise prefer the latest start.
		if best < 0 || ev.Start > th.Events[best].Start || (ev.Start == th.Events[best].Start && i > best) {
			best = i
		}
	}
	if best < 0 {
		return trace.EventRef{}, false
	}
	return trace.EventRef{Thread: thread, Index: best}, true
}
