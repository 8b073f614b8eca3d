package viewport

import (
	"sort"

	"github.com/five82/lanes/internal/trace"
)

// Band is one thread's contiguous block of rows in content space.
type Band struct {
	Thread    int64
	Top       int
	Rows      int
	Collapsed bool
}

// Layout is the row-offset table for the detail view.
type Layout struct {
	bands       []Band
	byID        map[int64]int
	laneHeight  int
	laneSpacing int
	total       int
}

// NewLayout assigns each thread MaxDepth+1 rows, or one row when collapsed.
func NewLayout(store *trace.Store, collapsed map[int64]bool, laneHeight, laneSpacing int) Layout {
	laneHeight = max(laneHeight, 1)
	laneSpacing = max(laneSpacing, 0)
	threads := store.Threads()
	l := Layout{
		bands:       make([]Band, 0, len(threads)),
		byID:        make(map[int64]int, len(threads)),
		laneHeight:  laneHeight,
		laneSpacing: laneSpacing,
	}
	y := 0
	for _, th := range threads {
		rows := th.MaxDepth + 1
		if collapsed[th.ID] {
			rows = 1
		}
		l.byID[th.ID] = len(l.bands)
		l.bands = append(l.bands, Band{Thread: th.ID, Top: y, Rows: rows, Collapsed: collapsed[th.ID]})
		y += rows*laneHeight + laneSpacing
	}
	l.total = y
	return l
}

// Bands returns the thread bands top to bottom.
func (l Layout) Bands() []Band {
	return l.bands
}

// Band returns the band of a thread.
func (l Layout) Band(thread int64) (Band, bool) {
	i, ok := l.byID[thread]
	if !ok {
		return Band{}, false
	}
	return l.bands[i], true
}

// LaneHeight returns the height of one depth row.
func (l Layout) LaneHeight() int {
	return l.laneHeight
}

// TotalHeight returns the content height including spacing.
func (l Layout) TotalHeight() int {
	return l.total
}

// Height returns the pixel height of a band.
func (l Layout) Height(b Band) int {
	return b.Rows * l.laneHeight
}

// RowTop returns the content-space top of a thread's depth row.
func (l Layout) RowTop(thread int64, depth int) (int, bool) {
	b, ok := l.Band(thread)
	if !ok || depth < 0 || depth >= b.Rows {
		return 0, false
	}
	return b.Top + depth*l.laneHeight, true
}

// RowAt resolves a content-space y to a thread and depth. Spacing between
// bands and positions past the last band resolve to nothing.
func (l Layout) RowAt(y int) (int64, int, bool) {
	if y < 0 || len(l.bands) == 0 {
		return 0, 0, false
	}
	i := sort.Search(len(l.bands), func(i int) bool {
		return l.bands[i].Top > y
	}) - 1
	if i < 0 {
		return 0, 0, false
	}
	b := l.bands[i]
	off := y - b.Top
	if off >= b.Rows*l.laneHeight {
		return 0, 0, false
	}
	return b.Thread, off / l.laneHeight, true
}
