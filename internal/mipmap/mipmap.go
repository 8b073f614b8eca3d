package mipmap

import (
	"cmp"
	"context"
	"iter"
	"math"
	"math/bits"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/five82/lanes/internal/trace"
)

// Shadow is a merged interval standing in for events too small to draw at
// the current zoom.
type Shadow struct {
	Depth int
	Start int64
	End   int64
}

// Level holds the events of one duration class, sorted by start.
type Level struct {
	L       int
	Events  []int
	shadows []Shadow
}

type threadIndex struct {
	events []trace.Event
	levels []Level
}

// Index is the per-thread level-of-detail index over a Store. It is
// immutable once built.
type Index struct {
	threads map[int64]*threadIndex
}

// LevelOf returns floor(log2(max(d, 1))). Zero and unit durations share the
// minimum level 0.
func LevelOf(d int64) int {
	if d < 1 {
		d = 1
	}
	return bits.Len64(uint64(d)) - 1
}

// Build derives an Index from store, indexing threads in parallel.
func Build(ctx context.Context, store *trace.Store) (*Index, error) {
	threads := store.Threads()
	built := make([]*threadIndex, len(threads))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, th := range threads {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			built[i] = buildThread(th.Events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{threads: make(map[int64]*threadIndex, len(threads))}
	for i, th := range threads {
		idx.threads[th.ID] = built[i]
	}
	return idx, nil
}

func buildThread(events []trace.Event) *threadIndex {
	var buckets [64][]int
	for i, ev := range events {
		l := LevelOf(ev.Duration)
		// events are start-ordered, so each bucket stays sorted by start.
		buckets[l] = append(buckets[l], i)
	}

	ti := &threadIndex{events: events}
	var prev []Shadow
	for l, members := range buckets {
		if len(members) == 0 {
			continue
		}
		prev = mergeShadows(prev, events, members, l)
		ti.levels = append(ti.levels, Level{L: l, Events: members, shadows: prev})
	}
	return ti
}

// mergeShadows folds a level's events into the shadows of the levels below
// it. Every interval is widened to at least 2^l and neighbours at the same
// depth closer than 2^l are joined.
func mergeShadows(prev []Shadow, events []trace.Event, members []int, l int) []Shadow {
	span := int64(1) << min(l, 62)
	all := make([]Shadow, 0, len(prev)+len(members))
	all = append(all, prev...)
	for _, i := range members {
		ev := events[i]
		all = append(all, Shadow{Depth: ev.Depth, Start: ev.Start, End: ev.End()})
	}
	slices.SortFunc(all, func(a, b Shadow) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})

	out := make([]Shadow, 0, len(all))
	for _, s := range all {
		if s.End-s.Start < span {
			s.End = s.Start + span
		}
		if n := len(out); n > 0 && out[n-1].Depth == s.Depth && s.Start-out[n-1].End < span {
			out[n-1].End = max(out[n-1].End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Skipped reports whether level l is culled at scale pixels per time unit.
func Skipped(l int, scale float64) bool {
	return math.Ldexp(1, l)*scale < 1
}

// Query yields indices into the thread's event slice for events that overlap
// [lo, hi) and whose level is not skipped at scale. Within a level the scan
// starts 2^(l+1) before lo so long events that began earlier are included.
func (x *Index) Query(thread int64, lo, hi int64, scale float64) iter.Seq[int] {
	return func(yield func(int) bool) {
		ti := x.thread(thread)
		if ti == nil || hi <= lo {
			return
		}
		for _, lvl := range ti.levels {
			if Skipped(lvl.L, scale) {
				continue
			}
			from := windowStart(lo, lvl.L)
			first := sort.Search(len(lvl.Events), func(i int) bool {
				return ti.events[lvl.Events[i]].Start >= from
			})
			for _, i := range lvl.Events[first:] {
				ev := ti.events[i]
				if ev.Start >= hi {
					break
				}
				if !ev.Overlaps(lo, hi) {
					continue
				}
				if !yield(i) {
					return
				}
			}
		}
	}
}

// Shadows returns the shadow intervals that cover every skipped level at
// scale and overlap [lo, hi). It is empty when no level is skipped.
func (x *Index) Shadows(thread int64, lo, hi int64, scale float64) []Shadow {
	ti := x.thread(thread)
	if ti == nil || hi <= lo {
		return nil
	}
	var top *Level
	for i := range ti.levels {
		if !Skipped(ti.levels[i].L, scale) {
			break
		}
		top = &ti.levels[i]
	}
	if top == nil {
		return nil
	}
	var out []Shadow
	for _, s := range top.shadows {
		if s.Start < hi && s.End > lo {
			out = append(out, s)
		}
	}
	return out
}

// Levels returns the non-empty levels of a thread in ascending order.
func (x *Index) Levels(thread int64) []Level {
	ti := x.thread(thread)
	if ti == nil {
		return nil
	}
	return ti.levels
}

func (x *Index) thread(id int64) *threadIndex {
	if x == nil {
		return nil
	}
	return x.threads[id]
}

func windowStart(lo int64, l int) int64 {
	if l+1 >= 63 {
		return math.MinInt64
	}
	reach := int64(1) << (l + 1)
	if lo < math.MinInt64+reach {
		return math.MinInt64
	}
	return lo - reach
}
