package trace

import (
	"cmp"
	"slices"
	"strconv"
)

// Thread is one thread's start-ordered event sequence.
type Thread struct {
	ID       int64
	Name     string
	Events   []Event
	MaxDepth int
}

// Store is the immutable, post-load representation of one trace.
type Store struct {
	threads []*Thread
	byID    map[int64]int
	bounds  Bounds
	count   int
	offsets []int
	labels  Labels
	kinds   []LabelID
}

// Build groups raw events by thread (first-seen order), stable-sorts each
// thread by start and computes the global bounds. Threads that need derived
// depths break start ties by duration, longest first. labels may be nil.
func Build(raw []RawEvent, labels Labels) *Store {
	s := &Store{
		byID:   make(map[int64]int),
		labels: labels,
	}
	derive := make(map[int64]bool)

	for _, r := range raw {
		idx, ok := s.byID[r.ThreadID]
		if !ok {
			idx = len(s.threads)
			s.byID[r.ThreadID] = idx
			s.threads = append(s.threads, &Thread{ID: r.ThreadID})
		}
		th := s.threads[idx]
		if th.Name == "" && r.ThreadName != "" {
			th.Name = r.ThreadName
		}
		if r.Depth < 0 {
			derive[r.ThreadID] = true
		}
		dur := r.Duration
		if dur < 0 {
			dur = 0
		}
		th.Events = append(th.Events, Event{
			ThreadID: r.ThreadID,
			Start:    r.Start,
			Duration: dur,
			Depth:    max(r.Depth, 0),
			Label:    r.Label,
			Kind:     r.Kind,
		})
	}

	first := true
	kinds := make(map[LabelID]struct{})
	for _, th := range s.threads {
		if th.Name == "" {
			th.Name = "Thread " + strconv.FormatInt(th.ID, 10)
		}
		if derive[th.ID] {
			// Longer events first on tied starts so parents precede children.
			slices.SortStableFunc(th.Events, func(a, b Event) int {
				if c := cmp.Compare(a.Start, b.Start); c != 0 {
					return c
				}
				return cmp.Compare(b.Duration, a.Duration)
			})
			th.MaxDepth = AssignDepths(th.Events)
		} else {
			slices.SortStableFunc(th.Events, func(a, b Event) int {
				return cmp.Compare(a.Start, b.Start)
			})
		}
		for _, ev := range th.Events {
			if ev.Depth > th.MaxDepth {
				th.MaxDepth = ev.Depth
			}
			if first || ev.Start < s.bounds.Start {
				s.bounds.Start = ev.Start
			}
			if first || ev.End() > s.bounds.End {
				s.bounds.End = ev.End()
			}
			first = false
			kinds[ev.Kind] = struct{}{}
		}
		s.offsets = append(s.offsets, s.count)
		s.count += len(th.Events)
	}

	if first {
		s.bounds = Bounds{Start: 0, End: 1}
	} else if s.bounds.End <= s.bounds.Start {
		s.bounds.End = s.bounds.Start + 1
	}

	for k := range kinds {
		s.kinds = append(s.kinds, k)
	}
	slices.SortFunc(s.kinds, func(a, b LabelID) int {
		if c := cmp.Compare(s.Label(a), s.Label(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return s
}

// Threads returns threads in first-seen order. The slice must not be modified.
func (s *Store) Threads() []*Thread {
	if s == nil {
		return nil
	}
	return s.threads
}

// Thread looks up a thread by id.
func (s *Store) Thread(id int64) (*Thread, bool) {
	if s == nil {
		return nil, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.threads[idx], true
}

// Bounds returns the global [min start, max end) range. It is never empty.
func (s *Store) Bounds() Bounds {
	if s == nil {
		return Bounds{Start: 0, End: 1}
	}
	return s.bounds
}

// EventCount returns the number of events across all threads.
func (s *Store) EventCount() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Valid reports whether ref addresses an event in this store.
func (s *Store) Valid(ref EventRef) bool {
	th, ok := s.Thread(ref.Thread)
	return ok && ref.Index >= 0 && ref.Index < len(th.Events)
}

// Event resolves ref, validating it first.
func (s *Store) Event(ref EventRef) (Event, bool) {
	if !s.Valid(ref) {
		return Event{}, false
	}
	th, _ := s.Thread(ref.Thread)
	return th.Events[ref.Index], true
}

// Range returns events [lo, hi) of a thread, clamped to what exists.
func (s *Store) Range(id int64, lo, hi int) []Event {
	th, ok := s.Thread(id)
	if !ok {
		return nil
	}
	lo = max(lo, 0)
	hi = min(hi, len(th.Events))
	if lo >= hi {
		return nil
	}
	return th.Events[lo:hi]
}

// Labels returns the interner the store was built with.
func (s *Store) Labels() Labels {
	if s == nil {
		return nil
	}
	return s.labels
}

// Label resolves an interned id, returning "" without an interner.
func (s *Store) Label(id LabelID) string {
	if s == nil || s.labels == nil {
		return ""
	}
	return s.labels.Lookup(id)
}

// Kinds returns the distinct kind ids sorted by their display name.
func (s *Store) Kinds() []LabelID {
	if s == nil {
		return nil
	}
	return s.kinds
}

// Parent returns the nearest enclosing event one depth up. It scans backwards
// through the start-ordered sequence instead of storing links.
func (s *Store) Parent(ref EventRef) (EventRef, bool) {
	ev, ok := s.Event(ref)
	if !ok || ev.Depth == 0 {
		return EventRef{}, false
	}
	th, _ := s.Thread(ref.Thread)
	for i := ref.Index - 1; i >= 0; i-- {
		cand := th.Events[i]
		if cand.Depth == ev.Depth-1 {
			if cand.End() < ev.Start {
				return EventRef{}, false
			}
			return EventRef{Thread: ref.Thread, Index: i}, true
		}
		if cand.Depth < ev.Depth-1 {
			return EventRef{}, false
		}
	}
	return EventRef{}, false
}

// Children returns the events directly nested under ref.
func (s *Store) Children(ref EventRef) []EventRef {
	ev, ok := s.Event(ref)
	if !ok || ev.Duration == 0 {
		return nil
	}
	th, _ := s.Thread(ref.Thread)
	var out []EventRef
	for i := ref.Index + 1; i < len(th.Events); i++ {
		cand := th.Events[i]
		if cand.Start >= ev.End() {
			break
		}
		if cand.Depth <= ev.Depth {
			break
		}
		if cand.Depth == ev.Depth+1 {
			out = append(out, EventRef{Thread: ref.Thread, Index: i})
		}
	}
	return out
}

// Next finds the next event after from (thread order, then index) that
// satisfies match, wrapping around once. An invalid from (such as Index -1)
// starts at the beginning. backward walks in the opposite direction.
func (s *Store) Next(from EventRef, backward bool, match func(Event) bool) (EventRef, bool) {
	if s == nil || s.count == 0 || match == nil {
		return EventRef{}, false
	}
	flat := func(r EventRef) int {
		return s.offsets[s.byID[r.Thread]] + r.Index
	}
	unflat := func(n int) EventRef {
		idx, found := slices.BinarySearch(s.offsets, n)
		if !found {
			idx--
		}
		return EventRef{Thread: s.threads[idx].ID, Index: n - s.offsets[idx]}
	}

	pos := -1
	if backward {
		pos = s.count
	}
	if s.Valid(from) {
		pos = flat(from)
	}
	step := 1
	if backward {
		step = -1
	}
	for i := 1; i <= s.count; i++ {
		n := ((pos+step*i)%s.count + s.count) % s.count
		ref := unflat(n)
		ev, _ := s.Event(ref)
		if match(ev) {
			return ref, true
		}
	}
	return EventRef{}, false
}
