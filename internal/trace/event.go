package trace

import "fmt"

// LabelID identifies an interned label or kind string.
type LabelID uint32

// Labels resolves interned ids back to display strings.
type Labels interface {
	Lookup(id LabelID) string
}

// Event is a single timed interval on one thread. Times are integer trace
// units (nanoseconds for every loader in this module).
type Event struct {
	ThreadID int64
	Start    int64
	Duration int64
	Depth    int
	Label    LabelID
	Kind     LabelID
}

// End returns the exclusive end of the event.
func (e Event) End() int64 {
	return e.Start + e.Duration
}

// Contains reports whether t falls inside [Start, Start+Duration).
// Zero-duration events contain no point.
func (e Event) Contains(t float64) bool {
	return float64(e.Start) <= t && t < float64(e.End())
}

// Overlaps reports whether the event intersects the half-open range [lo, hi).
// A zero-duration event overlaps when its start lies inside the range.
func (e Event) Overlaps(lo, hi int64) bool {
	if e.Duration == 0 {
		return e.Start >= lo && e.Start < hi
	}
	return e.Start < hi && e.End() > lo
}

// EventRef addresses an event by thread and index into that thread's
// start-ordered event slice. It is a weak reference: validate it against the
// current Store before use.
type EventRef struct {
	Thread int64
	Index  int
}

func (r EventRef) String() string {
	return fmt.Sprintf("%d:%d", r.Thread, r.Index)
}

// RawEvent is one loaded event before grouping. A negative Depth asks Build
// to derive nesting for the whole thread from interval containment.
type RawEvent struct {
	ThreadID   int64
	ThreadName string
	Start      int64
	Duration   int64
	Depth      int
	Label      LabelID
	Kind       LabelID
}

// Bounds is the global [Start, End) time range of a trace.
type Bounds struct {
	Start int64
	End   int64
}

// Width returns End-Start.
func (b Bounds) Width() int64 {
	return b.End - b.Start
}
