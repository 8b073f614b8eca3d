package loader

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/five82/lanes/internal/trace"
)

// chromeEvent is one entry of the Chrome Trace Event Format. Timestamps are
// microseconds.
type chromeEvent struct {
	Name string          `json:"name"`
	Cat  string          `json:"cat"`
	Ph   string          `json:"ph"`
	Ts   float64         `json:"ts"`
	Dur  float64         `json:"dur"`
	Pid  json.RawMessage `json:"pid"`
	Tid  json.RawMessage `json:"tid"`
	Args struct {
		Name string `json:"name"`
	} `json:"args"`
}

type chromeFile struct {
	TraceEvents []chromeEvent `json:"traceEvents"`
}

type threadKey struct {
	pid string
	tid string
}

// chromeThreads assigns dense thread ids to (pid, tid) pairs in first-seen
// order.
type chromeThreads struct {
	ids   map[threadKey]int64
	names map[int64]string
	tids  map[int64]string
}

func (c *chromeThreads) id(ev chromeEvent) int64 {
	key := threadKey{pid: rawID(ev.Pid), tid: rawID(ev.Tid)}
	if id, ok := c.ids[key]; ok {
		return id
	}
	id := int64(len(c.ids) + 1)
	c.ids[key] = id
	c.tids[id] = key.tid
	return id
}

func (c *chromeThreads) name(id int64) string {
	if n := c.names[id]; n != "" {
		return n
	}
	return "tid " + c.tids[id]
}

func rawID(raw json.RawMessage) string {
	s := string(bytes.Trim(raw, `" `))
	if s == "" || s == "null" {
		return "0"
	}
	return s
}

func usToNs(us float64) int64 {
	return int64(math.Round(us * 1000))
}

type openSpan struct {
	start int64
	name  string
	cat   string
}

func decodeChrome(data []byte, syms *trace.Symbols) ([]trace.RawEvent, error) {
	events, err := parseChrome(data)
	if err != nil {
		return nil, err
	}

	threads := &chromeThreads{
		ids:   make(map[threadKey]int64),
		names: make(map[int64]string),
		tids:  make(map[int64]string),
	}
	type span struct {
		thread int64
		start  int64
		dur    int64
		name   string
		cat    string
	}
	var spans []span
	open := make(map[int64][]openSpan)
	var last int64 = math.MinInt64

	for _, ev := range events {
		thread := threads.id(ev)
		ts := usToNs(ev.Ts)
		switch ev.Ph {
		case "X":
			dur := max(usToNs(ev.Dur), 0)
			spans = append(spans, span{thread: thread, start: ts, dur: dur, name: ev.Name, cat: ev.Cat})
			last = max(last, ts+dur)
		case "B":
			open[thread] = append(open[thread], openSpan{start: ts, name: ev.Name, cat: ev.Cat})
			last = max(last, ts)
		case "E":
			stack := open[thread]
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			open[thread] = stack[:len(stack)-1]
			spans = append(spans, span{thread: thread, start: top.start, dur: max(ts-top.start, 0), name: top.name, cat: top.cat})
			last = max(last, ts)
		case "M":
			if ev.Name == "thread_name" && ev.Args.Name != "" {
				threads.names[thread] = ev.Args.Name
			}
		}
	}
	// Spans still open at the end of the capture run to the last timestamp.
	for _, thread := range slices.Sorted(maps.Keys(open)) {
		for _, o := range open[thread] {
			spans = append(spans, span{thread: thread, start: o.start, dur: max(last-o.start, 0), name: o.name, cat: o.cat})
		}
	}
	if len(spans) == 0 {
		return nil, nil
	}

	origin := spans[0].start
	for _, s := range spans[1:] {
		origin = min(origin, s.start)
	}
	// Parents first when starts tie, so depth derivation nests correctly.
	slices.SortStableFunc(spans, func(a, b span) int {
		if a.start != b.start {
			return cmp.Compare(a.start, b.start)
		}
		return cmp.Compare(b.dur, a.dur)
	})

	raw := make([]trace.RawEvent, 0, len(spans))
	for _, s := range spans {
		raw = append(raw, trace.RawEvent{
			ThreadID:   s.thread,
			ThreadName: threads.name(s.thread),
			Start:      s.start - origin,
			Duration:   s.dur,
			Depth:      -1,
			Label:      syms.Intern(s.name),
			Kind:       syms.Intern(s.cat),
		})
	}
	return raw, nil
}

// parseChrome accepts both the bare array form and the object form.
func parseChrome(data []byte) ([]chromeEvent, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []chromeEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("parse chrome trace: %w", err)
		}
		return events, nil
	}
	var file chromeFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, fmt.Errorf("parse chrome trace: %w", err)
	}
	return file.TraceEvents, nil
}
