package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/gobwas/glob"

	"github.com/five82/lanes/internal/trace"
)

// searchState holds the label search prompt and the active pattern.
type searchState struct {
	active  bool
	input   textinput.Model
	query   string
	pattern glob.Glob
	hits    map[trace.LabelID]bool
	status  string
}

func newSearchState() searchState {
	ti := textinput.New()
	ti.Placeholder = "label or glob, e.g. *alloc*"
	ti.Prompt = "/"
	ti.CharLimit = 200
	return searchState{input: ti}
}

// compilePattern builds a case-insensitive matcher. Plain text matches as a
// substring; text with glob syntax must match the whole label.
func compilePattern(query string) (glob.Glob, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	if !strings.ContainsAny(q, "*?[{") {
		q = "*" + glob.QuoteMeta(q) + "*"
	}
	return glob.Compile(q)
}

// set installs a new pattern, clearing cached label results.
func (s *searchState) set(query string) error {
	g, err := compilePattern(query)
	if err != nil {
		return err
	}
	s.query = strings.TrimSpace(query)
	s.pattern = g
	s.hits = make(map[trace.LabelID]bool)
	s.status = ""
	return nil
}

func (s *searchState) clear() {
	s.query = ""
	s.pattern = nil
	s.hits = nil
	s.status = ""
}

// matcher returns a predicate over events of store, or nil without a pattern.
func (s *searchState) matcher(store *trace.Store) func(trace.Event) bool {
	if s.pattern == nil || store == nil {
		return nil
	}
	return func(ev trace.Event) bool {
		if hit, ok := s.hits[ev.Label]; ok {
			return hit
		}
		hit := s.pattern.Match(strings.ToLower(store.Label(ev.Label)))
		s.hits[ev.Label] = hit
		return hit
	}
}

// next finds the following match after from, wrapping once.
func (s *searchState) next(store *trace.Store, from *trace.EventRef, backward bool) (trace.EventRef, bool) {
	match := s.matcher(store)
	if match == nil {
		return trace.EventRef{}, false
	}
	start := trace.EventRef{Index: -1}
	if from != nil {
		start = *from
	}
	return store.Next(start, backward, match)
}
