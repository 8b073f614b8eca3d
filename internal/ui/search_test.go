package ui

import (
	"strings"
	"testing"

	"github.com/five82/lanes/internal/trace"
)

func TestCompilePattern(t *testing.T) {
	cases := []struct {
		query string
		label string
		want  bool
	}{
		{"alloc", "runtime.gc", false},
		{"alloc", "Alloc.Small", true},
		{"ALLOC", "do_alloc_page", true},
		{"*.flush", "buffer.flush", true},
		{"*.flush", "buffer.flushAll", false},
		{"read?", "read2", true},
		{"{gc,io}*", "gcMark", true},
		{"a.b", "a.b", true},
		{"a.b", "axb", false},
	}
	for _, tc := range cases {
		g, err := compilePattern(tc.query)
		if err != nil {
			t.Fatalf("compilePattern(%q) returned error: %v", tc.query, err)
		}
		if got := g.Match(strings.ToLower(tc.label)); got != tc.want {
			t.Fatalf("pattern %q matching %q = %v, want %v", tc.query, tc.label, got, tc.want)
		}
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	if _, err := compilePattern("   "); err == nil {
		t.Fatalf("compilePattern(blank) returned nil error")
	}
}

func TestSearch_NextWraps(t *testing.T) {
	syms := trace.NewSymbols()
	store := trace.Build([]trace.RawEvent{
		{ThreadID: 1, Start: 0, Duration: 10, Label: syms.Intern("parse")},
		{ThreadID: 1, Start: 10, Duration: 10, Label: syms.Intern("layout")},
		{ThreadID: 2, Start: 0, Duration: 10, Label: syms.Intern("parse")},
	}, syms)

	s := newSearchState()
	if err := s.set("parse"); err != nil {
		t.Fatalf("set returned error: %v", err)
	}

	first, ok := s.next(store, nil, false)
	if !ok || first != (trace.EventRef{Thread: 1, Index: 0}) {
		t.Fatalf("first match = %v, %v, want 1:0", first, ok)
	}
	second, _ := s.next(store, &first, false)
	if second != (trace.EventRef{Thread: 2, Index: 0}) {
		t.Fatalf("second match = %v, want 2:0", second)
	}
	wrapped, _ := s.next(store, &second, false)
	if wrapped != first {
		t.Fatalf("wrapped match = %v, want %v", wrapped, first)
	}
	back, _ := s.next(store, &first, true)
	if back != second {
		t.Fatalf("backward match = %v, want %v", back, second)
	}

	if err := s.set("missing"); err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	if _, ok := s.next(store, nil, false); ok {
		t.Fatalf("next found a match for a missing label")
	}

	s.clear()
	if _, ok := s.next(store, nil, false); ok {
		t.Fatalf("next without a pattern reported a match")
	}
}
