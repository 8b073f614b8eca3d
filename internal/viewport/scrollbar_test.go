package viewport

import (
	"math"
	"testing"

	"github.com/five82/lanes/internal/trace"
)

func TestScrollbar_ThumbAndValue(t *testing.T) {
	s := Scrollbar{Length: 100, Value: 25, Min: 0, Max: 50, Visible: 0.5}
	pos, size := s.Thumb()
	if pos != 25 || size != 50 {
		t.Fatalf("Thumb() = %v,%v, want 25,50", pos, size)
	}
	tests := []struct {
		pos  float64
		want float64
	}{
		{0, 0},
		{25, 25},
		{50, 50},
		{80, 50},
		{-10, 0},
	}
	for _, tt := range tests {
		if got := s.ValueAt(tt.pos); got != tt.want {
			t.Fatalf("ValueAt(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestScrollbar_MinimumThumb(t *testing.T) {
	s := Scrollbar{Length: 10, Value: 0, Max: 1e9, Visible: 1e-9}
	if _, size := s.Thumb(); size != 1 {
		t.Fatalf("thumb size = %v, want 1", size)
	}
	full := Scrollbar{Length: 10, Visible: 1}
	if pos, size := full.Thumb(); pos != 0 || size != 10 {
		t.Fatalf("full thumb = %v,%v, want 0,10", pos, size)
	}
	if got := full.ValueAt(5); got != 0 {
		t.Fatalf("ValueAt on a full thumb = %v, want 0", got)
	}
}

func TestScrollbar_Grab(t *testing.T) {
	s := Scrollbar{Length: 100, Value: 25, Max: 50, Visible: 0.5}
	if off, on := s.Grab(30); !on || off != 5 {
		t.Fatalf("Grab(30) = %v,%v, want 5,true", off, on)
	}
	if off, on := s.Grab(90); on || off != 25 {
		t.Fatalf("Grab(90) = %v,%v, want 25,false", off, on)
	}
}

func TestHorizontalScrollbar_FollowsRange(t *testing.T) {
	lim := LimitsFor(trace.Bounds{Start: 1_700_000_000_000_000_000, End: 1_700_000_000_000_010_000}, 1)
	m := Fit(lim, 100).SetRange(2500, 5000, lim)
	s := HorizontalScrollbar(m, lim, 100)
	pos, size := s.Thumb()
	if size != 25 || math.Abs(pos-25) > 1e-9 {
		t.Fatalf("Thumb() = %v,%v, want 25,25", pos, size)
	}
	if got := s.ValueAt(75); got != 7500 {
		t.Fatalf("ValueAt(75) = %v, want 7500", got)
	}
}

func TestVerticalScrollbar(t *testing.T) {
	st := State{Height: 10, ScrollY: 15}
	s := VerticalScrollbar(st, 40, 10)
	pos, size := s.Thumb()
	if size != 2.5 || pos != 3.75 {
		t.Fatalf("Thumb() = %v,%v, want 3.75,2.5", pos, size)
	}
	if got := VerticalScrollbar(State{Height: 10}, 5, 10); got.Max != 0 {
		t.Fatalf("Max with short content = %v, want 0", got.Max)
	}
}
