package viewport

import (
	"math"
	"testing"

	"github.com/five82/lanes/internal/trace"
)

const eps = 1e-6

func TestMapper_RoundTrip(t *testing.T) {
	mappers := []Mapper{
		{T0: 0, T1: 10_000, Width: 100},
		{T0: 1_234_567, T1: 1_234_890.5, Width: 317},
		{T0: -50, T1: 3e12, Width: 1920},
	}
	for _, m := range mappers {
		for p := 0.0; p < m.Width; p += 0.5 {
			got := m.TimeToPixel(m.PixelToTime(p))
			if math.Abs(got-p) > 1 {
				t.Fatalf("round trip of %v on %+v = %v", p, m, got)
			}
		}
	}
}

func TestMapper_ZoomKeepsAnchorFixed(t *testing.T) {
	lim := Limits{Start: 0, End: 1_000_000, MinSpan: 10}
	m := Mapper{T0: 200_000, T1: 600_000, Width: 800}

	tests := []struct {
		name   string
		factor float64
		anchor float64
	}{
		{"zoom in at center", 1.1, 400},
		{"zoom in near left", 2, 37},
		{"zoom out near right", 0.9, 700},
		{"strong zoom in", 50, 123.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := m.PixelToTime(tt.anchor)
			z := m.Zoom(tt.factor, tt.anchor, lim)
			if got := z.TimeToPixel(ta); math.Abs(got-tt.anchor) > eps {
				t.Fatalf("TimeToPixel(t_a) after zoom = %v, want %v", got, tt.anchor)
			}
			if want := m.Span() / tt.factor; math.Abs(z.Span()-want) > eps {
				t.Fatalf("Span = %v, want %v", z.Span(), want)
			}
		})
	}
}

func TestMapper_ZoomClampsSpan(t *testing.T) {
	lim := Limits{Start: 0, End: 1000, MinSpan: 100}
	m := Fit(lim, 100)

	out := m.Zoom(0.5, 50, lim)
	if out.T0 != 0 || out.T1 != 1000 {
		t.Fatalf("zoom out past full = [%v,%v], want [0,1000]", out.T0, out.T1)
	}

	in := m
	for i := 0; i < 100; i++ {
		in = in.Zoom(2, 50, lim)
	}
	if math.Abs(in.Span()-100) > eps {
		t.Fatalf("Span after deep zoom = %v, want 100", in.Span())
	}
	if in.T0 < lim.Start || in.T1 > lim.End {
		t.Fatalf("range [%v,%v] escaped limits", in.T0, in.T1)
	}
}

func TestMapper_MinSpanLargerThanTrace(t *testing.T) {
	lim := Limits{Start: 0, End: 50, MinSpan: 100}
	m := Fit(lim, 10).Zoom(4, 5, lim)
	if m.T0 != 0 || m.T1 != 50 {
		t.Fatalf("range = [%v,%v], want [0,50]", m.T0, m.T1)
	}
}

func TestMapper_PanClampsAtEdges(t *testing.T) {
	lim := Limits{Start: 0, End: 1000}
	m := Mapper{T0: 100, T1: 300, Width: 50}

	tests := []struct {
		dt     float64
		t0, t1 float64
	}{
		{50, 150, 350},
		{-500, 0, 200},
		{5000, 800, 1000},
	}
	for _, tt := range tests {
		got := m.Pan(tt.dt, lim)
		if got.T0 != tt.t0 || got.T1 != tt.t1 {
			t.Fatalf("Pan(%v) = [%v,%v], want [%v,%v]", tt.dt, got.T0, got.T1, tt.t0, tt.t1)
		}
	}
}

func TestMapper_SetRange(t *testing.T) {
	lim := Limits{Start: 0, End: 10_000, MinSpan: 100}
	m := Fit(lim, 200)

	got := m.SetRange(1000, 5000, lim)
	if got.T0 != 1000 || got.T1 != 5000 {
		t.Fatalf("SetRange = [%v,%v], want [1000,5000]", got.T0, got.T1)
	}

	got = m.SetRange(5000, 5010, lim)
	if got.T0 != 4955 || got.T1 != 5055 {
		t.Fatalf("narrow SetRange = [%v,%v], want [4955,5055]", got.T0, got.T1)
	}

	got = m.SetRange(9000, 12_000, lim)
	if got.T1 != 10_000 || got.Span() != 3000 {
		t.Fatalf("SetRange past end = [%v,%v], want span 3000 ending at 10000", got.T0, got.T1)
	}
}

func TestMapper_DegenerateWidth(t *testing.T) {
	m := Mapper{T0: 10, T1: 20}
	if got := m.PixelToTime(5); got != 10 {
		t.Fatalf("PixelToTime with zero width = %v, want 10", got)
	}
	if got := m.Zoom(2, 0, Limits{Start: 0, End: 100}); got != m {
		t.Fatalf("Zoom with zero width = %+v, want unchanged", got)
	}
}

// epochStart is a Unix-epoch nanosecond timestamp, past float64's exact
// integer range.
const epochStart int64 = 1_700_000_000_000_000_000

func TestMapper_EpochTimestamps(t *testing.T) {
	b := trace.Bounds{Start: epochStart, End: epochStart + 1_000_000}
	lim := LimitsFor(b, 100)
	m := Fit(lim, 100)

	for p := 0.0; p < m.Width; p += 0.5 {
		if got := m.TimeToPixel(m.PixelToTime(p)); math.Abs(got-p) > eps {
			t.Fatalf("round trip of %v = %v", p, got)
		}
	}
	if got := m.PixelOf(epochStart + 500_000); math.Abs(got-50) > eps {
		t.Fatalf("PixelOf(mid) = %v, want 50", got)
	}

	ta := m.PixelToTime(37)
	z := m
	for i := 0; i < 200; i++ {
		z = z.Zoom(1.1, 37, lim)
	}
	if math.Abs(z.Span()-100) > eps {
		t.Fatalf("Span after deep zoom = %v, want 100", z.Span())
	}
	if got := z.TimeToPixel(ta); math.Abs(got-37) > 1e-3 {
		t.Fatalf("anchor moved to %v, want 37", got)
	}

	// Neighbouring units stay distinct at the deepest zoom.
	p0 := z.PixelOf(epochStart + 370_000)
	p1 := z.PixelOf(epochStart + 370_001)
	if math.Abs(p1-p0-1) > eps {
		t.Fatalf("one unit = %v px, want 1", p1-p0)
	}

	lo, hi := z.Window()
	if lo < epochStart || hi > b.End || hi-lo < 100 || hi-lo > 102 {
		t.Fatalf("Window = [%d,%d], want a 100 unit range inside the trace", lo, hi)
	}
}
