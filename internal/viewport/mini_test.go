package viewport

import (
	"testing"

	"github.com/five82/lanes/internal/trace"
)

func newMini() (Mini, Limits) {
	b := trace.Bounds{Start: 0, End: 10_000}
	return Mini{Bounds: b, Width: 100}, LimitsFor(b, 10)
}

func TestMini_DragToZoom(t *testing.T) {
	mini, lim := newMini()
	st := NewState(lim, 400, 20)

	st = mini.BeginSelection(st, 10)
	st = mini.DragSelection(st, 30)
	st = mini.DragSelection(st, 50)
	if st.Selection == nil || st.Selection.Start != 10 || st.Selection.Current != 50 {
		t.Fatalf("Selection = %+v, want {10 50}", st.Selection)
	}

	st = mini.EndSelection(st, 3, lim)
	if st.Mapper.T0 != 1000 || st.Mapper.T1 != 5000 {
		t.Fatalf("detail range = [%v,%v], want [1000,5000]", st.Mapper.T0, st.Mapper.T1)
	}
	if st.Selection != nil {
		t.Fatalf("Selection = %+v, want nil after release", st.Selection)
	}
}

func TestMini_ReverseDragUsesMinMax(t *testing.T) {
	mini, lim := newMini()
	st := NewState(lim, 400, 20)
	st = mini.BeginSelection(st, 50)
	st = mini.DragSelection(st, 10)
	st = mini.EndSelection(st, 3, lim)
	if st.Mapper.T0 != 1000 || st.Mapper.T1 != 5000 {
		t.Fatalf("detail range = [%v,%v], want [1000,5000]", st.Mapper.T0, st.Mapper.T1)
	}
}

func TestMini_DegenerateDragIsNoop(t *testing.T) {
	mini, lim := newMini()
	st := NewState(lim, 400, 20)
	before := st.Mapper

	st = mini.BeginSelection(st, 40)
	st = mini.DragSelection(st, 42)
	st = mini.EndSelection(st, 3, lim)
	if st.Mapper != before {
		t.Fatalf("Mapper = %+v, want unchanged %+v", st.Mapper, before)
	}
	if st.Selection != nil {
		t.Fatalf("Selection = %+v, want nil", st.Selection)
	}
}

func TestMini_ClickRecentersKeepingZoom(t *testing.T) {
	mini, lim := newMini()
	detail := Mapper{T0: 1000, T1: 3000, Width: 400}

	got := mini.Jump(detail, 50, lim)
	if got.T0 != 4000 || got.T1 != 6000 {
		t.Fatalf("Jump(50) = [%v,%v], want [4000,6000]", got.T0, got.T1)
	}
	got = mini.Jump(detail, 2, lim)
	if got.T0 != 0 || got.T1 != 2000 {
		t.Fatalf("Jump(2) = [%v,%v], want clamped [0,2000]", got.T0, got.T1)
	}
}

func TestMini_IndicatorClamped(t *testing.T) {
	mini, _ := newMini()
	tests := []struct {
		detail Mapper
		x0, x1 float64
	}{
		{Mapper{T0: 2500, T1: 5000, Width: 10}, 25, 50},
		{Mapper{T0: -1000, T1: 2000, Width: 10}, 0, 20},
		{Mapper{T0: 9000, T1: 12_000, Width: 10}, 90, 100},
	}
	for _, tt := range tests {
		x0, x1 := mini.Indicator(tt.detail)
		if x0 != tt.x0 || x1 != tt.x1 {
			t.Fatalf("Indicator(%+v) = %v,%v, want %v,%v", tt.detail, x0, x1, tt.x0, tt.x1)
		}
	}
}

func TestMini_CancelSelection(t *testing.T) {
	mini, lim := newMini()
	st := mini.BeginSelection(NewState(lim, 100, 10), 20)
	st = CancelSelection(st)
	if st.Selection != nil {
		t.Fatalf("Selection = %+v, want nil", st.Selection)
	}
	// Dragging without an active selection does nothing.
	if got := mini.DragSelection(st, 60); got.Selection != nil {
		t.Fatalf("DragSelection without begin = %+v, want nil", got.Selection)
	}
}
