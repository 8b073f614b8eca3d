package ui

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/lanes/internal/prefs"
	"github.com/five82/lanes/internal/trace"
)

func kindStore(t *testing.T) (*trace.Store, *trace.Symbols) {
	t.Helper()
	syms := trace.NewSymbols()
	gc := syms.Intern("gc")
	io := syms.Intern("io")
	alloc := syms.Intern("alloc")
	store := trace.Build([]trace.RawEvent{
		{ThreadID: 1, Start: 0, Duration: 10, Label: alloc, Kind: io},
		{ThreadID: 1, Start: 10, Duration: 10, Label: alloc, Kind: gc},
		{ThreadID: 1, Start: 20, Duration: 10, Label: syms.Intern("flush"), Kind: io},
	}, syms)
	return store, syms
}

func TestPalette_KindHuesEvenlySpaced(t *testing.T) {
	store, syms := kindStore(t)
	th := GetTheme("Nightfox")
	p := newPalette(store, th, prefs.ColorByKind)

	gc := p.color(0, syms.Intern("gc"))
	io := p.color(0, syms.Intern("io"))
	if want := colorful.Hsl(120, th.Saturation, th.Lightness).Hex(); gc != want {
		t.Fatalf("first kind color = %s, want %s", gc, want)
	}
	if want := colorful.Hsl(300, th.Saturation, th.Lightness).Hex(); io != want {
		t.Fatalf("second kind color = %s, want %s", io, want)
	}
}

func TestPalette_LabelModeIsStable(t *testing.T) {
	store, syms := kindStore(t)
	p := newPalette(store, GetTheme("Slate"), prefs.ColorByLabel)

	alloc := syms.Intern("alloc")
	a := p.color(alloc, syms.Intern("gc"))
	b := p.color(alloc, syms.Intern("io"))
	if a != b {
		t.Fatalf("same label colored %s and %s", a, b)
	}
	again := newPalette(store, GetTheme("Slate"), prefs.ColorByLabel).color(alloc, 0)
	if again != a {
		t.Fatalf("label color changed between palettes: %s vs %s", again, a)
	}
}

func TestHashHue_InRange(t *testing.T) {
	for _, s := range []string{"", "a", "render", "gc.mark"} {
		if h := hashHue(s); h < 0 || h >= 360 {
			t.Fatalf("hashHue(%q) = %v, want [0, 360)", s, h)
		}
	}
}

func TestHighlight(t *testing.T) {
	if got := highlight("not a color"); got != "not a color" {
		t.Fatalf("highlight(invalid) = %q, want input unchanged", got)
	}
	if got := highlight("#000000"); got == "#000000" {
		t.Fatalf("highlight(black) did not lighten")
	}
}
