package app

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/lanes/internal/config"
)

func TestGeometryAndSettingsFromConfig(t *testing.T) {
	tl := config.DefaultTimeline()
	tl.LabelWidth = 30
	tl.LaneSpacing = 0
	tl.MinRange = 1000
	tl.ZoomStep = 1.25

	g := Geometry(tl)
	if g.LabelWidth != 30 || g.LaneSpacing != 0 || g.MiniHeight != tl.MiniHeight || g.HeaderHeight != 1 {
		t.Fatalf("Geometry = %+v", g)
	}
	s := Settings(tl)
	if s.MinSpan != 1000 || s.ZoomStep != 1.25 || s.MinEventWidth != tl.MinEventWidth || s.DragThreshold != tl.DragThreshold {
		t.Fatalf("Settings = %+v", s)
	}
	if s.TickSpacing <= 0 || s.ScrollRows <= 0 {
		t.Fatalf("Settings lost engine defaults: %+v", s)
	}
}

func TestResolveSource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{" https://example.com/t.json ", "https://example.com/t.json"},
		{"~/traces/a.json", filepath.Join(home, "traces", "a.json")},
	}
	for _, tc := range cases {
		if got := ResolveSource(tc.in); got != tc.want {
			t.Fatalf("ResolveSource(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := ResolveSource("rel.json"); !filepath.IsAbs(got) {
		t.Fatalf("ResolveSource(rel.json) = %q, want absolute", got)
	}
}

func TestSetupLogging(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}()

	path := filepath.Join(t.TempDir(), "state", "lanes.log")
	closeLog, err := setupLogging(path)
	if err != nil {
		t.Fatalf("setupLogging returned error: %v", err)
	}
	log.Printf("hello from test")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Fatalf("log file = %q, want the message", string(data))
	}

	closeLog, err = setupLogging("")
	if err != nil {
		t.Fatalf("setupLogging(\"\") returned error: %v", err)
	}
	closeLog()
}
