package ui

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lanes/internal/loader"
	"github.com/five82/lanes/internal/mipmap"
	"github.com/five82/lanes/internal/state"
	"github.com/five82/lanes/internal/trace"
)

const testSource = "test.json"

func testResult(t *testing.T) *loader.Result {
	t.Helper()
	syms := trace.NewSymbols()
	store := trace.Build([]trace.RawEvent{
		{ThreadID: 1, ThreadName: "main", Start: 0, Duration: 1000, Label: syms.Intern("frame"), Kind: syms.Intern("ui")},
		{ThreadID: 1, Start: 100, Duration: 300, Depth: 1, Label: syms.Intern("layout"), Kind: syms.Intern("ui")},
		{ThreadID: 2, ThreadName: "io", Start: 200, Duration: 400, Label: syms.Intern("read"), Kind: syms.Intern("io")},
	}, syms)
	idx, err := mipmap.Build(context.Background(), store)
	if err != nil {
		t.Fatalf("mipmap.Build returned error: %v", err)
	}
	return &loader.Result{Source: testSource, Format: loader.FormatChrome, Store: store, Index: idx, Labels: syms}
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a 100x24 UI with the test trace installed.
func loadedModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Source = testSource
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	m := New(opts)
	if !m.engine.Loading() {
		t.Fatalf("New with a source is not loading")
	}
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m = step(m, loadedMsg{source: testSource, generation: m.engine.Generation(), result: testResult(t)})
	if !m.engine.Ready() {
		t.Fatalf("trace not installed: %v", m.engine.Err())
	}
	return m
}

func TestModel_WindowSizeSetsCanvas(t *testing.T) {
	m := loadedModel(t, Options{})
	w, h := m.engine.Size()
	if w != 100 || h != 20 {
		t.Fatalf("canvas = %dx%d, want 100x20", w, h)
	}
}

func TestModel_ViewShowsTrace(t *testing.T) {
	m := loadedModel(t, Options{})
	view := m.View()
	for _, want := range []string{"lanes", "main", "io", "frame", "3 events"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view is missing %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Fatalf("view has %d lines, want 24", lines)
	}
}

func TestModel_ViewShowsScrollbars(t *testing.T) {
	m := loadedModel(t, Options{})
	view := m.View()
	if !strings.Contains(view, "━") || !strings.Contains(view, "┃") {
		t.Fatalf("view is missing scrollbar thumbs")
	}

	// The horizontal bar is the last canvas row: status bar plus 19 rows.
	m = step(m, keyRunes("+"))
	zoomed := m.engine.View().Mapper
	m = step(m, tea.MouseMsg{X: 98, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(m, tea.MouseMsg{X: 98, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := m.engine.View().Mapper; math.Abs(got.T1-1000) > 1e-6 || math.Abs(got.Span()-zoomed.Span()) > 1e-6 {
		t.Fatalf("range after track press = [%v,%v], want span %v ending at 1000", got.T0, got.T1, zoomed.Span())
	}
}

func TestModel_StaleLoadIsDropped(t *testing.T) {
	m := loadedModel(t, Options{})
	first := m.engine.Store()
	stale := m.engine.Generation()

	next, cmd := m.Update(keyRunes("r"))
	m = next.(Model)
	if cmd == nil || !m.engine.Loading() {
		t.Fatalf("reload did not start a load")
	}

	m = step(m, loadedMsg{source: testSource, generation: stale, result: testResult(t)})
	if m.engine.Store() != first || !m.engine.Loading() {
		t.Fatalf("stale result replaced the trace")
	}

	fresh := testResult(t)
	m = step(m, loadedMsg{source: testSource, generation: m.engine.Generation(), result: fresh})
	if m.engine.Store() != fresh.Store || m.engine.Loading() {
		t.Fatalf("current result was not installed")
	}
	if m.loaded != fresh {
		t.Fatalf("loaded result not recorded")
	}
}

func TestModel_LoadErrorShown(t *testing.T) {
	m := New(Options{Source: testSource, PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	m = step(m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m = step(m, loadedMsg{source: testSource, generation: m.engine.Generation(), err: errors.New("boom")})
	if m.engine.Ready() || m.engine.Err() == nil {
		t.Fatalf("error load left ready=%v err=%v", m.engine.Ready(), m.engine.Err())
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("view does not show the load error")
	}
}

func TestModel_ClickSelectsAndEscClears(t *testing.T) {
	m := loadedModel(t, Options{})
	// Screen row 5 is the first detail row: status bar, mini (3), ruler (1).
	m = step(m, tea.MouseMsg{X: 34, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(m, tea.MouseMsg{X: 34, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	sel := m.engine.View().Selected
	if sel == nil || *sel != (trace.EventRef{Thread: 1, Index: 0}) {
		t.Fatalf("Selected = %v, want 1:0", sel)
	}
	if !strings.Contains(m.View(), "duration") {
		t.Fatalf("details panel missing for selection")
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.engine.View().Selected != nil {
		t.Fatalf("esc did not clear the selection")
	}
}

func TestModel_KeysNavigate(t *testing.T) {
	m := loadedModel(t, Options{})
	span := m.engine.View().Mapper.Span()

	m = step(m, keyRunes("+"))
	if got := m.engine.View().Mapper.Span(); got >= span {
		t.Fatalf("span after zoom in = %v, want < %v", got, span)
	}
	zoomed := m.engine.View().Mapper
	m = step(m, keyRunes("l"))
	if got := m.engine.View().Mapper.T0; got <= zoomed.T0 {
		t.Fatalf("T0 after pan right = %v, want > %v", got, zoomed.T0)
	}
	m = step(m, keyRunes("0"))
	if got := m.engine.View().Mapper.Span(); got != span {
		t.Fatalf("span after reset = %v, want %v", got, span)
	}

	m = step(m, keyRunes("c"))
	if !m.engine.View().IsCollapsed(1) || !m.engine.View().IsCollapsed(2) {
		t.Fatalf("c did not collapse all threads")
	}
	m = step(m, keyRunes("C"))
	if m.engine.View().IsCollapsed(1) {
		t.Fatalf("C did not expand threads")
	}
}

func TestModel_SearchRevealsMatches(t *testing.T) {
	m := loadedModel(t, Options{})
	m = step(m, keyRunes("/"))
	if !m.search.active {
		t.Fatalf("/ did not open the search prompt")
	}
	m = step(m, keyRunes("a"))
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.search.active {
		t.Fatalf("enter did not close the prompt")
	}

	want := []trace.EventRef{
		{Thread: 1, Index: 0}, // frame
		{Thread: 1, Index: 1}, // layout
		{Thread: 2, Index: 0}, // read
	}
	for i, ref := range want {
		if i > 0 {
			m = step(m, keyRunes("n"))
		}
		sel := m.engine.View().Selected
		if sel == nil || *sel != ref {
			t.Fatalf("match %d = %v, want %v", i, sel, ref)
		}
	}

	m = step(m, keyRunes("N"))
	if sel := m.engine.View().Selected; sel == nil || *sel != want[1] {
		t.Fatalf("previous match = %v, want %v", sel, want[1])
	}
}

func TestModel_SearchNoMatch(t *testing.T) {
	m := loadedModel(t, Options{})
	m = step(m, keyRunes("/"))
	for _, r := range "zzz" {
		m = step(m, keyRunes(string(r)))
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.engine.View().Selected != nil {
		t.Fatalf("search without matches selected %v", m.engine.View().Selected)
	}
	if !strings.Contains(m.search.status, "no match") {
		t.Fatalf("status = %q, want a no match notice", m.search.status)
	}
}

func TestModel_SnapshotChangeReloads(t *testing.T) {
	store := &state.Store{}
	store.SetSource(testSource)
	m := loadedModel(t, Options{Store: store})
	gen := m.engine.Generation()

	m = step(m, snapshotMsg(store.Snapshot()))
	if m.engine.Generation() != gen {
		t.Fatalf("unchanged snapshot started a reload")
	}

	store.Update(&state.Change{Modified: time.Now(), Size: 10, Via: "poll"}, nil)
	next, cmd := m.Update(snapshotMsg(store.Snapshot()))
	m = next.(Model)
	if cmd == nil || m.engine.Generation() != gen+1 || !m.engine.Loading() {
		t.Fatalf("change did not start a reload (generation %d, want %d)", m.engine.Generation(), gen+1)
	}

	m = step(m, snapshotMsg(store.Snapshot()))
	if m.engine.Generation() != gen+1 {
		t.Fatalf("same change reloaded twice")
	}
}

func TestModel_PrefsToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := loadedModel(t, Options{PrefsPath: path})

	m = step(m, keyRunes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	m = step(m, keyRunes("m"))
	if m.colorMode != "label" || m.palette == nil || m.palette.mode != "label" {
		t.Fatalf("color mode = %q, want label", m.colorMode)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := loadedModel(t, Options{})
	m = step(m, keyRunes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Zoom at pointer") {
		t.Fatalf("help overlay not shown")
	}
	m = step(m, keyRunes("q"))
	if m.showHelp {
		t.Fatalf("key did not close help")
	}
}
