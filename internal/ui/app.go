package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lanes/internal/engine"
	"github.com/five82/lanes/internal/loader"
	"github.com/five82/lanes/internal/prefs"
	"github.com/five82/lanes/internal/state"
)

// keyZoomFactor is the zoom applied by one +/- key press.
const keyZoomFactor = 1.5

// keyPanFraction is the share of the visible range one h/l press moves.
const keyPanFraction = 0.1

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    string
	Loader    *loader.Loader
	Store     *state.Store
	Geometry  engine.Geometry
	Settings  engine.Settings
	PollTick  time.Duration
	ThemeName string
	ColorMode string
	PrefsPath string
}

// Model is the root application state for Bubble Tea. All timeline state
// lives in the engine model; this type adds terminal concerns.
type Model struct {
	// Configuration
	ctx       context.Context
	loader    *loader.Loader
	store     *state.Store
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme     Theme
	colorMode string
	palette   *palette
	keys      keyMap
	mouse     *pointer
	search    searchState
	width     int
	height    int
	ready     bool
	showHelp  bool
	notice    string

	// Data state
	engine      engine.Model
	loaded      *loader.Result
	snapshot    state.Snapshot
	seenChanges uint64
}

// New creates a new Bubble Tea model. A non-empty Source starts loading as
// soon as the program initializes.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ld := opts.Loader
	if ld == nil {
		ld = loader.New("")
	}

	colorMode := opts.ColorMode
	if colorMode != prefs.ColorByLabel {
		colorMode = prefs.ColorByKind
	}

	g := opts.Geometry
	if g == (engine.Geometry{}) {
		g = engine.DefaultGeometry()
	}

	m := Model{
		ctx:       ctx,
		loader:    ld,
		store:     opts.Store,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		theme:     GetTheme(themeName),
		colorMode: colorMode,
		keys:      DefaultKeyMap(),
		mouse:     &pointer{},
		search:    newSearchState(),
		engine:    engine.New(g, opts.Settings),
	}
	if opts.Source != "" {
		m.engine = engine.Update(m.engine, engine.LoadStarted{Source: opts.Source})
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.engine.Loading() {
		cmds = append(cmds, m.loadCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		if in := m.mouse.translate(msg, StatusRows, time.Now()); in != nil {
			m.engine = engine.Update(m.engine, in)
		}
		return m, nil

	case tea.BlurMsg:
		m.mouse.reset()
		m.engine = engine.Update(m.engine, engine.FocusLost{})
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.engine = engine.Update(m.engine, engine.ViewportResized{
			Width:  msg.Width,
			Height: canvasHeight(msg.Height),
		})
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg), nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	f := m.engine.Frame()
	sections := []string{m.renderStatus(f)}
	if h := canvasHeight(m.height); h > 0 {
		sections = append(sections, m.renderTimeline(f, m.width, h))
	}
	sections = append(sections, m.renderDetails(f), m.renderFooter())
	return joinScreen(sections...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.search.active {
		return m.handleSearchInput(msg)
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.refreshPalette()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ColorMode):
		m.colorMode = prefs.NextColorMode(m.colorMode)
		m.refreshPalette()
		m.savePrefs()
		m.notice = "color by " + m.colorMode
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.engine.Source() == "" {
			return m, nil
		}
		return m.startLoad(m.engine.Source())

	case key.Matches(msg, m.keys.Search):
		m.search.active = true
		m.search.input.SetValue("")
		cmd := m.search.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.search.query != "" {
			m.search.clear()
			return m, nil
		}
		m.engine = engine.Update(m.engine, engine.ClearSelection{})
		return m, nil
	}

	if !m.engine.Ready() {
		return m, nil
	}

	var in engine.Input
	switch {
	case key.Matches(msg, m.keys.PanLeft):
		in = engine.PanBy{Fraction: -keyPanFraction}
	case key.Matches(msg, m.keys.PanRight):
		in = engine.PanBy{Fraction: keyPanFraction}
	case key.Matches(msg, m.keys.ZoomIn):
		in = engine.ZoomBy{Factor: keyZoomFactor}
	case key.Matches(msg, m.keys.ZoomOut):
		in = engine.ZoomBy{Factor: 1 / keyZoomFactor}
	case key.Matches(msg, m.keys.ScrollUp):
		in = engine.ScrollBy{Rows: -1}
	case key.Matches(msg, m.keys.ScrollDown):
		in = engine.ScrollBy{Rows: 1}
	case key.Matches(msg, m.keys.PageUp):
		in = engine.ScrollBy{Rows: -m.pageRows()}
	case key.Matches(msg, m.keys.PageDown):
		in = engine.ScrollBy{Rows: m.pageRows()}
	case key.Matches(msg, m.keys.Reset):
		in = engine.ResetView{}
	case key.Matches(msg, m.keys.CollapseAll):
		in = engine.CollapseAll{}
	case key.Matches(msg, m.keys.ExpandAll):
		in = engine.ExpandAll{}
	case key.Matches(msg, m.keys.NextMatch):
		m.findNext(false)
		return m, nil
	case key.Matches(msg, m.keys.PrevMatch):
		m.findNext(true)
		return m, nil
	}
	if in != nil {
		m.engine = engine.Update(m.engine, in)
	}
	return m, nil
}

// handleSearchInput handles keyboard input while the search prompt is open.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := m.search.input.Value()
		m.search.active = false
		m.search.input.Blur()
		if query == "" {
			m.search.clear()
			return m, nil
		}
		if err := m.search.set(query); err != nil {
			m.search.status = "invalid pattern"
			return m, nil
		}
		m.findNext(false)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.search.active = false
		m.search.input.Blur()
		m.search.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}

// findNext reveals the next event whose label matches the search.
func (m *Model) findNext(backward bool) {
	if m.search.pattern == nil {
		m.search.status = "no search"
		return
	}
	ref, ok := m.search.next(m.engine.Store(), m.engine.View().Selected, backward)
	if !ok {
		m.search.status = fmt.Sprintf("no match for %q", m.search.query)
		return
	}
	m.search.status = ""
	m.engine = engine.Update(m.engine, engine.RevealEvent{Ref: ref})
}

func (m Model) pageRows() int {
	lh := max(m.engine.Geometry.LaneHeight, 1)
	return max(m.engine.View().Height/lh-1, 1)
}

// startLoad begins loading source, superseding any load in flight.
func (m Model) startLoad(source string) (tea.Model, tea.Cmd) {
	m.engine = engine.Update(m.engine, engine.LoadStarted{Source: source})
	return m, m.loadCmd()
}

// handleLoaded installs a finished load. Results for superseded generations
// are dropped by the engine.
func (m Model) handleLoaded(msg loadedMsg) Model {
	in := engine.TraceLoaded{Err: msg.err, Generation: msg.generation}
	if msg.result != nil {
		in.Doc = engine.Document{Store: msg.result.Store, Index: msg.result.Index}
	}
	before := m.engine.Store()
	m.engine = engine.Update(m.engine, in)

	if msg.generation != m.engine.Generation() {
		log.Printf("discarded stale load of %s (generation %d)", msg.source, msg.generation)
		return m
	}
	if msg.err != nil {
		log.Printf("load failed: %v", msg.err)
		m.loaded = nil
		m.palette = nil
		return m
	}
	if store := m.engine.Store(); store != nil && store != before {
		m.loaded = msg.result
		m.refreshPalette()
		if m.search.pattern != nil {
			_ = m.search.set(m.search.query)
		}
		log.Printf("loaded %s: %d events, %d threads in %s",
			msg.source, store.EventCount(), len(store.Threads()), msg.result.Elapsed)
	}
	return m
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleSnapshot reloads the trace when the watcher has seen a new change.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	if snap.Changes <= m.seenChanges || snap.Source == "" || snap.Source != m.engine.Source() {
		return m, nil
	}
	m.seenChanges = snap.Changes
	log.Printf("source changed (%d changes), reloading %s", snap.Changes, snap.Source)
	return m.startLoad(snap.Source)
}

func (m *Model) refreshPalette() {
	store := m.engine.Store()
	if store == nil {
		m.palette = nil
		return
	}
	m.palette = newPalette(store, m.theme, m.colorMode)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ColorMode: m.colorMode}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type loadedMsg struct {
	source     string
	generation uint64
	result     *loader.Result
	err        error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// loadCmd loads the engine's current source off the UI goroutine, tagged
// with the generation that must still be current when it lands.
func (m Model) loadCmd() tea.Cmd {
	ctx, ld := m.ctx, m.loader
	source, gen := m.engine.Source(), m.engine.Generation()
	return func() tea.Msg {
		res, err := ld.Load(ctx, source)
		return loadedMsg{source: source, generation: gen, result: res, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
