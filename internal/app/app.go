package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lanes/internal/config"
	"github.com/five82/lanes/internal/engine"
	"github.com/five82/lanes/internal/loader"
	"github.com/five82/lanes/internal/prefs"
	"github.com/five82/lanes/internal/state"
	"github.com/five82/lanes/internal/ui"
)

// Options configure the lanes application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lanes/prefs.toml
	Source     string // trace file or URL; empty opens no trace
	Version    string
	NoWatch    bool
}

// Run boots the lanes TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	source := ResolveSource(opts.Source)
	store := &state.Store{}
	store.SetSource(source)

	if cfg.Watch && !opts.NoWatch && source != "" && !loader.IsRemote(source) {
		StartWatcher(ctx, store, source, cfg.PollInterval)
	}
	log.Printf("lanes %s starting, source %q", opts.Version, source)

	uiOpts := ui.Options{
		Context:   ctx,
		Source:    source,
		Loader:    loader.New(opts.Version),
		Store:     store,
		Geometry:  Geometry(cfg.Timeline),
		Settings:  Settings(cfg.Timeline),
		PollTick:  ui.DefaultUIInterval,
		ThemeName: userPrefs.Theme,
		ColorMode: userPrefs.ColorMode,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// ResolveSource trims source and makes local paths absolute so that the
// watcher and the loader agree on the name.
func ResolveSource(source string) string {
	source = strings.TrimSpace(source)
	if source == "" || loader.IsRemote(source) {
		return source
	}
	if expanded, err := config.ExpandPath(source); err == nil {
		return expanded
	}
	return source
}

// Geometry converts timeline config into engine canvas geometry.
func Geometry(t config.Timeline) engine.Geometry {
	g := engine.DefaultGeometry()
	g.LabelWidth = t.LabelWidth
	g.MiniHeight = t.MiniHeight
	g.LaneHeight = t.LaneHeight
	g.LaneSpacing = t.LaneSpacing
	return g
}

// Settings converts timeline config into engine navigation settings.
func Settings(t config.Timeline) engine.Settings {
	s := engine.DefaultSettings()
	s.ZoomStep = t.ZoomStep
	s.MinSpan = t.MinRange
	s.MinEventWidth = t.MinEventWidth
	s.DragThreshold = t.DragThreshold
	return s
}

// setupLogging sends the standard logger to path. The terminal belongs to
// the UI, so an empty path discards log output instead.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(path, "lanes")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
