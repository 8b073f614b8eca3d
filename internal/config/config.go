package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Timeline tunes navigation and canvas geometry.
type Timeline struct {
	ZoomStep      float64
	MinRange      float64
	MinEventWidth float64
	DragThreshold float64
	LabelWidth    int
	MiniHeight    int
	LaneHeight    int
	LaneSpacing   int
}

// Config captures the settings lanes reads at startup.
type Config struct {
	LogFile      string // empty disables logging
	Watch        bool
	PollInterval time.Duration
	Timeline     Timeline
}

const (
	defaultConfigPath   = "~/.config/lanes/config.toml"
	defaultLogFile      = "~/.local/state/lanes/lanes.log"
	defaultPollInterval = 2 * time.Second
)

// DefaultTimeline returns the stock timeline tuning.
func DefaultTimeline() Timeline {
	return Timeline{
		ZoomStep:      1.1,
		MinRange:      100,
		MinEventWidth: 5,
		DragThreshold: 3,
		LabelWidth:    24,
		MiniHeight:    3,
		LaneHeight:    1,
		LaneSpacing:   1,
	}
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogFile:      mustExpand(defaultLogFile),
		Watch:        true,
		PollInterval: defaultPollInterval,
		Timeline:     DefaultTimeline(),
	}
}

type rawTimeline struct {
	ZoomStep      float64 `toml:"zoom_step"`
	MinRange      float64 `toml:"min_range"`
	MinEventWidth float64 `toml:"min_event_width"`
	DragThreshold float64 `toml:"drag_threshold"`
	LabelWidth    int     `toml:"label_width"`
	MiniHeight    int     `toml:"mini_height"`
	LaneHeight    int     `toml:"lane_height"`
	LaneSpacing   *int    `toml:"lane_spacing"`
}

type rawConfig struct {
	LogFile     *string     `toml:"log_file"`
	Watch       *bool       `toml:"watch"`
	PollSeconds float64     `toml:"poll_seconds"`
	Timeline    rawTimeline `toml:"timeline"`
}

// Load locates and parses the lanes config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.LogFile != nil {
		cfg.LogFile = ""
		if trimmed := strings.TrimSpace(*raw.LogFile); trimmed != "" {
			cfg.LogFile = mustExpand(trimmed)
		}
	}
	if raw.Watch != nil {
		cfg.Watch = *raw.Watch
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds * float64(time.Second))
	}
	cfg.Timeline = raw.Timeline.merge(cfg.Timeline)
	return cfg, nil
}

// merge overlays positive values onto defaults.
func (r rawTimeline) merge(t Timeline) Timeline {
	if r.ZoomStep > 1 {
		t.ZoomStep = r.ZoomStep
	}
	if r.MinRange > 0 {
		t.MinRange = r.MinRange
	}
	if r.MinEventWidth > 0 {
		t.MinEventWidth = r.MinEventWidth
	}
	if r.DragThreshold > 0 {
		t.DragThreshold = r.DragThreshold
	}
	if r.LabelWidth > 0 {
		t.LabelWidth = r.LabelWidth
	}
	if r.MiniHeight > 0 {
		t.MiniHeight = r.MiniHeight
	}
	if r.LaneHeight > 0 {
		t.LaneHeight = r.LaneHeight
	}
	if r.LaneSpacing != nil && *r.LaneSpacing >= 0 {
		t.LaneSpacing = *r.LaneSpacing
	}
	return t
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
