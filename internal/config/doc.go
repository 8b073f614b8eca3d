// Package config handles loading and parsing the lanes configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lanes/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or not positive, use defaults
//
// # TOML Format
//
//	log_file     = "~/.local/state/lanes/lanes.log"  # "" disables logging
//	watch        = true                               # reload on change
//	poll_seconds = 2                                  # stat fallback interval
//
//	[timeline]
//	zoom_step       = 1.1   # wheel zoom factor per notch
//	min_range       = 100   # narrowest visible range, trace units
//	min_event_width = 5     # pixels below which events are culled
//	drag_threshold  = 3     # pixels before a press becomes a drag
//	label_width     = 24    # thread name column, cells
//	mini_height     = 3     # overview strip rows
//	lane_height     = 1     # rows per depth
//	lane_spacing    = 1     # rows between threads, 0 allowed
//
// # Path Expansion
//
// Absolute paths are used as-is, a leading ~ expands to the home directory
// and relative paths resolve against the working directory.
package config
