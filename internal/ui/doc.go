// Package ui provides the terminal interface for lanes.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. All timeline state (the loaded trace, its
// mipmap index, the visible range, scroll, selection and collapse flags)
// lives in an engine.Model. This package translates terminal messages into
// engine inputs and draws each engine.Frame as text.
//
// # Screen Layout
//
//	row 0         status bar: source, event counts, visible range
//	rows 1..H-4   timeline canvas (one cell is one pixel)
//	rows H-3..H-2 details for the selected or hovered event
//	row H-1       key hints or the search prompt
//
// # Package Structure
//
//   - app.go: Model, message handling, async loads and the Run function
//   - mouse.go: mouse message translation and double-click detection
//   - timeline.go, canvas.go: cell-grid rendering of a frame
//   - palette.go: event colors by kind or by label
//   - search.go: label search with glob patterns
//   - status.go: status bar, details panel and footer
//   - keys.go, help.go: key bindings and the help overlay
//   - theme.go, style_helpers.go: themes and background-safe styling
//
// # Loading
//
// Loads run as tea.Cmds. Each carries the engine generation current when it
// started; the engine drops results from older generations, so a reload
// started while another is in flight always wins.
//
// # Key Bindings
//
//   - h/l or arrows: Pan
//   - +/-: Zoom around the center, 0: zoom to fit
//   - j/k, pgup/pgdown: Scroll threads
//   - c/C: Collapse/expand all threads
//   - /: Search labels, n/N: next/previous match
//   - m: Color by kind or label, T: cycle theme
//   - r: Reload, ?: help, q or Ctrl+C: quit
package ui
