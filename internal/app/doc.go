// Package app provides the orchestration layer for the lanes application.
//
// # Overview
//
// This package wires together configuration, preferences, source watching,
// state management, and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
//  1. Load ~/.config/lanes/config.toml (or defaults)
//  2. Route the standard logger to the configured log file
//  3. Load preferences (theme, color mode)
//  4. Create the shared state.Store that tracks the trace source
//  5. Start the file watcher for local sources when enabled
//  6. Start the TUI, which loads the trace, and block until exit
//
// # Components
//
//   - app.go: Run, config conversion and logging setup
//   - watcher.go: fsnotify watcher with a stat poll fallback
//
// # Data Flow
//
//	┌──────────────┐   Change    ┌─────────────┐  Snapshot  ┌──────────┐
//	│   watcher    │ ──────────> │ state.Store │ <───────── │  ui tick │
//	└──────────────┘             └─────────────┘            └────┬─────┘
//	                                                             │ reload
//	                                                             v
//	                                                      ┌──────────────┐
//	                                                      │ loader.Load  │
//	                                                      └──────────────┘
//
// # Watching
//
// The watcher observes the trace's parent directory so that editors and
// tools that replace the file by rename are still seen. Notifications are
// debounced. A stat poll runs alongside and doubles its interval per
// consecutive failure up to 30 seconds. Remote sources are never watched;
// press r in the UI to reload them.
package app
