// Package state provides thread-safe tracking of the trace source for the
// lanes application.
//
// # Overview
//
// The watcher goroutine observes the trace file and records what it sees in a
// Store; the UI reads snapshots on its own tick and starts a reload whenever
// the Changes counter advances past the value it last loaded.
//
//	Producer (watcher):            Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ fsnotify/stat  │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  reload?        │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	store.Update(&change, nil) // modification seen: Changes++, error cleared
//	store.Update(nil, nil)     // check passed, nothing new
//	store.Update(nil, err)     // check failed: data kept, failures++
//
// After two consecutive failures the snapshot reports IsUnavailable, which
// the status bar shows while the last loaded trace stays on screen.
//
// # Defensive Copying
//
// Snapshot clones the change history and wraps the stored error so callers
// never share mutable state with the watcher.
//
// The zero Store is ready to use.
package state
