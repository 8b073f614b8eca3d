// Package engine is the pure update loop behind the timeline view.
//
// A Model holds the installed trace, its mipmap index and the navigation
// state. Update folds one Input into a Model and returns the next one; it
// never blocks and never touches the terminal, so the UI layer only maps
// terminal events to Inputs and draws the Frame.
//
// # Canvas
//
// The canvas is split into four areas:
//
//	+-------+------------------------+
//	|       | mini timeline          |
//	|       +------------------------+
//	|       | tick header            |
//	+-------+------------------------+
//	| names | detail rows            |
//	+-------+------------------------+
//
// Geometry sets the label column width and the strip heights. The mini
// timeline spans the detail column so both share the same x origin.
//
// # Loading
//
// Loads run outside the engine. LoadStarted bumps a generation counter and
// the result must come back as a TraceLoaded carrying that generation;
// anything older, or anything arriving after DocumentClosed, is dropped.
// A successful load replaces store and index together and resets the view
// to fit the whole trace.
//
// # Pointer routing
//
//   - Left press on the mini timeline re-centers the detail range there.
//   - Right drag on the mini timeline selects an interval to zoom to.
//   - Left press on a thread name toggles collapse.
//   - Left drag in the header or detail area pans.
//   - Left click in the detail area selects, or clears on empty space.
//   - Wheel zooms around the pointer; with ctrl or over the names it scrolls.
package engine
