// Package viewport implements navigation over a loaded trace: the time to
// pixel mapping of the detail view, the fixed mapping of the mini timeline,
// vertical row layout, hit-testing and the visible-event query.
//
// # Coordinates
//
// The detail view shows the half-open time range [T0, T1) across Width
// pixels. Zooming keeps the time under the pointer at the same pixel; every
// result is clamped so the range stays inside the trace bounds and is never
// narrower than the configured minimum span. Requests that would leave those
// limits are corrected, never rejected.
//
// # Rows
//
// Threads are stacked top to bottom in load order. Each thread gets one row
// per depth, or a single row when collapsed, followed by a spacing gap.
// Layout turns a content-space y into (thread, depth).
//
// # Hit-testing
//
// An event owns [start, start+duration). When two siblings touch, a point on
// the shared boundary selects the later one. Events narrower than the draw
// cutoff are neither drawn nor hit.
//
// # Mini timeline
//
// Mini always maps the full trace onto its own width. A left click re-centers
// the detail range, and a right-drag selects a range to zoom to on release.
// Drags shorter than the threshold are ignored.
package viewport
