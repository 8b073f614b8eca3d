// Package trace holds the immutable in-memory form of a loaded trace.
//
// A Store is built once from RawEvent values produced by a loader. Build
// groups events by thread in first-seen order, sorts each thread by start
// time (stable, so ties keep load order) and records the global bounds that
// the mini timeline displays. Nothing mutates a Store after Build returns.
//
// Nesting is carried as a depth per event. Parent and child relationships
// are recovered by scanning neighbours in the start-ordered sequence, so
// events hold no links to each other and an EventRef is just a
// (thread id, index) pair that can be validated against any Store.
//
// Degenerate traces still produce a usable Store: an empty trace reports
// bounds [0, 1) and a trace of zero-length events is widened by one unit.
package trace
