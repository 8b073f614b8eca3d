// Package loader turns trace sources into an installed-ready store and
// mipmap index.
//
// # Sources
//
// Local paths are dispatched on extension and fall back to sniffing the
// content. HTTP(S) URLs are fetched with a 5-second timeout and sniffed.
//
//   - .json: Chrome Trace Event Format, array or {"traceEvents": [...]}.
//     X events and matched B/E pairs become spans; M thread_name events
//     name threads. Microseconds become nanoseconds rebased to the first span.
//   - .jsonl, .ndjson: one {"tid","thread","name","cat","ts","dur","depth"}
//     object per line in nanoseconds. Blank lines and # comments are skipped.
//   - .db, .sqlite: an events(thread_id, thread_name, start_ns, duration_ns,
//     depth, label, kind) table, opened read-only.
//
// A missing or negative depth asks the store to derive nesting.
//
// # Errors
//
// Every failure from Load is a *LoadError carrying the source; the cause is
// reachable with errors.Is and errors.As. Undetectable formats wrap
// ErrUnsupportedSource.
package loader
