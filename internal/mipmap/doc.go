// Package mipmap buckets each thread's events by duration class so that
// levels whose events are narrower than a pixel can be skipped wholesale
// while panning and zooming.
//
// Level L holds events with 2^L <= duration < 2^(L+1); zero-length events
// join level 0. Each level also carries merged shadow intervals for itself
// and every level below it, which the renderer draws as thin markers where
// whole levels were culled.
package mipmap
