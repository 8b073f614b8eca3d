package app

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/lanes/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
	debounceDelay       = 250 * time.Millisecond
)

// fingerprint identifies one version of the source file.
type fingerprint struct {
	modified time.Time
	size     int64
}

func (f fingerprint) equal(o fingerprint) bool {
	return f.size == o.size && f.modified.Equal(o.modified)
}

func statSource(path string) (fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fingerprint{}, err
	}
	return fingerprint{modified: info.ModTime(), size: info.Size()}, nil
}

// watcher reports modifications of one local trace file to a state.Store.
// All fields are owned by the run goroutine.
type watcher struct {
	path     string
	store    *state.Store
	interval time.Duration
	fs       *fsnotify.Watcher

	last     fingerprint
	have     bool
	failures int
}

// StartWatcher launches a background goroutine that records changes to path
// in store. Filesystem notifications are used when available; a stat poll
// runs regardless and backs off while the file is unreadable. It returns
// immediately.
func StartWatcher(ctx context.Context, store *state.Store, path string, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	w := &watcher{path: abs, store: store, interval: interval}
	w.prime()

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("fsnotify unavailable, polling %s: %v", abs, err)
	} else if err := fs.Add(filepath.Dir(abs)); err != nil {
		log.Printf("watch %s failed, polling instead: %v", filepath.Dir(abs), err)
		_ = fs.Close()
	} else {
		w.fs = fs
	}

	go w.run(ctx)
}

// prime records the current version without reporting it as a change.
func (w *watcher) prime() {
	fp, err := statSource(w.path)
	if err != nil {
		return
	}
	w.last, w.have = fp, true
}

func (w *watcher) run(ctx context.Context) {
	var (
		events   <-chan fsnotify.Event
		errs     <-chan error
		debounce <-chan time.Time
	)
	if w.fs != nil {
		defer func() { _ = w.fs.Close() }()
		events, errs = w.fs.Events, w.fs.Errors
	}

	poll := time.NewTimer(w.interval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if w.relevant(ev) {
				debounce = time.After(debounceDelay)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("watcher error: %v", err)
		case <-debounce:
			debounce = nil
			w.check("fsnotify")
		case <-poll.C:
			w.check("poll")
			poll.Reset(calculateBackoff(w.failures, w.interval))
		}
	}
}

// relevant reports whether ev may have changed the watched file.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

// check stats the file and records a change when its fingerprint moved.
func (w *watcher) check(via string) {
	fp, err := statSource(w.path)
	if err != nil {
		w.failures++
		w.store.Update(nil, err)
		if w.failures == 1 {
			log.Printf("source check failed: %v", err)
		}
		return
	}
	w.failures = 0
	if w.have && fp.equal(w.last) {
		w.store.Update(nil, nil)
		return
	}
	w.last, w.have = fp, true
	w.store.Update(&state.Change{Modified: fp.modified, Size: fp.size, Via: via}, nil)
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
