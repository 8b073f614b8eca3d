package state

import (
	"fmt"
	"sync"
	"time"
)

// maxRecent bounds the change history kept for the status line.
const maxRecent = 8

// Change is one observed modification of the trace source.
type Change struct {
	Modified time.Time
	Size     int64
	Via      string // "fsnotify" or "poll"
}

// Snapshot represents the latest source state available to the UI.
type Snapshot struct {
	Source              string
	Changes             uint64 // increments on every observed modification
	LastChange          time.Time
	Recent              []Change
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed checks
}

// IsUnavailable returns true when the source has failed multiple checks.
func (s Snapshot) IsUnavailable() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetSource starts tracking a new source and resets all counters.
func (s *Store) SetSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{Source: source}
}

// Update records one check of the source. When err is non-nil the previous
// data is kept but the error is recorded for visibility. A nil change with a
// nil err is a successful check that saw no modification.
func (s *Store) Update(change *Change, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastChecked = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	if change == nil {
		return
	}
	s.snapshot.Changes++
	s.snapshot.LastChange = change.Modified
	s.snapshot.Recent = append(s.snapshot.Recent, *change)
	if n := len(s.snapshot.Recent); n > maxRecent {
		s.snapshot.Recent = cloneChanges(s.snapshot.Recent[n-maxRecent:])
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Recent = cloneChanges(s.snapshot.Recent)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneChanges(items []Change) []Change {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Change, len(items))
	copy(dup, items)
	return dup
}
