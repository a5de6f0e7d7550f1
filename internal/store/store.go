// Package store holds the current engine.Snapshot.
//
// Readers call Snapshot without locking and always see one complete snapshot.
// Commit and Reset build the next snapshot in full and publish it with a single
// atomic pointer swap; they are serialized with a mutex so two commits never
// interleave.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/scopezero/scopezero/internal/engine"
)

// initialVersion stamps the default dataset at construction.
const initialVersion = 1

// Store is the process-wide state container.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[engine.Snapshot]
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for version stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store holding the default dataset at version 1.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	snap := engine.DefaultSnapshot(initialVersion)
	s.current.Store(&snap)
	return s
}

// Snapshot returns the current snapshot. The returned value shares its slices
// with the store and must not be modified.
func (s *Store) Snapshot() engine.Snapshot {
	return *s.current.Load()
}

// Commit appends records to the record set, recomputes every summary, and
// publishes the result. Committing no records changes nothing and returns the
// current snapshot with false.
func (s *Store) Commit(records []engine.ActivityRecord) (engine.Snapshot, bool) {
	if len(records) == 0 {
		return s.Snapshot(), false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	all := make([]engine.ActivityRecord, 0, len(prev.Records)+len(records))
	all = append(all, prev.Records...)
	all = append(all, records...)

	next := engine.Build(all, engine.Aggregate(all), s.nextVersion(prev.Version))
	next.Commits = prev.Commits + 1
	s.current.Store(&next)
	return next, true
}

// Reset publishes the default dataset stamped with the current time.
func (s *Store) Reset() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := engine.DefaultSnapshot(s.nextVersion(s.current.Load().Version))
	s.current.Store(&next)
	return next
}

// nextVersion returns the current unix millisecond time, forced past prev.
func (s *Store) nextVersion(prev int64) int64 {
	return max(s.now().UnixMilli(), prev+1)
}
