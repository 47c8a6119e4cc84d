package mockql

import (
	"sync"
	"sync/atomic"
	"time"
)

// Store holds the current Snapshot. Current never blocks; Publish replaces
// the snapshot wholesale so readers see either the old or the new one.
//
// Example:
//
//	store := mockql.NewStore(initial)
//	snap := store.Current()
//	body, ok := snap.Lookup("/users")
type Store struct {
	mu      sync.Mutex // serializes version assignment
	current atomic.Pointer[Snapshot]
	version uint64
	now     func() time.Time
}

// NewStore creates a Store and publishes initial as version 1.
func NewStore(initial *Snapshot) *Store {
	s := &Store{now: time.Now}
	s.Publish(initial)
	return s
}

// Current returns the latest published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish stamps next with the next version and makes it current. next
// itself is left untouched; the published copy is returned.
func (s *Store) Publish(next *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	published := *next
	published.version = s.version
	published.publishedAt = s.now()
	s.current.Store(&published)
	return &published
}
