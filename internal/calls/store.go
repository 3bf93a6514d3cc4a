package calls

import (
	"sync"
	"time"
)

// Store is the in-memory call record table. It is the single source of truth
// reconciling poll-driven and webhook-driven updates.
//
// Concurrency discipline: every write is a read-modify-write of the whole
// record under one mutex. Writers on different keys never interfere; writers
// on the same key are last-write-wins at the field level, except status,
// where ended is sticky (a slow poll response must not revert a concluded
// call).
//
// Records are volatile by design: this system does not persist call state
// across restarts. Growth is bounded by Sweep.
type Store struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewStore() *Store {
	return &Store{records: map[string]Record{}}
}

// Get returns a copy of the record, if present.
func (s *Store) Get(callID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[callID]
	return r, ok
}

// Put inserts or replaces a record wholesale. Intended for initiation, where
// no prior record can exist for the provider-assigned id.
func (s *Store) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.CallID] = rec
}

// Merge applies fn to a copy of the existing record (or a zero record with
// the id set, when unseen) and stores the result. The sticky-ended rule is
// enforced here, after fn runs: once a record is ended, no merge can move
// its status elsewhere.
func (s *Store) Merge(callID string, fn func(rec Record) Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.records[callID]
	if !ok {
		prev = Record{CallID: callID}
	}

	next := fn(prev)
	next.CallID = callID
	if prev.Status == StatusEnded {
		next.Status = StatusEnded
	}
	s.records[callID] = next
	return next
}

// Len reports the number of records held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// List returns a snapshot of all records.
func (s *Store) List() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// Sweep drops ended records whose EndedAt is older than ttl. Records that
// never ended are kept; a stuck non-terminal record is still reachable by
// the polling path and may yet conclude.
func (s *Store) Sweep(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, r := range s.records {
		if r.Status != StatusEnded || r.EndedAt == nil {
			continue
		}
		if now.Sub(*r.EndedAt) > ttl {
			delete(s.records, id)
			removed++
		}
	}
	return removed
}
