package state

import (
	"sync"
	"time"

	"github.com/five82/flowdeck/internal/flowapi"
)

// Kind names a resource collection.
type Kind string

const (
	KindEnvironments     Kind = "environments"
	KindFlows            Kind = "flows"
	KindFlow             Kind = "flow"
	KindRuns             Kind = "runs"
	KindTriggerHistories Kind = "trigger-histories"
	KindConnections      Kind = "connections"
)

// Key identifies one cached resource.
type Key struct {
	Kind        Kind
	Environment string
	Flow        string
	Trigger     string
}

func (k Key) String() string {
	s := string(k.Kind)
	for _, part := range []string{k.Environment, k.Flow, k.Trigger} {
		if part != "" {
			s += "/" + part
		}
	}
	return s
}

// Entry is a snapshot of one resource.
type Entry struct {
	Records             []flowapi.Record
	Loaded              bool
	Loading             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether the resource failed on its last two loads.
func (e Entry) IsOffline() bool {
	return e.ConsecutiveFailures >= 2
}

// Store caches resources and gates concurrent loads per key.
type Store struct {
	mu      sync.RWMutex
	entries map[Key]*Entry
	now     func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[Key]*Entry), now: time.Now}
}

// Begin marks key as loading. It returns false when a load for key is
// already in flight.
func (s *Store) Begin(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(key)
	if e.Loading {
		return false
	}
	e.Loading = true
	return true
}

// Finish records the outcome of a load started with Begin. When err is
// non-nil the previous records are kept and the error is recorded.
func (s *Store) Finish(key Key, records []flowapi.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(key)
	e.Loading = false
	e.LastUpdated = s.now()
	if err != nil {
		e.LastError = err
		e.ConsecutiveFailures++
		return
	}
	e.Records = cloneRecords(records)
	e.Loaded = true
	e.LastError = nil
	e.ConsecutiveFailures = 0
}

// Loading reports whether a load for key is in flight.
func (s *Store) Loading(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return ok && e.Loading
}

// Forget drops a cached resource unless it is loading.
func (s *Store) Forget(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && !e.Loading {
		delete(s.entries, key)
	}
}

// Snapshot returns a copy of the entry for key.
func (s *Store) Snapshot(key Key) Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}
	}
	snap := *e
	snap.Records = cloneRecords(e.Records)
	return snap
}

func (s *Store) entry(key Key) *Entry {
	if s.entries == nil {
		s.entries = make(map[Key]*Entry)
	}
	if s.now == nil {
		s.now = time.Now
	}
	e, ok := s.entries[key]
	if !ok {
		e = &Entry{}
		s.entries[key] = e
	}
	return e
}

func cloneRecords(records []flowapi.Record) []flowapi.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]flowapi.Record, len(records))
	copy(dup, records)
	return dup
}
