// Package inflight tracks actions that have an outstanding network call.
//
// The front-end disables a control while its action is in flight: order
// submission uses a singleton key, kitchen-board updates use one key per
// order ID. Keys are independent, so updates to two different orders can
// proceed concurrently while a double-fire on the same order is rejected.
package inflight

import "sync"

// Set is a keyed set of in-flight action identifiers.
type Set struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewSet returns an empty in-flight set.
func NewSet() *Set {
	return &Set{keys: make(map[string]struct{})}
}

// TryAcquire marks key as in flight. It returns false if the key is already
// held.
func (s *Set) TryAcquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Release clears key. Releasing a key that is not held is a no-op.
func (s *Set) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
}

// Contains reports whether key is currently in flight.
func (s *Set) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok
}
