// Package storage provides in-memory per-player state that must survive
// between handler invocations: active game contexts and questions awaiting an
// answer.
package storage

import "sync"

// Storage is a concurrency-safe map keyed by player id.
type Storage[T any] struct {
	mu    sync.RWMutex
	items map[int64]T
}

// New creates an empty Storage.
func New[T any]() *Storage[T] {
	return &Storage[T]{
		items: make(map[int64]T),
	}
}

// Store saves a value for a given player ID.
func (s *Storage[T]) Store(playerID int64, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[playerID] = value
}

// Get retrieves the value for a given player ID.
func (s *Storage[T]) Get(playerID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[playerID]
	return value, ok
}

// Delete removes the value for a given player ID.
func (s *Storage[T]) Delete(playerID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, playerID)
}

// Range calls fn for every stored entry over a snapshot of the map, so fn may
// call back into the storage.
func (s *Storage[T]) Range(fn func(playerID int64, value T)) {
	s.mu.RLock()
	snapshot := make(map[int64]T, len(s.items))
	for id, v := range s.items {
		snapshot[id] = v
	}
	s.mu.RUnlock()

	for id, v := range snapshot {
		fn(id, v)
	}
}
