// Package token owns the session credential: a single opaque bearer token
// kept for the lifetime of the process. The store is deliberately not
// persisted anywhere — restarting the client always starts logged out,
// which limits exposure of a stolen token compared to on-disk storage.
package token

import "sync"

// Store is the single place the rest of the client reads the session
// credential from. A credential exists here if and only if the user is
// considered logged in.
type Store interface {
	// Save replaces any previously stored token.
	Save(token string)
	// Get returns the current token and whether one is present.
	Get() (string, bool)
	// Clear removes the token. Safe to call when nothing is stored.
	Clear()
}

// MemoryStore is the in-process implementation of Store. Writes are
// last-write-wins; the mutex only guards against torn reads.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
}
