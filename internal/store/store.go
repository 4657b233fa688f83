// Package store holds the cached document snapshot for the active session.
package store

import (
	"sync"

	"github.com/rumsan/docsctl/internal/models"
)

// Store is the shared document cache. Every write replaces the whole snapshot;
// there are no partial updates. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	docs    []models.Document
	version uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Documents returns a copy of the cached snapshot.
func (s *Store) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.docs)
}

// Replace overwrites the cached snapshot.
func (s *Store) Replace(docs []models.Document) {
	next := clone(docs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = next
	s.version++
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Version increases by one on every Replace.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Effective applies the precedence rule: a non-empty cache wins over the
// remote snapshot, otherwise the remote snapshot is used as-is (cold start).
func (s *Store) Effective(remote []models.Document) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docs) > 0 {
		return clone(s.docs)
	}
	return clone(remote)
}

// Lookup finds a cached document by id.
func (s *Store) Lookup(id string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.docs {
		if d.ID == id {
			return d, true
		}
	}
	return models.Document{}, false
}

func clone(docs []models.Document) []models.Document {
	if docs == nil {
		return []models.Document{}
	}
	out := make([]models.Document, len(docs))
	copy(out, docs)
	return out
}
