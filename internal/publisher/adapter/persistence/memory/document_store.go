package memory

import (
	"context"
	"sync"

	"research-publisher/internal/shared/docpath"
)

// DocumentStore is a map-backed store used by tests and dry runs. It records
// every write in order so callers can assert on fan-out behavior.
type DocumentStore struct {
	mu     sync.Mutex
	docs   map[string]map[string]interface{}
	writes []string
}

// NewDocumentStore creates an empty in-memory store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]map[string]interface{}),
	}
}

// Set upserts the document at path, replacing any previous content.
func (s *DocumentStore) Set(ctx context.Context, path string, fields map[string]interface{}) error {
	if err := docpath.ValidateDocumentPath(path); err != nil {
		return err
	}

	stored := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		stored[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = stored
	s.writes = append(s.writes, path)
	return nil
}

// Get returns the document at path, if present.
func (s *DocumentStore) Get(path string) (map[string]interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[path]
	return doc, ok
}

// Writes returns every write issued so far, in order. Overwrites appear once
// per Set call.
func (s *DocumentStore) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.writes))
	copy(out, s.writes)
	return out
}

// Len returns the number of distinct documents stored.
func (s *DocumentStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
