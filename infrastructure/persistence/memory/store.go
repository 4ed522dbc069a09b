// Package memory provides an in-process document store with the same
// observable semantics as the remote one: whole-document saves, durable
// identity assignment on save, last writer wins. Used for local development
// and as the store double in tests.
package memory

import (
	"context"
	"sync"

	"hypey-backend/application/ports"
	"hypey-backend/domain/core/valueobjects"
	"hypey-backend/domain/document"
	pkgerrors "hypey-backend/pkg/errors"
)

// Store is an in-memory DocumentStore
type Store struct {
	mu         sync.RWMutex
	docs       map[string]*document.Document
	containers map[string]bool
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		docs:       make(map[string]*document.Document),
		containers: make(map[string]bool),
	}
}

// Fetch returns a copy of the document containing ref
func (s *Store) Fetch(ctx context.Context, ref valueobjects.Ref) (*document.Document, error) {
	if !ref.IsDurable() {
		return nil, pkgerrors.NewValidationError("cannot fetch a non-durable ref")
	}
	docURL, err := ref.DocumentURL()
	if err != nil {
		return nil, pkgerrors.NewValidationError("invalid ref")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docURL]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("document")
	}
	// Copy out so callers never alias stored state
	return doc.Clone(), nil
}

// Save replaces the stored document wholesale and promotes any local tokens
// it contains to durable refs. The returned document is the authoritative
// saved state.
func (s *Store) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc.URL() == "" {
		return nil, pkgerrors.NewValidationError("document has no URL")
	}

	saved := doc.Clone()
	saved.PromoteLocalRefs()

	s.mu.Lock()
	s.docs[doc.URL()] = saved
	s.mu.Unlock()

	return saved.Clone(), nil
}

// EnsureContainer records the container; always idempotent
func (s *Store) EnsureContainer(ctx context.Context, url string) error {
	s.mu.Lock()
	s.containers[url] = true
	s.mu.Unlock()
	return nil
}

// HasContainer reports whether a container was ensured. Test helper.
func (s *Store) HasContainer(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containers[url]
}
