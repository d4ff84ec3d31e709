package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
)

// Document is a record held by the in-memory store.
type Document struct {
	ID        string
	Record    domain.Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is an in-memory document store used for local runs and tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		collections: make(map[string][]Document),
	}
}

// Insert appends record to collection under a new UUID.
func (s *Store) Insert(ctx context.Context, collection string, record domain.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if collection == "" {
		return "", errors.New("collection name is required")
	}
	if record == nil {
		return "", errors.New("record is required")
	}

	now := time.Now().UTC()
	doc := Document{
		ID:        uuid.New().String(),
		Record:    record,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], doc)
	s.mu.Unlock()

	return doc.ID, nil
}

// Documents returns a copy of everything stored in collection.
func (s *Store) Documents(collection string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Document(nil), s.collections[collection]...)
}

// Count returns the number of records stored in collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.collections[collection])
}
