// Package memory provides an in-memory repository of URL mappings. It is the
// single source of truth for short code existence, insertion and retrieval,
// with process-lifetime retention.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortly/internal/entity"
)

// record is the store-owned representation of a mapping. Everything except
// the click counter is immutable after insertion. The counter has its own
// lock so that increments on unrelated codes never contend with each other
// or with map structure access.
type record struct {
	id          string
	shortCode   string
	originalURL string
	createdAt   time.Time

	mu     sync.Mutex // guards clicks
	clicks int64
}

// snapshot copies the record into an entity.URL under the click lock, so a
// reader never observes a torn counter.
func (rec *record) snapshot() *entity.URL {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	return &entity.URL{
		ID:          rec.id,
		ShortCode:   rec.shortCode,
		OriginalURL: rec.originalURL,
		Clicks:      rec.clicks,
		CreatedAt:   rec.createdAt,
	}
}

// URLStore is a thread-safe in-memory store of URL mappings keyed by short
// code. The collection structure and each record's click counter are guarded
// by independent locks. The zero value is not usable; construct with
// NewURLStore.
type URLStore struct {
	mu       sync.RWMutex // guards mappings
	mappings map[string]*record
}

// NewURLStore creates an empty URLStore.
func NewURLStore() *URLStore {
	return &URLStore{
		mappings: make(map[string]*record),
	}
}

// Save inserts a new mapping with a zero click count and returns a snapshot
// of it. Callers are expected to have checked Exists first; if the short code
// is nevertheless already present, Save rejects the insert with
// entity.ErrShortCodeExists instead of overwriting the prior mapping.
func (s *URLStore) Save(ctx context.Context, shortCode, originalURL string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLStore.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mappings[shortCode]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
	}

	rec := &record{
		id:          uuid.NewString(),
		shortCode:   shortCode,
		originalURL: originalURL,
		createdAt:   time.Now().UTC(),
	}
	s.mappings[shortCode] = rec

	return rec.snapshot(), nil
}

// RetrieveByShortCode returns a snapshot of the mapping for the given short
// code, or entity.ErrURLNotFound if no such mapping exists.
func (s *URLStore) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLStore.RetrieveByShortCode"

	rec, ok := s.lookup(shortCode)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return rec.snapshot(), nil
}

// RetrieveAndUpdateStats increments the click counter of the mapping for the
// given short code by exactly one and returns the updated snapshot. Increments
// on the same code are serialized by the record lock, so N concurrent calls
// raise the counter by exactly N.
func (s *URLStore) RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLStore.RetrieveAndUpdateStats"

	rec, ok := s.lookup(shortCode)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.clicks++

	return &entity.URL{
		ID:          rec.id,
		ShortCode:   rec.shortCode,
		OriginalURL: rec.originalURL,
		Clicks:      rec.clicks,
		CreatedAt:   rec.createdAt,
	}, nil
}

// Exists reports whether a mapping with the given short code is present. It
// serves as the uniqueness oracle for short code generation.
func (s *URLStore) Exists(ctx context.Context, shortCode string) (bool, error) {
	_, ok := s.lookup(shortCode)
	return ok, nil
}

func (s *URLStore) lookup(shortCode string) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.mappings[shortCode]
	return rec, ok
}
