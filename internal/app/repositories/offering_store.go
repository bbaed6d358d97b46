package repositories

import (
	"context"
	"sync"

	"github.com/oakkaya/degreeplan/internal/app/models"
)

// OfferingStore persists the offering cache. Persistence is a pure
// optimization: Load reports absence instead of failing, and Save never
// surfaces an error to the caller.
type OfferingStore interface {
	// Load returns the stored cache, or ok=false when no usable cache
	// exists (missing, unreadable, or malformed are all the same case).
	Load(ctx context.Context) (*models.OfferingCache, bool)

	// Save writes the cache best-effort. Failures are logged and swallowed.
	Save(ctx context.Context, cache *models.OfferingCache)
}

// MemoryOfferingStore keeps the cache in process memory. Used in tests and
// deployments that do not want durable caching.
type MemoryOfferingStore struct {
	mu    sync.Mutex
	cache *models.OfferingCache
}

// NewMemoryOfferingStore creates an empty in-memory store.
func NewMemoryOfferingStore() *MemoryOfferingStore {
	return &MemoryOfferingStore{}
}

// Load returns the last saved cache.
func (s *MemoryOfferingStore) Load(ctx context.Context) (*models.OfferingCache, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Clone(), true
}

// Save stores a snapshot of the cache.
func (s *MemoryOfferingStore) Save(ctx context.Context, cache *models.OfferingCache) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache.Clone()
}
