package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/oakkaya/degreeplan/internal/app/models"
	"github.com/oakkaya/degreeplan/internal/app/repositories"
	"github.com/oakkaya/degreeplan/internal/pkg/catalog"
)

// OfferingService resolves which courses are offered in a term, layering a
// persistent cache over the remote catalog with a statistical fallback.
type OfferingService struct {
	catalog catalog.Client
	store   repositories.OfferingStore
	logger  zerolog.Logger
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(client catalog.Client, store repositories.OfferingStore, lgr zerolog.Logger) *OfferingService {
	return &OfferingService{
		catalog: client,
		store:   store,
		logger:  lgr.With().Str("component", "offerings").Logger(),
	}
}

// LoadCache returns the persisted cache, or a fresh empty one when no usable
// cache exists.
func (s *OfferingService) LoadCache(ctx context.Context) *models.OfferingCache {
	if cache, ok := s.store.Load(ctx); ok {
		return cache
	}
	return models.NewOfferingCache()
}

// Resolve returns the offerings for a term. A cached non-empty entry is
// returned as-is; otherwise the catalog is queried and the result merged into
// a copy of the cache, which is persisted best-effort and returned alongside
// the offerings.
func (s *OfferingService) Resolve(ctx context.Context, year int, term models.Term, cache *models.OfferingCache) ([]string, *models.OfferingCache) {
	key := models.TermKey(year, term)
	if cached := cache.Offerings(key); len(cached) > 0 {
		return cached, cache
	}

	fetched := s.catalog.FetchOfferings(ctx, year, string(term))

	updated := cache.Clone()
	updated.Semesters[key] = fetched
	updated.LastUpdated = time.Now().UTC()
	s.store.Save(ctx, updated)

	s.logger.Debug().Str("termKey", key).Int("count", len(fetched)).Msg("Resolved term offerings from catalog")
	return fetched, updated
}

// ResolveWithPrediction resolves a term and, when the result is empty, falls
// back to the prior year's same-term offerings from the updated cache. The
// returned flag is true whenever the prediction path was taken, even if the
// prediction itself came back empty.
func (s *OfferingService) ResolveWithPrediction(ctx context.Context, year int, term models.Term, cache *models.OfferingCache) ([]string, *models.OfferingCache, bool) {
	offerings, updated := s.Resolve(ctx, year, term, cache)
	if len(offerings) > 0 {
		return offerings, updated, false
	}

	predicted := Predict(year, term, updated)
	s.logger.Info().Str("termKey", models.TermKey(year, term)).Int("predicted", len(predicted)).
		Msg("No authoritative offerings, using prior-year prediction")
	return predicted, updated, true
}

// Predict returns the prior year's offerings for the same term, or an empty
// set when absent. Pure lookup: no network, no cache mutation, no recursion
// to older years.
func Predict(year int, term models.Term, cache *models.OfferingCache) []string {
	if offerings := cache.Offerings(models.TermKey(year-1, term)); offerings != nil {
		return offerings
	}
	return []string{}
}
