package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/oakkaya/degreeplan/internal/app/models"
)

// PostgresOfferingStore persists the offering cache as one row per term key.
// It honors the same contract as the file store: absence on any read
// problem, best-effort writes.
type PostgresOfferingStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresOfferingStore creates the store and ensures its table exists.
func NewPostgresOfferingStore(ctx context.Context, pool *pgxpool.Pool, lgr zerolog.Logger) (*PostgresOfferingStore, error) {
	s := &PostgresOfferingStore{
		pool:   pool,
		logger: lgr.With().Str("component", "offering_store").Logger(),
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS term_offerings (
			term_key   TEXT PRIMARY KEY,
			courses    TEXT[] NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Load assembles the cache from all stored term rows.
func (s *PostgresOfferingStore) Load(ctx context.Context) (*models.OfferingCache, bool) {
	rows, err := s.pool.Query(ctx, `SELECT term_key, courses, updated_at FROM term_offerings`)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Offering cache query failed, treating as absent")
		return nil, false
	}
	defer rows.Close()

	cache := models.NewOfferingCache()
	for rows.Next() {
		var key string
		var courses []string
		var updatedAt time.Time
		if err := rows.Scan(&key, &courses, &updatedAt); err != nil {
			s.logger.Warn().Err(err).Msg("Offering cache row scan failed, treating as absent")
			return nil, false
		}
		cache.Semesters[key] = courses
		if updatedAt.After(cache.LastUpdated) {
			cache.LastUpdated = updatedAt
		}
	}
	if rows.Err() != nil {
		s.logger.Warn().Err(rows.Err()).Msg("Offering cache read failed, treating as absent")
		return nil, false
	}
	if len(cache.Semesters) == 0 {
		return nil, false
	}
	return cache, true
}

// Save upserts every term entry. Individual failures are logged and skipped;
// concurrent planners racing on the same key settle as last writer wins.
func (s *PostgresOfferingStore) Save(ctx context.Context, cache *models.OfferingCache) {
	for key, courses := range cache.Semesters {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO term_offerings (term_key, courses, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (term_key)
			DO UPDATE SET courses = EXCLUDED.courses, updated_at = EXCLUDED.updated_at`,
			key, courses, cache.LastUpdated)
		if err != nil {
			s.logger.Warn().Err(err).Str("termKey", key).Msg("Failed to persist term offerings, continuing")
		}
	}
}
