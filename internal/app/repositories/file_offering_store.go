package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/oakkaya/degreeplan/internal/app/models"
)

// FileOfferingStore persists the offering cache as a single JSON document:
// {"lastUpdated": "...", "semesters": {"2024-fall": ["CMPT 225", ...]}}.
type FileOfferingStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileOfferingStore creates a store backed by the document at path.
func NewFileOfferingStore(path string, lgr zerolog.Logger) *FileOfferingStore {
	return &FileOfferingStore{
		path:   path,
		logger: lgr.With().Str("component", "offering_store").Str("path", path).Logger(),
	}
}

// Load reads the cache document. A missing file, unparseable content, or a
// document without a semesters field are all reported as absent.
func (s *FileOfferingStore) Load(ctx context.Context) (*models.OfferingCache, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Msg("Offering cache unreadable, treating as absent")
		}
		return nil, false
	}

	var cache models.OfferingCache
	if err := json.Unmarshal(data, &cache); err != nil {
		s.logger.Warn().Err(err).Msg("Offering cache malformed, treating as absent")
		return nil, false
	}
	if cache.Semesters == nil {
		s.logger.Warn().Msg("Offering cache missing semesters field, treating as absent")
		return nil, false
	}
	return &cache, true
}

// Save writes the cache document, creating the containing directory if
// needed. Write failures are logged and swallowed so an unavailable storage
// medium never aborts resolution.
func (s *FileOfferingStore) Save(ctx context.Context, cache *models.OfferingCache) {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to create offering cache directory, skipping persist")
			return
		}
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode offering cache, skipping persist")
		return
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write offering cache, continuing without persist")
	}
}
