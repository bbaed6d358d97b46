package models

import "time"

// OfferingCache is the persisted memoization of which courses are offered in
// which term. A missing key means the term was never successfully resolved;
// an empty list means it resolved to nothing. Callers treat both as unusable
// for scheduling.
type OfferingCache struct {
	LastUpdated time.Time           `json:"lastUpdated"`
	Semesters   map[string][]string `json:"semesters"`
}

// NewOfferingCache returns an empty cache ready to be merged into.
func NewOfferingCache() *OfferingCache {
	return &OfferingCache{Semesters: make(map[string][]string)}
}

// Offerings returns the cached course codes for a term key, or nil when the
// key was never resolved.
func (c *OfferingCache) Offerings(key string) []string {
	if c == nil || c.Semesters == nil {
		return nil
	}
	return c.Semesters[key]
}

// Clone returns a deep copy. Resolution always works on a copy so concurrent
// planning requests never share a mutable snapshot.
func (c *OfferingCache) Clone() *OfferingCache {
	clone := &OfferingCache{
		LastUpdated: c.LastUpdated,
		Semesters:   make(map[string][]string, len(c.Semesters)),
	}
	for key, courses := range c.Semesters {
		clone.Semesters[key] = append([]string(nil), courses...)
	}
	return clone
}
