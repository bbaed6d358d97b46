// Package catalog queries the remote course-outline service for the set of
// courses offered in a given academic term. The service is unreliable:
// failures at any level degrade to fewer results, never to an error.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Record is the loose {value|text} shape the outline service returns for both
// department and course-number listings. Value is preferred, Text is the
// fallback; the precedence is resolved here and never leaks past this package.
type Record struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Name returns the usable identifier of a record.
func (r Record) Name() string {
	if r.Value != "" {
		return r.Value
	}
	return r.Text
}

// Client fetches term offerings from the remote catalog.
type Client interface {
	// FetchOfferings returns the course codes offered in (year, term).
	// An unreachable catalog yields an empty set, not an error: the caller
	// cannot distinguish the two and handles both via prediction.
	FetchOfferings(ctx context.Context, year int, term string) []string
}

type outlineClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a catalog client. Every request carries the given
// timeout; a timed-out call counts as a failure like any other.
func NewClient(baseURL string, timeout time.Duration, lgr zerolog.Logger) Client {
	return &outlineClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  lgr.With().Str("component", "catalog").Logger(),
	}
}

func (c *outlineClient) FetchOfferings(ctx context.Context, year int, term string) []string {
	departments, err := c.list(ctx, fmt.Sprintf("%d/%s", year, term))
	if err != nil {
		// Unreachable catalog and "no offerings" are handled identically
		// downstream, so this degrades to empty instead of propagating.
		c.logger.Warn().Err(err).Int("year", year).Str("term", term).
			Msg("Department listing failed, returning no offerings")
		return []string{}
	}

	seen := make(map[string]bool)
	offerings := make([]string, 0, len(departments)*8)
	for _, dept := range departments {
		name := strings.ToUpper(dept.Name())
		if name == "" {
			continue
		}

		numbers, err := c.list(ctx, fmt.Sprintf("%d/%s/%s", year, term, strings.ToLower(name)))
		if err != nil {
			// Partial results are acceptable; skip the department.
			c.logger.Debug().Err(err).Str("department", name).Int("year", year).
				Str("term", term).Msg("Department fetch failed, skipping")
			continue
		}

		for _, num := range numbers {
			if num.Name() == "" {
				continue
			}
			code := name + " " + num.Name()
			if !seen[code] {
				seen[code] = true
				offerings = append(offerings, code)
			}
		}
	}
	return offerings
}

// list performs one outline query, e.g. "?2024/fall" or "?2024/fall/cmpt".
func (c *outlineClient) list(ctx context.Context, selector string) ([]Record, error) {
	url := c.baseURL + "?" + selector
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, selector)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return records, nil
}
