// Package feed fetches incident entries from the upstream FireWatch JSON feed.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocklandwatch/firewatch-tracker/internal/domain"
)

// ErrFetch marks upstream failures: network errors, non-2xx responses, and
// payloads whose top level cannot be decoded. A run that hits ErrFetch leaves
// the persisted files untouched.
var ErrFetch = errors.New("feed fetch failed")

// Client performs single GET requests against the FireWatch feed.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client with a bounded request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs one GET against the feed and decodes the entries. Entry
// content is not validated here; malformed entries are the normalizer's
// problem. Fetch fails only on transport or top-level decode errors.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", ErrFetch, resp.StatusCode, c.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}

	entries, err := decodeEntries(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	c.logger.Debug("feed fetched", "url", c.url, "entries", len(entries))
	return entries, nil
}

// decodeEntries accepts the two envelopes the provider has served: a bare
// JSON array of entries and a wrapper object {"incidents": [...]}.
func decodeEntries(body []byte) ([]domain.RawEntry, error) {
	var entries []domain.RawEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}

	var wrapper struct {
		Incidents []domain.RawEntry `json:"incidents"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Incidents != nil {
		return wrapper.Incidents, nil
	}

	return nil, errors.New("payload is neither an entry array nor an incidents wrapper")
}
