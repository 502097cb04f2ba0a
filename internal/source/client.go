// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source queries bibliographic databases and returns the best
// matching record for a paper title. Each database implements the Client
// interface per the Strategy pattern; the resolver walks them in
// priority order.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GodHu777777/paper-reference-agent/internal/httputil"
	"github.com/GodHu777777/paper-reference-agent/pkg/types"
)

// Client searches a single bibliographic database. Search returns the
// best match for the query title, (nil, nil) when the database has no
// acceptable match, and an error only on transport or protocol failure.
type Client interface {
	Name() string
	Search(ctx context.Context, query string) (*types.PaperRef, error)
}

// getJSON performs a GET with the standard headers and decodes the JSON
// response into out.
func getJSON(ctx context.Context, client *http.Client, reqURL, userAgent, apiKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("HTTP 429: rate limited; an API key raises the limit")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
