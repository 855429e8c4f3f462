// Package quote fetches a motivational quote of the day. The fetch is
// fire-and-forget: failures are swallowed by the caller and nothing in
// the client depends on a quote being available.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Quote is a single fetched quote.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Client is a best-effort HTTP client for a quote service.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a quote client for the given endpoint. An empty
// URL yields a client whose Fetch always fails fast.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Fetch retrieves a quote. Callers treat any error as "no quote today".
func (c *Client) Fetch(ctx context.Context) (*Quote, error) {
	if c.url == "" {
		return nil, fmt.Errorf("no quote service configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote service returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading quote: %w", err)
	}

	var q Quote
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, fmt.Errorf("parsing quote: %w", err)
	}
	if q.Content == "" {
		return nil, fmt.Errorf("quote service returned an empty quote")
	}
	return &q, nil
}
