// Package bref scrapes per-game statistics tables from
// basketball-reference.com.
//
// Pages are static HTML. A run issues exactly one GET with no retries and
// parses the first statistics table on the page.
package bref

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const baseURL = "https://www.basketball-reference.com"

// ErrFetchFailed marks a transport error or non-success status from the
// source site. Terminal for the run; matched with errors.Is.
var ErrFetchFailed = errors.New("fetch failed")

// Client fetches pages from basketball-reference.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a client with the given request timeout and User-Agent.
func NewClient(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// PerGameURL returns the per-game statistics page for a season. The season
// is the year the finals fall in: 2024 means the 2023-24 season.
func PerGameURL(season int) string {
	return fmt.Sprintf("%s/leagues/NBA_%d_per_game.html", baseURL, season)
}

// FetchPage performs a single GET and returns the page body as text. Any
// transport error or non-200 status wraps ErrFetchFailed; there are no
// retries and no alternate URLs.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Info("Fetching page", "url", pageURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %d: %s",
			ErrFetchFailed, pageURL, resp.StatusCode, truncate(body, 200))
	}

	return string(body), nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
