// Package monitoring holds the HTTP client for the external monitoring
// service, which keeps per-user measurement tags that must be cleaned up
// when a household account disappears.
package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 5 * time.Second

// Client notifies the monitoring service about account lifecycle events.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NotifyUserRemoved asks the monitoring service to drop the measurement tags
// of a removed household user. Callers treat failures as best-effort.
func (c *Client) NotifyUserRemoved(ctx context.Context, username string) error {
	endpoint := c.baseURL + "/api/internal/measurements/household-user-tags/" + url.PathEscape(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify user removed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notify user removed: unexpected status %d", resp.StatusCode)
	}
	return nil
}
