package regionsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Client fetches the raw region CSV from an http(s) URL or a local file.
type Client struct {
	location   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a region source for location. A zero timeout disables the
// request deadline.
func NewClient(location string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		location: location,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Location returns the configured URL or path.
func (c *Client) Location() string { return c.location }

// Fetch returns the CSV bytes.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	if isRemote(c.location) {
		return c.fetchHTTP(ctx)
	}
	return c.readFile()
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (c *Client) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("region csv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("region csv error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read region csv: %w", err)
	}
	c.logger.Debug("region csv fetched", "bytes", len(data), "duration", time.Since(start))
	return data, nil
}

func (c *Client) readFile() ([]byte, error) {
	data, err := os.ReadFile(c.location)
	if err != nil {
		return nil, fmt.Errorf("read region file: %w", err)
	}
	c.logger.Debug("region csv read", "path", c.location, "bytes", len(data))
	return data, nil
}
