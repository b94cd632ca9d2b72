package weatherapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
)

// Client requests forecast archives from the weather-data service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a weather-data client. baseURL must not end with a slash.
// A zero timeout disables the request deadline.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch issues GET /weather/csv for req and returns the archive body. The
// caller must close it.
func (c *Client) Fetch(ctx context.Context, req domain.DownloadRequest) (io.ReadCloser, error) {
	u := c.baseURL + "/weather/csv?" + req.Query().Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("weather csv request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	c.logger.Debug("weather csv response",
		"town", req.Town,
		"variables", len(req.Variables),
		"content_length", resp.ContentLength,
	)
	return resp.Body, nil
}
