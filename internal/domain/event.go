package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DownloadEvent records one completed download for downstream consumers.
type DownloadEvent struct {
	ID           string    `json:"id"`
	ForecastID   string    `json:"forecast_id"`
	ForecastName string    `json:"forecast_name"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	Town         string    `json:"town"`
	Variables    []string  `json:"variables"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	File         string    `json:"file"`
	Bytes        int64     `json:"bytes"`
	RequestedAt  time.Time `json:"requested_at"`
}

// NewDownloadEvent stamps a completed download with the package clock.
func NewDownloadEvent(sel Selection, req DownloadRequest, file string, size int64) DownloadEvent {
	now := clock.Now().UTC()
	return DownloadEvent{
		ID:           eventID(req, now),
		ForecastID:   sel.Forecast.ID,
		ForecastName: sel.Forecast.Name,
		City:         req.City,
		District:     req.District,
		Town:         req.Town,
		Variables:    append([]string(nil), req.Variables...),
		Start:        req.Start,
		End:          req.End,
		File:         file,
		Bytes:        size,
		RequestedAt:  now,
	}
}

// eventID is a deterministic hash of the request and its timestamp so a
// replayed publish produces the same key.
func eventID(req DownloadRequest, at time.Time) string {
	parts := []string{req.City, req.District, req.Town, strings.Join(req.Variables, ","), req.Start, req.End, at.Format(time.RFC3339Nano)}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "dl-" + hex.EncodeToString(sum[:8])
}
