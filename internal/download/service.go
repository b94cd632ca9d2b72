package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	"github.com/couchcryptid/forecast-download-wizard/internal/observability"
)

// ErrDownloadFailed wraps every transport, status or save failure.
var ErrDownloadFailed = errors.New("download failed")

// User-visible alert texts.
const (
	AlertIncomplete = "지역과 변수를 모두 선택하세요."
	AlertFailed     = "다운로드 중 오류가 발생했습니다."
)

// Fetcher requests the archive for a download request.
type Fetcher interface {
	Fetch(ctx context.Context, req domain.DownloadRequest) (io.ReadCloser, error)
}

// Saver persists an archive under name and reports where it went.
type Saver interface {
	Save(name string, r io.Reader) (path string, n int64, err error)
}

// EventPublisher announces a completed download.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DownloadEvent) error
}

// Result describes a saved archive.
type Result struct {
	Path  string
	Bytes int64
}

// Service validates a selection, fetches the archive and saves it.
type Service struct {
	fetcher   Fetcher
	saver     Saver
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a download Service. Pass a nil publisher to disable
// download events.
func NewService(f Fetcher, s Saver, p EventPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher:   f,
		saver:     s,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// Trigger runs one download for sel. An incomplete selection returns
// domain.ErrIncompleteSelection without any network call; every other
// failure wraps ErrDownloadFailed.
func (s *Service) Trigger(ctx context.Context, sel domain.Selection) (Result, error) {
	req, err := domain.NewDownloadRequest(sel)
	if err != nil {
		s.metrics.Downloads.WithLabelValues("incomplete").Inc()
		return Result{}, err
	}

	start := time.Now()
	res, err := s.fetchAndSave(ctx, req)
	if err != nil {
		s.metrics.Downloads.WithLabelValues("error").Inc()
		s.logger.Error("download failed",
			"error", err,
			"town", req.Town,
			"variables", req.Variables,
		)
		return Result{}, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	s.metrics.Downloads.WithLabelValues("success").Inc()
	s.metrics.DownloadDuration.Observe(time.Since(start).Seconds())
	s.metrics.DownloadBytes.Observe(float64(res.Bytes))
	s.logger.Info("download saved",
		"path", res.Path,
		"bytes", res.Bytes,
		"forecast", sel.ForecastName(),
		"town", req.Town,
	)

	s.publish(ctx, domain.NewDownloadEvent(sel, req, res.Path, res.Bytes))
	return res, nil
}

func (s *Service) fetchAndSave(ctx context.Context, req domain.DownloadRequest) (Result, error) {
	body, err := s.fetcher.Fetch(ctx, req)
	if err != nil {
		return Result{}, err
	}
	defer body.Close()

	path, n, err := s.saver.Save(req.Filename(), body)
	if err != nil {
		return Result{}, err
	}
	return Result{Path: path, Bytes: n}, nil
}

// publish is best effort; a saved archive is a success even if the event is lost.
func (s *Service) publish(ctx context.Context, event domain.DownloadEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publish download event failed", "error", err, "id", event.ID)
		return
	}
	s.metrics.EventsPublished.WithLabelValues("success").Inc()
}

// AlertMessage maps a Trigger error to the text shown to the user, or "" for nil.
func AlertMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrIncompleteSelection):
		return AlertIncomplete
	default:
		return AlertFailed
	}
}
