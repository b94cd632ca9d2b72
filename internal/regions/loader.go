package regions

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	"github.com/couchcryptid/forecast-download-wizard/internal/observability"
)

// Source returns the raw region CSV.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Loader fetches and parses the region table once at startup.
type Loader struct {
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
	loaded  atomic.Int64
}

// NewLoader creates a Loader over source.
func NewLoader(source Source, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns the region index. Failures are logged and yield an empty,
// non-nil index so the wizard still renders.
func (l *Loader) Load(ctx context.Context) *domain.RegionIndex {
	data, err := l.source.Fetch(ctx)
	if err != nil {
		l.fail("fetch region table failed", err)
		return domain.NewRegionIndex(nil)
	}

	records, err := domain.ParseRegionCSV(bytes.NewReader(data))
	if err != nil {
		l.fail("parse region table failed", err)
		return domain.NewRegionIndex(nil)
	}

	idx := domain.NewRegionIndex(records)
	l.loaded.Store(int64(idx.Len()))
	l.metrics.RegionLoads.WithLabelValues("success").Inc()
	l.metrics.RegionRecords.Set(float64(idx.Len()))
	l.logger.Info("region index loaded",
		"records", idx.Len(),
		"level1_options", len(idx.Level1Options()),
	)
	return idx
}

func (l *Loader) fail(msg string, err error) {
	l.metrics.RegionLoads.WithLabelValues("error").Inc()
	l.metrics.RegionRecords.Set(0)
	l.logger.Error(msg, "error", err)
}

// CheckReadiness returns nil once a non-empty region index has been loaded.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if l.loaded.Load() == 0 {
		return errors.New("region index not loaded")
	}
	return nil
}
