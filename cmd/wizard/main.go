// Command wizard is the interactive forecast download wizard. It walks the
// user through forecast type, region and variable selection in the terminal
// and saves the archive returned by the weather-data service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/forecast-download-wizard/internal/adapter/filesink"
	httpadapter "github.com/couchcryptid/forecast-download-wizard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/forecast-download-wizard/internal/adapter/kafka"
	"github.com/couchcryptid/forecast-download-wizard/internal/adapter/regionsource"
	"github.com/couchcryptid/forecast-download-wizard/internal/adapter/weatherapi"
	"github.com/couchcryptid/forecast-download-wizard/internal/config"
	"github.com/couchcryptid/forecast-download-wizard/internal/download"
	"github.com/couchcryptid/forecast-download-wizard/internal/observability"
	"github.com/couchcryptid/forecast-download-wizard/internal/regions"
	"github.com/couchcryptid/forecast-download-wizard/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger, logCloser, err := observability.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		return 1
	}
	defer logCloser.Close()
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := regionsource.NewClient(cfg.RegionCSVURL, cfg.HTTPTimeout, logger.With("component", "regionsource"))
	loader := regions.NewLoader(source, logger.With("component", "regions"), metrics)

	// The sidecar serves options as soon as the TUI's load completes.
	live := &regions.Live{}
	load := func(ctx context.Context) tui.Options {
		cached := regions.NewCachedIndex(loader.Load(ctx), cfg.OptionCacheSize, metrics)
		live.Set(cached)
		return cached
	}

	// Initialize event publisher (feature-flagged via KAFKA_BROKERS).
	var (
		publisher download.EventPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.EventsEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger.With("component", "kafka"))
		publisher = writer
		metrics.EventsEnabled.Set(1)
		logger.Info("download events enabled", "topic", cfg.KafkaDownloadTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("download events disabled")
	}

	svc := download.NewService(
		weatherapi.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger.With("component", "weatherapi")),
		filesink.New(cfg.DownloadDir),
		publisher,
		logger.With("component", "download"),
		metrics,
	)

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, loader, live, logger.With("component", "http"))
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	logger.Info("wizard starting",
		"api_base_url", cfg.APIBaseURL,
		"region_csv", cfg.RegionCSVURL,
		"download_dir", cfg.DownloadDir,
	)

	code := 0
	p := tea.NewProgram(tui.New(ctx, load, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("terminal ui error", "error", err)
		fmt.Fprintf(os.Stderr, "wizard: %v\n", err)
		code = 1
	}

	stop()
	logger.Info("shutting down")
	shutdown(cfg, srv, writer, logger)
	logger.Info("shutdown complete")
	return code
}

func shutdown(cfg *config.Config, srv *httpadapter.Server, writer *kafkaadapter.Writer, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
}
