package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "forecast_wizard"

// Metrics holds the Prometheus counters, histograms, and gauges for the wizard.
type Metrics struct {
	// Region index metrics.
	RegionLoads   *prometheus.CounterVec // labels: outcome={success,error}
	RegionRecords prometheus.Gauge
	OptionCache   *prometheus.CounterVec // labels: level={level1,level2,level3}, result={hit,miss}

	// Download metrics.
	Downloads        *prometheus.CounterVec // labels: outcome={success,incomplete,error}
	DownloadDuration prometheus.Histogram
	DownloadBytes    prometheus.Histogram

	// Event publishing metrics.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}
	EventsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all wizard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.RegionLoads,
		m.RegionRecords,
		m.OptionCache,
		m.Downloads,
		m.DownloadDuration,
		m.DownloadBytes,
		m.EventsPublished,
		m.EventsEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		RegionLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_loads_total",
			Help:      help("Region table loads by outcome."),
		}, []string{"outcome"}),
		RegionRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "region_records",
			Help:      help("Number of records in the loaded region index."),
		}),
		OptionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "option_cache_total",
			Help:      help("Region option cache lookups by level and result."),
		}, []string{"level", "result"}),
		Downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloads_total",
			Help:      help("Download attempts by outcome."),
		}, []string{"outcome"}),
		DownloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_duration_seconds",
			Help:      help("Duration of a download request including the save."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DownloadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "download_bytes",
			Help:      help("Size of saved download archives."),
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      help("Download events published by outcome."),
		}, []string{"outcome"}),
		EventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_enabled",
			Help:      help("1 when download events are published, 0 otherwise."),
		}),
	}
}
