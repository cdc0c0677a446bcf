package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

const (
	OutcomeAllowed   = "allowed"
	OutcomeLimited   = "limited"
	OutcomeUnlimited = "unlimited"
	OutcomeBlocked   = "blocked"
	OutcomeError     = "error"
)

var (
	requestLabels = []string{"method", "path", "service", "status"}

	// Latency buckets in seconds
	latencyBuckets = []float64{
		0.005, 0.01, 0.025,
		0.05, 0.1, 0.25,
		0.5, 1, 2.5,
		5, 10, 30,
	}

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		requestLabels,
	)

	HTTPRequestsDuration = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: latencyBuckets,
		},
		requestLabels,
	)

	RateLimitDecisions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatekeeper_ratelimit_decisions_total",
			Help: "Rate limiter decisions by outcome",
		},
		[]string{"outcome"},
	)

	WebsocketConnections = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "gatekeeper_websocket_connections",
			Help: "Number of open chat connections",
		},
	)
)

type MetricsConfig struct {
	Service       string
	EnableLatency bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Service:       "gatekeeper",
		EnableLatency: true,
	}
}

var (
	Config   = DefaultMetricsConfig()
	initOnce sync.Once
)

func Initialize(cfg MetricsConfig) {
	if cfg.Service == "" {
		cfg.Service = DefaultMetricsConfig().Service
	}
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Handler exposes the gatekeeper registry in the text exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Gatherer is used by tests to inspect collected samples.
func Gatherer() prometheus.Gatherer {
	return registry
}
