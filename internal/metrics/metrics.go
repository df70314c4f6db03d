package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for the service. a nil
// *Metrics is valid and records nothing
type Metrics struct {
	HttpRequests        *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	ModelTraining       *prometheus.HistogramVec
	ModelCacheRequests  *prometheus.CounterVec
	SkippedCommodities  prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HttpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		HttpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecast_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ModelTraining: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecast_model_training_seconds",
				Help:    "Time spent fitting a forest, by target variable",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"target"},
		),
		ModelCacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_model_cache_requests_total",
				Help: "Trained model cache lookups by result (hit, miss)",
			},
			[]string{"result"},
		),
		SkippedCommodities: f.NewCounter(prometheus.CounterOpts{
			Name: "forecast_skipped_commodities_total",
			Help: "Commodities left out of volume totals for lack of history",
		}),
	}
}

func (m *Metrics) ObserveRequest(route string, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HttpRequests.WithLabelValues(route, status).Inc()
	m.HttpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTraining(target string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ModelTraining.WithLabelValues(target).Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.ModelCacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.ModelCacheRequests.WithLabelValues("miss").Inc()
}

func (m *Metrics) SkippedCommodity() {
	if m == nil {
		return
	}
	m.SkippedCommodities.Inc()
}
