package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pombot_chat_requests_total",
			Help: "Chat messages answered, by the intent that answered them",
		},
		[]string{"intent"},
	)

	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pombot_chat_duration_seconds",
			Help:    "Time to resolve a chat message",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 45},
		},
		[]string{"intent"},
	)

	ChatFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pombot_chat_failures_total",
			Help: "Chat messages answered with the generic apology",
		},
	)

	LLMAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pombot_llm_attempts_total",
			Help: "Language model calls, by outcome",
		},
		[]string{"outcome"},
	)

	LLMDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pombot_llm_attempt_duration_seconds",
			Help:    "Duration of a single language model attempt",
			Buckets: []float64{.1, .5, 1, 2, 5, 10, 15},
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pombot_response_cache_lookups_total",
			Help: "Response cache lookups, by tier and result",
		},
		[]string{"tier", "result"},
	)

	CatalogItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pombot_catalog_items",
			Help: "Entries in the published catalog",
		},
		[]string{"kind"},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pombot_catalog_version",
			Help: "Version of the published catalog snapshot",
		},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pombot_catalog_loads_total",
			Help: "Catalog load attempts, by result",
		},
		[]string{"result"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

// ObserveChat records one answered message.
func ObserveChat(intent string, took time.Duration) {
	if intent == "" {
		intent = "unknown"
	}
	ChatRequests.WithLabelValues(intent).Inc()
	ChatDuration.WithLabelValues(intent).Observe(took.Seconds())
}

// ObserveLLM records one language model attempt.
func ObserveLLM(outcome string, took time.Duration) {
	LLMAttempts.WithLabelValues(outcome).Inc()
	LLMDuration.Observe(took.Seconds())
}

// ObserveCache records a response cache lookup.
func ObserveCache(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(tier, result).Inc()
}

// CatalogPublished updates the catalog gauges after a successful load.
func CatalogPublished(version uint64, products, services int) {
	CatalogLoads.WithLabelValues("success").Inc()
	CatalogVersion.Set(float64(version))
	CatalogItems.WithLabelValues("products").Set(float64(products))
	CatalogItems.WithLabelValues("services").Set(float64(services))
}

// CatalogFailed counts a failed load.
func CatalogFailed() {
	CatalogLoads.WithLabelValues("failure").Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
