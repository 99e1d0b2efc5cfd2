// Package monitoring exposes Prometheus metrics for the HTTP surface and
// the recipe generation pipeline.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	generationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_generation_attempts_total",
			Help: "Total number of generation backend calls",
		},
		[]string{"backend"},
	)
	generationRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_generation_rejections_total",
			Help: "Total number of generated recipes rejected as repeats",
		},
	)
	generationFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_generation_fallbacks_total",
			Help: "Total number of fallback recipes served",
		},
		[]string{"backend"},
	)

	usersRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of users registered",
		},
	)
	recipesSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipes_saved_total",
			Help: "Total number of recipes saved to history",
		},
	)
)

// RecordHTTPRequest records one served request. Path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func RecordHTTPRequest(method, path, statusCode string, durationSeconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	httpRequestDuration.WithLabelValues(method, path, statusCode).Observe(durationSeconds)
}

// RecordGenerationAttempt counts one call to a generation backend
func RecordGenerationAttempt(backend string) {
	generationAttemptsTotal.WithLabelValues(backend).Inc()
}

// RecordGenerationRejection counts one recipe rejected by the
// non-repetition check
func RecordGenerationRejection() {
	generationRejectionsTotal.Inc()
}

// RecordGenerationFallback counts one fallback recipe served in place of
// backend output
func RecordGenerationFallback(backend string) {
	generationFallbacksTotal.WithLabelValues(backend).Inc()
}

// RecordUserRegistered counts one successful registration
func RecordUserRegistered() {
	usersRegisteredTotal.Inc()
}

// RecordRecipeSaved counts one history write
func RecordRecipeSaved() {
	recipesSavedTotal.Inc()
}

// Handler serves the Prometheus exposition endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
