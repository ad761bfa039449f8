// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rating submission outcomes.
const (
	RatingOutcomeCreated  = "created"
	RatingOutcomeUpdated  = "updated"
	RatingOutcomeCooldown = "cooldown"
	RatingOutcomeNotFound = "not_found"
	RatingOutcomeError    = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	RatingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_rating_submissions_total",
			Help: "Rating submissions by outcome",
		},
		[]string{"outcome"},
	)

	RatingEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_rating_events_published_total",
			Help: "Rating events written to Kafka, by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRatingSubmission counts a rating attempt by outcome.
func RecordRatingSubmission(outcome string) {
	RatingSubmissions.WithLabelValues(outcome).Inc()
}

// RecordRatingEvent counts a Kafka publish attempt.
func RecordRatingEvent(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	RatingEventsPublished.WithLabelValues(result).Inc()
}
