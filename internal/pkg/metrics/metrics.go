package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service metrics collectors
var (
	// HTTP

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingfy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratingfy_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Reviews

	ReviewsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingfy_reviews_created_total",
			Help: "Total number of reviews created, by author",
		},
		[]string{"author"},
	)

	ReviewMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingfy_review_mutations_total",
			Help: "Total number of review updates and deletions",
		},
		[]string{"operation"},
	)

	DuplicateSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingfy_duplicate_submissions_total",
			Help: "Total number of rejected duplicate customer submissions",
		},
	)

	// Media

	MediaStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingfy_media_stored_total",
			Help: "Total number of attachment store attempts",
		},
		[]string{"backend", "status"},
	)

	MediaRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingfy_media_rejected_total",
			Help: "Total number of uploads dropped for being empty or not image/video",
		},
	)

	// Visibility

	VisibilityCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingfy_visibility_cache_total",
			Help: "Visibility cache lookups by result",
		},
		[]string{"result"},
	)

	// Worker

	RatingRecalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingfy_rating_recalculations_total",
			Help: "Total number of rating summary recalculations",
		},
		[]string{"status"},
	)
)
