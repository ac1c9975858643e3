package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for generation requests.
const (
	OutcomeSuccess        = "success"
	OutcomeParseFailure   = "parse_failure"
	OutcomeTransportError = "transport_error"
	OutcomeEmpty          = "empty"
	OutcomeSkipped        = "skipped"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	GenAIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_requests_total",
			Help: "Structured generation requests by outcome",
		},
		[]string{"outcome"},
	)

	GenAIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genai_request_duration_seconds",
			Help:    "Duration of generative backend calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"outcome"},
	)

	WebSearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_search_requests_total",
			Help: "Search backend requests by outcome",
		},
		[]string{"outcome"},
	)

	PageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_fetch_total",
			Help: "Page fetches by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP API request latency in seconds",
		},
		[]string{"method", "route"},
	)
)
