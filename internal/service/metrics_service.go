package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runTotal        prometheus.Counter
	runDuration     prometheus.Histogram
	runAssignments  prometheus.Histogram
	runAlerts       prometheus.Histogram
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Total number of completed scheduling runs",
	})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_duration_seconds",
		Help:    "Duration of scheduling runs",
		Buckets: prometheus.DefBuckets,
	})

	runAssignments := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_assignments",
		Help:    "Assignments produced per scheduling run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	runAlerts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_alerts",
		Help:    "Alerts produced per scheduling run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		runTotal,
		runDuration,
		runAssignments,
		runAlerts,
		collectors.NewGoCollector(),
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runTotal:        runTotal,
		runDuration:     runDuration,
		runAssignments:  runAssignments,
		runAlerts:       runAlerts,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveRun records one completed scheduling run.
func (s *MetricsService) ObserveRun(duration time.Duration, assignments, alerts int) {
	s.runTotal.Inc()
	s.runDuration.Observe(duration.Seconds())
	s.runAssignments.Observe(float64(assignments))
	s.runAlerts.Observe(float64(alerts))
}
