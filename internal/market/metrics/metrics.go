// Package metrics exposes Prometheus collectors for the HTTP surface and the
// marketplace operations. A nil *Metrics is valid and records nothing, which
// keeps tests and tools free of registry plumbing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "market"

// Offer actions.
const (
	ActionPublished = "published"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
)

// Results for logins and uploads.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	signups *prometheus.CounterVec
	logins  *prometheus.CounterVec
	offers  *prometheus.CounterVec
	uploads *prometheus.CounterVec
}

// New registers every collector on a dedicated registry, plus the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Signup attempts by result.",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		offers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_total",
			Help:      "Successful offer mutations by action.",
		}, []string{"action"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Image host uploads by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.signups,
		m.logins,
		m.offers,
		m.uploads,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency labelled by the matched
// ServeMux pattern, so path parameters do not explode cardinality. It must
// sit between the mux and any middleware that replaces the request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rw.status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Signup(err error) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) Login(err error) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) Offer(action string) {
	if m == nil {
		return
	}
	m.offers.WithLabelValues(action).Inc()
}

func (m *Metrics) Upload(err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

type statusWriter struct {
	http.ResponseWriter

	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
