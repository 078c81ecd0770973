// Package metrics exposes Prometheus collectors for lifecycle transitions, code checks,
// background jobs and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"eatify/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const outcomeOK = "ok"

type Metrics struct {
	registry *prometheus.Registry

	transitionsTotal     *prometheus.CounterVec
	codeValidationsTotal *prometheus.CounterVec
	jobRunsTotal         *prometheus.CounterVec
	jobItemsTotal        *prometheus.CounterVec
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// New builds the collectors on a private registry, together with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eatify_order_transitions_total",
				Help: "Lifecycle operations by event and outcome",
			},
			[]string{"event", "outcome"},
		),
		codeValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eatify_code_validations_total",
				Help: "Verification code checks by outcome",
			},
			[]string{"outcome"},
		),
		jobRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eatify_job_runs_total",
				Help: "Background job runs by job and outcome",
			},
			[]string{"job", "outcome"},
		),
		jobItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eatify_job_items_total",
				Help: "Items handled by background jobs, such as published events or archived orders",
			},
			[]string{"job", "item"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eatify_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eatify_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transitionsTotal,
		m.codeValidationsTotal,
		m.jobRunsTotal,
		m.jobItemsTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	return errs.Kind(err)
}

// ObserveTransition counts one lifecycle operation.
func (m *Metrics) ObserveTransition(event string, err error) {
	m.transitionsTotal.WithLabelValues(event, outcome(err)).Inc()
}

func (m *Metrics) ObserveCodeValidation(err error) {
	m.codeValidationsTotal.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) ObserveJobRun(job string, err error) {
	m.jobRunsTotal.WithLabelValues(job, outcome(err)).Inc()
}

func (m *Metrics) AddJobItems(job, item string, n int) {
	if n > 0 {
		m.jobItemsTotal.WithLabelValues(job, item).Add(float64(n))
	}
}

// Middleware records request counts and latency by route template, not raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.httpRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			m.httpRequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
