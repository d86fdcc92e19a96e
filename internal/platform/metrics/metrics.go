// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics defines the Prometheus collectors shared by the van API and
// the web frontend, and the middleware that feeds the HTTP ones.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts finished requests by service, route pattern and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanlife_http_requests_total",
			Help: "Total number of HTTP requests handled.",
		},
		[]string{"service", "route", "status"},
	)

	// HTTPRequestDuration records request latency by service and route pattern.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vanlife_http_request_duration_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "route"},
	)

	// ResourceSettledTotal counts async resource outcomes: success, error, or discarded (superseded).
	ResourceSettledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanlife_resource_settled_total",
			Help: "Async resource fetches by outcome.",
		},
		[]string{"resource", "outcome"},
	)

	// LoginAttemptsTotal counts login submissions by outcome.
	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanlife_login_attempts_total",
			Help: "Login submissions by outcome (success/failure).",
		},
		[]string{"outcome"},
	)

	// GateDecisionsTotal counts route gate evaluations: allowed or redirecting.
	GateDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanlife_gate_decisions_total",
			Help: "Protected route evaluations by decision.",
		},
		[]string{"decision"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ResourceSettledTotal,
		LoginAttemptsTotal,
		GateDecisionsTotal,
	)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}

// Instrument records request count and latency for service.
//
// The route label is chi's matched pattern (e.g. "/vans/{id}"), so ids never
// become label values. Unmatched paths are reported as "unmatched".
func Instrument(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()
			wrapped := &statusWriter{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrapped, request)

			route := "unmatched"
			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			HTTPRequestsTotal.WithLabelValues(service, route, strconv.Itoa(wrapped.status)).Inc()
			HTTPRequestDuration.WithLabelValues(service, route).Observe(time.Since(start).Seconds())
		})
	}
}
