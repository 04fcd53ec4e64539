// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests no route matched, so arbitrary paths do
// not create new label values.
const unmatchedRoute = "unmatched"

// withMetrics counts requests and observes their latency by chi route
// pattern.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := wrapResponseWriter(w)

		next.ServeHTTP(lw, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = routeLabel(rctx.RoutePattern())
		}

		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		h.metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routeLabel drops the trailing slash of pattern, so "/api/version/" and
// "/api/version" count as one route whatever form chi reports.
func routeLabel(pattern string) string {
	if pattern == "" {
		return unmatchedRoute
	}
	if trimmed := strings.TrimRight(pattern, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}
