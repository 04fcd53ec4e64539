// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics defines the Prometheus collectors of erp-accounts.
// Collectors are registered on the Registerer passed to New, so tests can
// use a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "erp"

// Notification statuses.
const (
	StatusEnqueued = "enqueued"
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDropped  = "dropped"
)

// Metrics groups every collector of the server.
type Metrics struct {
	// Notifications counts notification tasks by kind and status.
	Notifications *prometheus.CounterVec

	// HTTPRequests counts served requests by method, route pattern and status.
	HTTPRequests *prometheus.CounterVec

	// HTTPDuration observes request latency by method and route pattern.
	HTTPDuration *prometheus.HistogramVec

	// Reconciliation counts recorded outbox events by kind.
	Reconciliation *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Notification tasks by kind and status (enqueued, sent, failed, dropped).",
			},
			[]string{"kind", "status"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Reconciliation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciliation_events_total",
				Help:      "Provider/directory inconsistencies recorded for repair.",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(m.Notifications, m.HTTPRequests, m.HTTPDuration, m.Reconciliation)
	return m
}

// Nop returns collectors registered on a throwaway registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
