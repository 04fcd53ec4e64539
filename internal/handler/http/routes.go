// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.withSession)

	router.Get("/api/version/", h.getServerVersion)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	// account flows, session optional
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/reset-password", h.resetPassword)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/auth/google", h.googleLogin)
		r.Get("/auth/callback", h.oauthCallback)
		r.Get("/api/user", h.currentUser)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.requireSession, h.requireAdmin)

		r.Get("/api/admin/users", h.listUsers)
		r.Post("/api/admin/users", h.createUser)
		r.Post("/api/admin/users/{id}/disable", h.disableUser)
		r.Post("/api/admin/users/{id}/enable", h.enableUser)
		r.Delete("/api/admin/users/{id}", h.deleteUser)
		r.Get("/api/admin/reconciliation", h.listReconciliation)
		r.Post("/api/admin/reconciliation/{id}/resolve", h.resolveReconciliation)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
