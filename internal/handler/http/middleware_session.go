// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

// withSession resolves the caller's session from the Authorization header
// or, failing that, the access_token cookie. A verified session is stored
// in the request context with utils.WithSession and the request logger gains
// the user fields. Requests without a valid token pass through anonymous.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		session, err := h.services.AuthService.Authenticate(ctx, token)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("request token rejected")
			next.ServeHTTP(w, r)
			return
		}

		if refresh, err := r.Cookie(refreshTokenCookie); err == nil {
			session.RefreshToken = refresh.Value
		}

		l := logger.FromRequest(r).WithUser(session.UserID, session.Email)
		ctx = l.WithContext(utils.WithSession(ctx, session))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession rejects anonymous requests with 401.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetSessionFromContext(r.Context()); !ok {
			logger.FromRequest(r).Debug().Msg("anonymous request to protected route")
			utils.WriteJSON(w, models.ActionResult{Error: app.MsgNotAuthenticated}, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin lets through only active admins. It must run after
// requireSession.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := utils.GetSessionFromContext(r.Context())

		me, err := h.services.AuthService.GetUserDataAndRole(r.Context(), session)
		if err != nil {
			h.writeActionError(w, r, err)
			return
		}
		if me.Role != models.RoleAdmin {
			logger.FromRequest(r).Warn().Str("role", string(me.Role)).Msg("admin route refused")
			utils.WriteJSON(w, models.ActionResult{Error: app.MsgForbidden}, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}
	if c, err := r.Cookie(accessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func principalFromRequest(r *http.Request) models.Principal {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		return models.Principal{}
	}
	return session.Principal()
}
