// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/erp-accounts/models"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
	verifierCookie     = "oauth_code_verifier"

	refreshTokenTTL = 30 * 24 * time.Hour
	verifierTTL     = 10 * time.Minute
)

func (h *Handler) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// setSessionCookies stores the session tokens. The access token cookie
// lives until the token expires.
func (h *Handler) setSessionCookies(w http.ResponseWriter, session *models.Session) {
	ttl := time.Hour
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
	}

	http.SetCookie(w, h.cookie(accessTokenCookie, session.AccessToken, "/", ttl))
	if session.RefreshToken != "" {
		http.SetCookie(w, h.cookie(refreshTokenCookie, session.RefreshToken, "/", refreshTokenTTL))
	}
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	expired := func(name string) *http.Cookie {
		c := h.cookie(name, "", "/", 0)
		c.MaxAge = -1
		return c
	}
	http.SetCookie(w, expired(accessTokenCookie))
	http.SetCookie(w, expired(refreshTokenCookie))
}

// setVerifierCookie keeps the PKCE verifier until the provider calls back.
func (h *Handler) setVerifierCookie(w http.ResponseWriter, verifier string) {
	http.SetCookie(w, h.cookie(verifierCookie, verifier, "/auth", verifierTTL))
}

func (h *Handler) popVerifierCookie(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(verifierCookie)
	if err != nil {
		return ""
	}

	expired := h.cookie(verifierCookie, "", "/auth", 0)
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	return c.Value
}
