// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is an authenticated session issued by the identity provider.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

// Principal returns the caller identity carried by the session.
func (s *Session) Principal() Principal {
	return Principal{UserID: s.UserID, Email: s.Email}
}

// Principal identifies the caller of an operation. It is derived from a
// verified session and passed explicitly to every operation that needs it.
type Principal struct {
	UserID string
	Email  string
}

// Identity is a user record as stored by the identity provider.
type Identity struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// FullName returns the display name from the provider metadata. OAuth
// providers populate either full_name or name; when neither is present the
// local part of the email is used.
func (i Identity) FullName() string {
	for _, key := range []string{"full_name", "name"} {
		if v, ok := i.UserMetadata[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	local, _, _ := strings.Cut(i.Email, "@")
	return local
}

// AccessClaims are the claims of a provider-issued access token.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Redirect is a navigation result: the client should go to Location.
// CodeVerifier is set for OAuth redirects and must be kept by the caller
// until the callback exchanges the authorization code.
type Redirect struct {
	Location     string `json:"location"`
	CodeVerifier string `json:"-"`
}
