// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/models"
)

// ── Signup ───────────────────────────────────────────────────────────────────

func TestSignup(t *testing.T) {
	form := models.SignupForm{Email: "a@x.com", Password: "Pw1!", ConfirmPassword: "Pw1!", FullName: "Ada Lovelace"}

	tests := []struct {
		name       string
		body       any
		svcErr     error
		callsSvc   bool
		wantStatus int
		wantError  string
	}{
		{name: "ok", body: form, callsSvc: true, wantStatus: http.StatusOK},
		{
			name: "validation", body: form, callsSvc: true,
			svcErr:     &service.Error{Kind: service.ErrValidation, Message: app.MsgPasswordsDoNotMatch},
			wantStatus: http.StatusBadRequest, wantError: app.MsgPasswordsDoNotMatch,
		},
		{
			name: "provider message verbatim", body: form, callsSvc: true,
			svcErr:     &service.Error{Kind: service.ErrProvider, Message: "User already registered", Err: adapter.NewProviderError(422, "User already registered")},
			wantStatus: http.StatusUnprocessableEntity, wantError: "User already registered",
		},
		{
			name: "provider outage", body: form, callsSvc: true,
			svcErr:     &service.Error{Kind: service.ErrProvider, Message: "upstream", Err: adapter.NewProviderError(503, "upstream")},
			wantStatus: http.StatusBadGateway, wantError: "upstream",
		},
		{name: "bad json", body: "{", wantStatus: http.StatusBadRequest, wantError: app.MsgInvalidDataProvided},
		{name: "unknown field", body: `{"email":"a@x.com","admin":true}`, wantStatus: http.StatusBadRequest, wantError: app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.callsSvc {
				ts.auth.EXPECT().Signup(gomock.Any(), form).Return(tt.svcErr)
			}

			rr := ts.do(t, http.MethodPost, "/api/auth/signup", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			result := decodeFormResult(t, rr)
			if tt.wantError == "" {
				assert.Nil(t, result.Error)
				return
			}
			require.NotNil(t, result.Error)
			assert.Equal(t, tt.wantError, *result.Error)
		})
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_SetsCookiesAndHeader(t *testing.T) {
	ts := newTestServer(t)
	form := models.LoginForm{Email: "a@x.com", Password: "secret"}
	session := &models.Session{AccessToken: "at", RefreshToken: "rt", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}

	ts.auth.EXPECT().Login(gomock.Any(), form).Return(session, nil)

	rr := ts.do(t, http.MethodPost, "/api/auth/login", form)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer at", rr.Header().Get("Authorization"))
	assert.JSONEq(t, `{"error":null}`, rr.Body.String())

	access := cookieByName(rr, accessTokenCookie)
	require.NotNil(t, access)
	assert.Equal(t, "at", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Positive(t, access.MaxAge)

	refresh := cookieByName(rr, refreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "rt", refresh.Value)
}

func TestLogin_Disabled(t *testing.T) {
	ts := newTestServer(t)
	form := models.LoginForm{Email: "a@x.com", Password: "secret"}

	ts.auth.EXPECT().Login(gomock.Any(), form).
		Return(nil, &service.Error{Kind: service.ErrAccountDisabled, Message: app.MsgAccountDisabled})

	rr := ts.do(t, http.MethodPost, "/api/auth/login", form)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	result := decodeFormResult(t, rr)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Your account has been disabled. Please contact support.", *result.Error)
	assert.Nil(t, cookieByName(rr, accessTokenCookie))
}

// ── ResetPassword / Logout ───────────────────────────────────────────────────

func TestResetPassword(t *testing.T) {
	ts := newTestServer(t)
	form := models.ResetPasswordForm{Email: "a@x.com"}
	ts.auth.EXPECT().ResetPassword(gomock.Any(), form).Return(nil)

	rr := ts.do(t, http.MethodPost, "/api/auth/reset-password", form)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decodeFormResult(t, rr).Error)
}

func TestLogout_ClearsCookies(t *testing.T) {
	ts := newTestServer(t)
	session := &models.Session{AccessToken: "at", UserID: "u-1"}

	ts.auth.EXPECT().Authenticate(gomock.Any(), "at").Return(session, nil)
	ts.auth.EXPECT().Logout(gomock.Any(), session).Return(nil)

	rr := ts.do(t, http.MethodPost, "/api/auth/logout", nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "at"})
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	cleared := cookieByName(rr, accessTokenCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}

func TestLogout_Anonymous(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.EXPECT().Logout(gomock.Any(), nil).Return(nil)

	rr := ts.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ── OAuth ────────────────────────────────────────────────────────────────────

func TestGoogleLogin_StoresVerifier(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.EXPECT().GoogleLogin(gomock.Any(), nil).
		Return(models.Redirect{Location: "https://id.example.com/auth/v1/authorize?provider=google", CodeVerifier: "v-123"}, nil)

	rr := ts.do(t, http.MethodGet, "/auth/google", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "https://id.example.com/auth/v1/authorize?provider=google", rr.Header().Get("Location"))
	verifier := cookieByName(rr, verifierCookie)
	require.NotNil(t, verifier)
	assert.Equal(t, "v-123", verifier.Value)
	assert.Equal(t, "/auth", verifier.Path)
}

func TestGoogleLogin_DisabledSession(t *testing.T) {
	ts := newTestServer(t)
	session := &models.Session{AccessToken: "at", UserID: "u-1"}
	location := service.LoginPath + "?error=" + url.QueryEscape(app.MsgAccountDisabled)

	ts.auth.EXPECT().Authenticate(gomock.Any(), "at").Return(session, nil)
	ts.auth.EXPECT().GoogleLogin(gomock.Any(), session).Return(models.Redirect{Location: location}, nil)

	rr := ts.do(t, http.MethodGet, "/auth/google", nil, withBearer("at"))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, location, rr.Header().Get("Location"))
	assert.Nil(t, cookieByName(rr, verifierCookie))
}

func TestOAuthCallback_Success(t *testing.T) {
	ts := newTestServer(t)
	session := &models.Session{AccessToken: "at", RefreshToken: "rt", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}

	ts.auth.EXPECT().OAuthCallback(gomock.Any(), "the-code", "v-123").Return(session, nil)

	rr := ts.do(t, http.MethodGet, "/auth/callback?code=the-code", nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: verifierCookie, Value: "v-123"})
	})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, homePath, rr.Header().Get("Location"))
	require.NotNil(t, cookieByName(rr, accessTokenCookie))
	assert.Equal(t, "at", cookieByName(rr, accessTokenCookie).Value)
}

func TestOAuthCallback_DisabledRedirectsToLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.EXPECT().OAuthCallback(gomock.Any(), "the-code", "").
		Return(nil, &service.Error{Kind: service.ErrAccountDisabled, Message: app.MsgAccountDisabled})

	rr := ts.do(t, http.MethodGet, "/auth/callback?code=the-code", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, service.LoginPath+"?error="+url.QueryEscape(app.MsgAccountDisabled), rr.Header().Get("Location"))
}

// ── Current user ─────────────────────────────────────────────────────────────

func TestCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	session := &models.Session{AccessToken: "at", UserID: "u-1"}
	me := models.UserWithRole{User: models.User{UserID: "u-1", Email: "a@x.com", Role: models.RoleStaff}, Role: models.RoleStaff}

	ts.auth.EXPECT().Authenticate(gomock.Any(), "at").Return(session, nil)
	ts.auth.EXPECT().GetUserDataAndRole(gomock.Any(), session).Return(me, nil)

	rr := ts.do(t, http.MethodGet, "/api/user", nil, withBearer("at"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"role":"staff"`)
}

func TestCurrentUser_BrowserWithoutSessionIsRedirected(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.EXPECT().GetUserDataAndRole(gomock.Any(), nil).
		Return(models.UserWithRole{}, &service.Error{Kind: service.ErrUnauthenticated, Message: app.MsgNotAuthenticated})

	rr := ts.do(t, http.MethodGet, "/api/user", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, service.LoginPath, rr.Header().Get("Location"))
}

func TestCurrentUser_MissingProfileAsJSON(t *testing.T) {
	ts := newTestServer(t)
	session := &models.Session{AccessToken: "at", UserID: "u-1"}

	ts.auth.EXPECT().Authenticate(gomock.Any(), "at").Return(session, nil)
	ts.auth.EXPECT().GetUserDataAndRole(gomock.Any(), session).
		Return(models.UserWithRole{}, &service.Error{Kind: service.ErrInconsistentState, Message: app.MsgProfileNotFound, Err: errors.New("no row")})

	rr := ts.do(t, http.MethodGet, "/api/user", nil, withBearer("at"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "User profile not found. Please contact support.", decodeActionResult(t, rr).Error)
}
