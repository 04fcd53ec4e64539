// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/erp-accounts/internal/cache"
	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/internal/mock"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/models"
)

// testServer bundles a router with the service mocks behind it.
type testServer struct {
	router   http.Handler
	handler  *Handler
	auth     *mock.MockAuthService
	users    *mock.MockUserAdminService
	appInfo  *mock.MockAppInfoService
	views    *cache.ViewCache
	registry *prometheus.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		auth:     mock.NewMockAuthService(ctrl),
		users:    mock.NewMockUserAdminService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
		views:    cache.NewViewCache(16, time.Minute),
		registry: prometheus.NewRegistry(),
	}

	services := &service.Services{
		AuthService:      ts.auth,
		UserAdminService: ts.users,
		AppInfoService:   ts.appInfo,
	}
	obs := Observability{Metrics: metrics.New(ts.registry), Gatherer: ts.registry}
	ts.handler = NewHandler(services, ts.views, obs, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())
	ts.router = ts.handler.Init()
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

// asAdmin authenticates the request with a bearer token resolving to an
// active admin.
func (ts *testServer) asAdmin(session *models.Session) func(*http.Request) {
	ts.auth.EXPECT().Authenticate(gomock.Any(), session.AccessToken).Return(session, nil)
	ts.auth.EXPECT().GetUserDataAndRole(gomock.Any(), session).
		Return(models.UserWithRole{User: models.User{UserID: session.UserID, Role: models.RoleAdmin}, Role: models.RoleAdmin}, nil)
	return withBearer(session.AccessToken)
}

func withBearer(token string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func decodeFormResult(t *testing.T, rr *httptest.ResponseRecorder) models.FormResult {
	t.Helper()
	var out models.FormResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func decodeActionResult(t *testing.T, rr *httptest.ResponseRecorder) models.ActionResult {
	t.Helper()
	var out models.ActionResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ── NewHandler ───────────────────────────────────────────────────────────────

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(&service.Services{}, nil, Observability{}, config.Server{CookieSecure: true}, logger.Nop())

	require.NotNil(t, h)
	assert.NotNil(t, h.metrics)
	assert.NotNil(t, h.gatherer)
	assert.Nil(t, h.views)
	assert.True(t, h.cookieSecure)
}

func TestInit_UnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInit_WrongMethodIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodPut, "/api/auth/login", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestInit_MetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")

	ts.do(t, http.MethodGet, "/api/version/", nil)
	rr := ts.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `erp_http_requests_total{method="GET",route="/api/version",status="200"} 1`), rr.Body.String())
}

func TestGetServerVersion(t *testing.T) {
	ts := newTestServer(t)
	ts.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.4.0")

	rr := ts.do(t, http.MethodGet, "/api/version/", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.4.0"}`, rr.Body.String())
}
